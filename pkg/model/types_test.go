package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryKey(t *testing.T) {
	tests := []struct {
		name     string
		domain   string
		category string
		want     string
	}{
		{name: "domain first", domain: "事務", category: "経理", want: "事務"},
		{name: "trimmed domain", domain: " 販売・接客 ", want: "販売・接客"},
		{name: "blank domain uses category", domain: "  ", category: " 接客 ", want: "接客"},
		{name: "literal other domain", domain: OtherCategory, category: "接客", want: OtherCategory},
		{name: "nothing", want: OtherCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := JobMasterEntry{Domain: tt.domain, Category: tt.category}
			assert.Equal(t, tt.want, job.CategoryKey())
		})
	}
}
