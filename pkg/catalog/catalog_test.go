package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/nikogura/talent-match/pkg/model"
	"github.com/nikogura/talent-match/pkg/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) (path string) {
	t.Helper()
	path = filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0600)
	require.NoError(t, err)
	return path
}

const minimalYAML = `
fallback_character: 家計の金庫番長
characters:
  - name: 家計の金庫番長
    factors: {コツコツ実行力: 3}
  - name: ご近所の広報部長
questions:
  - id: 1
    text: Q1
    options:
      - id: A
        trait_scores: {LOGIC_DETAIL: 2}
        character_scores: {家計の金庫番長: 2, 幻のキャラ: 1}
        condition_tags: [SITTING_WORK]
jobs:
  - job_id: J1
    job_name: 一般事務
    domain: 事務
    trait_affinity: {LOGIC_DETAIL: 80, 外向性: 5}
    character_scores: {家計の金庫番長: 3}
`

func TestDefaultCatalog(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	assert.Len(t, cat.Characters, 16)
	assert.Len(t, cat.Questions, 18)
	assert.Len(t, cat.ConditionQuestions, 4)
	assert.NotEmpty(t, cat.Jobs)
	assert.Equal(t, "家計の金庫番長", cat.Fallback())
	assert.Empty(t, cat.Warnings())

	for _, job := range cat.Jobs {
		assert.NotEmptyf(t, cat.CategoryReasons[job.CategoryKey()], "no reason text for %s", job.CategoryKey())
	}
}

func TestDefaultCatalogReturnsIndependentCopies(t *testing.T) {
	first, err := Default()
	require.NoError(t, err)
	first.Characters[0].Name = "changed"

	second, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "家計の金庫番長", second.Characters[0].Name)
}

func TestDefaultCatalogTraitWeights(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	weights := profile.WeightsFromQuestions(cat.Questions)
	assert.Equal(t, map[model.TraitKey]int{model.TraitLogicDetail: 1, model.TraitCareSupport: 1}, weights[1]["C"])
	assert.Empty(t, weights[9]["A"])
	assert.Equal(t, map[model.TraitKey]int{model.TraitCommunication: 2}, weights[18]["B"])
}

func TestLoadYAMLAndWarnings(t *testing.T) {
	path := writeFile(t, "catalog.yaml", minimalYAML)

	cat, err := Load(path)
	require.NoError(t, err)

	assert.Len(t, cat.Characters, 2)
	ch, ok := cat.ByName("ご近所の広報部長")
	assert.True(t, ok)
	assert.Equal(t, "ご近所の広報部長", ch.Name)
	_, ok = cat.ByName("nobody")
	assert.False(t, ok)

	warnings := cat.Warnings()
	assert.Equal(t, []string{
		"question 1 option A scores unknown character 幻のキャラ",
		"job J1 has trait weight 外向性 outside the trait set",
	}, warnings)
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "catalog.json", `{
		"characters": [{"name": "家計の金庫番長", "factors": {"段取り&分析力": 2}}],
		"questions": [{"id": 1, "options": [{"id": "A", "trait_scores": {"CARE_SUPPORT": 1}}]}],
		"condition_questions": [{"id": "101", "options": [{"id": "A", "tag": "REMOTE_OK"}, {"id": "B"}]}],
		"jobs": []
	}`)

	cat, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "家計の金庫番長", cat.Fallback())
	require.Len(t, cat.ConditionQuestions, 1)
	assert.Equal(t, model.RemoteOK, cat.ConditionQuestions[0].Options[0].Tag)
}

func TestValidateRejectsBadCatalogs(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "no characters",
			content: `{"characters": []}`,
		},
		{
			name:    "duplicate character",
			content: `{"characters": [{"name": "家計の金庫番長"}, {"name": "家計の金庫番長"}]}`,
		},
		{
			name:    "fallback missing",
			content: `{"characters": [{"name": "ご近所の広報部長"}]}`,
		},
		{
			name:    "unknown factor",
			content: `{"characters": [{"name": "家計の金庫番長", "factors": {"体力": 1}}]}`,
		},
		{
			name:    "unknown trait key",
			content: `{"characters": [{"name": "家計の金庫番長"}], "questions": [{"id": 1, "options": [{"id": "A", "trait_scores": {"HUMOR": 1}}]}]}`,
		},
		{
			name:    "unknown condition tag on option",
			content: `{"characters": [{"name": "家計の金庫番長"}], "questions": [{"id": 1, "options": [{"id": "A", "condition_tags": ["PC_ENV"]}]}]}`,
		},
		{
			name:    "duplicate question",
			content: `{"characters": [{"name": "家計の金庫番長"}], "questions": [{"id": 1}, {"id": 1}]}`,
		},
		{
			name:    "unknown condition question tag",
			content: `{"characters": [{"name": "家計の金庫番長"}], "condition_questions": [{"id": "101", "options": [{"id": "A", "tag": "STANDING_OK"}]}]}`,
		},
		{
			name:    "duplicate job id",
			content: `{"characters": [{"name": "家計の金庫番長"}], "jobs": [{"job_id": "J1", "job_name": "a"}, {"job_id": "J1", "job_name": "b"}]}`,
		},
		{
			name:    "unknown job condition",
			content: `{"characters": [{"name": "家計の金庫番長"}], "jobs": [{"job_id": "J1", "job_name": "a", "condition_affinity": ["QUIET_OK"]}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content), FormatJSON)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingAndEmptyFiles(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "empty.json", ""))
	assert.Error(t, err)
}

func TestLoadJobsListAndDocument(t *testing.T) {
	ctx := context.Background()

	list := writeFile(t, "jobs.yaml", "- job_id: J1\n  job_name: 一般事務\n- job_id: J2\n  job_name: 販売\n")
	jobs, err := LoadJobs(ctx, list)
	require.NoError(t, err)
	assert.Len(t, jobs, 2)

	doc := writeFile(t, "jobs.json", `{"jobs": [{"job_id": "J9", "job_name": "検品"}]}`)
	jobs, err = LoadJobs(ctx, doc)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "J9", jobs[0].ID)

	bad := writeFile(t, "bad.json", `[{"job_id": "", "job_name": "x"}]`)
	_, err = LoadJobs(ctx, bad)
	assert.Error(t, err)
}

func TestReplaceJobs(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	err = cat.ReplaceJobs([]model.JobMasterEntry{{ID: "X", Name: "x"}})
	require.NoError(t, err)
	assert.Len(t, cat.Jobs, 1)

	err = cat.ReplaceJobs([]model.JobMasterEntry{{ID: "Y"}})
	assert.Error(t, err)
	assert.Len(t, cat.Jobs, 1, "failed replacement keeps the old jobs")
}

func TestOpenFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "talent-match/1.0", r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/catalog.yaml":
			_, _ = w.Write([]byte(minimalYAML))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	cat, err := Open(context.Background(), server.URL+"/catalog.yaml?v=2")
	require.NoError(t, err)
	assert.Len(t, cat.Characters, 2)

	_, err = Open(context.Background(), server.URL+"/missing.json")
	assert.Error(t, err)
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFor("catalog.yaml"))
	assert.Equal(t, FormatYAML, FormatFor("/tmp/catalog.YML"))
	assert.Equal(t, FormatYAML, FormatFor("https://example.com/c.yaml?token=1"))
	assert.Equal(t, FormatJSON, FormatFor("catalog.json"))
	assert.Equal(t, FormatJSON, FormatFor("catalog"))
}
