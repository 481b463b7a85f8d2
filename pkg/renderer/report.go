package renderer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nikogura/talent-match/pkg/diagnosis"
	"github.com/nikogura/talent-match/pkg/model"
	"github.com/pkg/errors"
)

// Format is an output format for reports.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format name. Empty selects FormatText.
func ParseFormat(name string) (format Format, err error) {
	switch Format(strings.ToLower(name)) {
	case "", FormatText:
		format = FormatText
	case FormatJSON:
		format = FormatJSON
	case FormatMarkdown, "md":
		format = FormatMarkdown
	default:
		err = errors.Errorf("unknown output format %q: must be text, json or markdown", name)
	}
	return format, err
}

//nolint:gochecknoglobals // Display labels
var conditionLabels = map[model.ConditionTag]string{
	model.RemoteOK:           "在宅が多め",
	model.HybridOK:           "在宅と出社",
	model.ShortHoursOK:       "短時間OK",
	model.FlexibleShift:      "シフト柔軟",
	model.FullTimeOriented:   "フルタイム",
	model.LowCommunicationOK: "もくもく作業",
	model.TalkActive:         "会話多め",
	model.SittingWork:        "座り作業",
	model.CanMoveSometimes:   "適度に動く",
	model.ActiveWork:         "動きあり",
	model.LowStress:          "負担少なめ",
	model.SkillBuilding:      "スキルアップ",
	model.HelpingPeople:      "人の役に立つ",
	model.OnSite:             "現場必須",
	model.CustomerFacing:     "接客あり",
}

// ConditionLabel returns the display label of a tag, or the tag itself.
func ConditionLabel(tag model.ConditionTag) (label string) {
	label = conditionLabels[tag]
	if label == "" {
		label = string(tag)
	}
	return label
}

// Report is everything one run produces for one user.
type Report struct {
	Result      model.DiagnosisResult     `json:"result"`
	Character   *model.CharacterProfile   `json:"character,omitempty"`
	FactorIcons map[model.FactorKey]int   `json:"factor_icons"`
	Profile     model.UserProfile         `json:"profile"`
	Policy      string                    `json:"policy,omitempty"`
	TopJobs     []model.JobCardView       `json:"top_jobs,omitempty"`
	Domains     []model.JobDomainCardView `json:"domains,omitempty"`
	Sampled     []model.JobCardView       `json:"sampled,omitempty"`
}

// NewReport assembles a report around a diagnosis.
func NewReport(result model.DiagnosisResult, character *model.CharacterProfile, profile model.UserProfile) (report Report) {
	report = Report{
		Result:      result,
		Character:   character,
		FactorIcons: diagnosis.FactorIcons(result.FactorScores),
		Profile:     profile,
	}
	return report
}

// Render formats a report.
func Render(report Report, format Format) (content string, err error) {
	switch format {
	case FormatJSON:
		var data []byte
		data, err = json.MarshalIndent(report, "", "  ")
		if err != nil {
			err = errors.Wrap(err, "failed to marshal report")
			return content, err
		}
		content = string(data) + "\n"
	case FormatMarkdown:
		content = renderMarkdown(report)
	default:
		content = renderText(report)
	}
	return content, err
}

func renderText(r Report) (content string) {
	var b strings.Builder

	fmt.Fprintf(&b, "タイプ: %s\n", r.Result.PrimaryType)
	if len(r.Result.SecondaryTypes) > 0 {
		fmt.Fprintf(&b, "サブタイプ: %s\n", strings.Join(r.Result.SecondaryTypes, ", "))
	}
	if r.Character != nil && r.Character.ShortDescription != "" {
		fmt.Fprintf(&b, "%s\n", r.Character.ShortDescription)
	}

	b.WriteString("\n強み\n")
	for _, factor := range model.AllFactors() {
		fmt.Fprintf(&b, "  %-12s %s\n", factor, strings.Repeat("*", r.FactorIcons[factor]))
	}

	if len(r.Profile.Conditions) > 0 {
		fmt.Fprintf(&b, "\n希望条件: %s\n", conditionList(r.Profile.Conditions))
	}

	if len(r.TopJobs) > 0 {
		b.WriteString("\nおすすめの仕事\n")
		for i, job := range r.TopJobs {
			fmt.Fprintf(&b, "  %2d. %s [%s] %.1f\n", i+1, job.Name, job.CategoryName, job.TotalScore)
		}
	}

	if len(r.Domains) > 0 {
		b.WriteString("\nおすすめの分野\n")
		for _, d := range r.Domains {
			fmt.Fprintf(&b, "  %s: %s\n", d.CategoryName, strings.Join(d.Jobs, ", "))
			if d.SuitableSummary != "" {
				fmt.Fprintf(&b, "    %s\n", d.SuitableSummary)
			}
		}
	}

	if len(r.Sampled) > 0 {
		b.WriteString("\nピックアップ\n")
		for _, job := range r.Sampled {
			fmt.Fprintf(&b, "  - %s [%s]\n", job.Name, job.CategoryName)
		}
	}

	content = b.String()
	return content
}

func renderMarkdown(r Report) (content string) {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", r.Result.PrimaryType)
	if r.Character != nil {
		if r.Character.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", r.Character.Description)
		}
		if len(r.Character.StrengthKeywords) > 0 {
			fmt.Fprintf(&b, "**強み:** %s\n\n", strings.Join(r.Character.StrengthKeywords, " / "))
		}
	}
	if len(r.Result.SecondaryTypes) > 0 {
		fmt.Fprintf(&b, "**サブタイプ:** %s\n\n", strings.Join(r.Result.SecondaryTypes, "、"))
	}

	b.WriteString("## 5つの力\n\n| 力 | 評価 |\n|----|------|\n")
	for _, factor := range model.AllFactors() {
		fmt.Fprintf(&b, "| %s | %s |\n", factor, strings.Repeat("★", r.FactorIcons[factor]))
	}
	b.WriteString("\n")

	if len(r.Profile.Conditions) > 0 {
		fmt.Fprintf(&b, "**希望条件:** %s\n\n", conditionList(r.Profile.Conditions))
	}

	if len(r.TopJobs) > 0 {
		b.WriteString("## おすすめの仕事\n\n")
		for _, job := range r.TopJobs {
			name := job.Name
			if job.LinkURL != "" {
				name = fmt.Sprintf("[%s](%s)", job.Name, job.LinkURL)
			}
			fmt.Fprintf(&b, "- %s (%s)", name, job.CategoryName)
			if job.ArticleURL != "" {
				fmt.Fprintf(&b, " [記事](%s)", job.ArticleURL)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(r.Domains) > 0 {
		b.WriteString("## おすすめの分野\n\n")
		for _, d := range r.Domains {
			fmt.Fprintf(&b, "### %s\n\n", d.CategoryName)
			if d.SuitableSummary != "" {
				fmt.Fprintf(&b, "%s\n\n", d.SuitableSummary)
			}
			for _, name := range d.Jobs {
				fmt.Fprintf(&b, "- %s\n", name)
			}
			b.WriteString("\n")
		}
	}

	if len(r.Sampled) > 0 {
		b.WriteString("## ピックアップ\n\n")
		for _, job := range r.Sampled {
			fmt.Fprintf(&b, "- %s (%s)\n", job.Name, job.CategoryName)
		}
		b.WriteString("\n")
	}

	content = b.String()
	return content
}

func conditionList(tags model.ConditionSet) (list string) {
	labels := make([]string, 0, len(tags))
	for _, tag := range tags {
		labels = append(labels, ConditionLabel(tag))
	}
	list = strings.Join(labels, "、")
	return list
}

// Write sends content to outputPath, or to w when outputPath is empty.
func Write(content, outputPath string, w io.Writer) (err error) {
	if outputPath == "" {
		_, err = io.WriteString(w, content)
		if err != nil {
			err = errors.Wrap(err, "failed to write report")
		}
		return err
	}

	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	err = os.WriteFile(outputPath, []byte(content), 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write report file: %s", outputPath)
		return err
	}

	return err
}
