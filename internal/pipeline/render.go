package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/avoronov/clauselint/internal/model"
)

// Renderer turns reports into their export forms. JSON is the canonical,
// structurally faithful serialization; Markdown is the human-readable
// projection, with resolved findings hidden unless showResolved is set.
type Renderer struct {
	includeFooter bool
	showResolved  bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter, showResolved bool) *Renderer {
	return &Renderer{includeFooter: includeFooter, showResolved: showResolved}
}

// WithResolved returns a copy that also renders resolved findings.
func (r *Renderer) WithResolved() *Renderer {
	clone := *r
	clone.showResolved = true
	return &clone
}

// JSON serializes the report.
func (r *Renderer) JSON(report *model.Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

// WriteJSON writes the JSON form to a file.
func (r *Renderer) WriteJSON(report *model.Report, path string) error {
	data, err := r.JSON(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

var severityLabels = map[model.Severity]string{
	model.SeverityHigh:   "высокая",
	model.SeverityMedium: "средняя",
	model.SeverityLow:    "низкая",
}

// Markdown renders the report with clauses in index order and findings in
// their post-processed order.
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	b.WriteString("# Отчёт о проверке договора\n\n")
	if report.Title != "" {
		fmt.Fprintf(&b, "Документ: %s\n\n", report.Title)
	}
	fmt.Fprintf(&b, "Сформирован: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "Порог дубликатов: %.2f\n\n", report.DupThreshold)

	b.WriteString("## Пункты\n\n")
	if len(report.Clauses) == 0 {
		b.WriteString("_Документ пуст._\n\n")
	}
	for _, clause := range report.Clauses {
		if clause.Header != "" {
			// Headers keep their own numbering from the source text.
			fmt.Fprintf(&b, "### %s\n\n", clause.Header)
		} else {
			fmt.Fprintf(&b, "### Пункт %d\n\n", clause.Index)
		}
		b.WriteString(clause.Text)
		b.WriteString("\n\n")
	}

	b.WriteString("## Замечания\n\n")
	shown := 0
	for _, f := range report.Findings {
		base := f.Base()
		if base.Resolved && !r.showResolved {
			continue
		}
		shown++

		switch finding := f.(type) {
		case *model.Duplicate:
			fmt.Fprintf(&b, "- **[%s]** %s\n", severityLabels[base.Severity], base.Reason)
		case *model.Conflict:
			fmt.Fprintf(&b, "- **[%s]** %s _(сигнал: %s)_\n",
				severityLabels[base.Severity], base.Reason, finding.Signal)
		}
		if base.Resolved {
			b.WriteString("  - _помечено как решённое_\n")
		}
	}
	if shown == 0 {
		b.WriteString("_Замечаний не найдено._\n")
	}
	b.WriteString("\n")

	if r.includeFooter {
		b.WriteString("---\n_Сформировано clauselint — эвристическая проверка, не юридическое заключение._\n")
	}
	return b.String()
}

// WriteMarkdown writes the Markdown form to a file.
func (r *Renderer) WriteMarkdown(report *model.Report, path string) error {
	if err := os.WriteFile(path, []byte(r.Markdown(report)), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// Summary prints a short severity breakdown for CLI output.
func (r *Renderer) Summary(report *model.Report, w io.Writer) {
	counts := report.CountBySeverity()
	fmt.Fprintf(w, "Clauses: %d, findings: %d (high: %d, medium: %d, low: %d)\n",
		len(report.Clauses), len(report.Findings),
		counts[model.SeverityHigh], counts[model.SeverityMedium], counts[model.SeverityLow])
}
