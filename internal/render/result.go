package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/linnemanlabs/intake/internal/triage"
)

// ResultPanel renders the triage result panel: risk badge and value,
// confidence percentage, recommended department, and the optional
// alternatives line and summary paragraph.
func ResultPanel(res *triage.TriageResult) string {
	var b bytes.Buffer

	risk := res.Risk()
	b.WriteString("<div class=\"result-risk\">\n")
	b.WriteString(fmt.Sprintf("  <span class=\"badge %s\">%s</span>\n", RiskBadgeClass(risk), Escape(risk)))
	b.WriteString(fmt.Sprintf("  <span class=\"risk-value %s\">%s</span>\n", RiskValueClass(risk), Escape(risk)))
	b.WriteString("</div>\n")

	b.WriteString(fmt.Sprintf("<p class=\"result-confidence\">Confidence: %d%%</p>\n", ConfidencePercent(res.ConfidenceScore)))
	b.WriteString(fmt.Sprintf("<p class=\"result-department\">Recommended: %s</p>\n", Escape(res.Department())))

	if len(res.AlternativeDepartments) > 0 {
		alts := make([]string, 0, len(res.AlternativeDepartments))
		for _, d := range res.AlternativeDepartments {
			alts = append(alts, Escape(d))
		}
		b.WriteString(fmt.Sprintf("<p class=\"result-alternatives\">Alternatives: %s</p>\n", strings.Join(alts, ", ")))
	}

	if res.Summary != "" {
		b.WriteString(fmt.Sprintf("<p class=\"result-summary\">%s</p>\n", Escape(res.Summary)))
	}

	return b.String()
}

// FactorsPanel renders the explainability panel: one entry per contributing
// factor, or a fixed placeholder when the service returned none.
func FactorsPanel(factors []triage.ExplainFactor) string {
	if len(factors) == 0 {
		return "<p class=\"empty\">No factors returned.</p>\n"
	}

	var b bytes.Buffer
	b.WriteString("<ul class=\"factor-list\">\n")
	for _, f := range factors {
		b.WriteString("  <li class=\"factor\">\n")
		b.WriteString(fmt.Sprintf("    <span class=\"factor-label\">%s</span>\n", Escape(f.Factor)))
		b.WriteString(fmt.Sprintf("    <span class=\"impact-badge %s\">%s</span>\n", ImpactClass(f.Impact), Escape(f.Impact)))
		b.WriteString(fmt.Sprintf("    <p class=\"factor-desc\">%s</p>\n", Escape(f.Description)))
		b.WriteString("  </li>\n")
	}
	b.WriteString("</ul>\n")
	return b.String()
}
