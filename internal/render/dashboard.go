package render

import (
	"bytes"
	"fmt"
	"math"
	"sort"

	"github.com/linnemanlabs/intake/internal/triage"
)

const (
	// excerptLimit bounds the symptoms preview in feed rows.
	excerptLimit = 60

	// NoDepartmentData is shown in place of an empty department bar list.
	NoDepartmentData = "<p class=\"empty\">No data yet.</p>\n"

	// SummaryUnavailable replaces the recent-activity feed when the
	// summary fetch fails. The other dashboard panels keep their content.
	SummaryUnavailable = "<p class=\"empty\">Could not load summary.</p>\n"

	// HistoryUnavailable replaces the history table when the fetch fails.
	HistoryUnavailable = "<p class=\"empty\">Could not load history.</p>\n"
)

// DashboardFragments carries the rendered pieces of a dashboard summary.
// Recent is empty when the summary had no recent entries, in which case the
// feed panel is left untouched.
type DashboardFragments struct {
	LowCount    int
	MediumCount int
	HighCount   int
	Departments string
	Recent      string
}

// Dashboard renders all dashboard panels from one summary. Rendering the
// same summary twice yields byte-identical fragments.
func Dashboard(s *triage.DashboardSummary) DashboardFragments {
	return DashboardFragments{
		LowCount:    s.ByRiskLevel[triage.RiskLow],
		MediumCount: s.ByRiskLevel[triage.RiskMedium],
		HighCount:   s.ByRiskLevel[triage.RiskHigh],
		Departments: DepartmentBars(s.ByDepartment, s.TotalTriages),
		Recent:      RecentFeed(s.Recent),
	}
}

// DepartmentBars renders one proportional bar per department. Percentages
// are rounded to nearest; a zero or absent total counts as 1 so an empty
// dashboard never divides by zero. Departments are sorted by name: the
// service does not promise an order, and a stable one keeps re-renders
// byte-identical.
func DepartmentBars(byDept map[string]int, total int) string {
	if len(byDept) == 0 {
		return NoDepartmentData
	}
	if total <= 0 {
		total = 1
	}

	names := make([]string, 0, len(byDept))
	for name := range byDept {
		names = append(names, name)
	}
	sort.Strings(names)

	var b bytes.Buffer
	b.WriteString("<ul class=\"dept-list\">\n")
	for _, name := range names {
		count := byDept[name]
		pct := int(math.Round(float64(count) / float64(total) * 100))
		b.WriteString("  <li class=\"dept\">\n")
		b.WriteString(fmt.Sprintf("    <span class=\"dept-name\">%s</span>\n", Escape(name)))
		b.WriteString(fmt.Sprintf("    <span class=\"dept-bar\" style=\"width: %d%%\"></span>\n", pct))
		b.WriteString(fmt.Sprintf("    <span class=\"dept-count\">%d</span>\n", count))
		b.WriteString("  </li>\n")
	}
	b.WriteString("</ul>\n")
	return b.String()
}

// RecentFeed renders the recent-activity rows. Returns "" for an empty or
// absent list; the caller leaves the panel as it was.
func RecentFeed(entries []triage.RecentEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var b bytes.Buffer
	b.WriteString("<ul class=\"recent-list\">\n")
	for _, e := range entries {
		b.WriteString("  <li class=\"recent\">\n")
		b.WriteString(fmt.Sprintf("    <span class=\"badge %s\">%s</span>\n", RiskBadgeClass(e.RiskLevel), Escape(e.RiskLevel)))
		b.WriteString(fmt.Sprintf("    <span class=\"recent-dept\">%s</span>\n", Escape(e.RecommendedDepartment)))
		b.WriteString(fmt.Sprintf("    <span class=\"recent-symptoms\">%s</span>\n", Escape(Excerpt(e.PatientInput.Symptoms))))
		b.WriteString(fmt.Sprintf("    <span class=\"recent-confidence\">%s</span>\n", feedConfidence(e.ConfidenceScore)))
		b.WriteString("  </li>\n")
	}
	b.WriteString("</ul>\n")
	return b.String()
}

// HistoryTable renders the full triage history as table rows.
func HistoryTable(entries []triage.HistoryEntry) string {
	if len(entries) == 0 {
		return "<p class=\"empty\">No triages recorded yet.</p>\n"
	}

	var b bytes.Buffer
	b.WriteString("<table class=\"history\">\n")
	b.WriteString("  <thead><tr><th>Time</th><th>Risk</th><th>Department</th><th>Symptoms</th></tr></thead>\n")
	b.WriteString("  <tbody>\n")
	for _, e := range entries {
		b.WriteString(fmt.Sprintf(
			"    <tr><td>%s</td><td><span class=\"badge %s\">%s</span></td><td>%s</td><td>%s</td></tr>\n",
			Escape(e.Timestamp),
			RiskBadgeClass(e.RiskLevel),
			Escape(e.RiskLevel),
			Escape(e.RecommendedDepartment),
			Escape(Excerpt(e.PatientInput.Symptoms)),
		))
	}
	b.WriteString("  </tbody>\n")
	b.WriteString("</table>\n")
	return b.String()
}

// Excerpt bounds a symptoms string to 60 characters with a trailing
// ellipsis when truncated. Absent symptoms show as an em dash.
func Excerpt(s string) string {
	if s == "" {
		return "—"
	}
	runes := []rune(s)
	if len(runes) <= excerptLimit {
		return s
	}
	return string(runes[:excerptLimit]) + "…"
}

// feedConfidence renders a confidence percentage for the recent feed.
// Unlike the result panel, an absent score renders as empty, not "0%".
func feedConfidence(score *float64) string {
	if score == nil {
		return ""
	}
	return fmt.Sprintf("%d%%", ConfidencePercent(score))
}
