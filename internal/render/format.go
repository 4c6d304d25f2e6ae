// Package render turns triage and dashboard responses into HTML fragments
// for the intake page panels. Every function is pure; all untrusted text is
// escaped before it reaches a fragment.
package render

import (
	"html"
	"math"

	"github.com/linnemanlabs/intake/internal/triage"
)

// RiskBadgeClass maps a risk level to its badge class. Unrecognized levels
// get the Low styling.
func RiskBadgeClass(level string) string {
	switch level {
	case triage.RiskHigh:
		return "badge-high"
	case triage.RiskMedium:
		return "badge-medium"
	default:
		return "badge-low"
	}
}

// RiskValueClass maps a risk level to its value-text class, same fallback
// rule as RiskBadgeClass.
func RiskValueClass(level string) string {
	switch level {
	case triage.RiskHigh:
		return "risk-high"
	case triage.RiskMedium:
		return "risk-medium"
	default:
		return "risk-low"
	}
}

// ImpactClass maps a contributing-factor impact label to a styling class.
func ImpactClass(impact string) string {
	switch impact {
	case "high":
		return "high"
	case "medium":
		return "medium"
	default:
		return "low"
	}
}

// Escape HTML-escapes a value before it is embedded in a fragment. Symptom
// text, department names, and extracted document text are all
// operator- or service-supplied and must never be interpreted as markup.
func Escape(s string) string {
	return html.EscapeString(s)
}

// ConfidencePercent converts a confidence score in [0,1] to a whole
// percentage, rounded to nearest. Absent scores read as 0.
func ConfidencePercent(score *float64) int {
	if score == nil {
		return 0
	}
	return int(math.Round(*score * 100))
}
