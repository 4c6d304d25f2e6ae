// Package workflow provides the intake page's triage workflow orchestrator.
// It defines the View interface (the orchestrator's window onto the page),
// the Transport interface (outbound service calls), and the three
// independent interaction lanes: triage submission, document upload, and
// image analysis.
package workflow
