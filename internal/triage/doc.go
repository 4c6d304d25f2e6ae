// Package triage defines the view models exchanged with the remote triage,
// extraction, and dashboard services, plus the parsing rules that turn raw
// operator-entered form values into a submission payload.
package triage
