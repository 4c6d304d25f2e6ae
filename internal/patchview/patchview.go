// Package patchview provides a workflow.View that records mutations as an
// ordered list of patch ops for the page shell to apply.
package patchview

import "sync"

// Op is one recorded view mutation.
type Op struct {
	Op     string `json:"op"`
	Target string `json:"target,omitempty"`
	Value  string `json:"value,omitempty"`
}

// Op kinds.
const (
	OpSetField   = "set_field"
	OpSetText    = "set_text"
	OpSetHTML    = "set_html"
	OpShow       = "show"
	OpHide       = "hide"
	OpSetEnabled = "set_enabled"
	OpAlert      = "alert"
)

// View records view mutations. Safe for concurrent use: a lane's
// background refresh may append while another lane reads fields.
type View struct {
	mu     sync.Mutex
	fields map[string]string
	ops    []Op
}

// New creates a view seeded with the given form field values. A nil map is
// an empty form.
func New(fields map[string]string) *View {
	if fields == nil {
		fields = make(map[string]string)
	}
	return &View{fields: fields}
}

// Field returns the current value of a form field, "" when unset.
func (v *View) Field(id string) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.fields[id]
}

// SetField records a field write and updates the readable value, so later
// Field calls observe it like a real form would.
func (v *View) SetField(id, value string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fields[id] = value
	v.ops = append(v.ops, Op{Op: OpSetField, Target: id, Value: value})
}

func (v *View) SetText(id, text string) {
	v.append(Op{Op: OpSetText, Target: id, Value: text})
}

func (v *View) SetHTML(id, fragment string) {
	v.append(Op{Op: OpSetHTML, Target: id, Value: fragment})
}

func (v *View) Show(id string) {
	v.append(Op{Op: OpShow, Target: id})
}

func (v *View) Hide(id string) {
	v.append(Op{Op: OpHide, Target: id})
}

func (v *View) SetEnabled(id string, enabled bool) {
	value := "false"
	if enabled {
		value = "true"
	}
	v.append(Op{Op: OpSetEnabled, Target: id, Value: value})
}

func (v *View) Alert(message string) {
	v.append(Op{Op: OpAlert, Value: message})
}

// Ops returns a copy of the recorded ops in application order.
func (v *View) Ops() []Op {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]Op, len(v.ops))
	copy(out, v.ops)
	return out
}

func (v *View) append(op Op) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.ops = append(v.ops, op)
}
