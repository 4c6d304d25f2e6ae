package triage

import "testing"

func iptr(v int) *int { return &v }

func TestTriageResultDefaults(t *testing.T) {
	t.Parallel()

	var res TriageResult
	if got := res.Risk(); got != RiskLow {
		t.Errorf("Risk() = %q, want %q", got, RiskLow)
	}
	if got := res.Department(); got != DefaultDepartment {
		t.Errorf("Department() = %q, want %q", got, DefaultDepartment)
	}

	res = TriageResult{RiskLevel: "High", RecommendedDepartment: "Cardiology"}
	if got := res.Risk(); got != "High" {
		t.Errorf("Risk() = %q, want High", got)
	}
	if got := res.Department(); got != "Cardiology" {
		t.Errorf("Department() = %q, want Cardiology", got)
	}
}

func TestPatientPartialExtractedText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    PatientPartial
		want string
	}{
		{"neither", PatientPartial{}, ""},
		{"raw only", PatientPartial{Raw: "legacy"}, "legacy"},
		{"raw_extraction only", PatientPartial{RawExtraction: "current"}, "current"},
		{"raw_extraction wins", PatientPartial{RawExtraction: "current", Raw: "legacy"}, "current"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.p.ExtractedText(); got != tt.want {
				t.Errorf("ExtractedText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPatientPartialBloodPressure(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    PatientPartial
		want string
	}{
		{"both", PatientPartial{BloodPressureSystolic: iptr(130), BloodPressureDiastolic: iptr(85)}, "130/85"},
		{"systolic only", PatientPartial{BloodPressureSystolic: iptr(130)}, "130"},
		{"diastolic only", PatientPartial{BloodPressureDiastolic: iptr(85)}, ""},
		{"neither", PatientPartial{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.p.BloodPressure(); got != tt.want {
				t.Errorf("BloodPressure() = %q, want %q", got, tt.want)
			}
		})
	}
}
