package models

import "testing"

func TestSummary_CountsReconcile(t *testing.T) {
	jobs := []JobRecord{
		{Name: "mol_001"},
		{Name: "mol_002"},
		{Name: "mol_003"},
	}

	var sum SubmissionSummary
	sum.AddSuccess(jobs[0], "1001")
	sum.AddFailure(jobs[1], "sbatch: error: invalid partition")
	sum.AddSuccess(jobs[2], "1002")

	if sum.Total() != len(jobs) {
		t.Errorf("Total() = %d, want %d", sum.Total(), len(jobs))
	}
	if len(sum.Successes) != 2 {
		t.Errorf("Successes = %d, want 2", len(sum.Successes))
	}
	if len(sum.Failures) != 1 {
		t.Errorf("Failures = %d, want 1", len(sum.Failures))
	}
	if sum.AllOK() {
		t.Error("AllOK() = true with a recorded failure")
	}
	if sum.Failures[0].Reason != "sbatch: error: invalid partition" {
		t.Errorf("failure reason = %q", sum.Failures[0].Reason)
	}
}

func TestStage_String(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{StageInputReady, "input ready"},
		{StageOptDone, "optimization complete"},
		{StageMMCReady, "MMC ready"},
		{Stage(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.stage.String(); got != tt.want {
			t.Errorf("Stage(%d).String() = %q, want %q", tt.stage, got, tt.want)
		}
	}
}
