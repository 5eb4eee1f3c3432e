package model

import "testing"

func TestStepStatusIsValid(t *testing.T) {
	for _, tc := range []struct {
		status StepStatus
		want   bool
	}{
		{StepNotStarted, true},
		{StepInProgress, true},
		{StepDone, true},
		{"", false},
		{"done", false},
		{"Cancelled", false},
	} {
		if got := tc.status.IsValid(); got != tc.want {
			t.Errorf("StepStatus(%q).IsValid() = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestStepWeightSums(t *testing.T) {
	steps := []*ProjectStep{
		{WeightPercentage: 30, Status: StepDone},
		{WeightPercentage: 20, Status: StepInProgress},
		{WeightPercentage: 50, Status: StepDone},
	}
	if got := TotalStepWeight(steps); got != 100 {
		t.Errorf("TotalStepWeight() = %d, want 100", got)
	}
	if got := DoneStepWeight(steps); got != 80 {
		t.Errorf("DoneStepWeight() = %d, want 80", got)
	}
	if got := TotalStepWeight(nil); got != 0 {
		t.Errorf("TotalStepWeight(nil) = %d, want 0", got)
	}
}

func TestConnectionTouches(t *testing.T) {
	c := &Connection{SourceID: "a", TargetID: "b"}
	if !c.Touches("a") || !c.Touches("b") {
		t.Error("Touches() should match both endpoints")
	}
	if c.Touches("c") {
		t.Error("Touches(c) = true, want false")
	}
}

func TestRandomProjectColor_FromPalette(t *testing.T) {
	valid := map[string]bool{}
	for _, c := range projectColors {
		valid[c] = true
	}
	for i := 0; i < 20; i++ {
		if c := RandomProjectColor(); !valid[c] {
			t.Fatalf("RandomProjectColor() = %q, not in palette", c)
		}
	}
}

func TestGraphViewIsValid(t *testing.T) {
	if !GraphView("projects").IsValid() || !GraphView("steps").IsValid() {
		t.Error("known views should be valid")
	}
	if GraphView("calendar").IsValid() {
		t.Error("unknown view should be invalid")
	}
}
