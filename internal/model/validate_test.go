package model

import (
	"strings"
	"testing"
)

func TestValidateStep_Valid(t *testing.T) {
	s := &ProjectStep{
		ProjectID:        "ts-proj1",
		Title:            "Design schema",
		WeightPercentage: 30,
		Status:           StepNotStarted,
	}
	if err := ValidateStep(s); err != nil {
		t.Errorf("ValidateStep() = %v, want nil", err)
	}
}

func TestValidateStep_Invalid(t *testing.T) {
	for _, tc := range []struct {
		name      string
		step      ProjectStep
		wantField string
	}{
		{
			name:      "empty title",
			step:      ProjectStep{ProjectID: "p", Title: "  ", WeightPercentage: 10, Status: StepNotStarted},
			wantField: "title",
		},
		{
			name:      "missing project",
			step:      ProjectStep{Title: "x", WeightPercentage: 10, Status: StepNotStarted},
			wantField: "project_id",
		},
		{
			name:      "zero weight",
			step:      ProjectStep{ProjectID: "p", Title: "x", WeightPercentage: 0, Status: StepNotStarted},
			wantField: "weight_percentage",
		},
		{
			name:      "negative weight",
			step:      ProjectStep{ProjectID: "p", Title: "x", WeightPercentage: -5, Status: StepNotStarted},
			wantField: "weight_percentage",
		},
		{
			name:      "weight above budget",
			step:      ProjectStep{ProjectID: "p", Title: "x", WeightPercentage: 101, Status: StepNotStarted},
			wantField: "weight_percentage",
		},
		{
			name:      "bad status",
			step:      ProjectStep{ProjectID: "p", Title: "x", WeightPercentage: 10, Status: "Paused"},
			wantField: "status",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStep(&tc.step)
			if err == nil {
				t.Fatal("ValidateStep() = nil, want error")
			}
			if !strings.Contains(err.Error(), tc.wantField) {
				t.Errorf("error %q does not mention field %q", err, tc.wantField)
			}
		})
	}
}

func TestValidateTask_Invalid(t *testing.T) {
	for _, tc := range []struct {
		name      string
		task      Task
		wantField string
	}{
		{
			name:      "empty title",
			task:      Task{UserID: "u", Status: TaskTodo, Priority: PriorityLow},
			wantField: "title",
		},
		{
			name:      "missing user",
			task:      Task{Title: "x", Status: TaskTodo, Priority: PriorityLow},
			wantField: "user_id",
		},
		{
			name:      "bad status",
			task:      Task{UserID: "u", Title: "x", Status: "Later", Priority: PriorityLow},
			wantField: "status",
		},
		{
			name:      "bad priority",
			task:      Task{UserID: "u", Title: "x", Status: TaskTodo, Priority: "Urgent"},
			wantField: "priority",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTask(&tc.task)
			if err == nil {
				t.Fatal("ValidateTask() = nil, want error")
			}
			if !strings.Contains(err.Error(), tc.wantField) {
				t.Errorf("error %q does not mention field %q", err, tc.wantField)
			}
		})
	}
}

func TestWeightOverflowError_ClampsNegativeAvailable(t *testing.T) {
	err := WeightOverflowError(-10)
	if !strings.Contains(err.Error(), "0% available") {
		t.Errorf("WeightOverflowError(-10) = %q, want mention of 0%% available", err)
	}
}

func TestWeightOverflowError_ReportsAvailable(t *testing.T) {
	err := WeightOverflowError(35)
	if !strings.Contains(err.Error(), "35% available") {
		t.Errorf("WeightOverflowError(35) = %q, want mention of 35%% available", err)
	}
}
