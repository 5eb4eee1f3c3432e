package model

import "time"

// StepStatus represents the current state of a project step.
type StepStatus string

const (
	StepNotStarted StepStatus = "NotStarted"
	StepInProgress StepStatus = "InProgress"
	StepDone       StepStatus = "Done"
)

// String returns the string representation of the status.
func (s StepStatus) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s StepStatus) IsValid() bool {
	switch s {
	case StepNotStarted, StepInProgress, StepDone:
		return true
	}
	return false
}

// MaxStepWeight is the weight budget shared by all steps of one project.
const MaxStepWeight = 100

// ProjectStep is one weighted unit of work within a project. The weights of
// all steps belonging to a project sum to at most MaxStepWeight.
type ProjectStep struct {
	ID               string     `json:"id"`
	ProjectID        string     `json:"project_id"`
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	WeightPercentage int        `json:"weight_percentage"`
	Status           StepStatus `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// TotalStepWeight sums the weight of all steps.
func TotalStepWeight(steps []*ProjectStep) int {
	total := 0
	for _, s := range steps {
		total += s.WeightPercentage
	}
	return total
}

// DoneStepWeight sums the weight of steps with status Done.
func DoneStepWeight(steps []*ProjectStep) int {
	total := 0
	for _, s := range steps {
		if s.Status == StepDone {
			total += s.WeightPercentage
		}
	}
	return total
}
