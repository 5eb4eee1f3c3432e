// Package progress implements the step-weighted progress engine. It owns the
// lifecycle of ProjectStep records, enforces the per-project weight budget,
// and keeps the denormalized step snapshot on each project in sync.
package progress

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/aturzone/tasksphere/internal/idgen"
	"github.com/aturzone/tasksphere/internal/model"
	"github.com/aturzone/tasksphere/internal/store"
)

// Engine coordinates step writes against the store. All weight checking
// happens here, before any record is persisted.
type Engine struct {
	store store.Store
	log   *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// New creates a progress engine over the given store.
func New(st store.Store, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store: st,
		log:   logger,
		now:   time.Now,
	}
}

// StepInput carries the caller-supplied fields for a new step.
type StepInput struct {
	Title       string
	Description string
	Weight      int
	Status      model.StepStatus
}

// StepPatch carries optional field updates for an existing step. Nil fields
// are left unchanged.
type StepPatch struct {
	Title       *string
	Description *string
	Weight      *int
	Status      *model.StepStatus
}

// CreateStep adds a step to a project. It fails with a *model.ValidationError
// when the step itself is invalid or when the new weight would push the
// project's total past the budget; in that case nothing is written.
func (e *Engine) CreateStep(ctx context.Context, projectID string, in StepInput) (*model.ProjectStep, error) {
	if _, err := e.store.GetProject(ctx, projectID); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = model.StepNotStarted
	}

	id, err := idgen.Generate()
	if err != nil {
		return nil, err
	}
	now := e.now().UTC()
	step := &model.ProjectStep{
		ID:               id,
		ProjectID:        projectID,
		Title:            in.Title,
		Description:      in.Description,
		WeightPercentage: in.Weight,
		Status:           status,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := model.ValidateStep(step); err != nil {
		return nil, err
	}

	existing, err := e.store.ListSteps(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := checkWeightBudget(existing, "", step.WeightPercentage); err != nil {
		return nil, err
	}

	if err := e.store.CreateStep(ctx, step); err != nil {
		return nil, err
	}
	if err := e.resyncProject(ctx, projectID); err != nil {
		return nil, err
	}
	return step, nil
}

// UpdateStep applies a patch to an existing step. A weight change re-runs the
// budget check with the step's own prior weight excluded, so shrinking or
// keeping a weight always succeeds.
func (e *Engine) UpdateStep(ctx context.Context, stepID string, patch StepPatch) (*model.ProjectStep, error) {
	step, err := e.store.GetStep(ctx, stepID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		step.Title = *patch.Title
	}
	if patch.Description != nil {
		step.Description = *patch.Description
	}
	if patch.Status != nil {
		step.Status = *patch.Status
	}
	if patch.Weight != nil {
		step.WeightPercentage = *patch.Weight
	}
	if err := model.ValidateStep(step); err != nil {
		return nil, err
	}

	if patch.Weight != nil {
		siblings, err := e.store.ListSteps(ctx, step.ProjectID)
		if err != nil {
			return nil, err
		}
		if err := checkWeightBudget(siblings, step.ID, step.WeightPercentage); err != nil {
			return nil, err
		}
	}

	step.UpdatedAt = e.now().UTC()
	if err := e.store.UpdateStep(ctx, step); err != nil {
		return nil, err
	}
	if err := e.resyncProject(ctx, step.ProjectID); err != nil {
		return nil, err
	}
	return step, nil
}

// DeleteStep removes a step and resyncs the owning project.
func (e *Engine) DeleteStep(ctx context.Context, stepID string) error {
	step, err := e.store.GetStep(ctx, stepID)
	if err != nil {
		return err
	}
	if err := e.store.DeleteStep(ctx, stepID); err != nil {
		return err
	}
	return e.resyncProject(ctx, step.ProjectID)
}

// ListSteps returns a project's steps in creation order.
func (e *Engine) ListSteps(ctx context.Context, projectID string) ([]*model.ProjectStep, error) {
	return e.store.ListSteps(ctx, projectID)
}

// Progress returns the project's completion percentage derived from its
// current step set.
func (e *Engine) Progress(ctx context.Context, projectID string) (int, error) {
	steps, err := e.store.ListSteps(ctx, projectID)
	if err != nil {
		return 0, err
	}
	return Compute(steps), nil
}

// Compute derives a completion percentage from a step set: the done weight
// over the total weight, scaled to 100 and rounded. A project with no steps
// is 0% complete. The result is clamped to [0, 100].
func Compute(steps []*model.ProjectStep) int {
	total := model.TotalStepWeight(steps)
	if total == 0 {
		return 0
	}
	done := model.DoneStepWeight(steps)
	pct := int(math.Round(100 * float64(done) / float64(total)))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// TaskFallbackProgress is a presentation convenience for projects with no
// steps: the share of the project's tasks that are done.
func TaskFallbackProgress(tasks []*model.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Status == model.TaskDone {
			done++
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(tasks))))
}

// checkWeightBudget verifies that setting the given step (identified by
// excludeID; empty for a new step) to newWeight keeps the project's total
// within MaxStepWeight.
func checkWeightBudget(steps []*model.ProjectStep, excludeID string, newWeight int) error {
	others := 0
	for _, s := range steps {
		if s.ID == excludeID {
			continue
		}
		others += s.WeightPercentage
	}
	if others+newWeight > model.MaxStepWeight {
		return model.WeightOverflowError(model.MaxStepWeight - others)
	}
	return nil
}

// resyncProject refreshes the denormalized step snapshot and progress value
// on the owning project.
func (e *Engine) resyncProject(ctx context.Context, projectID string) error {
	project, err := e.store.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	steps, err := e.store.ListSteps(ctx, projectID)
	if err != nil {
		return err
	}
	project.Steps = steps
	project.Progress = Compute(steps)
	project.UpdatedAt = e.now().UTC()
	if err := e.store.UpdateProject(ctx, project); err != nil {
		return fmt.Errorf("resync project %s: %w", projectID, err)
	}
	e.log.Debug("project resynced", "project_id", projectID, "progress", project.Progress, "steps", len(steps))
	return nil
}
