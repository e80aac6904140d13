package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Transaction runs named steps in order. When a step fails, the undo of
// every step that already ran is invoked newest first. Undos are best
// effort: a failed or missing undo leaves that step's effect in place.
type Transaction struct {
	steps  []Step
	logger *zap.Logger
}

type Step struct {
	Name string
	Do   func(context.Context) error
	Undo func(context.Context) error // nil when the step cannot be reverted
}

// StepFailure reports which step failed and which earlier steps are still
// in effect afterwards.
type StepFailure struct {
	Step       string
	Err        error
	Unreverted []string
}

func (e *StepFailure) Error() string {
	return fmt.Sprintf("step '%s' failed: %v (%d earlier step(s) left in place)", e.Step, e.Err, len(e.Unreverted))
}

func (e *StepFailure) Unwrap() error { return e.Err }

func NewTransaction(logger *zap.Logger) *Transaction {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transaction{logger: logger}
}

func (t *Transaction) Add(name string, do, undo func(context.Context) error) {
	t.steps = append(t.steps, Step{Name: name, Do: do, Undo: undo})
}

// Execute returns nil or a *StepFailure.
func (t *Transaction) Execute(ctx context.Context) error {
	for i, step := range t.steps {
		if err := step.Do(ctx); err != nil {
			return &StepFailure{
				Step:       step.Name,
				Err:        err,
				Unreverted: t.rollback(ctx, i),
			}
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAt int) []string {
	var unreverted []string
	for i := failedAt - 1; i >= 0; i-- {
		step := t.steps[i]
		if step.Undo == nil {
			unreverted = append(unreverted, step.Name)
			continue
		}
		if err := step.Undo(ctx); err != nil {
			t.logger.Warn("⚠️ compensation failed, record left behind",
				zap.String("step", step.Name), zap.Error(err))
			unreverted = append(unreverted, step.Name)
		}
	}
	return unreverted
}
