package service

import (
	"context"

	"spendenlauf-api/core/logger"
	"spendenlauf-api/modules/registration/repository"
)

// saga collects compensating actions as a submission's forward steps
// complete. The storage layer offers no multi-table transaction to this
// workflow, so on failure the completed steps are undone one by one, newest
// first. Compensation is best effort: a failing undo is logged separately
// from the original failure and recorded for manual reconciliation, never
// retried.
type saga struct {
	operation string
	steps     []sagaStep
	audit     repository.AuditRepositoryInterface
}

type sagaStep struct {
	name       string
	compensate func(ctx context.Context) error
}

func newSaga(operation string, audit repository.AuditRepositoryInterface) *saga {
	return &saga{operation: operation, audit: audit}
}

// completed registers the undo for a forward step that just succeeded.
func (s *saga) completed(name string, compensate func(ctx context.Context) error) {
	s.steps = append(s.steps, sagaStep{name: name, compensate: compensate})
}

// rollback runs the registered compensations in reverse order. cause is the
// failure that triggered the rollback; it is surfaced to the user elsewhere,
// compensation outcomes never are.
func (s *saga) rollback(ctx context.Context, cause error) {
	if len(s.steps) == 0 {
		return
	}

	logger.Warn("Saga:Rollback:Start",
		"operation", s.operation,
		"steps", len(s.steps),
		"cause", cause,
	)

	var failed []string
	for i := len(s.steps) - 1; i >= 0; i-- {
		step := s.steps[i]
		if err := step.compensate(ctx); err != nil {
			// Distinct from the original failure: this row is now orphaned.
			logger.Error("Saga:Rollback:CompensationFailed",
				"operation", s.operation,
				"step", step.name,
				"error", err,
			)
			failed = append(failed, step.name)
		}
	}

	if len(failed) > 0 {
		if err := s.audit.Record(ctx, s.operation, failed, cause.Error()); err != nil {
			logger.Error("Saga:Rollback:AuditFailed", "operation", s.operation, "error", err)
		}
	}
}
