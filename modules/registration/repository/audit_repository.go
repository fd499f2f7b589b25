package repository

import (
	"context"

	"spendenlauf-api/core/database"
	"spendenlauf-api/core/logger"

	"github.com/lib/pq"
)

// AuditRepository persists partially-compensated submissions so orphaned rows
// can be reconciled by hand. Writing the audit row is itself best effort.
type AuditRepository struct {
	DB database.IDatabase
}

func NewAuditRepository(db database.IDatabase) *AuditRepository {
	return &AuditRepository{DB: db}
}

// AuditRepositoryInterface defines the repository contract.
type AuditRepositoryInterface interface {
	Record(ctx context.Context, operation string, failedSteps []string, cause string) error
}

func (r *AuditRepository) Record(ctx context.Context, operation string, failedSteps []string, cause string) error {
	query := `
		INSERT INTO saga_audit (operation, failed_steps, cause)
		VALUES ($1, $2, $3)
	`

	err := r.DB.ExecContext(ctx, query, operation, pq.Array(failedSteps), cause)
	if err != nil {
		logger.Error("AuditRepository:Record", err)
		return err
	}
	return nil
}
