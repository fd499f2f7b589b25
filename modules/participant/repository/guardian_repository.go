package repository

import (
	"context"

	"spendenlauf-api/core/database"
	"spendenlauf-api/core/logger"
	"spendenlauf-api/modules/participant/entity"

	"github.com/google/uuid"
)

// GuardianRepository handles guardian database operations.
type GuardianRepository struct {
	DB database.IDatabase
}

func NewGuardianRepository(db database.IDatabase) *GuardianRepository {
	return &GuardianRepository{DB: db}
}

// GuardianRepositoryInterface defines the repository contract.
type GuardianRepositoryInterface interface {
	Create(ctx context.Context, g *entity.Guardian) (*entity.Guardian, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

func (r *GuardianRepository) Create(ctx context.Context, g *entity.Guardian) (*entity.Guardian, error) {
	query := `
		INSERT INTO guardians (name, email, phone, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, phone, address, created_at
	`

	var created entity.Guardian
	err := r.DB.GetContext(ctx, &created, query, g.Name, g.Email, g.Phone, g.Address)
	if err != nil {
		logger.Error("GuardianRepository:Create", err)
		return nil, err
	}

	return &created, nil
}

func (r *GuardianRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM guardians WHERE id = $1`
	err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		logger.Error("GuardianRepository:Delete", err)
		return err
	}
	return nil
}
