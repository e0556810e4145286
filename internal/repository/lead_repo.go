package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"pioneering-site/internal/models"
)

type LeadRepo struct {
	pool *pgxpool.Pool
}

func NewLeadRepo(pool *pgxpool.Pool) *LeadRepo {
	return &LeadRepo{pool: pool}
}

func (r *LeadRepo) Create(ctx context.Context, lead *models.Lead) error {
	query := `INSERT INTO leads (id, name, email, phone, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.Message, lead.CreatedAt,
	)
	return err
}
