package qr

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore appends issuance records to the qr_tokens table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Append(ctx context.Context, token IssuedToken) error {
	query := `
		INSERT INTO qr_tokens (token, token_id, created_at, expires_at, usado)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.pool.Exec(ctx, query,
		token.Token,
		token.TokenID,
		token.CreatedAt.Unix(),
		token.ExpiresAt.Unix(),
		token.Used,
	)
	if err != nil {
		return fmt.Errorf("insert qr token: %w", err)
	}
	return nil
}
