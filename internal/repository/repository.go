package repository

import "github.com/jackc/pgx/v5/pgxpool"

// Repository implements every store interface the service consumes, backed
// by PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}
