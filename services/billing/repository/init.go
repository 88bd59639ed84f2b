package repository

import (
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/thqlabel/thqlabel/internal/pkg/database"
	"github.com/thqlabel/thqlabel/internal/pkg/models"
)

const pgUniqueViolation = "23505"

// BillingRepo implements the billing repository interface
type BillingRepo struct {
	cfg         *models.Config
	db          *sqlx.DB
	redisClient *database.RedisClient
}

// NewBillingRepository creates a new billing repository
func NewBillingRepository(
	cfg *models.Config,
	db *sqlx.DB,
	redisClient *database.RedisClient,
) *BillingRepo {
	return &BillingRepo{
		cfg:         cfg,
		db:          db,
		redisClient: redisClient,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
