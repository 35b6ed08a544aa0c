package repository

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// PostgresKV stores values as jsonb rows in a single kv_store table:
//
//	CREATE TABLE kv_store (key text PRIMARY KEY, value jsonb NOT NULL);
type PostgresKV struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresKV(db *pgxpool.Pool, logger *zap.Logger) *PostgresKV {
	return &PostgresKV{
		db:     db,
		logger: logger,
	}
}

func (r *PostgresKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := squirrel.Select("value").
		From("kv_store").
		Where(squirrel.Eq{"key": key}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, false, err
	}

	var value []byte
	err = r.db.QueryRow(ctx, sql, args...).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return value, true, nil
}

func (r *PostgresKV) Set(ctx context.Context, key string, value []byte) error {
	query := squirrel.Insert("kv_store").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
