// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-vinted/internal/config"
	"github.com/MKhiriev/go-vinted/internal/logger"
	"github.com/MKhiriev/go-vinted/migrations"
)

// ErrorClassificator decides whether a driver error is transient.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	// UniqueViolation reports whether err is a unique constraint violation
	// and, if the driver exposes it, the name of the violated constraint or
	// column list.
	UniqueViolation(err error) (string, bool)
}

// DB is the database handle shared by all repositories. It owns the
// connection pool and knows the SQL dialect of the driver behind it.
type DB struct {
	*sql.DB
	driver             string
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB opens and pings the database described by cfg. The returned handle
// must be closed by the caller at shutdown.
func NewDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DBDriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case config.DBDriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Migrate applies the embedded migrations of the driver's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// translate maps driver errors onto store sentinels: transient failures
// become ErrUnavailable, everything else is wrapped with fallback.
func (db *DB) translate(err error, fallback error) error {
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return fmt.Errorf("%w: %w", fallback, err)
}

func (db *DB) uniqueViolation(err error) (string, bool) {
	if db.errorClassificator == nil {
		return "", false
	}
	return db.errorClassificator.UniqueViolation(err)
}
