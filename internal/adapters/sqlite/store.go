// Package sqlite implements the wine query layer over a read-only SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	// Registers the pure-Go "sqlite" database/sql driver.
	_ "modernc.org/sqlite"

	"github.com/jsamuelsen/wine-dashboard/internal/domain"
	"github.com/jsamuelsen/wine-dashboard/internal/platform/metrics"
	"github.com/jsamuelsen/wine-dashboard/internal/platform/telemetry"
	"github.com/jsamuelsen/wine-dashboard/internal/ports"
)

const (
	driverName  = "sqlite"
	serviceName = "wine store"

	// DefaultBusyTimeout is how long a connection waits on a locked database.
	DefaultBusyTimeout = 5 * time.Second
)

// requiredTables are the dataset tables the report queries join.
var requiredTables = []string{
	"wines",
	"vintages",
	"regions",
	"countries",
	"grapes",
	"most_used_grapes_per_country",
	"keywords",
	"keywords_wine",
}

// Compile-time checks.
var (
	_ ports.WineRepository = (*Store)(nil)
	_ ports.HealthChecker  = (*Store)(nil)
)

// Config holds the store settings.
type Config struct {
	// Path is the database file. It must already exist.
	Path string

	// MaxOpenConns bounds the connection pool.
	MaxOpenConns int

	// ConnMaxLifetime recycles pooled connections; zero keeps them forever.
	ConnMaxLifetime time.Duration

	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// Store is the read-only wine repository. Queries borrow a pooled
// connection for the duration of one statement; the pool is released by Close.
type Store struct {
	db      *sql.DB
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Open connects to the database file in query-only mode and verifies the schema.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := os.Stat(cfg.Path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.NewUnavailableError(serviceName, fmt.Sprintf("database file %q does not exist", cfg.Path))
		}

		return nil, fmt.Errorf("checking database file: %w", err)
	}

	db, err := sql.Open(driverName, dsn(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns)
	}

	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	store := &Store{
		db:      db,
		logger:  logger.With(slog.String("component", "sqlite.Store")),
		metrics: cfg.Metrics,
		tracer:  telemetry.Tracer("sqlite"),
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, domain.NewUnavailableError(serviceName, err.Error())
	}

	if err := store.VerifySchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	store.logger.Info("wine store opened",
		slog.String("path", cfg.Path),
		slog.Int("max_open_conns", cfg.MaxOpenConns),
	)

	return store, nil
}

// dsn builds a modernc.org/sqlite URI that rejects writes on every connection.
func dsn(path string) string {
	return fmt.Sprintf("file:%s?_pragma=query_only(1)&_pragma=busy_timeout(%d)",
		path, DefaultBusyTimeout.Milliseconds())
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}

	return nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return "sqlite"
}

// Check implements ports.HealthChecker.
func (s *Store) Check(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// VerifySchema fails when any dataset table is missing.
func (s *Store) VerifySchema(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table'`)
	if err != nil {
		return fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	present := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scanning table name: %w", err)
		}

		present[name] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("listing tables: %w", err)
	}

	var missing []string
	for _, table := range requiredTables {
		if _, ok := present[table]; !ok {
			missing = append(missing, table)
		}
	}

	if len(missing) > 0 {
		return domain.NewUnavailableError(serviceName, "missing tables: "+strings.Join(missing, ", "))
	}

	return nil
}

// instrument starts a span for the named query and returns a finisher
// that records metrics and the span outcome.
func (s *Store) instrument(ctx context.Context, query string) (context.Context, func(rows int, err error)) {
	start := time.Now()

	ctx, span := s.tracer.Start(ctx, "sqlite."+query,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "sqlite"),
			attribute.String("db.operation", query),
		),
	)

	return ctx, func(rows int, err error) {
		s.metrics.ObserveQuery(query, start, rows, err)

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			s.logger.ErrorContext(ctx, "query failed",
				slog.String("query", query),
				slog.Any("error", err),
			)
		} else {
			span.SetAttributes(attribute.Int("db.rows", rows))
			s.logger.DebugContext(ctx, "query completed",
				slog.String("query", query),
				slog.Int("rows", rows),
				slog.Duration("elapsed", time.Since(start)),
			)
		}

		span.End()
	}
}
