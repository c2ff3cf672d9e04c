package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/loci-travel-bot/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

// Repository persists the only durable per-user setting the bot has: the
// preferred language. The session ledger is authoritative while a session is
// live; this is the fallback across restarts.
type Repository interface {
	// GetLanguage returns the stored language code for the user.
	// Returns types.ErrNotFound when the user has never chosen one.
	GetLanguage(ctx context.Context, userID int64) (string, error)
	// SetLanguage upserts the user row with the given language code.
	SetLanguage(ctx context.Context, userID int64, lang string) error
}

// PGX is the subset of pgxpool.Pool the repository uses; pgxmock satisfies it
// in tests.
type PGX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type RepositoryImpl struct {
	logger *slog.Logger
	pgpool PGX
}

func NewRepositoryImpl(pgpool PGX, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		pgpool: pgpool,
	}
}

func (r *RepositoryImpl) GetLanguage(ctx context.Context, userID int64) (string, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "GetLanguage", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "users"),
		attribute.Int64("user.id", userID),
	))
	defer span.End()

	var lang *string
	query := `SELECT language_code FROM users WHERE telegram_id = $1`
	err := r.pgpool.QueryRow(ctx, query, userID).Scan(&lang)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "User not found")
			return "", fmt.Errorf("user %d has no stored language: %w", userID, types.ErrNotFound)
		}
		r.logger.ErrorContext(ctx, "Failed to query user language", slog.Int64("user_id", userID), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Query failed")
		return "", fmt.Errorf("failed to query user language: %w", err)
	}
	if lang == nil || *lang == "" {
		return "", fmt.Errorf("user %d has no stored language: %w", userID, types.ErrNotFound)
	}
	return *lang, nil
}

func (r *RepositoryImpl) SetLanguage(ctx context.Context, userID int64, lang string) error {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "SetLanguage", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPSERT"),
		attribute.String("db.sql.table", "users"),
		attribute.Int64("user.id", userID),
		attribute.String("user.language", lang),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "SetLanguage"), slog.Int64("user_id", userID))

	if lang == "" {
		span.SetStatus(codes.Error, "Language code cannot be empty")
		return fmt.Errorf("language code cannot be empty: %w", types.ErrBadRequest)
	}

	query := `
        INSERT INTO users (telegram_id, language_code, created_at, updated_at)
        VALUES ($1, $2, NOW(), NOW())
        ON CONFLICT (telegram_id)
        DO UPDATE SET language_code = EXCLUDED.language_code, updated_at = NOW()`

	if _, err := r.pgpool.Exec(ctx, query, userID, lang); err != nil {
		l.ErrorContext(ctx, "Failed to upsert user language", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Upsert failed")
		return fmt.Errorf("failed to upsert user language: %w", err)
	}

	l.DebugContext(ctx, "User language stored", slog.String("language", lang))
	return nil
}
