// Package feedback persists like/dislike history for recommendations so a
// returning user's tastes survive restarts.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
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

// Repository defines the contract for feedback persistence. One row exists
// per (user, recommendation); recording the opposite kind flips the row
// rather than adding a second one.
type Repository interface {
	RecordFeedback(ctx context.Context, userID int64, recommendationID string, kind types.FeedbackKind) error
	GetHistory(ctx context.Context, userID int64) (liked, disliked []string, err error)
	RemoveFeedback(ctx context.Context, userID int64, recommendationID string) error
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

func (r *RepositoryImpl) RecordFeedback(ctx context.Context, userID int64, recommendationID string, kind types.FeedbackKind) error {
	ctx, span := otel.Tracer("FeedbackRepo").Start(ctx, "RecordFeedback", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "UPSERT"),
		attribute.String("db.sql.table", "feedbacks"),
		attribute.Int64("user.id", userID),
		attribute.String("recommendation.id", recommendationID),
		attribute.String("feedback.kind", string(kind)),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "RecordFeedback"), slog.Int64("user_id", userID))

	if recommendationID == "" {
		span.SetStatus(codes.Error, "Recommendation ID cannot be empty")
		return fmt.Errorf("recommendation id cannot be empty: %w", types.ErrBadRequest)
	}
	if kind != types.FeedbackLike && kind != types.FeedbackDislike {
		span.SetStatus(codes.Error, "Invalid feedback kind")
		return fmt.Errorf("invalid feedback kind %q: %w", kind, types.ErrBadRequest)
	}

	query := `
        INSERT INTO feedbacks (user_telegram_id, recommendation_id, feedback_type, created_at, updated_at)
        VALUES ($1, $2, $3, NOW(), NOW())
        ON CONFLICT (user_telegram_id, recommendation_id)
        DO UPDATE SET feedback_type = EXCLUDED.feedback_type, updated_at = NOW()`

	if _, err := r.pgpool.Exec(ctx, query, userID, recommendationID, string(kind)); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign key violation
			l.WarnContext(ctx, "Feedback recorded for unknown user", slog.Any("error", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "Unknown user")
			return fmt.Errorf("user %d does not exist: %w", userID, types.ErrNotFound)
		}
		l.ErrorContext(ctx, "Failed to upsert feedback", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Upsert failed")
		return fmt.Errorf("failed to upsert feedback: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) GetHistory(ctx context.Context, userID int64) ([]string, []string, error) {
	ctx, span := otel.Tracer("FeedbackRepo").Start(ctx, "GetHistory", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "feedbacks"),
		attribute.Int64("user.id", userID),
	))
	defer span.End()

	query, args, err := squirrel.Select("recommendation_id", "feedback_type").
		From("feedbacks").
		PlaceholderFormat(squirrel.Dollar).
		Where(squirrel.Eq{"user_telegram_id": userID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		span.RecordError(err)
		return nil, nil, fmt.Errorf("failed to build history query: %w", err)
	}

	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query feedback history", slog.Int64("user_id", userID), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Query failed")
		return nil, nil, fmt.Errorf("failed to query feedback history: %w", err)
	}
	defer rows.Close()

	var liked, disliked []string
	for rows.Next() {
		var recID, kind string
		if err := rows.Scan(&recID, &kind); err != nil {
			span.RecordError(err)
			return nil, nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		switch types.FeedbackKind(kind) {
		case types.FeedbackLike:
			liked = append(liked, recID)
		case types.FeedbackDislike:
			disliked = append(disliked, recID)
		default:
			r.logger.WarnContext(ctx, "Unknown feedback type in storage", slog.String("type", kind), slog.String("recommendation_id", recID))
		}
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, nil, fmt.Errorf("failed to read feedback rows: %w", err)
	}

	span.SetAttributes(attribute.Int("feedback.liked", len(liked)), attribute.Int("feedback.disliked", len(disliked)))
	return liked, disliked, nil
}

func (r *RepositoryImpl) RemoveFeedback(ctx context.Context, userID int64, recommendationID string) error {
	ctx, span := otel.Tracer("FeedbackRepo").Start(ctx, "RemoveFeedback", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "DELETE"),
		attribute.String("db.sql.table", "feedbacks"),
		attribute.Int64("user.id", userID),
	))
	defer span.End()

	query, args, err := squirrel.Delete("feedbacks").
		PlaceholderFormat(squirrel.Dollar).
		Where(squirrel.Eq{"user_telegram_id": userID, "recommendation_id": recommendationID}).
		ToSql()
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.pgpool.Exec(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to delete feedback", slog.Int64("user_id", userID), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Delete failed")
		return fmt.Errorf("failed to delete feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no feedback for user %d on %q: %w", userID, recommendationID, types.ErrNotFound)
	}
	return nil
}
