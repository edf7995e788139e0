package activity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/pavlohrechko/go-dating-recommendations/internal/types"
)

// Ensure implementation satisfies the interface
var _ Repository = (*PostgresActivityRepo)(nil)

// PGXQuerier is the subset of pgxpool.Pool the repository needs. Declared as
// an interface so tests can substitute a pgxmock pool.
type PGXQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository defines the contract for user activity persistence. Every
// operation reports its outcome through the Result envelope; no error value
// crosses this boundary.
type Repository interface {
	// CreateUserActivity creates an empty activity record for the user.
	// 400 on empty id, 409 if the record already exists.
	CreateUserActivity(ctx context.Context, userID uuid.UUID) types.Result
	// GetLikedUsers returns the set of users this user liked.
	// 400 on empty id, 404 if no record exists.
	GetLikedUsers(ctx context.Context, userID uuid.UUID) types.ResultOf[[]uuid.UUID]
	// GetDislikedUsers returns the set of users this user disliked.
	GetDislikedUsers(ctx context.Context, userID uuid.UUID) types.ResultOf[[]uuid.UUID]
	// GetLikedByUsers returns the set of users who liked this user.
	GetLikedByUsers(ctx context.Context, userID uuid.UUID) types.ResultOf[[]uuid.UUID]
	// RecordActivity adds targetID to the user's liked or disliked set.
	// Idempotent: recording the same target twice leaves the set unchanged.
	RecordActivity(ctx context.Context, userID, targetID uuid.UUID, kind types.ActivityKind) types.Result
	// AddLikeFromUser adds likerID to the user's liked-by set.
	// 409 if the liker is already present.
	AddLikeFromUser(ctx context.Context, userID, likerID uuid.UUID) types.Result
	// RemoveLikeFromUser removes likerID from the user's liked-by set.
	// 409 if the liker is not present.
	RemoveLikeFromUser(ctx context.Context, userID, likerID uuid.UUID) types.Result
}

// PostgresActivityRepo persists activity records in the user_activities
// table, one row per user with the three relation sets as uuid arrays.
type PostgresActivityRepo struct {
	logger *slog.Logger
	db     PGXQuerier
}

func NewPostgresActivityRepo(db PGXQuerier, logger *slog.Logger) *PostgresActivityRepo {
	return &PostgresActivityRepo{
		logger: logger,
		db:     db,
	}
}

// CreateUserActivity inserts an empty activity record for the user.
func (r *PostgresActivityRepo) CreateUserActivity(ctx context.Context, userID uuid.UUID) types.Result {
	ctx, span := otel.Tracer("ActivityRepo").Start(ctx, "CreateUserActivity", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "user_activities"),
		attribute.String("db.user.id", userID.String()),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "CreateUserActivity"), slog.String("userID", userID.String()))

	if userID == uuid.Nil {
		l.WarnContext(ctx, "userID is empty")
		span.SetStatus(codes.Error, "userID is empty")
		return types.Failure(http.StatusBadRequest, "userID is empty")
	}

	query := `
        INSERT INTO user_activities (user_id, liked_users, disliked_users, liked_by_users)
        VALUES ($1, '{}', '{}', '{}')
        ON CONFLICT (user_id) DO NOTHING`

	tag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to insert activity record", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB insert failed")
		return types.Failure(http.StatusInternalServerError, "Error while creating user activity")
	}

	if tag.RowsAffected() == 0 {
		l.WarnContext(ctx, "Activity record already exists")
		span.SetStatus(codes.Error, "Activity record already exists")
		return types.Failure(http.StatusConflict, fmt.Sprintf("Activity for %s already exists", userID))
	}

	l.InfoContext(ctx, "Activity record created")
	span.SetStatus(codes.Ok, "Activity record created")
	return types.SuccessWithCode(http.StatusCreated)
}

// GetLikedUsers implements Repository.
func (r *PostgresActivityRepo) GetLikedUsers(ctx context.Context, userID uuid.UUID) types.ResultOf[[]uuid.UUID] {
	return r.getRelation(ctx, userID, "liked_users", "GetLikedUsers")
}

// GetDislikedUsers implements Repository.
func (r *PostgresActivityRepo) GetDislikedUsers(ctx context.Context, userID uuid.UUID) types.ResultOf[[]uuid.UUID] {
	return r.getRelation(ctx, userID, "disliked_users", "GetDislikedUsers")
}

// GetLikedByUsers implements Repository.
func (r *PostgresActivityRepo) GetLikedByUsers(ctx context.Context, userID uuid.UUID) types.ResultOf[[]uuid.UUID] {
	return r.getRelation(ctx, userID, "liked_by_users", "GetLikedByUsers")
}

// getRelation reads one of the three relation sets. The column name comes
// from a fixed internal call site, never from user input.
func (r *PostgresActivityRepo) getRelation(ctx context.Context, userID uuid.UUID, column, method string) types.ResultOf[[]uuid.UUID] {
	ctx, span := otel.Tracer("ActivityRepo").Start(ctx, method, trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "user_activities"),
		attribute.String("db.user.id", userID.String()),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", method), slog.String("userID", userID.String()))

	if userID == uuid.Nil {
		l.WarnContext(ctx, "userID is empty")
		span.SetStatus(codes.Error, "userID is empty")
		return types.FailureOf[[]uuid.UUID](http.StatusBadRequest, "userID is empty")
	}

	query := fmt.Sprintf(`SELECT %s FROM user_activities WHERE user_id = $1`, column)

	var ids []uuid.UUID
	err := r.db.QueryRow(ctx, query, userID).Scan(&ids)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			l.WarnContext(ctx, "No activity record found")
			span.SetStatus(codes.Error, "Activity record not found")
			return types.FailureOf[[]uuid.UUID](http.StatusNotFound, fmt.Sprintf("Activity with %s is not found", userID))
		}
		l.ErrorContext(ctx, "Failed to query activity record", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return types.FailureOf[[]uuid.UUID](http.StatusInternalServerError, "Error while getting user activities")
	}

	span.SetStatus(codes.Ok, "Relation set fetched")
	return types.SuccessOf(ids)
}

// RecordActivity appends targetID to the liked or disliked set. The update
// keeps set semantics: a target already present is left in place and the
// operation still succeeds.
func (r *PostgresActivityRepo) RecordActivity(ctx context.Context, userID, targetID uuid.UUID, kind types.ActivityKind) types.Result {
	ctx, span := otel.Tracer("ActivityRepo").Start(ctx, "RecordActivity", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "user_activities"),
		attribute.String("db.user.id", userID.String()),
		attribute.String("activity.kind", string(kind)),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "RecordActivity"), slog.String("userID", userID.String()), slog.String("kind", string(kind)))

	if userID == uuid.Nil || targetID == uuid.Nil {
		l.WarnContext(ctx, "userID or targetID is empty")
		span.SetStatus(codes.Error, "userID or targetID is empty")
		return types.Failure(http.StatusBadRequest, "userID and targetID must not be empty")
	}
	if !kind.Valid() {
		l.WarnContext(ctx, "Invalid activity kind")
		span.SetStatus(codes.Error, "Invalid activity kind")
		return types.Failure(http.StatusBadRequest, fmt.Sprintf("invalid activity kind %q", kind))
	}

	column := "liked_users"
	if kind == types.ActivityDislike {
		column = "disliked_users"
	}

	query := fmt.Sprintf(`
        UPDATE user_activities
        SET %[1]s = CASE WHEN $2 = ANY(%[1]s) THEN %[1]s ELSE array_append(%[1]s, $2) END
        WHERE user_id = $1`, column)

	tag, err := r.db.Exec(ctx, query, userID, targetID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to record activity", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB update failed")
		return types.Failure(http.StatusInternalServerError, "Error while recording user activity")
	}

	if tag.RowsAffected() == 0 {
		l.WarnContext(ctx, "No activity record found")
		span.SetStatus(codes.Error, "Activity record not found")
		return types.Failure(http.StatusNotFound, fmt.Sprintf("Activity with %s is not found", userID))
	}

	l.InfoContext(ctx, "Activity recorded", slog.String("targetID", targetID.String()))
	span.SetStatus(codes.Ok, "Activity recorded")
	return types.Success()
}

// AddLikeFromUser implements Repository.
func (r *PostgresActivityRepo) AddLikeFromUser(ctx context.Context, userID, likerID uuid.UUID) types.Result {
	ctx, span := otel.Tracer("ActivityRepo").Start(ctx, "AddLikeFromUser", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "user_activities"),
		attribute.String("db.user.id", userID.String()),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "AddLikeFromUser"), slog.String("userID", userID.String()), slog.String("likerID", likerID.String()))

	if userID == uuid.Nil || likerID == uuid.Nil {
		l.WarnContext(ctx, "userID or likerID is empty")
		span.SetStatus(codes.Error, "userID or likerID is empty")
		return types.Failure(http.StatusBadRequest, "userID and likerID must not be empty")
	}

	// Guard and append in one statement so two concurrent likes from the
	// same liker cannot both pass the membership check.
	query := `
        UPDATE user_activities
        SET liked_by_users = array_append(liked_by_users, $2)
        WHERE user_id = $1 AND NOT $2 = ANY(liked_by_users)`

	tag, err := r.db.Exec(ctx, query, userID, likerID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to append to liked-by set", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB update failed")
		return types.Failure(http.StatusInternalServerError, "Error while adding like")
	}

	if tag.RowsAffected() == 0 {
		// Either the record is missing or the liker is already present.
		var one int
		err := r.db.QueryRow(ctx, `SELECT 1 FROM user_activities WHERE user_id = $1`, userID).Scan(&one)
		if errors.Is(err, pgx.ErrNoRows) {
			l.WarnContext(ctx, "No activity record found")
			span.SetStatus(codes.Error, "Activity record not found")
			return types.Failure(http.StatusNotFound, fmt.Sprintf("Activity with %s is not found", userID))
		}
		if err != nil {
			l.ErrorContext(ctx, "Failed to check activity record", slog.Any("error", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "DB query failed")
			return types.Failure(http.StatusInternalServerError, "Error while adding like")
		}
		l.WarnContext(ctx, "Liker already present in liked-by set")
		span.SetStatus(codes.Error, "Liker already present")
		return types.Failure(http.StatusConflict, fmt.Sprintf("User %s already liked %s", likerID, userID))
	}

	l.InfoContext(ctx, "Like added to liked-by set")
	span.SetStatus(codes.Ok, "Like added")
	return types.Success()
}

// RemoveLikeFromUser implements Repository.
func (r *PostgresActivityRepo) RemoveLikeFromUser(ctx context.Context, userID, likerID uuid.UUID) types.Result {
	ctx, span := otel.Tracer("ActivityRepo").Start(ctx, "RemoveLikeFromUser", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "user_activities"),
		attribute.String("db.user.id", userID.String()),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "RemoveLikeFromUser"), slog.String("userID", userID.String()), slog.String("likerID", likerID.String()))

	if userID == uuid.Nil || likerID == uuid.Nil {
		l.WarnContext(ctx, "userID or likerID is empty")
		span.SetStatus(codes.Error, "userID or likerID is empty")
		return types.Failure(http.StatusBadRequest, "userID and likerID must not be empty")
	}

	// Membership guard and removal in one statement, same as AddLikeFromUser.
	query := `
        UPDATE user_activities
        SET liked_by_users = array_remove(liked_by_users, $2)
        WHERE user_id = $1 AND $2 = ANY(liked_by_users)`

	tag, err := r.db.Exec(ctx, query, userID, likerID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to remove from liked-by set", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB update failed")
		return types.Failure(http.StatusInternalServerError, "Error while removing like")
	}

	if tag.RowsAffected() == 0 {
		var one int
		err := r.db.QueryRow(ctx, `SELECT 1 FROM user_activities WHERE user_id = $1`, userID).Scan(&one)
		if errors.Is(err, pgx.ErrNoRows) {
			l.WarnContext(ctx, "No activity record found")
			span.SetStatus(codes.Error, "Activity record not found")
			return types.Failure(http.StatusNotFound, fmt.Sprintf("Activity with %s is not found", userID))
		}
		if err != nil {
			l.ErrorContext(ctx, "Failed to check activity record", slog.Any("error", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "DB query failed")
			return types.Failure(http.StatusInternalServerError, "Error while removing like")
		}
		l.WarnContext(ctx, "Liker not present in liked-by set")
		span.SetStatus(codes.Error, "Liker not present")
		return types.Failure(http.StatusConflict, fmt.Sprintf("User %s has not liked %s", likerID, userID))
	}

	l.InfoContext(ctx, "Like removed from liked-by set")
	span.SetStatus(codes.Ok, "Like removed")
	return types.Success()
}
