package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/studybuds/studybuds-backend/internal/domain"
	"github.com/studybuds/studybuds-backend/internal/repository"
)

const uniqueViolation = "23505"

const matchColumns = `id, user1_id, user2_id, initiator_id, status, user_details,
	       created_at, accepted_at, declined_at`

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

// userDetailsColumn stores the userDetails snapshot as JSONB.
type userDetailsColumn map[string]domain.UserDetails

func (d userDetailsColumn) Value() (driver.Value, error) {
	if d == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]domain.UserDetails(d))
}

func (d *userDetailsColumn) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*d = userDetailsColumn{}
		return nil
	default:
		return fmt.Errorf("unsupported user_details type %T", value)
	}
	m := map[string]domain.UserDetails{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return err
	}
	*d = m
	return nil
}

func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	// Ensure user1_id < user2_id for constraint
	match.User1ID, match.User2ID = domain.OrderedPair(match.User1ID, match.User2ID)

	query := `
		INSERT INTO matches (id, user1_id, user2_id, initiator_id, status, user_details)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		match.ID, match.User1ID, match.User2ID, match.InitiatorID, match.Status,
		userDetailsColumn(match.UserDetails),
	).Scan(&match.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrActiveMatchExists
		}
		return err
	}
	return nil
}

func (r *matchRepository) GetByID(ctx context.Context, id string) (*domain.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	match, err := scanMatch(r.db.QueryRowxContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *matchRepository) ListForUser(ctx context.Context, userID string) ([]*domain.Match, error) {
	query := `
		SELECT ` + matchColumns + ` FROM matches
		WHERE (user1_id = $1 OR user2_id = $1)
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, userID)
}

func (r *matchRepository) ListActiveForUser(ctx context.Context, userID string) ([]*domain.Match, error) {
	query := `
		SELECT ` + matchColumns + ` FROM matches
		WHERE (user1_id = $1 OR user2_id = $1) AND status IN ('pending', 'accepted')
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, userID)
}

func (r *matchRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Match, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := []*domain.Match{}
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func (r *matchRepository) Transition(ctx context.Context, id string, from, to domain.MatchStatus, at time.Time) error {
	var query string
	switch to {
	case domain.MatchStatusAccepted:
		query = `UPDATE matches SET status = $1, accepted_at = $2 WHERE id = $3 AND status = $4 AND accepted_at IS NULL`
	case domain.MatchStatusDeclined:
		query = `UPDATE matches SET status = $1, declined_at = $2 WHERE id = $3 AND status = $4 AND declined_at IS NULL`
	default:
		return domain.ErrInvalidTransition
	}

	result, err := r.db.ExecContext(ctx, query, to, at, id, from)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *matchRepository) DeleteWithMessages(ctx context.Context, id string, from domain.MatchStatus) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE match_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete messages: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM matches WHERE id = $1 AND status = $2`, id, from)
	if err != nil {
		return fmt.Errorf("failed to delete match: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrInvalidTransition
	}

	return tx.Commit()
}

func scanMatch(row rowScanner) (*domain.Match, error) {
	var (
		m       domain.Match
		details userDetailsColumn
	)
	err := row.Scan(
		&m.ID, &m.User1ID, &m.User2ID, &m.InitiatorID, &m.Status, &details,
		&m.CreatedAt, &m.AcceptedAt, &m.DeclinedAt,
	)
	if err != nil {
		return nil, err
	}
	m.UserDetails = details
	return &m, nil
}
