package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/studybuds/studybuds-backend/internal/domain"
	"github.com/studybuds/studybuds-backend/internal/repository"
)

const profileColumns = `user_id, display_name, email, study_hours_per_day, partner_study_hours,
	       environment, study_techniques, session_type, submitted_at`

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	profile, err := scanProfile(r.db.QueryRowxContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY user_id`
	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*domain.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

func (r *profileRepository) Put(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			user_id, display_name, email, study_hours_per_day, partner_study_hours,
			environment, study_techniques, session_type, submitted_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			email = EXCLUDED.email,
			study_hours_per_day = EXCLUDED.study_hours_per_day,
			partner_study_hours = EXCLUDED.partner_study_hours,
			environment = EXCLUDED.environment,
			study_techniques = EXCLUDED.study_techniques,
			session_type = EXCLUDED.session_type,
			submitted_at = EXCLUDED.submitted_at
		RETURNING submitted_at
	`
	techniques := profile.StudyTechniques
	if techniques == nil {
		techniques = []string{}
	}
	return r.db.QueryRowContext(
		ctx, query,
		profile.UserID, profile.DisplayName, profile.Email,
		profile.StudyHoursPerDay, profile.PartnerStudyHours, profile.Environment,
		pq.Array(techniques), profile.SessionType,
	).Scan(&profile.SubmittedAt)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.UserID, &p.DisplayName, &p.Email, &p.StudyHoursPerDay, &p.PartnerStudyHours,
		&p.Environment, pq.Array(&p.StudyTechniques), &p.SessionType, &p.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
