package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/playerz/playerz-api/models"
)

var ErrSessionNotFound = fmt.Errorf("session: %w", ErrNotFound)

type SessionRepository interface {
	Create(ctx context.Context, exec SQLExecutor, s *models.Session) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Session, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Session, error)
}

type postgresSessionRepository struct {
	db *sql.DB
}

func NewPostgresSessionRepository(db *sql.DB) SessionRepository {
	return &postgresSessionRepository{db: db}
}

func (r *postgresSessionRepository) Create(ctx context.Context, exec SQLExecutor, s *models.Session) error {
	query := `INSERT INTO sessions (tournament_id, reference) VALUES ($1, $2) RETURNING id, created_at`
	err := pick(exec, r.db).QueryRowContext(ctx, query, s.TournamentID, s.Reference).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", translatePQError(err))
	}
	return nil
}

func (r *postgresSessionRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Session, error) {
	query := `SELECT id, tournament_id, reference, created_at FROM sessions WHERE id = $1`
	s := &models.Session{}
	err := pick(exec, r.db).QueryRowContext(ctx, query, id).Scan(&s.ID, &s.TournamentID, &s.Reference, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session %d: %w", id, err)
	}
	return s, nil
}

// ListByTournament returns sessions in creation order.
func (r *postgresSessionRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Session, error) {
	query := `
		SELECT id, tournament_id, reference, created_at
		FROM sessions
		WHERE tournament_id = $1
		ORDER BY id ASC`

	rows, err := pick(exec, r.db).QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions of tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	sessions := make([]models.Session, 0)
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(&s.ID, &s.TournamentID, &s.Reference, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		s.Matches = []models.Match{}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", err)
	}
	return sessions, nil
}
