package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/playerz/playerz-api/models"
)

var ErrMatchNotFound = fmt.Errorf("match: %w", ErrNotFound)

const matchColumns = `id, tournament_id, session_id, team_one, team_two, player_one, player_two,
	player_three, player_four, terrain, status, score_team_one, score_team_two, date, created_at`

// scoreColumns maps a side index to the score column it owns.
var scoreColumns = map[int]string{
	1: "score_team_one",
	2: "score_team_two",
}

type MatchPatch struct {
	TournamentID *int
	SessionID    *int
	TeamOne      *int
	TeamTwo      *int
	PlayerOne    *int
	PlayerTwo    *int
	PlayerThree  *int
	PlayerFour   *int
	Terrain      *string
	Status       *models.MatchStatus
	ScoreTeamOne *int
	ScoreTeamTwo *int
	Date         *time.Time
}

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, m *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context) ([]models.Match, error)
	ListBySession(ctx context.Context, exec SQLExecutor, sessionID int) ([]models.Match, error)
	Update(ctx context.Context, id int, patch MatchPatch) (*models.Match, error)
	UpdateScore(ctx context.Context, id int, side int, score int) (*models.Match, error)
	Delete(ctx context.Context, id int) (*models.Match, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func scanMatch(s rowScanner, m *models.Match) error {
	return s.Scan(
		&m.ID,
		&m.TournamentID,
		&m.SessionID,
		&m.TeamOne,
		&m.TeamTwo,
		&m.PlayerOne,
		&m.PlayerTwo,
		&m.PlayerThree,
		&m.PlayerFour,
		&m.Terrain,
		&m.Status,
		&m.ScoreTeamOne,
		&m.ScoreTeamTwo,
		&m.Date,
		&m.CreatedAt,
	)
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	query := `
		INSERT INTO matches
			(tournament_id, session_id, team_one, team_two, player_one, player_two, player_three, player_four,
			 terrain, status, score_team_one, score_team_two, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`

	err := pick(exec, r.db).QueryRowContext(ctx, query,
		m.TournamentID,
		m.SessionID,
		m.TeamOne,
		m.TeamTwo,
		m.PlayerOne,
		m.PlayerTwo,
		m.PlayerThree,
		m.PlayerFour,
		m.Terrain,
		m.Status,
		m.ScoreTeamOne,
		m.ScoreTeamTwo,
		m.Date,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", translatePQError(err))
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), id, "get")
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches ORDER BY id DESC`
	return r.queryMatches(ctx, r.db, query)
}

func (r *postgresMatchRepository) ListBySession(ctx context.Context, exec SQLExecutor, sessionID int) ([]models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE session_id = $1 ORDER BY id ASC`
	return r.queryMatches(ctx, pick(exec, r.db), query, sessionID)
}

func (r *postgresMatchRepository) Update(ctx context.Context, id int, patch MatchPatch) (*models.Match, error) {
	var set updateSet
	addInt := func(col string, v *int) {
		if v != nil {
			set.add(col, *v)
		}
	}
	addInt("tournament_id", patch.TournamentID)
	addInt("session_id", patch.SessionID)
	addInt("team_one", patch.TeamOne)
	addInt("team_two", patch.TeamTwo)
	addInt("player_one", patch.PlayerOne)
	addInt("player_two", patch.PlayerTwo)
	addInt("player_three", patch.PlayerThree)
	addInt("player_four", patch.PlayerFour)
	if patch.Terrain != nil {
		set.add("terrain", *patch.Terrain)
	}
	if patch.Status != nil {
		set.add("status", *patch.Status)
	}
	addInt("score_team_one", patch.ScoreTeamOne)
	addInt("score_team_two", patch.ScoreTeamTwo)
	if patch.Date != nil {
		set.add("date", *patch.Date)
	}
	if set.empty() {
		return nil, ErrNoFieldsToUpdate
	}

	query, args := set.query("matches", id, matchColumns)
	return r.scanOne(r.db.QueryRowContext(ctx, query, args...), id, "update")
}

// UpdateScore changes the score of exactly one side; side must be 1 or 2.
func (r *postgresMatchRepository) UpdateScore(ctx context.Context, id int, side int, score int) (*models.Match, error) {
	column, ok := scoreColumns[side]
	if !ok {
		return nil, fmt.Errorf("invalid side %d", side)
	}
	query := `UPDATE matches SET ` + column + ` = $1 WHERE id = $2 RETURNING ` + matchColumns
	return r.scanOne(r.db.QueryRowContext(ctx, query, score, id), id, "update score of")
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) (*models.Match, error) {
	query := `DELETE FROM matches WHERE id = $1 RETURNING ` + matchColumns
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), id, "delete")
}

func (r *postgresMatchRepository) scanOne(row *sql.Row, id int, op string) (*models.Match, error) {
	m := &models.Match{}
	if err := scanMatch(row, m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to %s match %d: %w", op, id, translatePQError(err))
	}
	return m, nil
}

func (r *postgresMatchRepository) queryMatches(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]models.Match, error) {
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := scanMatch(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match rows: %w", err)
	}
	return matches, nil
}
