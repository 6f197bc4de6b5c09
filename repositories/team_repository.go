package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/playerz/playerz-api/models"
)

var ErrTeamNotFound = fmt.Errorf("team: %w", ErrNotFound)

const teamColumns = `id, tournament_id, player_one, player_two, pseudo, created_at`

type TeamPatch struct {
	TournamentID *int
	PlayerOne    *int
	PlayerTwo    *int
	Pseudo       *string
}

type TeamRepository interface {
	Create(ctx context.Context, exec SQLExecutor, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context, tournamentID *int) ([]models.Team, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Team, error)
	Update(ctx context.Context, id int, patch TeamPatch) (*models.Team, error)
	Delete(ctx context.Context, id int) (*models.Team, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func scanTeam(s rowScanner, t *models.Team) error {
	return s.Scan(&t.ID, &t.TournamentID, &t.PlayerOne, &t.PlayerTwo, &t.Pseudo, &t.CreatedAt)
}

func (r *postgresTeamRepository) Create(ctx context.Context, exec SQLExecutor, t *models.Team) error {
	query := `
		INSERT INTO teams (tournament_id, player_one, player_two, pseudo)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := pick(exec, r.db).QueryRowContext(ctx, query, t.TournamentID, t.PlayerOne, t.PlayerTwo, t.Pseudo).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", translatePQError(err))
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`
	t := &models.Team{}
	if err := scanTeam(r.db.QueryRowContext(ctx, query, id), t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}
	return t, nil
}

func (r *postgresTeamRepository) List(ctx context.Context, tournamentID *int) ([]models.Team, error) {
	if tournamentID != nil {
		return r.ListByTournament(ctx, nil, *tournamentID)
	}
	query := `SELECT ` + teamColumns + ` FROM teams ORDER BY id ASC`
	return r.queryTeams(ctx, r.db, query)
}

func (r *postgresTeamRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams WHERE tournament_id = $1 ORDER BY id ASC`
	return r.queryTeams(ctx, pick(exec, r.db), query, tournamentID)
}

func (r *postgresTeamRepository) Update(ctx context.Context, id int, patch TeamPatch) (*models.Team, error) {
	var set updateSet
	if patch.TournamentID != nil {
		set.add("tournament_id", *patch.TournamentID)
	}
	if patch.PlayerOne != nil {
		set.add("player_one", *patch.PlayerOne)
	}
	if patch.PlayerTwo != nil {
		set.add("player_two", *patch.PlayerTwo)
	}
	if patch.Pseudo != nil {
		set.add("pseudo", *patch.Pseudo)
	}
	if set.empty() {
		return nil, ErrNoFieldsToUpdate
	}

	query, args := set.query("teams", id, teamColumns)
	t := &models.Team{}
	if err := scanTeam(r.db.QueryRowContext(ctx, query, args...), t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update team %d: %w", id, translatePQError(err))
	}
	return t, nil
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) (*models.Team, error) {
	query := `DELETE FROM teams WHERE id = $1 RETURNING ` + teamColumns
	t := &models.Team{}
	if err := scanTeam(r.db.QueryRowContext(ctx, query, id), t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to delete team %d: %w", id, translatePQError(err))
	}
	return t, nil
}

func (r *postgresTeamRepository) queryTeams(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]models.Team, error) {
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var t models.Team
		if err := scanTeam(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team rows: %w", err)
	}
	return teams, nil
}
