package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/playerz/playerz-api/models"
)

var ErrTournamentNotFound = fmt.Errorf("tournament: %w", ErrNotFound)

const tournamentColumns = `id, name, is_time_free, time, status, place, start_date, end_date, created_at`

type TournamentPatch struct {
	Name       *string
	IsTimeFree *bool
	Time       *string
	Status     *models.TournamentStatus
	Place      *string
	StartDate  *time.Time
	EndDate    *time.Time
}

type TournamentRepository interface {
	Create(ctx context.Context, exec SQLExecutor, t *models.Tournament) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error)
	ListWithPlayerCounts(ctx context.Context) ([]models.TournamentSummary, error)
	Update(ctx context.Context, id int, patch TournamentPatch) (*models.Tournament, error)
	Delete(ctx context.Context, id int) (*models.Tournament, error)
	AddPlayer(ctx context.Context, exec SQLExecutor, tournamentID, playerID int) error
	Ranking(ctx context.Context, tournamentID int) ([]models.Record, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func scanTournament(s rowScanner, t *models.Tournament, extra ...interface{}) error {
	dest := []interface{}{
		&t.ID, &t.Name, &t.IsTimeFree, &t.Time, &t.Status, &t.Place, &t.StartDate, &t.EndDate, &t.CreatedAt,
	}
	return s.Scan(append(dest, extra...)...)
}

func (r *postgresTournamentRepository) Create(ctx context.Context, exec SQLExecutor, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (name, is_time_free, time, status, place, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := pick(exec, r.db).QueryRowContext(ctx, query,
		t.Name, t.IsTimeFree, t.Time, t.Status, t.Place, t.StartDate, t.EndDate,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create tournament: %w", translatePQError(err))
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`

	t := &models.Tournament{}
	if err := scanTournament(pick(exec, r.db).QueryRowContext(ctx, query, id), t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) ListWithPlayerCounts(ctx context.Context) ([]models.TournamentSummary, error) {
	query := `
		SELECT t.id, t.name, t.is_time_free, t.time, t.status, t.place, t.start_date, t.end_date, t.created_at,
		       COUNT(tp.player_id) AS player_count
		FROM tournaments t
		LEFT JOIN tournament_players tp ON tp.tournament_id = t.id
		GROUP BY t.id
		ORDER BY t.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]models.TournamentSummary, 0)
	for rows.Next() {
		var s models.TournamentSummary
		if err := scanTournament(rows, &s.Tournament, &s.PlayerCount); err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		tournaments = append(tournaments, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tournament rows: %w", err)
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) Update(ctx context.Context, id int, patch TournamentPatch) (*models.Tournament, error) {
	var set updateSet
	if patch.Name != nil {
		set.add("name", *patch.Name)
	}
	if patch.IsTimeFree != nil {
		set.add("is_time_free", *patch.IsTimeFree)
	}
	if patch.Time != nil {
		set.add("time", *patch.Time)
	}
	if patch.Status != nil {
		set.add("status", *patch.Status)
	}
	if patch.Place != nil {
		set.add("place", *patch.Place)
	}
	if patch.StartDate != nil {
		set.add("start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		set.add("end_date", *patch.EndDate)
	}
	if set.empty() {
		return nil, ErrNoFieldsToUpdate
	}

	query, args := set.query("tournaments", id, tournamentColumns)
	t := &models.Tournament{}
	if err := scanTournament(r.db.QueryRowContext(ctx, query, args...), t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to update tournament %d: %w", id, translatePQError(err))
	}
	return t, nil
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) (*models.Tournament, error) {
	query := `DELETE FROM tournaments WHERE id = $1 RETURNING ` + tournamentColumns

	t := &models.Tournament{}
	if err := scanTournament(r.db.QueryRowContext(ctx, query, id), t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to delete tournament %d: %w", id, translatePQError(err))
	}
	return t, nil
}

func (r *postgresTournamentRepository) AddPlayer(ctx context.Context, exec SQLExecutor, tournamentID, playerID int) error {
	query := `INSERT INTO tournament_players (tournament_id, player_id) VALUES ($1, $2)`
	if _, err := pick(exec, r.db).ExecContext(ctx, query, tournamentID, playerID); err != nil {
		return fmt.Errorf("failed to add player %d to tournament %d: %w", playerID, tournamentID, translatePQError(err))
	}
	return nil
}

// Ranking runs the store-side ranking function; its columns are not fixed here.
func (r *postgresTournamentRepository) Ranking(ctx context.Context, tournamentID int) ([]models.Record, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT * FROM tournament_ranking($1)`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute ranking for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()
	return collectRecords(rows)
}
