package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/playerz/playerz-api/models"
)

var ErrPlayerNotFound = fmt.Errorf("player: %w", ErrNotFound)

const playerColumns = `id, pseudo, have_avatar, avatar_url, avatar_key, created_at`

// PlayerPatch lists the player columns a client may change. Nil fields are left untouched.
type PlayerPatch struct {
	Pseudo     *string
	HaveAvatar *bool
	AvatarURL  *string
	AvatarKey  *string
}

type PlayerRepository interface {
	Create(ctx context.Context, p *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	List(ctx context.Context) ([]models.Player, error)
	ListByIDs(ctx context.Context, exec SQLExecutor, ids []int) ([]models.Player, error)
	ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Player, error)
	CountExisting(ctx context.Context, ids []int) (int, error)
	Update(ctx context.Context, id int, patch PlayerPatch) (*models.Player, error)
	Delete(ctx context.Context, id int) (*models.Player, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func scanPlayer(s rowScanner, p *models.Player) error {
	return s.Scan(&p.ID, &p.Pseudo, &p.HaveAvatar, &p.AvatarURL, &p.AvatarKey, &p.CreatedAt)
}

func (r *postgresPlayerRepository) Create(ctx context.Context, p *models.Player) error {
	query := `
		INSERT INTO players (pseudo, have_avatar, avatar_url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, p.Pseudo, p.HaveAvatar, p.AvatarURL).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", translatePQError(err))
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`

	p := &models.Player{}
	if err := scanPlayer(r.db.QueryRowContext(ctx, query, id), p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	return p, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context) ([]models.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players ORDER BY id ASC`
	return r.queryPlayers(ctx, r.db, query)
}

func (r *postgresPlayerRepository) ListByIDs(ctx context.Context, exec SQLExecutor, ids []int) ([]models.Player, error) {
	if len(ids) == 0 {
		return []models.Player{}, nil
	}
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = ANY($1) ORDER BY id ASC`
	return r.queryPlayers(ctx, pick(exec, r.db), query, pq.Array(ids))
}

func (r *postgresPlayerRepository) ListByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) ([]models.Player, error) {
	query := `
		SELECT p.id, p.pseudo, p.have_avatar, p.avatar_url, p.avatar_key, p.created_at
		FROM players p
		JOIN tournament_players tp ON tp.player_id = p.id
		WHERE tp.tournament_id = $1
		ORDER BY p.id ASC`
	return r.queryPlayers(ctx, pick(exec, r.db), query, tournamentID)
}

func (r *postgresPlayerRepository) CountExisting(ctx context.Context, ids []int) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM players WHERE id = ANY($1)`
	if err := r.db.QueryRowContext(ctx, query, pq.Array(ids)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return n, nil
}

func (r *postgresPlayerRepository) Update(ctx context.Context, id int, patch PlayerPatch) (*models.Player, error) {
	var set updateSet
	if patch.Pseudo != nil {
		set.add("pseudo", *patch.Pseudo)
	}
	if patch.HaveAvatar != nil {
		set.add("have_avatar", *patch.HaveAvatar)
	}
	if patch.AvatarURL != nil {
		set.add("avatar_url", *patch.AvatarURL)
	}
	if patch.AvatarKey != nil {
		set.add("avatar_key", *patch.AvatarKey)
	}
	if set.empty() {
		return nil, ErrNoFieldsToUpdate
	}

	query, args := set.query("players", id, playerColumns)
	p := &models.Player{}
	if err := scanPlayer(r.db.QueryRowContext(ctx, query, args...), p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to update player %d: %w", id, translatePQError(err))
	}
	return p, nil
}

func (r *postgresPlayerRepository) Delete(ctx context.Context, id int) (*models.Player, error) {
	query := `DELETE FROM players WHERE id = $1 RETURNING ` + playerColumns

	p := &models.Player{}
	if err := scanPlayer(r.db.QueryRowContext(ctx, query, id), p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to delete player %d: %w", id, translatePQError(err))
	}
	return p, nil
}

func (r *postgresPlayerRepository) queryPlayers(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]models.Player, error) {
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := scanPlayer(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating player rows: %w", err)
	}
	return players, nil
}
