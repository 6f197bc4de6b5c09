package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/playerz/playerz-api/models"
)

var (
	ErrGroupNotFound       = fmt.Errorf("group: %w", ErrNotFound)
	ErrGroupMemberNotFound = fmt.Errorf("group member: %w", ErrNotFound)
)

type GroupRepository interface {
	Create(ctx context.Context, g *models.Group) error
	GetByID(ctx context.Context, id int) (*models.Group, error)
	List(ctx context.Context) ([]models.Group, error)
	Rename(ctx context.Context, id int, name string) (*models.Group, error)
	Delete(ctx context.Context, id int) (*models.Group, error)

	AddMember(ctx context.Context, groupID, playerID int) (added bool, err error)
	RemoveMember(ctx context.Context, groupID, playerID int) error
	ListMembers(ctx context.Context, groupID int) ([]models.Player, error)
}

type postgresGroupRepository struct {
	db *sql.DB
}

func NewPostgresGroupRepository(db *sql.DB) GroupRepository {
	return &postgresGroupRepository{db: db}
}

func (r *postgresGroupRepository) Create(ctx context.Context, g *models.Group) error {
	query := `INSERT INTO player_groups (name) VALUES ($1) RETURNING id, created_at`
	if err := r.db.QueryRowContext(ctx, query, g.Name).Scan(&g.ID, &g.CreatedAt); err != nil {
		return fmt.Errorf("failed to create group: %w", translatePQError(err))
	}
	return nil
}

func (r *postgresGroupRepository) GetByID(ctx context.Context, id int) (*models.Group, error) {
	query := `SELECT id, name, created_at FROM player_groups WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), id, "get")
}

func (r *postgresGroupRepository) List(ctx context.Context) ([]models.Group, error) {
	query := `SELECT id, name, created_at FROM player_groups ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	groups := make([]models.Group, 0)
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group row: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group rows: %w", err)
	}
	return groups, nil
}

func (r *postgresGroupRepository) Rename(ctx context.Context, id int, name string) (*models.Group, error) {
	query := `UPDATE player_groups SET name = $1 WHERE id = $2 RETURNING id, name, created_at`
	return r.scanOne(r.db.QueryRowContext(ctx, query, name, id), id, "update")
}

func (r *postgresGroupRepository) Delete(ctx context.Context, id int) (*models.Group, error) {
	query := `DELETE FROM player_groups WHERE id = $1 RETURNING id, name, created_at`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), id, "delete")
}

func (r *postgresGroupRepository) scanOne(row *sql.Row, id int, op string) (*models.Group, error) {
	g := &models.Group{}
	if err := row.Scan(&g.ID, &g.Name, &g.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to %s group %d: %w", op, id, translatePQError(err))
	}
	return g, nil
}

// AddMember is a no-op when the player already belongs to the group.
func (r *postgresGroupRepository) AddMember(ctx context.Context, groupID, playerID int) (bool, error) {
	query := `
		INSERT INTO player_group_members (group_id, player_id)
		VALUES ($1, $2)
		ON CONFLICT (group_id, player_id) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query, groupID, playerID)
	if err != nil {
		return false, fmt.Errorf("failed to add player %d to group %d: %w", playerID, groupID, translatePQError(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check affected rows: %w", err)
	}
	return n > 0, nil
}

func (r *postgresGroupRepository) RemoveMember(ctx context.Context, groupID, playerID int) error {
	query := `DELETE FROM player_group_members WHERE group_id = $1 AND player_id = $2`
	result, err := r.db.ExecContext(ctx, query, groupID, playerID)
	if err != nil {
		return fmt.Errorf("failed to remove player %d from group %d: %w", playerID, groupID, err)
	}
	return checkAffectedRows(result, ErrGroupMemberNotFound)
}

func (r *postgresGroupRepository) ListMembers(ctx context.Context, groupID int) ([]models.Player, error) {
	query := `
		SELECT p.id, p.pseudo, p.have_avatar, p.avatar_url, p.avatar_key, p.created_at
		FROM players p
		JOIN player_group_members m ON m.player_id = p.id
		WHERE m.group_id = $1
		ORDER BY p.id ASC`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members of group %d: %w", groupID, err)
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := scanPlayer(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan group member row: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group member rows: %w", err)
	}
	return players, nil
}
