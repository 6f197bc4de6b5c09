package services

import (
	"context"
	"strings"

	"github.com/playerz/playerz-api/models"
	"github.com/playerz/playerz-api/repositories"
)

type GroupService interface {
	CreateGroup(ctx context.Context, input GroupInput) (*models.Group, error)
	GetGroupByID(ctx context.Context, id int) (*models.Group, error)
	ListGroups(ctx context.Context) ([]models.Group, error)
	UpdateGroup(ctx context.Context, id int, input GroupInput) (*models.Group, error)
	DeleteGroup(ctx context.Context, id int) (*models.Group, error)

	AddMember(ctx context.Context, groupID int, input AddMemberInput) (bool, error)
	RemoveMember(ctx context.Context, groupID, playerID int) error
	ListMembers(ctx context.Context, groupID int) ([]models.Player, error)
}

type GroupInput struct {
	Name string `json:"name"`
}

type AddMemberInput struct {
	PlayerID int `json:"player_id"`
}

type groupService struct {
	groupRepo  repositories.GroupRepository
	playerRepo repositories.PlayerRepository
}

func NewGroupService(groupRepo repositories.GroupRepository, playerRepo repositories.PlayerRepository) GroupService {
	return &groupService{
		groupRepo:  groupRepo,
		playerRepo: playerRepo,
	}
}

func (s *groupService) CreateGroup(ctx context.Context, input GroupInput) (*models.Group, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalidArgument("group name is required")
	}
	group := &models.Group{Name: name}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, normalizeRepositoryError(err)
	}
	return group, nil
}

func (s *groupService) GetGroupByID(ctx context.Context, id int) (*models.Group, error) {
	return s.groupRepo.GetByID(ctx, id)
}

func (s *groupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	return s.groupRepo.List(ctx)
}

func (s *groupService) UpdateGroup(ctx context.Context, id int, input GroupInput) (*models.Group, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalidArgument("group name is required")
	}
	group, err := s.groupRepo.Rename(ctx, id, name)
	if err != nil {
		return nil, normalizeRepositoryError(err)
	}
	return group, nil
}

func (s *groupService) DeleteGroup(ctx context.Context, id int) (*models.Group, error) {
	return s.groupRepo.Delete(ctx, id)
}

// AddMember reports whether a new membership row was written.
// Re-adding an existing member succeeds without change.
func (s *groupService) AddMember(ctx context.Context, groupID int, input AddMemberInput) (bool, error) {
	if input.PlayerID <= 0 {
		return false, invalidArgument("player_id must be a positive integer")
	}
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return false, err
	}
	if _, err := s.playerRepo.GetByID(ctx, input.PlayerID); err != nil {
		return false, err
	}
	return s.groupRepo.AddMember(ctx, groupID, input.PlayerID)
}

func (s *groupService) RemoveMember(ctx context.Context, groupID, playerID int) error {
	return s.groupRepo.RemoveMember(ctx, groupID, playerID)
}

func (s *groupService) ListMembers(ctx context.Context, groupID int) ([]models.Player, error) {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	return s.groupRepo.ListMembers(ctx, groupID)
}
