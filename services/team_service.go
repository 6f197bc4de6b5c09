package services

import (
	"context"
	"fmt"

	"github.com/playerz/playerz-api/models"
	"github.com/playerz/playerz-api/repositories"
)

type TeamService interface {
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetTeamByID(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context, tournamentID *int) ([]models.Team, error)
	UpdateTeam(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error)
	DeleteTeam(ctx context.Context, id int) (*models.Team, error)
}

type CreateTeamInput struct {
	TournamentID int     `json:"tournament_id"`
	PlayerOne    int     `json:"player_one"`
	PlayerTwo    int     `json:"player_two"`
	Pseudo       *string `json:"pseudo"`
}

type UpdateTeamInput struct {
	TournamentID *int    `json:"tournament_id"`
	PlayerOne    *int    `json:"player_one"`
	PlayerTwo    *int    `json:"player_two"`
	Pseudo       *string `json:"pseudo"`
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
}

func NewTeamService(teamRepo repositories.TeamRepository, playerRepo repositories.PlayerRepository) TeamService {
	return &teamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	if input.TournamentID <= 0 {
		return nil, invalidArgument("tournament_id is required")
	}
	if err := s.checkPlayers(ctx, input.PlayerOne, input.PlayerTwo); err != nil {
		return nil, err
	}

	team := &models.Team{
		TournamentID: input.TournamentID,
		PlayerOne:    input.PlayerOne,
		PlayerTwo:    input.PlayerTwo,
		Pseudo:       input.Pseudo,
	}
	if err := s.teamRepo.Create(ctx, nil, team); err != nil {
		return nil, normalizeRepositoryError(err)
	}
	return team, nil
}

func (s *teamService) GetTeamByID(ctx context.Context, id int) (*models.Team, error) {
	return s.teamRepo.GetByID(ctx, id)
}

func (s *teamService) ListTeams(ctx context.Context, tournamentID *int) ([]models.Team, error) {
	return s.teamRepo.List(ctx, tournamentID)
}

func (s *teamService) UpdateTeam(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error) {
	if input.TournamentID != nil && *input.TournamentID <= 0 {
		return nil, invalidArgument("tournament_id must be a positive integer")
	}

	if input.PlayerOne != nil || input.PlayerTwo != nil {
		current, err := s.teamRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		one, two := current.PlayerOne, current.PlayerTwo
		if input.PlayerOne != nil {
			one = *input.PlayerOne
		}
		if input.PlayerTwo != nil {
			two = *input.PlayerTwo
		}
		if err := s.checkPlayers(ctx, one, two); err != nil {
			return nil, err
		}
	}

	team, err := s.teamRepo.Update(ctx, id, repositories.TeamPatch{
		TournamentID: input.TournamentID,
		PlayerOne:    input.PlayerOne,
		PlayerTwo:    input.PlayerTwo,
		Pseudo:       input.Pseudo,
	})
	if err != nil {
		return nil, normalizeRepositoryError(err)
	}
	return team, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, id int) (*models.Team, error) {
	return s.teamRepo.Delete(ctx, id)
}

// checkPlayers requires two distinct, existing players.
func (s *teamService) checkPlayers(ctx context.Context, one, two int) error {
	if one <= 0 || two <= 0 {
		return invalidArgument("player_one and player_two are required")
	}
	if one == two {
		return invalidArgument("a team needs two distinct players")
	}
	n, err := s.playerRepo.CountExisting(ctx, []int{one, two})
	if err != nil {
		return err
	}
	if n != 2 {
		return fmt.Errorf("%w: players %d and %d must both exist", ErrPlayerNotFound, one, two)
	}
	return nil
}
