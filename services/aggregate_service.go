package services

import (
	"context"

	"github.com/playerz/playerz-api/models"
	"github.com/playerz/playerz-api/repositories"
	"golang.org/x/sync/errgroup"
)

// AggregateService assembles the read-side view of a tournament.
type AggregateService interface {
	Compose(ctx context.Context, tournamentID int) (*models.TournamentAggregate, error)
	SessionsWithMatches(ctx context.Context, tournamentID int) ([]models.Session, error)
}

type aggregateService struct {
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.PlayerRepository
	teamRepo       repositories.TeamRepository
	sessionRepo    repositories.SessionRepository
	matchRepo      repositories.MatchRepository
}

func NewAggregateService(
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	sessionRepo repositories.SessionRepository,
	matchRepo repositories.MatchRepository,
) AggregateService {
	return &aggregateService{
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		teamRepo:       teamRepo,
		sessionRepo:    sessionRepo,
		matchRepo:      matchRepo,
	}
}

// Compose returns the tournament with players, teams, sessions and matches.
// Nothing else is queried when the tournament does not exist.
func (s *aggregateService) Compose(ctx context.Context, tournamentID int) (*models.TournamentAggregate, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}

	var (
		players  []models.Player
		teams    []models.Team
		sessions []models.Session
	)

	// Ветки независимы друг от друга, каждая пишет только в свою переменную.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		players, err = s.playerRepo.ListByTournament(gctx, nil, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		teams, err = s.teamsWithPlayers(gctx, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		sessions, err = s.sessionsWithMatches(gctx, tournamentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	matches := make([]models.Match, 0)
	for _, session := range sessions {
		matches = append(matches, session.Matches...)
	}

	return &models.TournamentAggregate{
		Tournament: tournament,
		Players:    players,
		Teams:      teams,
		Sessions:   sessions,
		Matches:    matches,
	}, nil
}

func (s *aggregateService) SessionsWithMatches(ctx context.Context, tournamentID int) ([]models.Session, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, tournamentID); err != nil {
		return nil, err
	}
	return s.sessionsWithMatches(ctx, tournamentID)
}

// sessionsWithMatches loads sessions first, then the matches of each one in order.
func (s *aggregateService) sessionsWithMatches(ctx context.Context, tournamentID int) ([]models.Session, error) {
	sessions, err := s.sessionRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		matches, err := s.matchRepo.ListBySession(ctx, nil, sessions[i].ID)
		if err != nil {
			return nil, err
		}
		sessions[i].Matches = matches
	}
	return sessions, nil
}

// teamsWithPlayers resolves both player slots of every team with a single lookup.
func (s *aggregateService) teamsWithPlayers(ctx context.Context, tournamentID int) ([]models.Team, error) {
	teams, err := s.teamRepo.ListByTournament(ctx, nil, tournamentID)
	if err != nil || len(teams) == 0 {
		return teams, err
	}

	seen := make(map[int]bool, len(teams)*2)
	ids := make([]int, 0, len(teams)*2)
	for _, t := range teams {
		for _, id := range []int{t.PlayerOne, t.PlayerTwo} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	players, err := s.playerRepo.ListByIDs(ctx, nil, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int]*models.Player, len(players))
	for i := range players {
		byID[players[i].ID] = &players[i]
	}

	for i := range teams {
		teams[i].PlayerOneDetails = byID[teams[i].PlayerOne]
		teams[i].PlayerTwoDetails = byID[teams[i].PlayerTwo]
	}
	return teams, nil
}
