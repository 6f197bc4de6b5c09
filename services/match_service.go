package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playerz/playerz-api/models"
	"github.com/playerz/playerz-api/repositories"
)

// ErrInvalidSide is returned for a score side other than 1 or 2.
var ErrInvalidSide = fmt.Errorf("%w: side must be 1 or 2", ErrInvalidArgument)

type MatchService interface {
	CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	GetMatchByID(ctx context.Context, id int) (*models.Match, error)
	ListMatches(ctx context.Context) ([]models.Match, error)
	UpdateMatch(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, id int) (*models.Match, error)
	UpdateScore(ctx context.Context, id int, side int, score int) (*models.Match, error)
}

type CreateMatchInput struct {
	TournamentID int                 `json:"tournament_id"`
	SessionID    *int                `json:"session_id"`
	TeamOne      *int                `json:"team_one"`
	TeamTwo      *int                `json:"team_two"`
	PlayerOne    *int                `json:"player_one"`
	PlayerTwo    *int                `json:"player_two"`
	PlayerThree  *int                `json:"player_three"`
	PlayerFour   *int                `json:"player_four"`
	Terrain      *string             `json:"terrain"`
	Status       *models.MatchStatus `json:"status"`
	ScoreTeamOne int                 `json:"score_team_one"`
	ScoreTeamTwo int                 `json:"score_team_two"`
	Date         *time.Time          `json:"date"`
}

type UpdateMatchInput struct {
	TournamentID *int                `json:"tournament_id"`
	SessionID    *int                `json:"session_id"`
	TeamOne      *int                `json:"team_one"`
	TeamTwo      *int                `json:"team_two"`
	PlayerOne    *int                `json:"player_one"`
	PlayerTwo    *int                `json:"player_two"`
	PlayerThree  *int                `json:"player_three"`
	PlayerFour   *int                `json:"player_four"`
	Terrain      *string             `json:"terrain"`
	Status       *models.MatchStatus `json:"status"`
	ScoreTeamOne *int                `json:"score_team_one"`
	ScoreTeamTwo *int                `json:"score_team_two"`
	Date         *time.Time          `json:"date"`
}

type matchService struct {
	matchRepo   repositories.MatchRepository
	sessionRepo repositories.SessionRepository
	events      EventPublisher
}

func NewMatchService(matchRepo repositories.MatchRepository, sessionRepo repositories.SessionRepository, events EventPublisher) MatchService {
	return &matchService{
		matchRepo:   matchRepo,
		sessionRepo: sessionRepo,
		events:      publisherOrNop(events),
	}
}

func (s *matchService) CreateMatch(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	if input.TournamentID <= 0 {
		return nil, invalidArgument("tournament_id is required")
	}
	if input.ScoreTeamOne < 0 || input.ScoreTeamTwo < 0 {
		return nil, invalidArgument("scores must not be negative")
	}
	status := models.MatchNotStarted
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, invalidArgument(fmt.Sprintf("unknown match status %q", *input.Status))
		}
		status = *input.Status
	}
	if input.SessionID != nil {
		if err := s.checkSession(ctx, *input.SessionID, input.TournamentID); err != nil {
			return nil, err
		}
	}

	match := &models.Match{
		TournamentID: input.TournamentID,
		SessionID:    input.SessionID,
		TeamOne:      input.TeamOne,
		TeamTwo:      input.TeamTwo,
		PlayerOne:    input.PlayerOne,
		PlayerTwo:    input.PlayerTwo,
		PlayerThree:  input.PlayerThree,
		PlayerFour:   input.PlayerFour,
		Terrain:      input.Terrain,
		Status:       status,
		ScoreTeamOne: input.ScoreTeamOne,
		ScoreTeamTwo: input.ScoreTeamTwo,
		Date:         input.Date,
	}
	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		return nil, normalizeRepositoryError(err)
	}

	s.events.Publish(match.TournamentID, EventMatchCreated, match)
	return match, nil
}

func (s *matchService) GetMatchByID(ctx context.Context, id int) (*models.Match, error) {
	return s.matchRepo.GetByID(ctx, id)
}

func (s *matchService) ListMatches(ctx context.Context) ([]models.Match, error) {
	return s.matchRepo.List(ctx)
}

func (s *matchService) UpdateMatch(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, invalidArgument(fmt.Sprintf("unknown match status %q", *input.Status))
	}
	if (input.ScoreTeamOne != nil && *input.ScoreTeamOne < 0) || (input.ScoreTeamTwo != nil && *input.ScoreTeamTwo < 0) {
		return nil, invalidArgument("scores must not be negative")
	}

	if input.SessionID != nil || input.TournamentID != nil {
		current, err := s.matchRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		tournamentID := current.TournamentID
		if input.TournamentID != nil {
			tournamentID = *input.TournamentID
		}
		sessionID := current.SessionID
		if input.SessionID != nil {
			sessionID = input.SessionID
		}
		if sessionID != nil {
			if err := s.checkSession(ctx, *sessionID, tournamentID); err != nil {
				return nil, err
			}
		}
	}

	match, err := s.matchRepo.Update(ctx, id, repositories.MatchPatch{
		TournamentID: input.TournamentID,
		SessionID:    input.SessionID,
		TeamOne:      input.TeamOne,
		TeamTwo:      input.TeamTwo,
		PlayerOne:    input.PlayerOne,
		PlayerTwo:    input.PlayerTwo,
		PlayerThree:  input.PlayerThree,
		PlayerFour:   input.PlayerFour,
		Terrain:      input.Terrain,
		Status:       input.Status,
		ScoreTeamOne: input.ScoreTeamOne,
		ScoreTeamTwo: input.ScoreTeamTwo,
		Date:         input.Date,
	})
	if err != nil {
		return nil, normalizeRepositoryError(err)
	}

	s.events.Publish(match.TournamentID, EventMatchUpdated, match)
	return match, nil
}

func (s *matchService) DeleteMatch(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.events.Publish(match.TournamentID, EventMatchDeleted, match)
	return match, nil
}

// UpdateScore sets the score of one side only. The side is checked before touching storage.
func (s *matchService) UpdateScore(ctx context.Context, id int, side int, score int) (*models.Match, error) {
	if side != 1 && side != 2 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidSide, side)
	}
	if score < 0 {
		return nil, invalidArgument("score must not be negative")
	}

	match, err := s.matchRepo.UpdateScore(ctx, id, side, score)
	if err != nil {
		return nil, normalizeRepositoryError(err)
	}

	s.events.Publish(match.TournamentID, EventScoreUpdated, match)
	return match, nil
}

// checkSession answers 400 both for an unknown session and for a session of another tournament.
func (s *matchService) checkSession(ctx context.Context, sessionID, tournamentID int) error {
	session, err := s.sessionRepo.GetByID(ctx, nil, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return invalidArgument(fmt.Sprintf("session %d does not exist", sessionID))
	}
	if err != nil {
		return err
	}
	if session.TournamentID != tournamentID {
		return invalidArgument(fmt.Sprintf("session %d does not belong to tournament %d", sessionID, tournamentID))
	}
	return nil
}
