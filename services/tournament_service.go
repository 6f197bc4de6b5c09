package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/playerz/playerz-api/models"
	"github.com/playerz/playerz-api/repositories"
)

// ErrUnknownSessionReference is returned when a match names a session label
// that is not part of the same request.
var ErrUnknownSessionReference = fmt.Errorf("%w: unknown session reference", ErrInvalidArgument)

// ErrUnknownTeamReference is returned when a match names a team label
// that is not part of the same request.
var ErrUnknownTeamReference = fmt.Errorf("%w: unknown team reference", ErrInvalidArgument)

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.CreateTournamentResult, error)
	ListTournaments(ctx context.Context) ([]models.TournamentSummary, error)
	UpdateTournament(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, id int) (*models.Tournament, error)
	GetRanking(ctx context.Context, id int) ([]models.Record, error)
	CreateSession(ctx context.Context, tournamentID int, input CreateSessionInput) (*models.Session, error)
}

type CreateTournamentInput struct {
	Name       string     `json:"name"`
	IsTimeFree bool       `json:"is_time_free"`
	Time       *string    `json:"time"`
	Place      *string    `json:"place"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	// Status is accepted so older clients keep working; it is always discarded.
	Status *string `json:"status,omitempty"`

	Players  []int       `json:"players"`
	Teams    []TeamSpec  `json:"teams"`
	Sessions []string    `json:"sessions"`
	Matches  []MatchSpec `json:"matches"`
}

// TeamSpec describes a team to create. Reference is a request-local label
// that matches of the same request can point at.
type TeamSpec struct {
	Reference *string `json:"reference"`
	PlayerOne int     `json:"player_one"`
	PlayerTwo int     `json:"player_two"`
	Pseudo    *string `json:"pseudo"`
}

// MatchSpec describes a match to create. SideOne fills player slots one and two,
// SideTwo fills slots three and four. A team is named either by id or by the
// label of a team created in the same request, never both.
type MatchSpec struct {
	SessionReference string     `json:"session_reference"`
	SideOne          []int      `json:"side_one"`
	SideTwo          []int      `json:"side_two"`
	TeamOne          *int       `json:"team_one"`
	TeamTwo          *int       `json:"team_two"`
	TeamOneReference *string    `json:"team_one_reference"`
	TeamTwoReference *string    `json:"team_two_reference"`
	Terrain          *string    `json:"terrain"`
	Date             *time.Time `json:"date"`
}

type UpdateTournamentInput struct {
	Name       *string                  `json:"name"`
	IsTimeFree *bool                    `json:"is_time_free"`
	Time       *string                  `json:"time"`
	Status     *models.TournamentStatus `json:"status"`
	Place      *string                  `json:"place"`
	StartDate  *time.Time               `json:"start_date"`
	EndDate    *time.Time               `json:"end_date"`
}

type CreateSessionInput struct {
	Reference *string     `json:"reference"`
	Matches   []MatchSpec `json:"matches"`
}

type tournamentService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	sessionRepo    repositories.SessionRepository
	matchRepo      repositories.MatchRepository
	events         EventPublisher
	logger         *slog.Logger
}

func NewTournamentService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	sessionRepo repositories.SessionRepository,
	matchRepo repositories.MatchRepository,
	events EventPublisher,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		db:             db,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		sessionRepo:    sessionRepo,
		matchRepo:      matchRepo,
		events:         publisherOrNop(events),
		logger:         logger,
	}
}

// CreateTournament stores a tournament and all of its relations atomically.
// Either every row is written or none is.
func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.CreateTournamentResult, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalidArgument("tournament name is required")
	}
	if err := validateDates(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}
	if err := validateSessionLabels(input.Sessions); err != nil {
		return nil, err
	}
	if err := validateTeamLabels(input.Teams); err != nil {
		return nil, err
	}
	if err := validateMatchSpecs(input.Matches, true); err != nil {
		return nil, err
	}

	tournament := &models.Tournament{
		Name:       name,
		IsTimeFree: input.IsTimeFree,
		Time:       input.Time,
		Status:     models.TournamentNotStarted,
		Place:      input.Place,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
	}
	players := dedupeIDs(input.Players)
	result := &models.CreateTournamentResult{
		Teams:    make([]models.TeamRef, 0, len(input.Teams)),
		Sessions: make([]models.SessionRef, 0, len(input.Sessions)),
	}

	err := runInTx(ctx, s.db, s.logger, func(tx *sql.Tx) error {
		if err := s.tournamentRepo.Create(ctx, tx, tournament); err != nil {
			return err
		}
		result.TournamentID = tournament.ID

		for _, playerID := range players {
			if err := s.tournamentRepo.AddPlayer(ctx, tx, tournament.ID, playerID); err != nil {
				return err
			}
		}

		teamIDs := make(map[string]int, len(input.Teams))
		for _, spec := range input.Teams {
			team := &models.Team{
				TournamentID: tournament.ID,
				PlayerOne:    spec.PlayerOne,
				PlayerTwo:    spec.PlayerTwo,
				Pseudo:       spec.Pseudo,
			}
			if err := s.teamRepo.Create(ctx, tx, team); err != nil {
				return err
			}
			if spec.Reference != nil {
				teamIDs[*spec.Reference] = team.ID
			}
			result.Teams = append(result.Teams, models.TeamRef{ID: team.ID, Reference: spec.Reference})
		}

		sessionIDs := make(map[string]int, len(input.Sessions))
		for _, label := range input.Sessions {
			reference := label
			session := &models.Session{TournamentID: tournament.ID, Reference: &reference}
			if err := s.sessionRepo.Create(ctx, tx, session); err != nil {
				return err
			}
			sessionIDs[label] = session.ID
			result.Sessions = append(result.Sessions, models.SessionRef{ID: session.ID, Reference: label})
		}

		for _, spec := range input.Matches {
			sessionID, ok := sessionIDs[spec.SessionReference]
			if !ok {
				return fmt.Errorf("%w %q", ErrUnknownSessionReference, spec.SessionReference)
			}
			teamOne, err := resolveTeam(spec.TeamOne, spec.TeamOneReference, teamIDs)
			if err != nil {
				return err
			}
			teamTwo, err := resolveTeam(spec.TeamTwo, spec.TeamTwoReference, teamIDs)
			if err != nil {
				return err
			}
			if err := s.matchRepo.Create(ctx, tx, newMatch(tournament.ID, sessionID, teamOne, teamTwo, spec)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, normalizeRepositoryError(err)
	}

	s.logger.Info("tournament created",
		slog.Int("tournament_id", result.TournamentID),
		slog.Int("players", len(players)),
		slog.Int("sessions", len(result.Sessions)),
		slog.Int("matches", len(input.Matches)),
	)
	s.events.Publish(result.TournamentID, EventTournamentCreated, result)
	return result, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context) ([]models.TournamentSummary, error) {
	return s.tournamentRepo.ListWithPlayerCounts(ctx)
}

func (s *tournamentService) UpdateTournament(ctx context.Context, id int, input UpdateTournamentInput) (*models.Tournament, error) {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, invalidArgument("tournament name must not be empty")
		}
		input.Name = &name
	}
	if input.Status != nil && !input.Status.Valid() {
		return nil, invalidArgument(fmt.Sprintf("unknown tournament status %q", *input.Status))
	}
	if err := validateDates(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	tournament, err := s.tournamentRepo.Update(ctx, id, repositories.TournamentPatch{
		Name:       input.Name,
		IsTimeFree: input.IsTimeFree,
		Time:       input.Time,
		Status:     input.Status,
		Place:      input.Place,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
	})
	if err != nil {
		return nil, normalizeRepositoryError(err)
	}

	s.events.Publish(tournament.ID, EventTournamentUpdated, tournament)
	return tournament, nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.events.Publish(tournament.ID, EventTournamentDeleted, tournament)
	return tournament, nil
}

// GetRanking returns the store-computed ranking rows as-is.
func (s *tournamentService) GetRanking(ctx context.Context, id int) ([]models.Record, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, nil, id); err != nil {
		return nil, err
	}
	return s.tournamentRepo.Ranking(ctx, id)
}

func (s *tournamentService) CreateSession(ctx context.Context, tournamentID int, input CreateSessionInput) (*models.Session, error) {
	if err := validateMatchSpecs(input.Matches, false); err != nil {
		return nil, err
	}

	session := &models.Session{TournamentID: tournamentID, Reference: input.Reference}
	err := runInTx(ctx, s.db, s.logger, func(tx *sql.Tx) error {
		if _, err := s.tournamentRepo.GetByID(ctx, tx, tournamentID); err != nil {
			return err
		}
		if err := s.sessionRepo.Create(ctx, tx, session); err != nil {
			return err
		}
		session.Matches = make([]models.Match, 0, len(input.Matches))
		for _, spec := range input.Matches {
			match := newMatch(tournamentID, session.ID, spec.TeamOne, spec.TeamTwo, spec)
			if err := s.matchRepo.Create(ctx, tx, match); err != nil {
				return err
			}
			session.Matches = append(session.Matches, *match)
		}
		return nil
	})
	if err != nil {
		return nil, normalizeRepositoryError(err)
	}

	s.events.Publish(tournamentID, EventSessionCreated, session)
	return session, nil
}

// newMatch builds a fresh match: not started, both scores at zero.
func newMatch(tournamentID, sessionID int, teamOne, teamTwo *int, spec MatchSpec) *models.Match {
	m := &models.Match{
		TournamentID: tournamentID,
		SessionID:    &sessionID,
		TeamOne:      teamOne,
		TeamTwo:      teamTwo,
		Terrain:      spec.Terrain,
		Status:       models.MatchNotStarted,
		Date:         spec.Date,
	}
	m.PlayerOne, m.PlayerTwo = sideSlots(spec.SideOne)
	m.PlayerThree, m.PlayerFour = sideSlots(spec.SideTwo)
	return m
}

// resolveTeam returns the team id given directly or through a label of this request.
func resolveTeam(id *int, reference *string, teamIDs map[string]int) (*int, error) {
	if reference == nil {
		return id, nil
	}
	resolved, ok := teamIDs[*reference]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownTeamReference, *reference)
	}
	return &resolved, nil
}

func sideSlots(side []int) (*int, *int) {
	var first, second *int
	if len(side) > 0 {
		v := side[0]
		first = &v
	}
	if len(side) > 1 {
		v := side[1]
		second = &v
	}
	return first, second
}

// dedupeIDs drops repeated ids, keeping first-occurrence order.
func dedupeIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func validateDates(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return invalidArgument(fmt.Sprintf("end date (%s) cannot be before start date (%s)",
			end.Format(time.RFC3339), start.Format(time.RFC3339)))
	}
	return nil
}

func validateSessionLabels(labels []string) error {
	seen := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		if strings.TrimSpace(label) == "" {
			return invalidArgument("session reference must not be empty")
		}
		if _, dup := seen[label]; dup {
			return invalidArgument(fmt.Sprintf("duplicate session reference %q", label))
		}
		seen[label] = struct{}{}
	}
	return nil
}

func validateTeamLabels(teams []TeamSpec) error {
	seen := make(map[string]struct{}, len(teams))
	for _, team := range teams {
		if team.Reference == nil {
			continue
		}
		label := *team.Reference
		if strings.TrimSpace(label) == "" {
			return invalidArgument("team reference must not be empty")
		}
		if _, dup := seen[label]; dup {
			return invalidArgument(fmt.Sprintf("duplicate team reference %q", label))
		}
		seen[label] = struct{}{}
	}
	return nil
}

// validateMatchSpecs checks side sizes. Team labels only make sense when
// teams are created in the same request.
func validateMatchSpecs(specs []MatchSpec, teamLabels bool) error {
	for i, spec := range specs {
		if len(spec.SideOne) > 2 || len(spec.SideTwo) > 2 {
			return invalidArgument(fmt.Sprintf("match %d: a side holds at most two players", i))
		}
		hasLabel := spec.TeamOneReference != nil || spec.TeamTwoReference != nil
		if hasLabel && !teamLabels {
			return invalidArgument(fmt.Sprintf("match %d: team references are only accepted when creating a tournament", i))
		}
		if (spec.TeamOne != nil && spec.TeamOneReference != nil) || (spec.TeamTwo != nil && spec.TeamTwoReference != nil) {
			return invalidArgument(fmt.Sprintf("match %d: a team is named by id or by reference, not both", i))
		}
	}
	return nil
}
