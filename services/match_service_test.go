package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/playerz/playerz-api/repositories"
)

func newMatchService(t *testing.T) (MatchService, sqlmock.Sqlmock, *recordingPublisher) {
	t.Helper()
	db, mock := newMock(t)
	events := &recordingPublisher{}
	svc := NewMatchService(
		repositories.NewPostgresMatchRepository(db),
		repositories.NewPostgresSessionRepository(db),
		events,
	)
	return svc, mock, events
}

func TestUpdateScoreRejectsUnknownSideWithoutQuery(t *testing.T) {
	svc, _, events := newMatchService(t)

	_, err := svc.UpdateScore(context.Background(), 1, 3, 5)
	if !errors.Is(err, ErrInvalidSide) {
		t.Fatalf("got %v, want ErrInvalidSide", err)
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ErrInvalidSide must be an ErrInvalidArgument")
	}
	if len(events.types()) != 0 {
		t.Errorf("unexpected events: %v", events.types())
	}
}

func TestUpdateScoreRejectsNegativeScore(t *testing.T) {
	svc, _, _ := newMatchService(t)

	if _, err := svc.UpdateScore(context.Background(), 1, 1, -1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
}

func TestUpdateScoreTouchesOnlyOneSide(t *testing.T) {
	svc, mock, events := newMatchService(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE matches SET score_team_one = $1 WHERE id = $2")).
		WithArgs(4, 7).
		WillReturnRows(sqlmock.NewRows(matchColumns).
			AddRow(7, 2, 10, nil, nil, 1, nil, 2, nil, nil, "in_progress", 4, 1, nil, fixedTime))

	m, err := svc.UpdateScore(context.Background(), 7, 1, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ScoreTeamOne != 4 || m.ScoreTeamTwo != 1 {
		t.Errorf("scores = %d/%d, want 4/1", m.ScoreTeamOne, m.ScoreTeamTwo)
	}

	got := events.types()
	if len(got) != 1 || got[0] != EventScoreUpdated {
		t.Fatalf("events = %v, want [%s]", got, EventScoreUpdated)
	}
	if events.events[0].tournamentID != 2 {
		t.Errorf("event sent to tournament %d, want 2", events.events[0].tournamentID)
	}
}

func TestUpdateScoreOfMissingMatch(t *testing.T) {
	svc, mock, events := newMatchService(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE matches SET score_team_two = $1")).
		WithArgs(2, 404).
		WillReturnRows(sqlmock.NewRows(matchColumns))

	if _, err := svc.UpdateScore(context.Background(), 404, 2, 2); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("got %v, want ErrMatchNotFound", err)
	}
	if len(events.types()) != 0 {
		t.Errorf("no event expected for a failed update")
	}
}

func TestCreateMatchRejectsSessionOfAnotherTournament(t *testing.T) {
	svc, mock, _ := newMatchService(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sessions WHERE id = $1")).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows(sessionColumns).AddRow(10, 99, "R1", fixedTime))

	sessionID := 10
	_, err := svc.CreateMatch(context.Background(), CreateMatchInput{TournamentID: 1, SessionID: &sessionID})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
}

func TestCreateMatchDefaultsToNotStarted(t *testing.T) {
	svc, mock, events := newMatchService(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO matches")).
		WithArgs(1, nil, nil, nil, nil, nil, nil, nil, nil, "not_started", 0, 0, nil).
		WillReturnRows(idRow(50))

	m, err := svc.CreateMatch(context.Background(), CreateMatchInput{TournamentID: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID != 50 {
		t.Errorf("id = %d, want 50", m.ID)
	}
	if got := events.types(); len(got) != 1 || got[0] != EventMatchCreated {
		t.Errorf("events = %v", got)
	}
}

func TestCreateMatchRejectsNegativeScores(t *testing.T) {
	svc, _, _ := newMatchService(t)

	_, err := svc.CreateMatch(context.Background(), CreateMatchInput{TournamentID: 1, ScoreTeamTwo: -3})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
}

func TestDeleteMatchPublishesSnapshot(t *testing.T) {
	svc, mock, events := newMatchService(t)

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM matches WHERE id = $1")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(matchColumns).
			AddRow(7, 2, nil, nil, nil, nil, nil, nil, nil, nil, "finished", 3, 0, nil, fixedTime))

	m, err := svc.DeleteMatch(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ScoreTeamOne != 3 {
		t.Errorf("expected the deleted snapshot, got %+v", m)
	}
	if got := events.types(); len(got) != 1 || got[0] != EventMatchDeleted {
		t.Errorf("events = %v", got)
	}
}

func TestCreateMatchWithUnknownSessionIsInvalid(t *testing.T) {
	svc, mock, _ := newMatchService(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sessions WHERE id = $1")).
		WithArgs(77).
		WillReturnRows(sqlmock.NewRows(sessionColumns))

	sessionID := 77
	_, err := svc.CreateMatch(context.Background(), CreateMatchInput{TournamentID: 1, SessionID: &sessionID})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Errorf("an unknown session must not read as a missing match: %v", err)
	}
}
