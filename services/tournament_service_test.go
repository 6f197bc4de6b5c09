package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/playerz/playerz-api/models"
	"github.com/playerz/playerz-api/repositories"
)

func newTournamentService(t *testing.T) (TournamentService, sqlmock.Sqlmock, *recordingPublisher) {
	t.Helper()
	db, mock := newMock(t)
	events := &recordingPublisher{}
	svc := NewTournamentService(
		db,
		repositories.NewPostgresTournamentRepository(db),
		repositories.NewPostgresTeamRepository(db),
		repositories.NewPostgresSessionRepository(db),
		repositories.NewPostgresMatchRepository(db),
		events,
		discardLogger(),
	)
	return svc, mock, events
}

var (
	insertTournament = regexp.QuoteMeta("INSERT INTO tournaments")
	insertMembership = regexp.QuoteMeta("INSERT INTO tournament_players")
	insertTeam       = regexp.QuoteMeta("INSERT INTO teams")
	insertSession    = regexp.QuoteMeta("INSERT INTO sessions")
	insertMatch      = regexp.QuoteMeta("INSERT INTO matches")
)

func TestCreateTournamentWritesEverythingInOneTransaction(t *testing.T) {
	svc, mock, events := newTournamentService(t)

	finished := "finished"
	input := CreateTournamentInput{
		Name:     "Spring Cup",
		Status:   &finished,
		Players:  []int{5, 5, 7},
		Teams:    []TeamSpec{{PlayerOne: 5, PlayerTwo: 7}},
		Sessions: []string{"R1"},
		Matches: []MatchSpec{
			{SessionReference: "R1", SideOne: []int{5}, SideTwo: []int{7}},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(insertTournament).
		WithArgs("Spring Cup", false, nil, "not_started", nil, nil, nil).
		WillReturnRows(idRow(11))
	mock.ExpectExec(insertMembership).WithArgs(11, 5).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertMembership).WithArgs(11, 7).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(insertTeam).WithArgs(11, 5, 7, nil).WillReturnRows(idRow(3))
	mock.ExpectQuery(insertSession).WithArgs(11, "R1").WillReturnRows(idRow(21))
	mock.ExpectQuery(insertMatch).
		WithArgs(11, 21, nil, nil, 5, nil, 7, nil, nil, "not_started", 0, 0, nil).
		WillReturnRows(idRow(31))
	mock.ExpectCommit()

	result, err := svc.CreateTournament(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TournamentID != 11 {
		t.Errorf("tournament id = %d, want 11", result.TournamentID)
	}
	want := []models.SessionRef{{ID: 21, Reference: "R1"}}
	if len(result.Sessions) != 1 || result.Sessions[0] != want[0] {
		t.Errorf("sessions = %+v, want %+v", result.Sessions, want)
	}
	if got := events.types(); len(got) != 1 || got[0] != EventTournamentCreated {
		t.Errorf("events = %v", got)
	}
}

func TestCreateTournamentUnknownSessionReferenceRollsBack(t *testing.T) {
	svc, mock, events := newTournamentService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(insertTournament).WillReturnRows(idRow(11))
	mock.ExpectQuery(insertSession).WithArgs(11, "R1").WillReturnRows(idRow(21))
	mock.ExpectRollback()

	_, err := svc.CreateTournament(context.Background(), CreateTournamentInput{
		Name:     "Spring Cup",
		Sessions: []string{"R1"},
		Matches:  []MatchSpec{{SessionReference: "R2"}},
	})
	if !errors.Is(err, ErrUnknownSessionReference) {
		t.Fatalf("got %v, want ErrUnknownSessionReference", err)
	}
	if !errors.Is(err, ErrInvalidArgument) || !errors.Is(err, ErrTransactionAborted) {
		t.Errorf("error %v must be an aborted invalid argument", err)
	}
	if len(events.types()) != 0 {
		t.Errorf("no event expected on rollback, got %v", events.types())
	}
}

func TestCreateTournamentMatchesResolveTeamLabels(t *testing.T) {
	svc, mock, _ := newTournamentService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(insertTournament).WillReturnRows(idRow(11))
	mock.ExpectQuery(insertTeam).WithArgs(11, 1, 2, nil).WillReturnRows(idRow(3))
	mock.ExpectQuery(insertTeam).WithArgs(11, 5, 6, nil).WillReturnRows(idRow(4))
	mock.ExpectQuery(insertSession).WithArgs(11, "R1").WillReturnRows(idRow(21))
	mock.ExpectQuery(insertMatch).
		WithArgs(11, 21, 3, 4, nil, nil, nil, nil, nil, "not_started", 0, 0, nil).
		WillReturnRows(idRow(31))
	mock.ExpectCommit()

	result, err := svc.CreateTournament(context.Background(), CreateTournamentInput{
		Name: "Doubles",
		Teams: []TeamSpec{
			{Reference: strPtr("red"), PlayerOne: 1, PlayerTwo: 2},
			{Reference: strPtr("blue"), PlayerOne: 5, PlayerTwo: 6},
		},
		Sessions: []string{"R1"},
		Matches: []MatchSpec{
			{SessionReference: "R1", TeamOneReference: strPtr("red"), TeamTwoReference: strPtr("blue")},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Teams) != 2 || result.Teams[0].ID != 3 || *result.Teams[1].Reference != "blue" {
		t.Errorf("teams = %+v", result.Teams)
	}
}

func TestCreateTournamentUnknownTeamLabelRollsBack(t *testing.T) {
	svc, mock, _ := newTournamentService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(insertTournament).WillReturnRows(idRow(11))
	mock.ExpectQuery(insertSession).WithArgs(11, "R1").WillReturnRows(idRow(21))
	mock.ExpectRollback()

	_, err := svc.CreateTournament(context.Background(), CreateTournamentInput{
		Name:     "Doubles",
		Sessions: []string{"R1"},
		Matches:  []MatchSpec{{SessionReference: "R1", TeamOneReference: strPtr("green")}},
	})
	if !errors.Is(err, ErrUnknownTeamReference) || !errors.Is(err, ErrTransactionAborted) {
		t.Fatalf("got %v, want aborted ErrUnknownTeamReference", err)
	}
}

func TestCreateSessionRejectsTeamLabels(t *testing.T) {
	svc, _, _ := newTournamentService(t)

	_, err := svc.CreateSession(context.Background(), 4, CreateSessionInput{
		Matches: []MatchSpec{{TeamOneReference: strPtr("red")}},
	})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
}

func TestCreateTournamentMissingPlayerIsReferential(t *testing.T) {
	svc, mock, _ := newTournamentService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(insertTournament).WillReturnRows(idRow(11))
	mock.ExpectExec(insertMembership).WithArgs(11, 404).
		WillReturnError(&pq.Error{Code: "23503", Message: "violates foreign key constraint", Constraint: "tournament_players_player_id_fkey"})
	mock.ExpectRollback()

	_, err := svc.CreateTournament(context.Background(), CreateTournamentInput{Name: "Cup", Players: []int{404}})
	if !errors.Is(err, ErrReferential) || !errors.Is(err, ErrTransactionAborted) {
		t.Fatalf("got %v, want aborted referential error", err)
	}
}

func TestCreateTournamentValidatesBeforeStorage(t *testing.T) {
	tests := []struct {
		name  string
		input CreateTournamentInput
	}{
		{"blank name", CreateTournamentInput{Name: "   "}},
		{"duplicate session labels", CreateTournamentInput{Name: "Cup", Sessions: []string{"R1", "R1"}}},
		{"empty session label", CreateTournamentInput{Name: "Cup", Sessions: []string{""}}},
		{"three players on a side", CreateTournamentInput{
			Name:     "Cup",
			Sessions: []string{"R1"},
			Matches:  []MatchSpec{{SessionReference: "R1", SideOne: []int{1, 2, 3}}},
		}},
		{"duplicate team labels", CreateTournamentInput{
			Name:  "Cup",
			Teams: []TeamSpec{{Reference: strPtr("A"), PlayerOne: 1, PlayerTwo: 2}, {Reference: strPtr("A"), PlayerOne: 3, PlayerTwo: 4}},
		}},
		{"team named by id and label", CreateTournamentInput{
			Name:     "Cup",
			Sessions: []string{"R1"},
			Matches:  []MatchSpec{{SessionReference: "R1", TeamOne: intPtr(3), TeamOneReference: strPtr("A")}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTournamentService(t)
			if _, err := svc.CreateTournament(context.Background(), tt.input); !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("got %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestGetRankingOfMissingTournament(t *testing.T) {
	svc, mock, _ := newTournamentService(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM tournaments WHERE id = $1")).
		WithArgs(8).
		WillReturnRows(sqlmock.NewRows(tournamentColumns))

	if _, err := svc.GetRanking(context.Background(), 8); !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("got %v, want ErrTournamentNotFound", err)
	}
}

func TestCreateSessionAddsMatchesAtomically(t *testing.T) {
	svc, mock, events := newTournamentService(t)

	ref := "Final"
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM tournaments WHERE id = $1")).WithArgs(4).WillReturnRows(tournamentRow(4, "Cup"))
	mock.ExpectQuery(insertSession).WithArgs(4, "Final").WillReturnRows(idRow(50))
	mock.ExpectQuery(insertMatch).
		WithArgs(4, 50, 1, 2, nil, nil, nil, nil, nil, "not_started", 0, 0, nil).
		WillReturnRows(idRow(60))
	mock.ExpectCommit()

	teamOne, teamTwo := 1, 2
	session, err := svc.CreateSession(context.Background(), 4, CreateSessionInput{
		Reference: &ref,
		Matches:   []MatchSpec{{TeamOne: &teamOne, TeamTwo: &teamTwo}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.ID != 50 || len(session.Matches) != 1 || session.Matches[0].ID != 60 {
		t.Errorf("unexpected session %+v", session)
	}
	if got := events.types(); len(got) != 1 || got[0] != EventSessionCreated {
		t.Errorf("events = %v", got)
	}
}

func TestCreateSessionForMissingTournament(t *testing.T) {
	svc, mock, _ := newTournamentService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM tournaments WHERE id = $1")).WithArgs(4).WillReturnRows(sqlmock.NewRows(tournamentColumns))
	mock.ExpectRollback()

	_, err := svc.CreateSession(context.Background(), 4, CreateSessionInput{})
	if !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("got %v, want ErrTournamentNotFound", err)
	}
}

func TestUpdateTournamentRejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newTournamentService(t)
	status := models.TournamentStatus("paused")
	if _, err := svc.UpdateTournament(context.Background(), 1, UpdateTournamentInput{Status: &status}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
}

func TestDedupeIDsKeepsFirstOccurrence(t *testing.T) {
	got := dedupeIDs([]int{5, 5, 7, 3, 7, 5})
	want := []int{5, 7, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
