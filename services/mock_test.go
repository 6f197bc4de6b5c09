package services

import (
	"database/sql"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var fixedTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sql expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type publishedEvent struct {
	tournamentID int
	eventType    string
	payload      interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(tournamentID int, eventType string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{tournamentID, eventType, payload})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.eventType
	}
	return out
}

var (
	playerColumns     = []string{"id", "pseudo", "have_avatar", "avatar_url", "avatar_key", "created_at"}
	teamColumns       = []string{"id", "tournament_id", "player_one", "player_two", "pseudo", "created_at"}
	sessionColumns    = []string{"id", "tournament_id", "reference", "created_at"}
	tournamentColumns = []string{"id", "name", "is_time_free", "time", "status", "place", "start_date", "end_date", "created_at"}
	matchColumns      = []string{
		"id", "tournament_id", "session_id", "team_one", "team_two", "player_one", "player_two",
		"player_three", "player_four", "terrain", "status", "score_team_one", "score_team_two", "date", "created_at",
	}
)

func tournamentRow(id int, name string) *sqlmock.Rows {
	return sqlmock.NewRows(tournamentColumns).
		AddRow(id, name, false, nil, "not_started", nil, nil, nil, fixedTime)
}

func idRow(id int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "created_at"}).AddRow(id, fixedTime)
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
