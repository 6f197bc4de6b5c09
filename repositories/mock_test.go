package repositories

import (
	"database/sql"
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

func playerRow(id int, pseudo string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "pseudo", "have_avatar", "avatar_url", "avatar_key", "created_at"}).
		AddRow(id, pseudo, false, nil, nil, fixedTime)
}

func teamRow(id, tournamentID, one, two int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "tournament_id", "player_one", "player_two", "pseudo", "created_at"}).
		AddRow(id, tournamentID, one, two, nil, fixedTime)
}

func matchRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "tournament_id", "session_id", "team_one", "team_two", "player_one", "player_two",
		"player_three", "player_four", "terrain", "status", "score_team_one", "score_team_two", "date", "created_at",
	})
}
