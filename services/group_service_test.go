package services

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/playerz/playerz-api/repositories"
)

func TestAddMemberToMissingGroup(t *testing.T) {
	db, mock := newMock(t)
	svc := NewGroupService(repositories.NewPostgresGroupRepository(db), repositories.NewPostgresPlayerRepository(db))

	mock.ExpectQuery(regexp.QuoteMeta("FROM player_groups WHERE id = $1")).WithArgs(8).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}))

	if _, err := svc.AddMember(context.Background(), 8, AddMemberInput{PlayerID: 1}); !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("got %v, want ErrGroupNotFound", err)
	}
}

func TestAddMemberIsIdempotent(t *testing.T) {
	db, mock := newMock(t)
	svc := NewGroupService(repositories.NewPostgresGroupRepository(db), repositories.NewPostgresPlayerRepository(db))

	for _, affected := range []int64{1, 0} {
		mock.ExpectQuery(regexp.QuoteMeta("FROM player_groups WHERE id = $1")).WithArgs(8).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).AddRow(8, "Friday", fixedTime))
		mock.ExpectQuery(regexp.QuoteMeta("FROM players WHERE id = $1")).WithArgs(1).
			WillReturnRows(sqlmock.NewRows(playerColumns).AddRow(1, "neo", false, nil, nil, fixedTime))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO player_group_members")).WithArgs(8, 1).
			WillReturnResult(sqlmock.NewResult(0, affected))
	}

	added, err := svc.AddMember(context.Background(), 8, AddMemberInput{PlayerID: 1})
	if err != nil || !added {
		t.Fatalf("first add: added=%v err=%v", added, err)
	}
	added, err = svc.AddMember(context.Background(), 8, AddMemberInput{PlayerID: 1})
	if err != nil || added {
		t.Fatalf("second add: added=%v err=%v", added, err)
	}
}

func TestCreateGroupRequiresName(t *testing.T) {
	db, _ := newMock(t)
	svc := NewGroupService(repositories.NewPostgresGroupRepository(db), repositories.NewPostgresPlayerRepository(db))

	if _, err := svc.CreateGroup(context.Background(), GroupInput{Name: ""}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
}
