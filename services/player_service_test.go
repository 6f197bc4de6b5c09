package services

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/playerz/playerz-api/repositories"
	"github.com/playerz/playerz-api/storage"
)

type fakeUploader struct {
	mu       sync.Mutex
	uploaded map[string]string
	deleted  []string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploaded: make(map[string]string)}
}

func (f *fakeUploader) Upload(_ context.Context, key, contentType string, r io.Reader) (*storage.UploadResult, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded[key] = contentType + ":" + string(body)
	return &storage.UploadResult{Key: key, Location: f.GetPublicURL(key)}, nil
}

func (f *fakeUploader) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func TestUploadAvatarWithoutStorage(t *testing.T) {
	db, _ := newMock(t)
	svc := NewPlayerService(repositories.NewPostgresPlayerRepository(db), nil, discardLogger())

	_, err := svc.UploadAvatar(context.Background(), 1, strings.NewReader("x"), "a.png", "image/png")
	if !errors.Is(err, ErrStorageDisabled) {
		t.Fatalf("got %v, want ErrStorageDisabled", err)
	}
}

func TestUploadAvatarRejectsUnsupportedType(t *testing.T) {
	db, _ := newMock(t)
	svc := NewPlayerService(repositories.NewPostgresPlayerRepository(db), newFakeUploader(), discardLogger())

	_, err := svc.UploadAvatar(context.Background(), 1, strings.NewReader("x"), "a.pdf", "application/pdf")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
}

func TestUploadAvatarReplacesPreviousObject(t *testing.T) {
	db, mock := newMock(t)
	uploader := newFakeUploader()
	svc := NewPlayerService(repositories.NewPostgresPlayerRepository(db), uploader, discardLogger())

	mock.ExpectQuery(regexp.QuoteMeta("FROM players WHERE id = $1")).WithArgs(1).
		WillReturnRows(sqlmock.NewRows(playerColumns).
			AddRow(1, "Neo", true, "https://cdn.example.com/old.png", "players/1/old.png", fixedTime))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE players SET have_avatar = $1, avatar_url = $2, avatar_key = $3 WHERE id = $4")).
		WithArgs(true, sqlmock.AnyArg(), sqlmock.AnyArg(), 1).
		WillReturnRows(sqlmock.NewRows(playerColumns).
			AddRow(1, "Neo", true, "https://cdn.example.com/players/1/neo-new.png", "players/1/neo-new.png", fixedTime))

	player, err := svc.UploadAvatar(context.Background(), 1, strings.NewReader("png-bytes"), "me.png", "image/png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !player.HaveAvatar {
		t.Errorf("have_avatar not set")
	}

	if len(uploader.uploaded) != 1 {
		t.Fatalf("uploaded %d objects, want 1", len(uploader.uploaded))
	}
	for key, body := range uploader.uploaded {
		if !strings.HasPrefix(key, "players/1/neo-") || !strings.HasSuffix(key, ".png") {
			t.Errorf("unexpected key %q", key)
		}
		if body != "image/png:png-bytes" {
			t.Errorf("unexpected body %q", body)
		}
	}
	if len(uploader.deleted) != 1 || uploader.deleted[0] != "players/1/old.png" {
		t.Errorf("deleted = %v, want the previous key", uploader.deleted)
	}
}

func TestUploadAvatarCleansUpWhenUpdateFails(t *testing.T) {
	db, mock := newMock(t)
	uploader := newFakeUploader()
	svc := NewPlayerService(repositories.NewPostgresPlayerRepository(db), uploader, discardLogger())

	mock.ExpectQuery(regexp.QuoteMeta("FROM players WHERE id = $1")).WithArgs(2).
		WillReturnRows(sqlmock.NewRows(playerColumns).AddRow(2, "Trinity", false, nil, nil, fixedTime))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE players SET")).
		WillReturnError(errors.New("connection reset"))

	if _, err := svc.UploadAvatar(context.Background(), 2, strings.NewReader("x"), "t.jpg", "image/jpeg"); err == nil {
		t.Fatal("expected an error")
	}
	if len(uploader.deleted) != 1 || !strings.HasPrefix(uploader.deleted[0], "players/2/trinity-") {
		t.Errorf("orphan object not removed: %v", uploader.deleted)
	}
}

func TestCreatePlayerRequiresPseudo(t *testing.T) {
	db, _ := newMock(t)
	svc := NewPlayerService(repositories.NewPostgresPlayerRepository(db), nil, discardLogger())

	if _, err := svc.CreatePlayer(context.Background(), CreatePlayerInput{Pseudo: "   "}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("got %v, want ErrInvalidArgument", err)
	}
}

func TestDeletePlayerRemovesAvatar(t *testing.T) {
	db, mock := newMock(t)
	uploader := newFakeUploader()
	svc := NewPlayerService(repositories.NewPostgresPlayerRepository(db), uploader, discardLogger())

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM players WHERE id = $1")).WithArgs(3).
		WillReturnRows(sqlmock.NewRows(playerColumns).
			AddRow(3, "Morpheus", true, "https://cdn.example.com/players/3/a.png", "players/3/a.png", fixedTime))

	if _, err := svc.DeletePlayer(context.Background(), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(uploader.deleted) != 1 || uploader.deleted[0] != "players/3/a.png" {
		t.Errorf("deleted = %v", uploader.deleted)
	}
}
