package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestRunInTxCommitFailureLogsNoRollbackError(t *testing.T) {
	db, mock := newMock(t)
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("connection lost"))

	err := runInTx(context.Background(), db, logger, func(tx *sql.Tx) error { return nil })
	if !errors.Is(err, ErrTransactionAborted) {
		t.Fatalf("got %v, want ErrTransactionAborted", err)
	}
	if strings.Contains(logs.String(), "rollback failed") {
		t.Errorf("unexpected rollback log: %s", logs.String())
	}
}

func TestRunInTxRollsBackOnError(t *testing.T) {
	db, mock := newMock(t)
	cause := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := runInTx(context.Background(), db, discardLogger(), func(tx *sql.Tx) error { return cause })
	if !errors.Is(err, cause) || !errors.Is(err, ErrTransactionAborted) {
		t.Fatalf("got %v, want aborted %v", err, cause)
	}
}

func TestRunInTxRollsBackOnPanic(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	defer func() {
		if recover() == nil {
			t.Fatal("panic was swallowed")
		}
	}()
	_ = runInTx(context.Background(), db, discardLogger(), func(tx *sql.Tx) error { panic("bad state") })
}
