package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// runInTx runs fn inside one transaction. Any error or panic rolls everything back;
// the returned error then wraps ErrTransactionAborted.
func runInTx(ctx context.Context, db *sql.DB, logger *slog.Logger, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %w", ErrTransactionAborted, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			// после неудачного Commit транзакция уже завершена
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logger.Error("rollback failed", slog.Any("error", rbErr), slog.Any("cause", err))
			}
			err = fmt.Errorf("%w: %w", ErrTransactionAborted, err)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
