package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
)

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

var (
	ErrNotFound           = errors.New("requested resource not found")
	ErrReferenceViolation = errors.New("referenced record does not exist")
	ErrConflict           = errors.New("record already exists")
	ErrCheckViolation     = errors.New("value rejected by a table constraint")
	ErrNoFieldsToUpdate   = errors.New("no fields provided for update")
)

// PostgreSQL error codes used for mapping.
const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
	pqCheckViolation      = "23514"
)

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func pick(exec SQLExecutor, db *sql.DB) SQLExecutor {
	if exec != nil {
		return exec
	}
	return db
}

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}

// translatePQError maps driver constraint failures to repository errors,
// keeping the driver message for diagnostics.
func translatePQError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqForeignKeyViolation:
			return fmt.Errorf("%w: %s (%s)", ErrReferenceViolation, pqErr.Message, pqErr.Constraint)
		case pqUniqueViolation:
			return fmt.Errorf("%w: %s (%s)", ErrConflict, pqErr.Message, pqErr.Constraint)
		case pqCheckViolation:
			return fmt.Errorf("%w: %s (%s)", ErrCheckViolation, pqErr.Message, pqErr.Constraint)
		}
	}
	return err
}

// updateSet accumulates "column = $n" assignments for partial updates.
// Column names always come from repository code, never from request input.
type updateSet struct {
	columns []string
	args    []interface{}
}

func (u *updateSet) add(column string, value interface{}) {
	u.args = append(u.args, value)
	u.columns = append(u.columns, column+" = $"+strconv.Itoa(len(u.args)))
}

func (u *updateSet) empty() bool {
	return len(u.columns) == 0
}

// query builds "UPDATE table SET ... WHERE id = $n RETURNING returning".
func (u *updateSet) query(table string, id int, returning string) (string, []interface{}) {
	args := append(u.args, id)
	q := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(u.columns, ", "), len(args), returning)
	return q, args
}
