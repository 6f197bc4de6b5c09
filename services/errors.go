package services

import (
	"errors"
	"fmt"

	"github.com/playerz/playerz-api/repositories"
)

// Таксономия ошибок, используемая сервисами и маппингом HTTP.
var (
	ErrNotFound           = repositories.ErrNotFound
	ErrReferential        = repositories.ErrReferenceViolation
	ErrConflict           = repositories.ErrConflict
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrTransactionAborted = errors.New("transaction aborted")

	ErrPlayerNotFound      = repositories.ErrPlayerNotFound
	ErrGroupNotFound       = repositories.ErrGroupNotFound
	ErrGroupMemberNotFound = repositories.ErrGroupMemberNotFound
	ErrTeamNotFound        = repositories.ErrTeamNotFound
	ErrTournamentNotFound  = repositories.ErrTournamentNotFound
	ErrSessionNotFound     = repositories.ErrSessionNotFound
	ErrMatchNotFound       = repositories.ErrMatchNotFound

	ErrStorageDisabled = errors.New("object storage is not configured")
)

func invalidArgument(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, msg)
}

// normalizeRepositoryError folds repository errors a client caused into ErrInvalidArgument.
func normalizeRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNoFieldsToUpdate),
		errors.Is(err, repositories.ErrCheckViolation):
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	return err
}
