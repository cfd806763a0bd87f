package service

import (
	"errors"

	"hotel/internal/domain"
	"hotel/internal/models"
)

const (
	msgLoginRequired = "You have to be logged in"
	msgUnauthorized  = "Unauthorized"
	// MsgMissingFields is reported when any mandatory field is absent.
	MsgMissingFields = "Missing required fields"
)

// RequireUser rejects anonymous callers.
func RequireUser(actor *models.User) error {
	if actor == nil {
		return domain.Authentication(msgLoginRequired)
	}
	return nil
}

// RequireAdmin treats "no user" the same as "wrong role".
func RequireAdmin(actor *models.User) error {
	if !actor.IsAdmin() {
		return domain.Authorization(msgUnauthorized)
	}
	return nil
}

// notFound converts a repository miss into a client-facing NotFound.
func notFound(err error, msg string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound(msg)
	}
	return err
}

func actorID(actor *models.User) string {
	if actor == nil {
		return ""
	}
	return actor.ID
}
