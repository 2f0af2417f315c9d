package services

import (
	"context"
	"net/http"

	apperrors "github.com/charlesng35/orgauthz/pkg/errors"
)

var (
	// ErrRoleNotFound indicates the requested role does not exist.
	ErrRoleNotFound = apperrors.New("ROLE_NOT_FOUND", "Role not found", http.StatusNotFound)
	// ErrMemberNotFound indicates the requested member does not exist.
	ErrMemberNotFound = apperrors.New("MEMBER_NOT_FOUND", "Member not found", http.StatusNotFound)
)

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}
