package services

import (
	"context"

	"github.com/loooooooooogp/Account/internal/core/domain"
	"github.com/loooooooooogp/Account/internal/dto"
)

// SharingAuthorizerSvc is the narrow authorization interface other services
// depend on. Every mutation path in the ledger goes through it, so the
// owner-or-linked-with-permission rule lives in exactly one place.
type SharingAuthorizerSvc interface {
	// CanAccess reports whether the user may access the account at the given
	// level. Owners always can; otherwise a share link must satisfy it.
	CanAccess(ctx context.Context, userID, accountID string, requireWrite bool) (bool, error)

	// AuthorizeAccountAccess is CanAccess as a gate: nil when allowed,
	// apperrors.ErrNotFound when the account does not exist or the user has
	// no link at all, apperrors.ErrForbidden when a link exists but is too weak.
	AuthorizeAccountAccess(ctx context.Context, userID, accountID string, required domain.PermissionLevel) error
}

// SharingSvcFacade defines share-link management plus the authorizer.
type SharingSvcFacade interface {
	SharingAuthorizerSvc

	// GrantAccess creates a share link from the owner to the grantee.
	GrantAccess(ctx context.Context, ownerUserID string, req dto.CreateShareLinkRequest) (*domain.ShareLink, error)

	// RevokeAccess deletes a link the owner created.
	RevokeAccess(ctx context.Context, ownerUserID, linkID string) error

	// ListLinksOwnedBy retrieves links the user granted on their accounts.
	ListLinksOwnedBy(ctx context.Context, userID string) ([]domain.ShareLinkView, error)

	// ListLinksGrantedTo retrieves links granted to the user.
	ListLinksGrantedTo(ctx context.Context, userID string) ([]domain.ShareLinkView, error)
}
