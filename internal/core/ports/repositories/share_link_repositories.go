package repositories

import (
	"context"

	"github.com/loooooooooogp/Account/internal/core/domain"
)

// ShareLinkReader defines read operations for share link data
type ShareLinkReader interface {
	// FindShareLinkByID retrieves a link by its ID.
	FindShareLinkByID(ctx context.Context, linkID string) (*domain.ShareLink, error)

	// FindShareLink retrieves the link for a (linked user, account) pair, if any.
	FindShareLink(ctx context.Context, linkedUserID, accountID string) (*domain.ShareLink, error)

	// ListLinksByOwner retrieves the links a user has granted on their
	// accounts, newest first, joined with account and grantee display data.
	ListLinksByOwner(ctx context.Context, ownerUserID string) ([]domain.ShareLinkView, error)

	// ListLinksByLinkedUser retrieves the links granted to a user, newest
	// first, joined with account and owner display data.
	ListLinksByLinkedUser(ctx context.Context, linkedUserID string) ([]domain.ShareLinkView, error)
}

// ShareLinkWriter defines write operations for share link data
type ShareLinkWriter interface {
	// SaveShareLink persists a new link. Returns apperrors.ErrDuplicate when
	// a link for the same (linked user, account) pair already exists.
	SaveShareLink(ctx context.Context, link domain.ShareLink) error

	// DeleteShareLink removes a link by ID.
	DeleteShareLink(ctx context.Context, linkID string) error
}

// ShareLinkRepositoryFacade combines all share-link repository interfaces
type ShareLinkRepositoryFacade interface {
	ShareLinkReader
	ShareLinkWriter
}
