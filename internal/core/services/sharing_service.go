package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/loooooooooogp/Account/internal/apperrors"
	"github.com/loooooooooogp/Account/internal/core/domain"
	portsrepo "github.com/loooooooooogp/Account/internal/core/ports/repositories"
	portssvc "github.com/loooooooooogp/Account/internal/core/ports/services"
	"github.com/loooooooooogp/Account/internal/dto"
	"github.com/loooooooooogp/Account/internal/middleware"
)

var (
	// ErrUnknownGrantee is returned when the grant target username does not exist.
	ErrUnknownGrantee = fmt.Errorf("%w: grantee user not found", apperrors.ErrNotFound)
	// ErrSelfGrant is returned when an owner tries to share an account with themselves.
	ErrSelfGrant = fmt.Errorf("%w: cannot share an account with its owner", apperrors.ErrValidation)
	// ErrAlreadyLinked is returned when a link for the (grantee, account) pair
	// already exists. Changing a permission requires revoke plus re-grant.
	ErrAlreadyLinked = fmt.Errorf("%w: account already shared with this user", apperrors.ErrDuplicate)
)

// sharingService handles share-link management and account authorization.
// Whether an account exists is only revealed to users who may access it, so
// authorization failures surface as not-found.
type sharingService struct {
	shareLinkRepo portsrepo.ShareLinkRepositoryFacade
	accountRepo   portsrepo.AccountReader
	userRepo      portsrepo.UserReader
}

// NewSharingService creates a new SharingService.
func NewSharingService(shareLinkRepo portsrepo.ShareLinkRepositoryFacade, accountRepo portsrepo.AccountReader, userRepo portsrepo.UserReader) portssvc.SharingSvcFacade {
	return &sharingService{
		shareLinkRepo: shareLinkRepo,
		accountRepo:   accountRepo,
		userRepo:      userRepo,
	}
}

// Ensure sharingService implements the portssvc.SharingSvcFacade interface
var _ portssvc.SharingSvcFacade = (*sharingService)(nil)

// GrantAccess creates a share link from the owner to the grantee. Checks run
// in a fixed order: account ownership, grantee existence, self-grant,
// permission validity, then pair uniqueness.
func (s *sharingService) GrantAccess(ctx context.Context, ownerUserID string, req dto.CreateShareLinkRequest) (*domain.ShareLink, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("account not found")
		}
		logger.Error("Failed to fetch account for grant", slog.String("error", err.Error()), slog.String("account_id", req.AccountID))
		return nil, fmt.Errorf("failed to grant access: %w", err)
	}
	if account.OwnerUserID != ownerUserID {
		// Non-owners are not told whether the account exists.
		return nil, apperrors.NewNotFoundError("account not found")
	}

	grantee, err := s.userRepo.FindUserByUsername(ctx, req.GranteeUsername)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrUnknownGrantee
		}
		logger.Error("Failed to fetch grantee for grant", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to grant access: %w", err)
	}

	if grantee.UserID == ownerUserID {
		return nil, ErrSelfGrant
	}

	if !req.Permission.Valid() {
		return nil, fmt.Errorf("%w: unknown permission level %q", apperrors.ErrValidation, req.Permission)
	}

	now := time.Now()
	link := domain.ShareLink{
		LinkID:       uuid.NewString(),
		OwnerUserID:  ownerUserID,
		LinkedUserID: grantee.UserID,
		AccountID:    req.AccountID,
		Permission:   req.Permission,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerUserID,
		},
	}

	if err := s.shareLinkRepo.SaveShareLink(ctx, link); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, ErrAlreadyLinked
		}
		logger.Error("Failed to save share link", slog.String("error", err.Error()), slog.String("account_id", req.AccountID))
		return nil, fmt.Errorf("failed to grant access: %w", err)
	}

	logger.Info("Share link created",
		slog.String("link_id", link.LinkID),
		slog.String("account_id", link.AccountID),
		slog.String("linked_user_id", link.LinkedUserID),
		slog.String("permission", string(link.Permission)),
	)
	return &link, nil
}

// RevokeAccess deletes a link. Only the owner who granted it may revoke it;
// anyone else gets not-found.
func (s *sharingService) RevokeAccess(ctx context.Context, ownerUserID, linkID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	link, err := s.shareLinkRepo.FindShareLinkByID(ctx, linkID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("share link not found")
		}
		logger.Error("Failed to fetch share link for revoke", slog.String("error", err.Error()), slog.String("link_id", linkID))
		return fmt.Errorf("failed to revoke access: %w", err)
	}

	if link.OwnerUserID != ownerUserID {
		return apperrors.NewNotFoundError("share link not found")
	}

	if err := s.shareLinkRepo.DeleteShareLink(ctx, linkID); err != nil {
		logger.Error("Failed to delete share link", slog.String("error", err.Error()), slog.String("link_id", linkID))
		return fmt.Errorf("failed to revoke access: %w", err)
	}

	logger.Info("Share link revoked", slog.String("link_id", linkID), slog.String("account_id", link.AccountID))
	return nil
}

// CanAccess reports whether the user may access the account at the given
// level. Owners always can; otherwise the share link must satisfy it.
// A missing account or missing link is simply "no access", not an error.
func (s *sharingService) CanAccess(ctx context.Context, userID, accountID string, requireWrite bool) (bool, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check account access: %w", err)
	}
	if account.OwnerUserID == userID {
		return true, nil
	}

	link, err := s.shareLinkRepo.FindShareLink(ctx, userID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check account access: %w", err)
	}

	required := domain.PermissionRead
	if requireWrite {
		required = domain.PermissionWrite
	}
	return link.Permission.Satisfies(required), nil
}

// AuthorizeAccountAccess is CanAccess as a gate. Users with no link at all
// get not-found so the account's existence stays hidden; users whose link is
// too weak for the required level get forbidden.
func (s *sharingService) AuthorizeAccountAccess(ctx context.Context, userID, accountID string, required domain.PermissionLevel) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("account not found")
		}
		return fmt.Errorf("failed to authorize account access: %w", err)
	}
	if account.OwnerUserID == userID {
		return nil
	}

	link, err := s.shareLinkRepo.FindShareLink(ctx, userID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("account not found")
		}
		return fmt.Errorf("failed to authorize account access: %w", err)
	}

	if !link.Permission.Satisfies(required) {
		return fmt.Errorf("%w: %s access required", apperrors.ErrForbidden, required)
	}
	return nil
}

// ListLinksOwnedBy retrieves the links the user granted on their accounts.
func (s *sharingService) ListLinksOwnedBy(ctx context.Context, userID string) ([]domain.ShareLinkView, error) {
	views, err := s.shareLinkRepo.ListLinksByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list granted share links: %w", err)
	}
	return views, nil
}

// ListLinksGrantedTo retrieves the links granted to the user.
func (s *sharingService) ListLinksGrantedTo(ctx context.Context, userID string) ([]domain.ShareLinkView, error) {
	views, err := s.shareLinkRepo.ListLinksByLinkedUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list received share links: %w", err)
	}
	return views, nil
}
