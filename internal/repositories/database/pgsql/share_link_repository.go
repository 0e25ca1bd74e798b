package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loooooooooogp/Account/internal/apperrors"
	"github.com/loooooooooogp/Account/internal/core/domain"
	portsrepo "github.com/loooooooooogp/Account/internal/core/ports/repositories"
	"github.com/loooooooooogp/Account/internal/models"
)

type PgxShareLinkRepository struct {
	BaseRepository
}

func newPgxShareLinkRepository(db *pgxpool.Pool) portsrepo.ShareLinkRepositoryFacade {
	return &PgxShareLinkRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxShareLinkRepository implements portsrepo.ShareLinkRepositoryFacade
var _ portsrepo.ShareLinkRepositoryFacade = (*PgxShareLinkRepository)(nil)

// Helper to convert models.ShareLink to domain.ShareLink
func toDomainShareLink(m models.ShareLink) domain.ShareLink {
	return domain.ShareLink{
		LinkID:       m.LinkID,
		OwnerUserID:  m.OwnerUserID,
		LinkedUserID: m.LinkedUserID,
		AccountID:    m.AccountID,
		Permission:   domain.PermissionLevel(m.Permission),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const shareLinkColumns = `link_id, owner_user_id, linked_user_id, account_id, permission_level, created_at, created_by, last_updated_at, last_updated_by`

func scanShareLink(row pgx.Row) (models.ShareLink, error) {
	var m models.ShareLink
	err := row.Scan(
		&m.LinkID,
		&m.OwnerUserID,
		&m.LinkedUserID,
		&m.AccountID,
		&m.Permission,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxShareLinkRepository) SaveShareLink(ctx context.Context, link domain.ShareLink) error {
	query := `
		INSERT INTO share_links (link_id, owner_user_id, linked_user_id, account_id, permission_level, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		link.LinkID,
		link.OwnerUserID,
		link.LinkedUserID,
		link.AccountID,
		string(link.Permission),
		link.CreatedAt,
		link.CreatedBy,
		link.LastUpdatedAt,
		link.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: share link for this user and account", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save share link: %w", err)
	}
	return nil
}

func (r *PgxShareLinkRepository) DeleteShareLink(ctx context.Context, linkID string) error {
	query := `DELETE FROM share_links WHERE link_id = $1;`

	ct, err := r.Pool.Exec(ctx, query, linkID)
	if err != nil {
		return fmt.Errorf("failed to delete share link %s: %w", linkID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxShareLinkRepository) FindShareLinkByID(ctx context.Context, linkID string) (*domain.ShareLink, error) {
	query := `SELECT ` + shareLinkColumns + ` FROM share_links WHERE link_id = $1;`

	m, err := scanShareLink(r.Pool.QueryRow(ctx, query, linkID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find share link by ID %s: %w", linkID, err)
	}

	domainLink := toDomainShareLink(m)
	return &domainLink, nil
}

func (r *PgxShareLinkRepository) FindShareLink(ctx context.Context, linkedUserID, accountID string) (*domain.ShareLink, error) {
	query := `SELECT ` + shareLinkColumns + ` FROM share_links WHERE linked_user_id = $1 AND account_id = $2;`

	m, err := scanShareLink(r.Pool.QueryRow(ctx, query, linkedUserID, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find share link: %w", err)
	}

	domainLink := toDomainShareLink(m)
	return &domainLink, nil
}

// shareLinkViewQuery joins links with account and user display data. The
// owner username comes off the link itself, the grantee from linked_user_id.
const shareLinkViewQuery = `
	SELECT sl.link_id, sl.owner_user_id, sl.linked_user_id, sl.account_id, sl.permission_level,
	       sl.created_at, sl.created_by, sl.last_updated_at, sl.last_updated_by,
	       a.name, a.account_type, ou.username, lu.username
	FROM share_links sl
	JOIN accounts a ON a.account_id = sl.account_id
	JOIN users ou ON ou.user_id = sl.owner_user_id
	JOIN users lu ON lu.user_id = sl.linked_user_id
`

func (r *PgxShareLinkRepository) listShareLinkViews(ctx context.Context, query string, arg any) ([]domain.ShareLinkView, error) {
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query share link views: %w", err)
	}
	defer rows.Close()

	views := []domain.ShareLinkView{}
	for rows.Next() {
		var m models.ShareLink
		var view domain.ShareLinkView
		err := rows.Scan(
			&m.LinkID,
			&m.OwnerUserID,
			&m.LinkedUserID,
			&m.AccountID,
			&m.Permission,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&view.AccountName,
			&view.AccountType,
			&view.OwnerUsername,
			&view.LinkedUsername,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan share link view row: %w", err)
		}
		view.ShareLink = toDomainShareLink(m)
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating share link view rows: %w", err)
	}

	return views, nil
}

func (r *PgxShareLinkRepository) ListLinksByOwner(ctx context.Context, ownerUserID string) ([]domain.ShareLinkView, error) {
	query := shareLinkViewQuery + ` WHERE sl.owner_user_id = $1 ORDER BY sl.created_at DESC;`
	return r.listShareLinkViews(ctx, query, ownerUserID)
}

func (r *PgxShareLinkRepository) ListLinksByLinkedUser(ctx context.Context, linkedUserID string) ([]domain.ShareLinkView, error) {
	query := shareLinkViewQuery + ` WHERE sl.linked_user_id = $1 ORDER BY sl.created_at DESC;`
	return r.listShareLinkViews(ctx, query, linkedUserID)
}
