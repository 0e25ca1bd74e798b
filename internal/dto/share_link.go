package dto

import (
	"time"

	"github.com/loooooooooogp/Account/internal/core/domain"
)

// CreateShareLinkRequest defines the data needed to grant account access.
// The grantee is addressed by username, as entered by the owner.
type CreateShareLinkRequest struct {
	GranteeUsername string                 `json:"granteeUsername" binding:"required"`
	AccountID       string                 `json:"accountID" binding:"required,uuid"`
	Permission      domain.PermissionLevel `json:"permission" binding:"required,permission"`
}

// CreateShareLinkResponse is returned when a grant is created. Listings use
// the display-enriched ShareLinkResponse instead.
type CreateShareLinkResponse struct {
	LinkID       string                 `json:"linkID"`
	AccountID    string                 `json:"accountID"`
	OwnerUserID  string                 `json:"ownerUserID"`
	LinkedUserID string                 `json:"linkedUserID"`
	Permission   domain.PermissionLevel `json:"permission"`
	CreatedAt    time.Time              `json:"createdAt"`
}

// ToCreateShareLinkResponse converts a domain.ShareLink to CreateShareLinkResponse DTO.
func ToCreateShareLinkResponse(l *domain.ShareLink) CreateShareLinkResponse {
	return CreateShareLinkResponse{
		LinkID:       l.LinkID,
		AccountID:    l.AccountID,
		OwnerUserID:  l.OwnerUserID,
		LinkedUserID: l.LinkedUserID,
		Permission:   l.Permission,
		CreatedAt:    l.CreatedAt,
	}
}

// ShareLinkResponse defines the data returned for a share link.
type ShareLinkResponse struct {
	LinkID         string                 `json:"linkID"`
	AccountID      string                 `json:"accountID"`
	AccountName    string                 `json:"accountName"`
	AccountType    string                 `json:"accountType"`
	OwnerUsername  string                 `json:"ownerUsername"`
	LinkedUsername string                 `json:"linkedUsername"`
	Permission     domain.PermissionLevel `json:"permission"`
	CreatedAt      time.Time              `json:"createdAt"`
}

// ToShareLinkResponse converts a domain.ShareLinkView to ShareLinkResponse DTO.
func ToShareLinkResponse(v *domain.ShareLinkView) ShareLinkResponse {
	return ShareLinkResponse{
		LinkID:         v.LinkID,
		AccountID:      v.AccountID,
		AccountName:    v.AccountName,
		AccountType:    v.AccountType,
		OwnerUsername:  v.OwnerUsername,
		LinkedUsername: v.LinkedUsername,
		Permission:     v.Permission,
		CreatedAt:      v.CreatedAt,
	}
}

// ToListShareLinkResponse converts a slice of views to ShareLinkResponse DTOs.
func ToListShareLinkResponse(views []domain.ShareLinkView) []ShareLinkResponse {
	res := make([]ShareLinkResponse, len(views))
	for i := range views {
		res[i] = ToShareLinkResponse(&views[i])
	}
	return res
}
