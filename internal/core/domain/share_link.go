package domain

// PermissionLevel is the access level a share link grants on an account.
type PermissionLevel string

const (
	PermissionRead  PermissionLevel = "read"
	PermissionWrite PermissionLevel = "write"
)

// Valid reports whether p is one of the known permission levels.
func (p PermissionLevel) Valid() bool {
	return p == PermissionRead || p == PermissionWrite
}

// Satisfies reports whether p covers the required level. Write implies read.
func (p PermissionLevel) Satisfies(required PermissionLevel) bool {
	if required == PermissionWrite {
		return p == PermissionWrite
	}
	return p.Valid()
}

// ShareLink grants a non-owner user access to an account at a permission
// level. A (linked user, account) pair is unique: changing the permission
// requires revoking and re-granting.
type ShareLink struct {
	LinkID       string          `json:"linkID"`       // Primary Key (UUID)
	OwnerUserID  string          `json:"ownerUserID"`  // Account owner who created the grant
	LinkedUserID string          `json:"linkedUserID"` // Grantee
	AccountID    string          `json:"accountID"`
	Permission   PermissionLevel `json:"permission"`
	AuditFields
}

// ShareLinkView is a ShareLink joined with display data for listings.
type ShareLinkView struct {
	ShareLink
	AccountName    string `json:"accountName"`
	AccountType    string `json:"accountType"`
	OwnerUsername  string `json:"ownerUsername"`
	LinkedUsername string `json:"linkedUsername"`
}
