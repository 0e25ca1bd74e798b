package models

// ShareLink is the DB representation of an account share grant.
// (linked_user_id, account_id) is unique.
type ShareLink struct {
	LinkID       string `db:"link_id"`
	OwnerUserID  string `db:"owner_user_id"`
	LinkedUserID string `db:"linked_user_id"`
	AccountID    string `db:"account_id"`
	Permission   string `db:"permission_level"` // read | write
	AuditFields
}
