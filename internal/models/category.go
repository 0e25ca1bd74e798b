package models

// Category is the DB representation of a transaction category.
// OwnerUserID is NULL for global presets.
type Category struct {
	CategoryID  string  `db:"category_id"`
	OwnerUserID *string `db:"owner_user_id"`
	Name        string  `db:"name"`
	Type        string  `db:"type"` // income | expense
	AuditFields
}
