package domain

// Category classifies transactions as a kind of income or expense.
// A category with a nil OwnerUserID is a global preset visible to everyone;
// user-created categories are private to their owner.
type Category struct {
	CategoryID  string          `json:"categoryID"`  // Primary Key (UUID)
	OwnerUserID *string         `json:"ownerUserID"` // nil = global preset
	Name        string          `json:"name"`
	Type        TransactionType `json:"type"` // income or expense
	AuditFields
}

// VisibleTo reports whether the category may be used by the given user.
func (c Category) VisibleTo(userID string) bool {
	return c.OwnerUserID == nil || *c.OwnerUserID == userID
}
