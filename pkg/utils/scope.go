package utils

// Scope is the caller a request acts for. Non-admin callers only reach rows
// that chain up to their own account.
type Scope struct {
	AccountID uint
	Admin     bool
}

func (s Scope) CanAccessAccount(accountID uint) bool {
	return s.Admin || s.AccountID == accountID
}
