package query

import "productivity_tracker/internal/model"

// Identity is the authenticated caller as carried by the JWT claims.
type Identity struct {
	UserID int64
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

// OwnerScope is the visibility constraint ANDed with user-supplied filters.
// At most one of OwnerID / OwnerIn is set; both nil means unconstrained.
type OwnerScope struct {
	OwnerID *int64
	OwnerIn []int64
}

// ListScope narrows a listing to what the identity may see. Non-admins are
// always pinned to their own records, no request parameter can widen that.
// Admins are unconstrained by default; requestedOwner pins them to a single
// user and wins over the regularIDs inclusion set when both are supplied.
func ListScope(ident Identity, requestedOwner *int64, regularIDs []int64) OwnerScope {
	if !ident.IsAdmin() {
		id := ident.UserID
		return OwnerScope{OwnerID: &id}
	}
	if requestedOwner != nil {
		return OwnerScope{OwnerID: requestedOwner}
	}
	if regularIDs != nil {
		return OwnerScope{OwnerIn: regularIDs}
	}
	return OwnerScope{}
}

// SelfScope pins a query to the caller's own records regardless of role.
// Used by the dashboard endpoints, which are self-scoped even for admins.
func SelfScope(ident Identity) OwnerScope {
	id := ident.UserID
	return OwnerScope{OwnerID: &id}
}

// CanView reports whether the identity may read a record with the given
// owner. Admins have read access to every record.
func CanView(ident Identity, ownerID int64) bool {
	return ident.UserID == ownerID || ident.IsAdmin()
}

// CanModify reports whether the identity may update or delete a record with
// the given owner. Only the owner may mutate, admins included: read-all does
// not imply write-all.
func CanModify(ident Identity, ownerID int64) bool {
	return ident.UserID == ownerID
}

// ApplyToExpenses merges the scope into an expense filter.
func (s OwnerScope) ApplyToExpenses(f *model.ExpenseFilter) {
	f.OwnerID = s.OwnerID
	f.OwnerIn = s.OwnerIn
}

// ApplyToTasks merges the scope into a task filter.
func (s OwnerScope) ApplyToTasks(f *model.TaskFilter) {
	f.OwnerID = s.OwnerID
	f.OwnerIn = s.OwnerIn
}
