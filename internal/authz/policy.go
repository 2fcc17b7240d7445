// Package authz holds the authorization rules for portfolio records. Every
// decision takes an explicit Identity value; nothing here reads request or
// session state.
package authz

// Identity is the acting user attached to a request.
type Identity struct {
	UserID  int
	IsAdmin bool
}

// CanModifyProject reports whether the identity may edit or delete a project
// owned by ownerID. Owners and admins may; everyone else may not.
func CanModifyProject(identity Identity, ownerID int) bool {
	return identity.UserID == ownerID || identity.IsAdmin
}

// CanViewAdmin reports whether the identity may see the admin listings.
func CanViewAdmin(identity Identity) bool {
	return identity.IsAdmin
}
