package auth

import (
	"github.com/google/uuid"
	"github.com/shelfwise/catalog-api/internal/model"
)

// Principal is the actor behind a request. The zero value is anonymous.
type Principal struct {
	UserID        uuid.UUID
	Username      string
	Role          model.Role
	Authenticated bool
}

type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

type Resource string

const (
	ResourceBook      Resource = "book"
	ResourceAuthor    Resource = "author"
	ResourceLibrary   Resource = "library"
	ResourceLibrarian Resource = "librarian"
	ResourceUser      Resource = "user"
)

type Permission string

// PermissionFor names the grant an action needs on a resource, e.g.
// can_view_book, can_create_book, can_edit_book, can_delete_book.
func PermissionFor(action Action, resource Resource) Permission {
	return Permission("can_" + string(action) + "_" + string(resource))
}

type Effect int

const (
	Allow Effect = iota
	DenyUnauthorized
	DenyForbidden
)

type Decision struct {
	Effect Effect
	Reason string
}

// Policy decides whether a principal may perform an action on a
// resource kind. Implementations are pure functions of their inputs.
type Policy interface {
	Authorize(p Principal, action Action, resource Resource) Decision
}

// legacyPolicy allows everything to any authenticated principal and
// reads to everyone.
type legacyPolicy struct{}

func LegacyPolicy() Policy { return legacyPolicy{} }

func (legacyPolicy) Authorize(p Principal, action Action, resource Resource) Decision {
	if action == ActionView {
		return Decision{Effect: Allow}
	}
	if !p.Authenticated {
		return Decision{Effect: DenyUnauthorized, Reason: "authentication required"}
	}
	return Decision{Effect: Allow}
}

// rolePolicy grants permissions by profile role: members view,
// librarians additionally create and edit, admins do everything.
type rolePolicy struct{}

func RolePolicy() Policy { return rolePolicy{} }

var roleActions = map[model.Role]map[Action]bool{
	model.RoleMember: {
		ActionView: true,
	},
	model.RoleLibrarian: {
		ActionView:   true,
		ActionCreate: true,
		ActionEdit:   true,
	},
	model.RoleAdmin: {
		ActionView:   true,
		ActionCreate: true,
		ActionEdit:   true,
		ActionDelete: true,
	},
}

func (rolePolicy) Authorize(p Principal, action Action, resource Resource) Decision {
	if action == ActionView {
		return Decision{Effect: Allow}
	}
	if !p.Authenticated {
		return Decision{Effect: DenyUnauthorized, Reason: "authentication required"}
	}

	if roleActions[p.Role][action] {
		return Decision{Effect: Allow}
	}

	return Decision{
		Effect: DenyForbidden,
		Reason: "missing permission " + string(PermissionFor(action, resource)),
	}
}

// HasRole reports whether the principal satisfies a role gate. Admins
// satisfy the librarian gate; any assigned role satisfies the member
// gate.
func HasRole(p Principal, required model.Role) bool {
	if !p.Authenticated {
		return false
	}

	switch required {
	case model.RoleAdmin:
		return p.Role == model.RoleAdmin
	case model.RoleLibrarian:
		return p.Role == model.RoleLibrarian || p.Role == model.RoleAdmin
	case model.RoleMember:
		return p.Role.Valid()
	}
	return false
}
