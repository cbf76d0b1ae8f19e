package permissions

// Role is a plain ordered discriminator. No hierarchy types: the three
// roles are compared by rank only.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

var roleRanks = map[Role]int{
	RoleUser:      0,
	RoleModerator: 1,
	RoleAdmin:     2,
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// AtLeast reports whether r ranks at or above other.
func (r Role) AtLeast(other Role) bool {
	return roleRanks[r] >= roleRanks[other]
}

// IsStaff reports whether the role is staff-equivalent (moderator or admin).
func (r Role) IsStaff() bool {
	return r.AtLeast(RoleModerator)
}

// MethodClass partitions HTTP methods into read-only and mutating.
type MethodClass int

const (
	Safe   MethodClass = iota // GET, HEAD, OPTIONS
	Unsafe                    // POST, PUT, PATCH, DELETE
)

// CollectionKind selects the collection-level rule set.
type CollectionKind int

const (
	// Catalog covers works, categories and genres: writes are admin-only.
	Catalog CollectionKind = iota
	// Contribution covers reviews and comments: writes require any
	// authenticated actor.
	Contribution
)

// Actor is the caller identity as the resolver sees it. The zero value is
// an unauthenticated actor.
type Actor struct {
	ID            string
	Role          Role
	Authenticated bool
}

// Anonymous is the unauthenticated actor.
var Anonymous = Actor{}

// ResolveCollection decides a collection-level request. Pure: no side
// effects, identical inputs always yield identical decisions.
func ResolveCollection(actor Actor, method MethodClass, kind CollectionKind) bool {
	if method == Safe {
		return true
	}
	if !actor.Authenticated {
		return false
	}
	switch kind {
	case Catalog:
		return actor.Role == RoleAdmin
	case Contribution:
		return true
	}
	return false
}

// ResolveObject decides an object-level mutation on an owned resource
// (review or comment). Safe methods always pass; unsafe methods require
// the owner or a staff-equivalent role.
func ResolveObject(actor Actor, method MethodClass, ownerID string) bool {
	if method == Safe {
		return true
	}
	if !actor.Authenticated {
		return false
	}
	return actor.ID == ownerID || actor.Role.IsStaff()
}
