// Package identity distinguishes signed-in users from anonymous
// installs. Every persistence call is keyed by one or the other, never
// implicitly.
package identity

import "fmt"

// Kind discriminates the two identity branches
type Kind string

const (
	KindAuthenticated Kind = "authenticated"
	KindAnonymous     Kind = "anonymous"
)

// Identity is either an authenticated user or an anonymous install
// identified by a locally minted instance UUID.
type Identity struct {
	kind Kind
	id   string
}

// Authenticated returns the identity of a signed-in user
func Authenticated(userID string) Identity {
	return Identity{kind: KindAuthenticated, id: userID}
}

// Anonymous returns the identity of an unauthenticated install
func Anonymous(instanceID string) Identity {
	return Identity{kind: KindAnonymous, id: instanceID}
}

// Kind reports which branch this identity is
func (i Identity) Kind() Kind {
	return i.kind
}

// IsAuthenticated reports whether this identity belongs to a signed-in user
func (i Identity) IsAuthenticated() bool {
	return i.kind == KindAuthenticated
}

// ID returns the user ID or instance UUID, depending on the branch
func (i Identity) ID() string {
	return i.id
}

// IsZero reports whether the identity was never set
func (i Identity) IsZero() bool {
	return i.kind == "" && i.id == ""
}

// Key returns the storage key for this identity, namespaced by branch so
// a user ID and an instance UUID can never collide.
func (i Identity) Key() string {
	return fmt.Sprintf("%s:%s", i.kind, i.id)
}

func (i Identity) String() string {
	if i.IsAuthenticated() {
		return fmt.Sprintf("user %s", i.id)
	}
	return fmt.Sprintf("anonymous %s", i.id)
}
