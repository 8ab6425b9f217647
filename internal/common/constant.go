// Package common contains shared constants and sentinel errors used across
// the admin client components.
package common

// Keys of the persisted local state. The names match the ones the browser
// build of the panel used, so exported state stays interchangeable.
const (
	UsersKey    = "crud_users"
	TokenKey    = "auth_token"
	IdentityKey = "current_user"
)

// LocalTokenPrefix marks session tokens issued by the local fallback login.
const LocalTokenPrefix = "local_token_"

// RequestIDHeaderName is attached to every outbound API request.
const RequestIDHeaderName = "X-Request-ID"
