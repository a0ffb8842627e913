package common

// AuthorizationHeaderName carries the access token on HTTP requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the access token inside the Authorization header.
const BearerPrefix = "Bearer "

// ID prefixes used when minting identifiers for persisted records.
const (
	UserIDPrefix          = "user-"
	NoteIDPrefix          = "note-"
	CollaborationIDPrefix = "collab-"
)
