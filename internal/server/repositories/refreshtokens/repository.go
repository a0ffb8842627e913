// Package refreshtokens declares the storage contract for issued refresh
// tokens. A token being present is what keeps a session alive; deleting it
// revokes the session.
package refreshtokens

import "context"

type Repository interface {
	// Create stores token. Storing the same token twice is
	// common.ErrorInvariant.
	Create(ctx context.Context, token string) error

	Exists(ctx context.Context, token string) (bool, error)

	// Delete removes token, reporting common.ErrorNotFound when it was absent.
	Delete(ctx context.Context, token string) error
}
