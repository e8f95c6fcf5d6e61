package usercache

import "context"

// IdentitySource is the subset of the IdP the user_entity_update handler
// needs to hydrate a changed user's role and group membership, since the
// notification payload itself carries only the user row. Implemented by
// internal/adapters/casdoor against casdoor-go-sdk.
type IdentitySource interface {
	UserRoleIDs(ctx context.Context, userID string) ([]string, error)
	UserGroupIDs(ctx context.Context, userID string) ([]string, error)
}
