package usercache

// realmRow is realm_update's new/old payload.
type realmRow struct {
	ID string `json:"id"`
}

// userEntityRow is user_entity_update's new/old payload.
type userEntityRow struct {
	ID        string `json:"id"`
	RealmID   string `json:"realm_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Enabled   bool   `json:"enabled"`
}

// roleRow is keycloak_role_update's new/old payload.
type roleRow struct {
	ID      string `json:"id"`
	RealmID string `json:"realm_id"`
	Name    string `json:"name"`
}

// groupRow is keycloak_group_update's new/old payload. Path is derived
// as "/"+Name, matching spec.md §4.6's "stored as /<name>".
type groupRow struct {
	ID      string `json:"id"`
	RealmID string `json:"realm_id"`
	Name    string `json:"name"`
}

func (r groupRow) path() string { return "/" + r.Name }

// userRoleMappingRow is user_role_mapping_update's new/old payload.
type userRoleMappingRow struct {
	UserID  string `json:"user_id"`
	RoleID  string `json:"role_id"`
	RealmID string `json:"realm_id"`
}

// userGroupMembershipRow is user_group_membership_update's new/old
// payload.
type userGroupMembershipRow struct {
	UserID  string `json:"user_id"`
	GroupID string `json:"group_id"`
	RealmID string `json:"realm_id"`
}

// groupAttributeRow is group_attribute_update's new/old payload: one
// key/value pair per notification.
type groupAttributeRow struct {
	GroupID string   `json:"group_id"`
	Name    string   `json:"name"`
	Values  []string `json:"values"`
}
