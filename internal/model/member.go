package model

// Member is a snapshot of the caller's guild attributes, resolved by the chat
// platform layer and passed through unmodified. Permission checks read only
// this value, never the platform itself.
type Member struct {
	ID                string   `json:"id"`
	IsOwner           bool     `json:"is_owner"`
	IsAdmin           bool     `json:"is_admin"`
	CanManageGuild    bool     `json:"can_manage_guild"`
	CanManageChannels bool     `json:"can_manage_channels"`
	RoleIDs           []string `json:"role_ids"`
	RoleNames         []string `json:"role_names"`
}
