package testutil

import "github.com/questboard/backend/internal/model"

// Sample guild members covering the permission tiers used across tests.
var (
	GuildOwner = model.Member{
		ID:      "owner",
		IsOwner: true,
	}

	GuildAdmin = model.Member{
		ID:      "admin",
		IsAdmin: true,
	}

	QuestMaster = model.Member{
		ID:        "quest-master",
		RoleIDs:   []string{"role-quest-master"},
		RoleNames: []string{"Quest Master"},
	}

	PlainMember = model.Member{
		ID:        "member1",
		RoleIDs:   []string{"role-everyone"},
		RoleNames: []string{"everyone"},
	}
)
