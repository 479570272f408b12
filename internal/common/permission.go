package common

import (
	"github.com/questboard/backend/internal/model"

	"golang.org/x/exp/slices"
)

// QuestCreatorRoleNames are role names that grant quest creation even without
// a management capability.
var QuestCreatorRoleNames = []string{"Quest Master", "Moderator", "Admin", "Staff"}

func CanCreateQuest(caller model.Member) bool {
	if caller.IsOwner || caller.IsAdmin || caller.CanManageGuild || caller.CanManageChannels {
		return true
	}

	for _, name := range caller.RoleNames {
		if slices.Contains(QuestCreatorRoleNames, name) {
			return true
		}
	}

	return false
}

func CanManageQuest(caller model.Member, creatorID string) bool {
	return caller.IsOwner ||
		caller.ID == creatorID ||
		caller.IsAdmin ||
		caller.CanManageGuild
}

// UserHasRequiredRoles reports whether roleIDs holds at least one of the
// required roles. An empty requirement always passes.
func UserHasRequiredRoles(roleIDs, requiredRoleIDs []string) bool {
	if len(requiredRoleIDs) == 0 {
		return true
	}

	for _, id := range requiredRoleIDs {
		if slices.Contains(roleIDs, id) {
			return true
		}
	}

	return false
}
