package entity

import "time"

// UserStats carries per-(user, guild) lifetime counters. Counters only ever
// increase; increments happen as SQL expressions so concurrent transitions
// cannot lose updates.
type UserStats struct {
	Base

	UserID  string `gorm:"uniqueIndex:idx_stats_user_guild"`
	GuildID string `gorm:"uniqueIndex:idx_stats_user_guild"`

	QuestsCompleted uint64
	QuestsAccepted  uint64
	QuestsRejected  uint64

	FirstQuestDate time.Time
	LastQuestDate  time.Time
}
