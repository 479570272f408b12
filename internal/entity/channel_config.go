package entity

import (
	"database/sql"
	"time"
)

// ChannelConfig maps the five logical channel roles of a guild to concrete
// channel ids. A null column means the role is unset. Saves overwrite the
// whole record.
type ChannelConfig struct {
	GuildID   string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	QuestListChannel     sql.NullString
	QuestAcceptChannel   sql.NullString
	QuestSubmitChannel   sql.NullString
	QuestApprovalChannel sql.NullString
	NotificationChannel  sql.NullString
}
