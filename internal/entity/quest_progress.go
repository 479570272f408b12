package entity

import (
	"database/sql"
	"time"

	"github.com/questboard/backend/pkg/enum"
)

type ProgressStatus string

var (
	ProgressAccepted  = enum.New(ProgressStatus("accepted"))
	ProgressCompleted = enum.New(ProgressStatus("completed"))
	ProgressApproved  = enum.New(ProgressStatus("approved"))
	ProgressRejected  = enum.New(ProgressStatus("rejected"))
)

type ApprovalStatus string

var (
	ApprovalPending  = enum.New(ApprovalStatus("pending"))
	ApprovalApproved = enum.New(ApprovalStatus("approved"))
	ApprovalRejected = enum.New(ApprovalStatus("rejected"))
)

// QuestProgress records one user's attempt at one quest. The unique index on
// (quest_id, user_id) is what serializes racing accept calls; every write
// goes through an upsert against it.
type QuestProgress struct {
	Base

	QuestID string `gorm:"uniqueIndex:idx_progress_quest_user"`
	Quest   Quest  `gorm:"foreignKey:QuestID"`

	UserID  string `gorm:"uniqueIndex:idx_progress_quest_user"`
	GuildID string `gorm:"index"`

	Status ProgressStatus

	AcceptedAt  time.Time
	CompletedAt sql.NullTime

	ProofText      string `gorm:"type:text"`
	ProofImageURLs Array[string]

	ApprovalStatus    ApprovalStatus
	AcceptedChannelID string
}
