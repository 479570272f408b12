package entity

import (
	"time"

	"github.com/questboard/backend/pkg/enum"
)

type QuestRank string

var (
	RankEasy       = enum.New(QuestRank("easy"))
	RankNormal     = enum.New(QuestRank("normal"))
	RankMedium     = enum.New(QuestRank("medium"))
	RankHard       = enum.New(QuestRank("hard"))
	RankImpossible = enum.New(QuestRank("impossible"))
)

type QuestCategory string

var (
	CategoryHunting     = enum.New(QuestCategory("hunting"))
	CategoryGathering   = enum.New(QuestCategory("gathering"))
	CategoryCollecting  = enum.New(QuestCategory("collecting"))
	CategoryCrafting    = enum.New(QuestCategory("crafting"))
	CategoryExploration = enum.New(QuestCategory("exploration"))
	CategoryCombat      = enum.New(QuestCategory("combat"))
	CategorySocial      = enum.New(QuestCategory("social"))
	CategoryBuilding    = enum.New(QuestCategory("building"))
	CategoryTrading     = enum.New(QuestCategory("trading"))
	CategoryPuzzle      = enum.New(QuestCategory("puzzle"))
	CategorySurvival    = enum.New(QuestCategory("survival"))
	CategoryOther       = enum.New(QuestCategory("other"))
)

type QuestStatus string

var (
	QuestAvailable = enum.New(QuestStatus("available"))
	QuestAccepted  = enum.New(QuestStatus("accepted"))
	QuestCompleted = enum.New(QuestStatus("completed"))
	QuestApproved  = enum.New(QuestStatus("approved"))
	QuestRejected  = enum.New(QuestStatus("rejected"))
	QuestCancelled = enum.New(QuestStatus("cancelled"))
)

// Quest is a guild-scoped unit of work. Its ID is a short random token shown
// to users, unique across all guilds. The quest-level status is not changed
// when a single user accepts the quest; many users can attempt the same quest
// independently through QuestProgress records.
type Quest struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Title       string
	Description string `gorm:"type:text"`

	CreatorID string `gorm:"index"`
	GuildID   string `gorm:"index"`

	Requirements string `gorm:"type:text"`
	Reward       string `gorm:"type:text"`

	Rank     QuestRank
	Category QuestCategory
	Status   QuestStatus

	RequiredRoleIDs Array[string]
}
