package domain

import (
	"time"

	"github.com/questboard/backend/internal/entity"
	"github.com/questboard/backend/internal/model"
	"github.com/questboard/backend/pkg/enum"
)

func convertQuest(quest *entity.Quest) model.Quest {
	return model.Quest{
		ID:              quest.ID,
		GuildID:         quest.GuildID,
		Title:           quest.Title,
		Description:     quest.Description,
		CreatorID:       quest.CreatorID,
		Requirements:    quest.Requirements,
		Reward:          quest.Reward,
		Rank:            enum.ToString(quest.Rank),
		Category:        enum.ToString(quest.Category),
		Status:          enum.ToString(quest.Status),
		RequiredRoleIDs: quest.RequiredRoleIDs,
		CreatedAt:       quest.CreatedAt.Format(time.RFC3339Nano),
	}
}

func convertProgress(progress *entity.QuestProgress) model.Progress {
	completedAt := ""
	if progress.CompletedAt.Valid {
		completedAt = progress.CompletedAt.Time.Format(time.RFC3339Nano)
	}

	return model.Progress{
		QuestID:           progress.QuestID,
		UserID:            progress.UserID,
		GuildID:           progress.GuildID,
		Status:            enum.ToString(progress.Status),
		AcceptedAt:        progress.AcceptedAt.Format(time.RFC3339Nano),
		CompletedAt:       completedAt,
		ProofText:         progress.ProofText,
		ProofImageURLs:    progress.ProofImageURLs,
		ApprovalStatus:    enum.ToString(progress.ApprovalStatus),
		AcceptedChannelID: progress.AcceptedChannelID,
	}
}

func convertUserStats(stats *entity.UserStats) model.UserStats {
	firstQuest := ""
	if !stats.FirstQuestDate.IsZero() {
		firstQuest = stats.FirstQuestDate.Format(time.RFC3339Nano)
	}

	lastQuest := ""
	if !stats.LastQuestDate.IsZero() {
		lastQuest = stats.LastQuestDate.Format(time.RFC3339Nano)
	}

	return model.UserStats{
		UserID:          stats.UserID,
		GuildID:         stats.GuildID,
		QuestsCompleted: stats.QuestsCompleted,
		QuestsAccepted:  stats.QuestsAccepted,
		QuestsRejected:  stats.QuestsRejected,
		FirstQuestDate:  firstQuest,
		LastQuestDate:   lastQuest,
	}
}
