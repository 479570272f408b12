package repository

import (
	"context"

	"github.com/questboard/backend/internal/entity"
	"github.com/questboard/backend/pkg/xcontext"

	"gorm.io/gorm/clause"
)

type QuestProgressRepository interface {
	// Upsert inserts the progress record or, if one already exists for the
	// same (quest, user), overwrites it wholesale. The unique index makes
	// this the serialization point for racing accepts.
	Upsert(ctx context.Context, data *entity.QuestProgress) error
	Update(ctx context.Context, data *entity.QuestProgress) error
	Get(ctx context.Context, questID, userID string) (*entity.QuestProgress, error)
	GetListByUser(ctx context.Context, userID, guildID string) ([]entity.QuestProgress, error)
	GetPendingApprovals(ctx context.Context, creatorID, guildID string) ([]entity.QuestProgress, error)
	DeleteByQuestID(ctx context.Context, questID string) error
}

type questProgressRepository struct{}

func NewQuestProgressRepository() *questProgressRepository {
	return &questProgressRepository{}
}

func (r *questProgressRepository) Upsert(ctx context.Context, data *entity.QuestProgress) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "quest_id"},
				{Name: "user_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"status",
				"accepted_at",
				"completed_at",
				"proof_text",
				"proof_image_urls",
				"approval_status",
				"accepted_channel_id",
				"updated_at",
			}),
		}).
		Create(data).Error
}

func (r *questProgressRepository) Update(ctx context.Context, data *entity.QuestProgress) error {
	return xcontext.DB(ctx).Save(data).Error
}

func (r *questProgressRepository) Get(
	ctx context.Context, questID, userID string,
) (*entity.QuestProgress, error) {
	var result entity.QuestProgress
	err := xcontext.DB(ctx).
		Where("quest_id=? AND user_id=?", questID, userID).
		Order("accepted_at DESC").
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *questProgressRepository) GetListByUser(
	ctx context.Context, userID, guildID string,
) ([]entity.QuestProgress, error) {
	result := []entity.QuestProgress{}
	tx := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("accepted_at DESC")

	if guildID != "" {
		tx = tx.Where("guild_id=?", guildID)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questProgressRepository) GetPendingApprovals(
	ctx context.Context, creatorID, guildID string,
) ([]entity.QuestProgress, error) {
	result := []entity.QuestProgress{}
	err := xcontext.DB(ctx).
		Joins("join quests on quests.id = quest_progresses.quest_id").
		Where("quests.creator_id=?", creatorID).
		Where("quest_progresses.guild_id=?", guildID).
		Where("quest_progresses.status=?", entity.ProgressCompleted).
		Order("quest_progresses.completed_at ASC").
		Preload("Quest").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questProgressRepository) DeleteByQuestID(ctx context.Context, questID string) error {
	return xcontext.DB(ctx).Delete(&entity.QuestProgress{}, "quest_id=?", questID).Error
}
