package repository

import (
	"context"

	"github.com/questboard/backend/internal/entity"
	"github.com/questboard/backend/pkg/xcontext"
)

type QuestFilter struct {
	GuildID string
	Status  entity.QuestStatus

	Offset int
	Limit  int
}

type QuestRepository interface {
	Create(ctx context.Context, data *entity.Quest) error
	GetByID(ctx context.Context, id string) (*entity.Quest, error)
	GetList(ctx context.Context, filter QuestFilter) ([]entity.Quest, error)
	DeleteByID(ctx context.Context, id string) error
}

type questRepository struct{}

func NewQuestRepository() *questRepository {
	return &questRepository{}
}

func (r *questRepository) Create(ctx context.Context, data *entity.Quest) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *questRepository) GetByID(ctx context.Context, id string) (*entity.Quest, error) {
	var result entity.Quest
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *questRepository) GetList(ctx context.Context, filter QuestFilter) ([]entity.Quest, error) {
	result := []entity.Quest{}
	tx := xcontext.DB(ctx).
		Where("guild_id=?", filter.GuildID).
		Order("created_at ASC")

	if filter.Status != "" {
		tx = tx.Where("status=?", filter.Status)
	}

	if filter.Limit > 0 {
		tx = tx.Offset(filter.Offset).Limit(filter.Limit)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *questRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.Quest{}, "id=?", id).Error
}
