package repository

import (
	"context"

	"github.com/questboard/backend/internal/entity"
	"github.com/questboard/backend/pkg/xcontext"

	"gorm.io/gorm/clause"
)

type ChannelConfigRepository interface {
	// Save overwrites the whole per-guild record, never merges.
	Save(ctx context.Context, data *entity.ChannelConfig) error
	Get(ctx context.Context, guildID string) (*entity.ChannelConfig, error)
}

type channelConfigRepository struct{}

func NewChannelConfigRepository() *channelConfigRepository {
	return &channelConfigRepository{}
}

func (r *channelConfigRepository) Save(ctx context.Context, data *entity.ChannelConfig) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "guild_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"quest_list_channel",
				"quest_accept_channel",
				"quest_submit_channel",
				"quest_approval_channel",
				"notification_channel",
				"updated_at",
			}),
		}).
		Create(data).Error
}

func (r *channelConfigRepository) Get(
	ctx context.Context, guildID string,
) (*entity.ChannelConfig, error) {
	var result entity.ChannelConfig
	if err := xcontext.DB(ctx).Take(&result, "guild_id=?", guildID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}
