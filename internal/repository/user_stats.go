package repository

import (
	"context"
	"time"

	"github.com/questboard/backend/internal/entity"
	"github.com/questboard/backend/pkg/xcontext"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GuildTotals struct {
	TotalCompleted uint64
	TotalAccepted  uint64
	ActiveUsers    uint64
}

type UserStatsRepository interface {
	Create(ctx context.Context, data *entity.UserStats) error
	Get(ctx context.Context, userID, guildID string) (*entity.UserStats, error)

	// Upsert adds the counter fields of delta to the stored record, creating
	// it first if needed. Counter addition happens inside the database, so
	// concurrent lifecycle transitions never lose an increment.
	Upsert(ctx context.Context, delta *entity.UserStats) error

	GetLeaderBoard(ctx context.Context, guildID string, offset, limit int) ([]entity.UserStats, error)
	PrevLeaderBoard(guildID string) []entity.UserStats
	GetByGuild(ctx context.Context, guildID string) ([]entity.UserStats, error)
	GetGuildTotals(ctx context.Context, guildID string) (*GuildTotals, error)
}

type userStatsRepository struct {
	prevLeaderBoard *xsync.MapOf[string, []entity.UserStats]
}

func NewUserStatsRepository() *userStatsRepository {
	return &userStatsRepository{
		prevLeaderBoard: xsync.NewMapOf[[]entity.UserStats](),
	}
}

func (r *userStatsRepository) Create(ctx context.Context, data *entity.UserStats) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userStatsRepository) Get(
	ctx context.Context, userID, guildID string,
) (*entity.UserStats, error) {
	var result entity.UserStats
	err := xcontext.DB(ctx).
		Where("user_id=? AND guild_id=?", userID, guildID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userStatsRepository) Upsert(ctx context.Context, delta *entity.UserStats) error {
	now := time.Now()
	if delta.ID == "" {
		delta.ID = uuid.NewString()
	}

	if delta.FirstQuestDate.IsZero() {
		delta.FirstQuestDate = now
	}

	if delta.LastQuestDate.IsZero() {
		delta.LastQuestDate = now
	}

	return xcontext.DB(ctx).Model(&entity.UserStats{}).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"},
				{Name: "guild_id"},
			},
			DoUpdates: clause.Assignments(map[string]any{
				"quests_completed": gorm.Expr("quests_completed + ?", delta.QuestsCompleted),
				"quests_accepted":  gorm.Expr("quests_accepted + ?", delta.QuestsAccepted),
				"quests_rejected":  gorm.Expr("quests_rejected + ?", delta.QuestsRejected),
				"last_quest_date":  delta.LastQuestDate,
			}),
		}).
		Create(delta).Error
}

func (r *userStatsRepository) GetLeaderBoard(
	ctx context.Context, guildID string, offset, limit int,
) ([]entity.UserStats, error) {
	var result []entity.UserStats
	err := xcontext.DB(ctx).Model(&entity.UserStats{}).
		Where("guild_id=?", guildID).
		Order("quests_completed DESC, quests_accepted DESC, created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	r.prevLeaderBoard.Store(guildID, result)
	return result, nil
}

// PrevLeaderBoard returns the board served by the previous GetLeaderBoard
// call for this guild, used to report rank movement.
func (r *userStatsRepository) PrevLeaderBoard(guildID string) []entity.UserStats {
	prev, ok := r.prevLeaderBoard.Load(guildID)
	if !ok {
		return nil
	}

	return prev
}

func (r *userStatsRepository) GetByGuild(
	ctx context.Context, guildID string,
) ([]entity.UserStats, error) {
	var result []entity.UserStats
	err := xcontext.DB(ctx).Where("guild_id=?", guildID).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userStatsRepository) GetGuildTotals(
	ctx context.Context, guildID string,
) (*GuildTotals, error) {
	var result GuildTotals
	err := xcontext.DB(ctx).Model(&entity.UserStats{}).
		Select(
			"COALESCE(SUM(quests_completed), 0) as total_completed, " +
				"COALESCE(SUM(quests_accepted), 0) as total_accepted, " +
				"COUNT(*) as active_users",
		).
		Where("guild_id=?", guildID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
