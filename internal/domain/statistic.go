package domain

import (
	"context"
	"errors"

	"github.com/questboard/backend/internal/domain/statistic"
	"github.com/questboard/backend/internal/entity"
	"github.com/questboard/backend/internal/model"
	"github.com/questboard/backend/internal/repository"
	"github.com/questboard/backend/pkg/errorx"
	"github.com/questboard/backend/pkg/xcontext"

	"gorm.io/gorm"
)

type StatisticDomain interface {
	GetUserStats(context.Context, *model.GetUserStatsRequest) (*model.GetUserStatsResponse, error)
	GetLeaderBoard(context.Context, *model.GetLeaderBoardRequest) (*model.GetLeaderBoardResponse, error)
	GetGuildStats(context.Context, *model.GetGuildStatsRequest) (*model.GetGuildStatsResponse, error)
}

type statisticDomain struct {
	statsRepo   repository.UserStatsRepository
	leaderboard statistic.Leaderboard
}

func NewStatisticDomain(
	statsRepo repository.UserStatsRepository,
	leaderboard statistic.Leaderboard,
) *statisticDomain {
	return &statisticDomain{statsRepo: statsRepo, leaderboard: leaderboard}
}

func (d *statisticDomain) GetUserStats(
	ctx context.Context, req *model.GetUserStatsRequest,
) (*model.GetUserStatsResponse, error) {
	if req.GuildID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty guild id")
	}

	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	stats, err := d.statsRepo.Get(ctx, userID, req.GuildID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user stats: %v", err)
			return nil, errorx.Unknown
		}

		// No record yet means the user never touched a quest in this guild.
		// Create the zero record on first read, so the user is counted as
		// active from now on.
		stats = &entity.UserStats{UserID: userID, GuildID: req.GuildID}
		if err := d.statsRepo.Upsert(ctx, stats); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create user stats: %v", err)
			return nil, errorx.Unknown
		}
	}

	result := convertUserStats(stats)
	rank, err := d.leaderboard.GetRank(ctx, userID, req.GuildID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot get leaderboard rank: %v", err)
	} else {
		result.CurrentRank = rank
	}

	return &model.GetUserStatsResponse{Stats: result}, nil
}

func (d *statisticDomain) GetLeaderBoard(
	ctx context.Context, req *model.GetLeaderBoardRequest,
) (*model.GetLeaderBoardResponse, error) {
	if req.GuildID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty guild id")
	}

	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	prev := d.statsRepo.PrevLeaderBoard(req.GuildID)
	board, err := d.statsRepo.GetLeaderBoard(ctx, req.GuildID, 0, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	prevRanks := map[string]uint64{}
	for i, stats := range prev {
		prevRanks[stats.UserID] = uint64(i + 1)
	}

	result := []model.UserStats{}
	for i := range board {
		stats := convertUserStats(&board[i])
		stats.CurrentRank = uint64(i + 1)
		stats.PrevRank = prevRanks[stats.UserID]
		result = append(result, stats)
	}

	return &model.GetLeaderBoardResponse{LeaderBoard: result}, nil
}

func (d *statisticDomain) GetGuildStats(
	ctx context.Context, req *model.GetGuildStatsRequest,
) (*model.GetGuildStatsResponse, error) {
	if req.GuildID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty guild id")
	}

	totals, err := d.statsRepo.GetGuildTotals(ctx, req.GuildID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get guild totals: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetGuildStatsResponse{
		TotalCompleted: totals.TotalCompleted,
		TotalAccepted:  totals.TotalAccepted,
		ActiveUsers:    totals.ActiveUsers,
	}, nil
}
