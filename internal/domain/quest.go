package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/questboard/backend/internal/common"
	"github.com/questboard/backend/internal/domain/statistic"
	"github.com/questboard/backend/internal/entity"
	"github.com/questboard/backend/internal/model"
	"github.com/questboard/backend/internal/repository"
	"github.com/questboard/backend/pkg/crypto"
	"github.com/questboard/backend/pkg/enum"
	"github.com/questboard/backend/pkg/errorx"
	"github.com/questboard/backend/pkg/xcontext"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type QuestDomain interface {
	Create(context.Context, *model.CreateQuestRequest) (*model.CreateQuestResponse, error)
	Get(context.Context, *model.GetQuestRequest) (*model.GetQuestResponse, error)
	GetList(context.Context, *model.GetListQuestRequest) (*model.GetListQuestResponse, error)
	Accept(context.Context, *model.AcceptQuestRequest) (*model.AcceptQuestResponse, error)
	Complete(context.Context, *model.CompleteQuestRequest) (*model.CompleteQuestResponse, error)
	Review(context.Context, *model.ReviewQuestRequest) (*model.ReviewQuestResponse, error)
	Delete(context.Context, *model.DeleteQuestRequest) (*model.DeleteQuestResponse, error)
	GetUserQuests(context.Context, *model.GetUserQuestsRequest) (*model.GetUserQuestsResponse, error)
	GetPendingApprovals(context.Context, *model.GetPendingApprovalsRequest) (*model.GetPendingApprovalsResponse, error)
}

type questDomain struct {
	questRepo    repository.QuestRepository
	progressRepo repository.QuestProgressRepository
	statsRepo    repository.UserStatsRepository
	leaderboard  statistic.Leaderboard
}

func NewQuestDomain(
	questRepo repository.QuestRepository,
	progressRepo repository.QuestProgressRepository,
	statsRepo repository.UserStatsRepository,
	leaderboard statistic.Leaderboard,
) *questDomain {
	return &questDomain{
		questRepo:    questRepo,
		progressRepo: progressRepo,
		statsRepo:    statsRepo,
		leaderboard:  leaderboard,
	}
}

func (d *questDomain) Create(
	ctx context.Context, req *model.CreateQuestRequest,
) (*model.CreateQuestResponse, error) {
	if !common.CanCreateQuest(req.Caller) {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.GuildID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty guild id")
	}

	if req.Title == "" || req.Description == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty title or description")
	}

	rank := entity.RankNormal
	if req.Rank != "" {
		var err error
		rank, err = enum.ToEnum[entity.QuestRank](req.Rank)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid rank: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid rank %s", req.Rank)
		}
	}

	category := entity.CategoryOther
	if req.Category != "" {
		var err error
		category, err = enum.ToEnum[entity.QuestCategory](req.Category)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid category: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid category %s", req.Category)
		}
	}

	id, err := d.generateQuestID(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate quest id: %v", err)
		return nil, errorx.Unknown
	}

	requiredRoleIDs := req.RequiredRoleIDs
	if requiredRoleIDs == nil {
		requiredRoleIDs = []string{}
	}

	quest := &entity.Quest{
		ID:              id,
		Title:           req.Title,
		Description:     req.Description,
		CreatorID:       xcontext.RequestUserID(ctx),
		GuildID:         req.GuildID,
		Requirements:    req.Requirements,
		Reward:          req.Reward,
		Rank:            rank,
		Category:        category,
		Status:          entity.QuestAvailable,
		RequiredRoleIDs: requiredRoleIDs,
	}

	if err := d.questRepo.Create(ctx, quest); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create quest: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateQuestResponse{Quest: convertQuest(quest)}, nil
}

// generateQuestID draws short random tokens until one is unused. Collisions
// are vanishingly rare at the configured length, the lookup is only a
// safeguard against serving a duplicate user-facing id.
func (d *questDomain) generateQuestID(ctx context.Context) (string, error) {
	length := xcontext.Configs(ctx).Quest.IDLength

	for {
		id := crypto.GenerateRandomAlphabet(length)
		_, err := d.questRepo.GetByID(ctx, id)
		if err == nil {
			continue
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return id, nil
		}

		return "", err
	}
}

func (d *questDomain) Get(
	ctx context.Context, req *model.GetQuestRequest,
) (*model.GetQuestResponse, error) {
	if req.ID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty id")
	}

	quest, err := d.questRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetQuestResponse(convertQuest(quest))
	return &resp, nil
}

func (d *questDomain) GetList(
	ctx context.Context, req *model.GetListQuestRequest,
) (*model.GetListQuestResponse, error) {
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

	var status entity.QuestStatus
	if req.Status != "" {
		var err error
		status, err = enum.ToEnum[entity.QuestStatus](req.Status)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Invalid status filter: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Status)
		}
	}

	quests, err := d.questRepo.GetList(ctx, repository.QuestFilter{
		GuildID: req.GuildID,
		Status:  status,
		Offset:  req.Offset,
		Limit:   req.Limit,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get quest list: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Quest{}
	for i := range quests {
		result = append(result, convertQuest(&quests[i]))
	}

	return &model.GetListQuestResponse{Quests: result}, nil
}

func (d *questDomain) Accept(
	ctx context.Context, req *model.AcceptQuestRequest,
) (*model.AcceptQuestResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	quest, err := d.questRepo.GetByID(ctx, req.QuestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	if quest.Status != entity.QuestAvailable {
		return nil, errorx.New(errorx.Unavailable, "This quest is not available for acceptance")
	}

	lastProgress, err := d.progressRepo.Get(ctx, req.QuestID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get quest progress: %v", err)
		return nil, errorx.Unknown
	}

	if lastProgress != nil {
		activeStatuses := []entity.ProgressStatus{entity.ProgressAccepted, entity.ProgressCompleted}
		if slices.Contains(activeStatuses, lastProgress.Status) {
			return nil, errorx.New(errorx.AlreadyExists, "You have already accepted this quest")
		}

		if lastProgress.Status == entity.ProgressRejected {
			cooldownEnd := lastProgress.AcceptedAt.Add(xcontext.Configs(ctx).Quest.AcceptCooldown)
			if now := time.Now(); now.Before(cooldownEnd) {
				remaining := int(cooldownEnd.Sub(now).Hours())
				return nil, errorx.New(errorx.OnCooldown,
					"You must wait %d hours before attempting this quest again", remaining)
			}
		}
	}

	if len(quest.RequiredRoleIDs) > 0 && req.RoleIDs != nil {
		if !common.UserHasRequiredRoles(req.RoleIDs, quest.RequiredRoleIDs) {
			return nil, errorx.New(errorx.PermissionDenied,
				"You don't have the required roles for this quest")
		}
	}

	progress := &entity.QuestProgress{
		Base:              entity.Base{ID: uuid.NewString()},
		QuestID:           quest.ID,
		UserID:            userID,
		GuildID:           quest.GuildID,
		Status:            entity.ProgressAccepted,
		AcceptedAt:        time.Now(),
		AcceptedChannelID: req.ChannelID,
		ProofImageURLs:    []string{},
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.progressRepo.Upsert(ctx, progress); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot accept quest: %v", err)
		return nil, errorx.Unknown
	}

	err = d.statsRepo.Upsert(ctx, &entity.UserStats{
		UserID:         userID,
		GuildID:        quest.GuildID,
		QuestsAccepted: 1,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user stats: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.AcceptQuestResponse{Progress: convertProgress(progress)}, nil
}

func (d *questDomain) Complete(
	ctx context.Context, req *model.CompleteQuestRequest,
) (*model.CompleteQuestResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	progress, err := d.progressRepo.Get(ctx, req.QuestID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "You have not accepted this quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest progress: %v", err)
		return nil, errorx.Unknown
	}

	if progress.Status != entity.ProgressAccepted {
		return nil, errorx.New(errorx.InvalidState, "This quest cannot be submitted now")
	}

	proofImageURLs := req.ProofImageURLs
	if proofImageURLs == nil {
		proofImageURLs = []string{}
	}

	progress.Status = entity.ProgressCompleted
	progress.CompletedAt = sql.NullTime{Time: time.Now(), Valid: true}
	progress.ProofText = req.ProofText
	progress.ProofImageURLs = proofImageURLs
	progress.ApprovalStatus = entity.ApprovalPending

	if err := d.progressRepo.Update(ctx, progress); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot complete quest: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CompleteQuestResponse{Progress: convertProgress(progress)}, nil
}

func (d *questDomain) Review(
	ctx context.Context, req *model.ReviewQuestRequest,
) (*model.ReviewQuestResponse, error) {
	quest, err := d.questRepo.GetByID(ctx, req.QuestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	if !common.CanManageQuest(req.Caller, quest.CreatorID) {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	progress, err := d.progressRepo.Get(ctx, req.QuestID, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest progress")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest progress: %v", err)
		return nil, errorx.Unknown
	}

	if progress.Status != entity.ProgressCompleted {
		return nil, errorx.New(errorx.InvalidState, "This quest submission is not pending review")
	}

	delta := &entity.UserStats{UserID: req.UserID, GuildID: progress.GuildID}
	if req.Approved {
		progress.Status = entity.ProgressApproved
		progress.ApprovalStatus = entity.ApprovalApproved
		delta.QuestsCompleted = 1
	} else {
		progress.Status = entity.ProgressRejected
		progress.ApprovalStatus = entity.ApprovalRejected
		delta.QuestsRejected = 1
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.progressRepo.Update(ctx, progress); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update quest progress: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.statsRepo.Upsert(ctx, delta); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user stats: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	if req.Approved {
		err := d.leaderboard.ChangeQuestLeaderboard(ctx, 1, req.UserID, progress.GuildID)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot update leaderboard mirror: %v", err)
		}
	}

	return &model.ReviewQuestResponse{Progress: convertProgress(progress)}, nil
}

func (d *questDomain) Delete(
	ctx context.Context, req *model.DeleteQuestRequest,
) (*model.DeleteQuestResponse, error) {
	quest, err := d.questRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found quest")
		}

		xcontext.Logger(ctx).Errorf("Cannot get quest: %v", err)
		return nil, errorx.Unknown
	}

	if !common.CanManageQuest(req.Caller, quest.CreatorID) {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.progressRepo.DeleteByQuestID(ctx, quest.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete quest progress: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.questRepo.DeleteByID(ctx, quest.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete quest: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.DeleteQuestResponse{}, nil
}

func (d *questDomain) GetUserQuests(
	ctx context.Context, req *model.GetUserQuestsRequest,
) (*model.GetUserQuestsResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	progress, err := d.progressRepo.GetListByUser(ctx, userID, req.GuildID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user quests: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.Progress{}
	for i := range progress {
		result = append(result, convertProgress(&progress[i]))
	}

	return &model.GetUserQuestsResponse{Progress: result}, nil
}

func (d *questDomain) GetPendingApprovals(
	ctx context.Context, req *model.GetPendingApprovalsRequest,
) (*model.GetPendingApprovalsResponse, error) {
	if req.GuildID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty guild id")
	}

	creatorID := xcontext.RequestUserID(ctx)
	pending, err := d.progressRepo.GetPendingApprovals(ctx, creatorID, req.GuildID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get pending approvals: %v", err)
		return nil, errorx.Unknown
	}

	approvals := []model.PendingApproval{}
	for _, p := range pending {
		approvals = append(approvals, model.PendingApproval{
			QuestID:        p.QuestID,
			UserID:         p.UserID,
			ProofText:      p.ProofText,
			ProofImageURLs: p.ProofImageURLs,
			QuestTitle:     p.Quest.Title,
		})
	}

	return &model.GetPendingApprovalsResponse{Approvals: approvals}, nil
}
