package domain

import (
	"context"
	"testing"
	"time"

	"github.com/questboard/backend/internal/domain/statistic"
	"github.com/questboard/backend/internal/entity"
	"github.com/questboard/backend/internal/model"
	"github.com/questboard/backend/internal/repository"
	"github.com/questboard/backend/pkg/crypto"
	"github.com/questboard/backend/pkg/errorx"
	"github.com/questboard/backend/pkg/testutil"
	"github.com/questboard/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
)

func newTestQuestDomain() (QuestDomain, repository.QuestProgressRepository, repository.UserStatsRepository) {
	questRepo := repository.NewQuestRepository()
	progressRepo := repository.NewQuestProgressRepository()
	statsRepo := repository.NewUserStatsRepository()
	leaderboard := statistic.New(statsRepo, &testutil.MockRedisClient{})

	return NewQuestDomain(questRepo, progressRepo, statsRepo, leaderboard), progressRepo, statsRepo
}

func createTestQuest(t *testing.T, ctx context.Context, d QuestDomain, req model.CreateQuestRequest) model.Quest {
	t.Helper()

	if req.GuildID == "" {
		req.GuildID = "guild1"
	}
	if req.Title == "" {
		req.Title = "Slay the dragon"
	}
	if req.Description == "" {
		req.Description = "Bring back its head"
	}
	if req.Caller.ID == "" {
		req.Caller = testutil.QuestMaster
	}

	resp, err := d.Create(testutil.MockContextWithUserID(ctx, req.Caller.ID), &req)
	require.NoError(t, err)
	return resp.Quest
}

func Test_questDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	d, _, _ := newTestQuestDomain()

	resp, err := d.Create(testutil.MockContextWithUserID(ctx, testutil.QuestMaster.ID),
		&model.CreateQuestRequest{
			GuildID:     "guild1",
			Title:       "Slay the dragon",
			Description: "Bring back its head",
			Caller:      testutil.QuestMaster,
		})
	require.NoError(t, err)

	require.Len(t, resp.Quest.ID, 8)
	for _, c := range resp.Quest.ID {
		require.Contains(t, crypto.Alphabet(), string(c))
	}

	require.Equal(t, "normal", resp.Quest.Rank)
	require.Equal(t, "other", resp.Quest.Category)
	require.Equal(t, "available", resp.Quest.Status)
	require.Equal(t, testutil.QuestMaster.ID, resp.Quest.CreatorID)
}

func Test_questDomain_Create_PermissionDenied(t *testing.T) {
	ctx := testutil.MockContext()
	d, _, _ := newTestQuestDomain()

	_, err := d.Create(testutil.MockContextWithUserID(ctx, testutil.PlainMember.ID),
		&model.CreateQuestRequest{
			GuildID:     "guild1",
			Title:       "Slay the dragon",
			Description: "Bring back its head",
			Caller:      testutil.PlainMember,
		})
	require.Error(t, err)
	require.ErrorIs(t, err, errorx.New(errorx.PermissionDenied, ""))
}

func Test_questDomain_Create_InvalidRank(t *testing.T) {
	ctx := testutil.MockContext()
	d, _, _ := newTestQuestDomain()

	_, err := d.Create(testutil.MockContextWithUserID(ctx, testutil.QuestMaster.ID),
		&model.CreateQuestRequest{
			GuildID:     "guild1",
			Title:       "Slay the dragon",
			Description: "Bring back its head",
			Rank:        "legendary",
			Caller:      testutil.QuestMaster,
		})
	require.Error(t, err)
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, ""))
}

func Test_questDomain_Accept(t *testing.T) {
	ctx := testutil.MockContext()
	d, progressRepo, statsRepo := newTestQuestDomain()
	quest := createTestQuest(t, ctx, d, model.CreateQuestRequest{})

	userCtx := testutil.MockContextWithUserID(ctx, "user1")
	resp, err := d.Accept(userCtx, &model.AcceptQuestRequest{QuestID: quest.ID})
	require.NoError(t, err)
	require.Equal(t, "accepted", resp.Progress.Status)
	require.Equal(t, "guild1", resp.Progress.GuildID)

	stats, err := statsRepo.Get(ctx, "user1", "guild1")
	require.NoError(t, err)
	require.EqualValues(t, 1, stats.QuestsAccepted)
	require.EqualValues(t, 0, stats.QuestsCompleted)

	// A second accept is rejected and does not create another row.
	_, err = d.Accept(userCtx, &model.AcceptQuestRequest{QuestID: quest.ID})
	require.Error(t, err)
	require.Equal(t, "You have already accepted this quest", err.Error())

	progress, err := progressRepo.GetListByUser(ctx, "user1", "guild1")
	require.NoError(t, err)
	require.Len(t, progress, 1)

	stats, err = statsRepo.Get(ctx, "user1", "guild1")
	require.NoError(t, err)
	require.EqualValues(t, 1, stats.QuestsAccepted)
}

func Test_questDomain_Accept_NotFound(t *testing.T) {
	ctx := testutil.MockContext()
	d, _, _ := newTestQuestDomain()

	_, err := d.Accept(testutil.MockContextWithUserID(ctx, "user1"),
		&model.AcceptQuestRequest{QuestID: "no-such-id"})
	require.Error(t, err)
	require.ErrorIs(t, err, errorx.New(errorx.NotFound, ""))
}

func Test_questDomain_Accept_RequiredRoles(t *testing.T) {
	ctx := testutil.MockContext()
	d, _, _ := newTestQuestDomain()
	quest := createTestQuest(t, ctx, d, model.CreateQuestRequest{
		RequiredRoleIDs: []string{"role-warrior", "role-mage"},
	})

	userCtx := testutil.MockContextWithUserID(ctx, "user1")

	// None of the required roles.
	_, err := d.Accept(userCtx, &model.AcceptQuestRequest{
		QuestID: quest.ID,
		RoleIDs: []string{"role-everyone"},
	})
	require.Error(t, err)
	require.ErrorIs(t, err, errorx.New(errorx.PermissionDenied, ""))

	// Any single required role is enough.
	_, err = d.Accept(userCtx, &model.AcceptQuestRequest{
		QuestID: quest.ID,
		RoleIDs: []string{"role-everyone", "role-mage"},
	})
	require.NoError(t, err)
}

func Test_questDomain_Accept_Cooldown(t *testing.T) {
	ctx := testutil.MockContext()
	d, progressRepo, _ := newTestQuestDomain()
	quest := createTestQuest(t, ctx, d, model.CreateQuestRequest{})

	userCtx := testutil.MockContextWithUserID(ctx, "user1")
	_, err := d.Accept(userCtx, &model.AcceptQuestRequest{QuestID: quest.ID})
	require.NoError(t, err)

	_, err = d.Complete(userCtx, &model.CompleteQuestRequest{QuestID: quest.ID})
	require.NoError(t, err)

	reviewCtx := testutil.MockContextWithUserID(ctx, testutil.QuestMaster.ID)
	_, err = d.Review(reviewCtx, &model.ReviewQuestRequest{
		QuestID:  quest.ID,
		UserID:   "user1",
		Approved: false,
		Caller:   testutil.QuestMaster,
	})
	require.NoError(t, err)

	// Within the cooldown window the accept is refused.
	_, err = d.Accept(userCtx, &model.AcceptQuestRequest{QuestID: quest.ID})
	require.Error(t, err)
	require.ErrorIs(t, err, errorx.New(errorx.OnCooldown, ""))
	require.Contains(t, err.Error(), "23 hours")

	// Backdate the attempt beyond the cooldown and try again.
	err = xcontext.DB(ctx).Model(&entity.QuestProgress{}).
		Where("quest_id=? AND user_id=?", quest.ID, "user1").
		Update("accepted_at", time.Now().Add(-25*time.Hour)).Error
	require.NoError(t, err)

	_, err = d.Accept(userCtx, &model.AcceptQuestRequest{QuestID: quest.ID})
	require.NoError(t, err)

	progress, err := progressRepo.GetListByUser(ctx, "user1", "guild1")
	require.NoError(t, err)
	require.Len(t, progress, 1)
	require.Equal(t, entity.ProgressAccepted, progress[0].Status)
}

func Test_questDomain_Complete(t *testing.T) {
	ctx := testutil.MockContext()
	d, _, _ := newTestQuestDomain()
	quest := createTestQuest(t, ctx, d, model.CreateQuestRequest{})

	userCtx := testutil.MockContextWithUserID(ctx, "user1")

	// Completing before accepting is refused.
	_, err := d.Complete(userCtx, &model.CompleteQuestRequest{QuestID: quest.ID})
	require.Error(t, err)
	require.ErrorIs(t, err, errorx.New(errorx.NotFound, ""))

	_, err = d.Accept(userCtx, &model.AcceptQuestRequest{QuestID: quest.ID})
	require.NoError(t, err)

	resp, err := d.Complete(userCtx, &model.CompleteQuestRequest{
		QuestID:        quest.ID,
		ProofText:      "done it",
		ProofImageURLs: []string{"https://example.com/proof.png"},
	})
	require.NoError(t, err)
	require.Equal(t, "completed", resp.Progress.Status)
	require.Equal(t, "pending", resp.Progress.ApprovalStatus)
	require.NotEmpty(t, resp.Progress.CompletedAt)

	// Submitting twice is an invalid transition.
	_, err = d.Complete(userCtx, &model.CompleteQuestRequest{QuestID: quest.ID})
	require.Error(t, err)
	require.ErrorIs(t, err, errorx.New(errorx.InvalidState, ""))
}

func Test_questDomain_Review(t *testing.T) {
	ctx := testutil.MockContext()
	d, _, statsRepo := newTestQuestDomain()
	quest := createTestQuest(t, ctx, d, model.CreateQuestRequest{})

	userCtx := testutil.MockContextWithUserID(ctx, "user1")
	reviewCtx := testutil.MockContextWithUserID(ctx, testutil.QuestMaster.ID)

	_, err := d.Accept(userCtx, &model.AcceptQuestRequest{QuestID: quest.ID})
	require.NoError(t, err)

	// Reviewing before submission is refused.
	_, err = d.Review(reviewCtx, &model.ReviewQuestRequest{
		QuestID:  quest.ID,
		UserID:   "user1",
		Approved: true,
		Caller:   testutil.QuestMaster,
	})
	require.Error(t, err)
	require.ErrorIs(t, err, errorx.New(errorx.InvalidState, ""))

	_, err = d.Complete(userCtx, &model.CompleteQuestRequest{QuestID: quest.ID})
	require.NoError(t, err)

	// A plain member cannot review someone else's quest.
	_, err = d.Review(testutil.MockContextWithUserID(ctx, testutil.PlainMember.ID),
		&model.ReviewQuestRequest{
			QuestID:  quest.ID,
			UserID:   "user1",
			Approved: true,
			Caller:   testutil.PlainMember,
		})
	require.Error(t, err)
	require.ErrorIs(t, err, errorx.New(errorx.PermissionDenied, ""))

	resp, err := d.Review(reviewCtx, &model.ReviewQuestRequest{
		QuestID:  quest.ID,
		UserID:   "user1",
		Approved: true,
		Caller:   testutil.QuestMaster,
	})
	require.NoError(t, err)
	require.Equal(t, "approved", resp.Progress.Status)
	require.Equal(t, "approved", resp.Progress.ApprovalStatus)

	stats, err := statsRepo.Get(ctx, "user1", "guild1")
	require.NoError(t, err)
	require.EqualValues(t, 1, stats.QuestsCompleted)
	require.EqualValues(t, 1, stats.QuestsAccepted)
	require.EqualValues(t, 0, stats.QuestsRejected)
}

func Test_questDomain_Review_Reject(t *testing.T) {
	ctx := testutil.MockContext()
	d, _, statsRepo := newTestQuestDomain()
	quest := createTestQuest(t, ctx, d, model.CreateQuestRequest{})

	userCtx := testutil.MockContextWithUserID(ctx, "user1")
	_, err := d.Accept(userCtx, &model.AcceptQuestRequest{QuestID: quest.ID})
	require.NoError(t, err)
	_, err = d.Complete(userCtx, &model.CompleteQuestRequest{QuestID: quest.ID})
	require.NoError(t, err)

	resp, err := d.Review(testutil.MockContextWithUserID(ctx, testutil.QuestMaster.ID),
		&model.ReviewQuestRequest{
			QuestID:  quest.ID,
			UserID:   "user1",
			Approved: false,
			Caller:   testutil.QuestMaster,
		})
	require.NoError(t, err)
	require.Equal(t, "rejected", resp.Progress.Status)
	require.Equal(t, "rejected", resp.Progress.ApprovalStatus)

	stats, err := statsRepo.Get(ctx, "user1", "guild1")
	require.NoError(t, err)
	require.EqualValues(t, 0, stats.QuestsCompleted)
	require.EqualValues(t, 1, stats.QuestsRejected)
}

func Test_questDomain_Delete(t *testing.T) {
	ctx := testutil.MockContext()
	d, progressRepo, _ := newTestQuestDomain()
	quest := createTestQuest(t, ctx, d, model.CreateQuestRequest{})

	userCtx := testutil.MockContextWithUserID(ctx, "user1")
	_, err := d.Accept(userCtx, &model.AcceptQuestRequest{QuestID: quest.ID})
	require.NoError(t, err)

	// Not the creator, not a manager.
	_, err = d.Delete(testutil.MockContextWithUserID(ctx, testutil.PlainMember.ID),
		&model.DeleteQuestRequest{ID: quest.ID, Caller: testutil.PlainMember})
	require.Error(t, err)
	require.ErrorIs(t, err, errorx.New(errorx.PermissionDenied, ""))

	_, err = d.Delete(testutil.MockContextWithUserID(ctx, testutil.QuestMaster.ID),
		&model.DeleteQuestRequest{ID: quest.ID, Caller: testutil.QuestMaster})
	require.NoError(t, err)

	// Quest and its progress are both gone.
	_, err = d.Get(ctx, &model.GetQuestRequest{ID: quest.ID})
	require.Error(t, err)
	require.ErrorIs(t, err, errorx.New(errorx.NotFound, ""))

	progress, err := progressRepo.GetListByUser(ctx, "user1", "guild1")
	require.NoError(t, err)
	require.Empty(t, progress)
}

func Test_questDomain_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	d, _, _ := newTestQuestDomain()

	first := createTestQuest(t, ctx, d, model.CreateQuestRequest{Title: "First"})
	second := createTestQuest(t, ctx, d, model.CreateQuestRequest{Title: "Second"})

	resp, err := d.GetList(ctx, &model.GetListQuestRequest{GuildID: "guild1"})
	require.NoError(t, err)
	require.Len(t, resp.Quests, 2)
	require.Equal(t, []string{first.ID, second.ID}, []string{resp.Quests[0].ID, resp.Quests[1].ID})

	// Another guild sees nothing.
	resp, err = d.GetList(ctx, &model.GetListQuestRequest{GuildID: "guild2"})
	require.NoError(t, err)
	require.Empty(t, resp.Quests)

	// Cannot exceed the configured maximum.
	_, err = d.GetList(ctx, &model.GetListQuestRequest{GuildID: "guild1", Limit: 51})
	require.Error(t, err)
	require.ErrorIs(t, err, errorx.New(errorx.BadRequest, ""))
}

func Test_questDomain_GetPendingApprovals(t *testing.T) {
	ctx := testutil.MockContext()
	d, _, _ := newTestQuestDomain()
	quest := createTestQuest(t, ctx, d, model.CreateQuestRequest{Title: "Reviewable"})

	userCtx := testutil.MockContextWithUserID(ctx, "user1")
	_, err := d.Accept(userCtx, &model.AcceptQuestRequest{QuestID: quest.ID})
	require.NoError(t, err)
	_, err = d.Complete(userCtx, &model.CompleteQuestRequest{QuestID: quest.ID, ProofText: "proof"})
	require.NoError(t, err)

	creatorCtx := testutil.MockContextWithUserID(ctx, testutil.QuestMaster.ID)
	resp, err := d.GetPendingApprovals(creatorCtx, &model.GetPendingApprovalsRequest{GuildID: "guild1"})
	require.NoError(t, err)
	require.Len(t, resp.Approvals, 1)
	require.Equal(t, quest.ID, resp.Approvals[0].QuestID)
	require.Equal(t, "user1", resp.Approvals[0].UserID)
	require.Equal(t, "Reviewable", resp.Approvals[0].QuestTitle)
	require.Equal(t, "proof", resp.Approvals[0].ProofText)

	// Someone else's creations are not listed.
	otherCtx := testutil.MockContextWithUserID(ctx, "someone-else")
	resp, err = d.GetPendingApprovals(otherCtx, &model.GetPendingApprovalsRequest{GuildID: "guild1"})
	require.NoError(t, err)
	require.Empty(t, resp.Approvals)
}
