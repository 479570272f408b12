package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/questboard/backend/internal/entity"
	"github.com/questboard/backend/internal/model"
	"github.com/questboard/backend/internal/repository"
	"github.com/questboard/backend/pkg/errorx"
	"github.com/questboard/backend/pkg/xcontext"

	"gorm.io/gorm"
)

type ChannelDomain interface {
	SetChannels(context.Context, *model.SetChannelsRequest) (*model.SetChannelsResponse, error)
	GetChannels(context.Context, *model.GetChannelsRequest) (*model.GetChannelsResponse, error)
}

type channelDomain struct {
	channelConfigRepo repository.ChannelConfigRepository
}

func NewChannelDomain(channelConfigRepo repository.ChannelConfigRepository) *channelDomain {
	return &channelDomain{channelConfigRepo: channelConfigRepo}
}

func (d *channelDomain) SetChannels(
	ctx context.Context, req *model.SetChannelsRequest,
) (*model.SetChannelsResponse, error) {
	if req.GuildID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty guild id")
	}

	caller := req.Caller
	if !caller.IsOwner && !caller.IsAdmin && !caller.CanManageGuild && !caller.CanManageChannels {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	config := &entity.ChannelConfig{
		GuildID:              req.GuildID,
		QuestListChannel:     toNullString(req.QuestListChannel),
		QuestAcceptChannel:   toNullString(req.QuestAcceptChannel),
		QuestSubmitChannel:   toNullString(req.QuestSubmitChannel),
		QuestApprovalChannel: toNullString(req.QuestApprovalChannel),
		NotificationChannel:  toNullString(req.NotificationChannel),
	}

	if err := d.channelConfigRepo.Save(ctx, config); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save channel config: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SetChannelsResponse{}, nil
}

func (d *channelDomain) GetChannels(
	ctx context.Context, req *model.GetChannelsRequest,
) (*model.GetChannelsResponse, error) {
	if req.GuildID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow empty guild id")
	}

	config, err := d.channelConfigRepo.Get(ctx, req.GuildID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found channel config")
		}

		xcontext.Logger(ctx).Errorf("Cannot get channel config: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetChannelsResponse{
		Config: model.ChannelConfig{
			GuildID:              config.GuildID,
			QuestListChannel:     config.QuestListChannel.String,
			QuestAcceptChannel:   config.QuestAcceptChannel.String,
			QuestSubmitChannel:   config.QuestSubmitChannel.String,
			QuestApprovalChannel: config.QuestApprovalChannel.String,
			NotificationChannel:  config.NotificationChannel.String,
		},
	}, nil
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}

	return sql.NullString{String: s, Valid: true}
}
