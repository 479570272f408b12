package model

type ChannelConfig struct {
	GuildID              string `json:"guild_id"`
	QuestListChannel     string `json:"quest_list_channel,omitempty"`
	QuestAcceptChannel   string `json:"quest_accept_channel,omitempty"`
	QuestSubmitChannel   string `json:"quest_submit_channel,omitempty"`
	QuestApprovalChannel string `json:"quest_approval_channel,omitempty"`
	NotificationChannel  string `json:"notification_channel,omitempty"`
}

type SetChannelsRequest struct {
	GuildID              string `json:"guild_id"`
	QuestListChannel     string `json:"quest_list_channel"`
	QuestAcceptChannel   string `json:"quest_accept_channel"`
	QuestSubmitChannel   string `json:"quest_submit_channel"`
	QuestApprovalChannel string `json:"quest_approval_channel"`
	NotificationChannel  string `json:"notification_channel"`

	Caller Member `json:"caller"`
}

type SetChannelsResponse struct{}

type GetChannelsRequest struct {
	GuildID string `json:"guild_id"`
}

type GetChannelsResponse struct {
	Config ChannelConfig `json:"config"`
}
