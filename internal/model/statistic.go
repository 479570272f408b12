package model

type UserStats struct {
	UserID          string `json:"user_id"`
	GuildID         string `json:"guild_id"`
	QuestsCompleted uint64 `json:"quests_completed"`
	QuestsAccepted  uint64 `json:"quests_accepted"`
	QuestsRejected  uint64 `json:"quests_rejected"`
	FirstQuestDate  string `json:"first_quest_date,omitempty"`
	LastQuestDate   string `json:"last_quest_date,omitempty"`

	CurrentRank uint64 `json:"current_rank,omitempty"`
	PrevRank    uint64 `json:"prev_rank,omitempty"`
}

type GetUserStatsRequest struct {
	UserID  string `json:"user_id"`
	GuildID string `json:"guild_id"`
}

type GetUserStatsResponse struct {
	Stats UserStats `json:"stats"`
}

type GetLeaderBoardRequest struct {
	GuildID string `json:"guild_id"`
	Limit   int    `json:"limit"`
}

type GetLeaderBoardResponse struct {
	LeaderBoard []UserStats `json:"leaderboard"`
}

type GetGuildStatsRequest struct {
	GuildID string `json:"guild_id"`
}

type GetGuildStatsResponse struct {
	TotalCompleted uint64 `json:"total_completed"`
	TotalAccepted  uint64 `json:"total_accepted"`
	ActiveUsers    uint64 `json:"active_users"`
}
