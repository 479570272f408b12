package model

type Quest struct {
	ID              string   `json:"id,omitempty"`
	GuildID         string   `json:"guild_id,omitempty"`
	Title           string   `json:"title,omitempty"`
	Description     string   `json:"description,omitempty"`
	CreatorID       string   `json:"creator_id,omitempty"`
	Requirements    string   `json:"requirements,omitempty"`
	Reward          string   `json:"reward,omitempty"`
	Rank            string   `json:"rank,omitempty"`
	Category        string   `json:"category,omitempty"`
	Status          string   `json:"status,omitempty"`
	RequiredRoleIDs []string `json:"required_role_ids,omitempty"`
	CreatedAt       string   `json:"created_at,omitempty"`
}

type Progress struct {
	QuestID           string   `json:"quest_id,omitempty"`
	UserID            string   `json:"user_id,omitempty"`
	GuildID           string   `json:"guild_id,omitempty"`
	Status            string   `json:"status,omitempty"`
	AcceptedAt        string   `json:"accepted_at,omitempty"`
	CompletedAt       string   `json:"completed_at,omitempty"`
	ProofText         string   `json:"proof_text,omitempty"`
	ProofImageURLs    []string `json:"proof_image_urls,omitempty"`
	ApprovalStatus    string   `json:"approval_status,omitempty"`
	AcceptedChannelID string   `json:"accepted_channel_id,omitempty"`
}

type CreateQuestRequest struct {
	GuildID         string   `json:"guild_id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Requirements    string   `json:"requirements"`
	Reward          string   `json:"reward"`
	Rank            string   `json:"rank"`
	Category        string   `json:"category"`
	RequiredRoleIDs []string `json:"required_role_ids"`

	Caller Member `json:"caller"`
}

type CreateQuestResponse struct {
	Quest Quest `json:"quest"`
}

type GetQuestRequest struct {
	ID string `json:"id"`
}

type GetQuestResponse Quest

type GetListQuestRequest struct {
	GuildID string `json:"guild_id"`
	Status  string `json:"status"`
	Offset  int    `json:"offset"`
	Limit   int    `json:"limit"`
}

type GetListQuestResponse struct {
	Quests []Quest `json:"quests"`
}

type AcceptQuestRequest struct {
	QuestID   string   `json:"quest_id"`
	ChannelID string   `json:"channel_id"`
	RoleIDs   []string `json:"role_ids"`
}

type AcceptQuestResponse struct {
	Progress Progress `json:"progress"`
}

type CompleteQuestRequest struct {
	QuestID        string   `json:"quest_id"`
	ProofText      string   `json:"proof_text"`
	ProofImageURLs []string `json:"proof_image_urls"`
}

type CompleteQuestResponse struct {
	Progress Progress `json:"progress"`
}

type ReviewQuestRequest struct {
	QuestID  string `json:"quest_id"`
	UserID   string `json:"user_id"`
	Approved bool   `json:"approved"`

	Caller Member `json:"caller"`
}

type ReviewQuestResponse struct {
	Progress Progress `json:"progress"`
}

type DeleteQuestRequest struct {
	ID string `json:"id"`

	Caller Member `json:"caller"`
}

type DeleteQuestResponse struct{}

type GetUserQuestsRequest struct {
	UserID  string `json:"user_id"`
	GuildID string `json:"guild_id"`
}

type GetUserQuestsResponse struct {
	Progress []Progress `json:"progress"`
}

type PendingApproval struct {
	QuestID        string   `json:"quest_id"`
	UserID         string   `json:"user_id"`
	ProofText      string   `json:"proof_text"`
	ProofImageURLs []string `json:"proof_image_urls"`
	QuestTitle     string   `json:"quest_title"`
}

type GetPendingApprovalsRequest struct {
	GuildID string `json:"guild_id"`
}

type GetPendingApprovalsResponse struct {
	Approvals []PendingApproval `json:"approvals"`
}
