package model

// AccessToken is the payload embedded in the jwt access token issued to the
// chat-platform gateway.
type AccessToken struct {
	ID string `json:"id"`
}
