// Package model holds the normalized, persisted data types: UserMeta,
// ChatMeta, InterMessage, and LogItem. These are what the Normalizer
// produces and what the store and render layers consume.
package model

// UserMeta is an identity snapshot, overwritten on every observed
// appearance of a user. Never deleted.
type UserMeta struct {
	ID           string `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	IsBot        bool   `json:"is_bot"`
	LanguageCode string `json:"language_code,omitempty"`
}

// DisplayName applies the name-resolution ladder: username → first+last →
// first → raw id.
func (u UserMeta) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.ID
}
