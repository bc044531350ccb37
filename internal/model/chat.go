package model

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// ChatKind tags the ChatMeta variant.
type ChatKind string

const (
	ChatKindPrivateUser ChatKind = "PrivateUser"
	ChatKindGroup       ChatKind = "Group"
	ChatKindSuperGroup  ChatKind = "SuperGroup"
	ChatKindChannel     ChatKind = "Channel"
	ChatKindUnknown     ChatKind = "Unknown"
)

// ChatMeta is a tagged variant over the five conversation kinds. The id of
// any variant uniquely identifies a conversation namespace and is the
// partition key for all message records belonging to that chat.
type ChatMeta struct {
	Kind ChatKind
	ID   int64

	// Human-readable fields; which are populated depends on Kind.
	Title    string
	Username string
	// FirstName/LastName apply to PrivateUser only.
	FirstName string
	LastName  string

	// Description rides along for channels/groups; unused by rendering.
	// It is copied from telegram.Chat.Description, which the live adapter
	// does not fill, so it is empty for records ingested via long-poll.
	Description string
}

// DisplayName applies the ladder: username → first+last → first → title →
// raw id.
func (c ChatMeta) DisplayName() string {
	switch {
	case c.Username != "":
		return c.Username
	case c.FirstName != "" && c.LastName != "":
		return c.FirstName + " " + c.LastName
	case c.FirstName != "":
		return c.FirstName
	case c.Title != "":
		return c.Title
	default:
		return idString(c.ID)
	}
}

type chatMetaWire struct {
	Kind        ChatKind `json:"kind"`
	ID          int64    `json:"id"`
	Title       string   `json:"title,omitempty"`
	Username    string   `json:"username,omitempty"`
	FirstName   string   `json:"first_name,omitempty"`
	LastName    string   `json:"last_name,omitempty"`
	Description string   `json:"description,omitempty"`
}

// MarshalJSON renders the tagged union as a flat envelope: {"kind": "...", ...}.
func (c ChatMeta) MarshalJSON() ([]byte, error) {
	return json.Marshal(chatMetaWire{
		Kind:        c.Kind,
		ID:          c.ID,
		Title:       c.Title,
		Username:    c.Username,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Description: c.Description,
	})
}

// UnmarshalJSON restores a ChatMeta from its envelope form.
func (c *ChatMeta) UnmarshalJSON(data []byte) error {
	var w chatMetaWire
	if err := json.Unmarshal(data, &w); err != nil {
		return errors.Wrap(err, "model: decode ChatMeta")
	}
	*c = ChatMeta{
		Kind:        w.Kind,
		ID:          w.ID,
		Title:       w.Title,
		Username:    w.Username,
		FirstName:   w.FirstName,
		LastName:    w.LastName,
		Description: w.Description,
	}
	return nil
}
