package model

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// EntityKind enumerates inline markup spans.
type EntityKind string

const (
	EntityMention     EntityKind = "Mention"
	EntityHashtag     EntityKind = "Hashtag"
	EntityBotCommand  EntityKind = "BotCommand"
	EntityURL         EntityKind = "Url"
	EntityEmail       EntityKind = "Email"
	EntityBold        EntityKind = "Bold"
	EntityItalic      EntityKind = "Italic"
	EntityCode        EntityKind = "Code"
	EntityPre         EntityKind = "Pre"
	EntityTextLink    EntityKind = "TextLink"
	EntityTextMention EntityKind = "TextMention"
	EntityUnknown     EntityKind = "Unknown"
)

// Entity is one inline markup span.
type Entity struct {
	Kind   EntityKind
	Offset int
	Length int

	// TextLink only.
	URL string
	// TextMention only.
	MentionedUserID string
}

// MediaKind enumerates attachment shapes.
type MediaKind string

const (
	MediaImage     MediaKind = "Image"
	MediaVideo     MediaKind = "Video"
	MediaAudio     MediaKind = "Audio"
	MediaVoice     MediaKind = "Voice"
	MediaVideoNote MediaKind = "VideoNote"
	MediaDocument  MediaKind = "Document"
	MediaSticker   MediaKind = "Sticker"
)

// MediaInfo carries shape-specific fields for a Media LogItem.
type MediaInfo struct {
	Kind MediaKind

	// Image, Video, VideoNote, Sticker
	Width  int
	Height int

	// Video, Audio, Voice, VideoNote
	DurationSeconds int

	// Document, Audio
	MimeType string

	// Video/Document/Audio/Sticker thumbnail file-id, if any.
	ThumbFileID string
}

// SpecialKind enumerates the non-text, non-media message shapes.
type SpecialKind string

const (
	SpecialContact       SpecialKind = "Contact"
	SpecialLocation      SpecialKind = "Location"
	SpecialVenue         SpecialKind = "Venue"
	SpecialPoll          SpecialKind = "Poll"
	SpecialPinnedMessage SpecialKind = "PinnedMessage"
)

// MembershipKind is Joined or Left.
type MembershipKind string

const (
	MembershipJoined MembershipKind = "Joined"
	MembershipLeft   MembershipKind = "Left"
)

// ChatEventKind is NewTitle, NewPhoto, or DeletePhoto.
type ChatEventKind string

const (
	ChatEventNewTitle     ChatEventKind = "NewTitle"
	ChatEventNewPhoto     ChatEventKind = "NewPhoto"
	ChatEventDeletePhoto  ChatEventKind = "DeletePhoto"
)

// LogItemKind tags the persisted variant.
type LogItemKind string

const (
	LogItemMessage       LogItemKind = "Message"
	LogItemMedia         LogItemKind = "Media"
	LogItemSpecial       LogItemKind = "Special"
	LogItemMembership    LogItemKind = "Membership"
	LogItemChat          LogItemKind = "Chat"
	LogItemPin           LogItemKind = "Pin"
	LogItemUnimplemented LogItemKind = "Unimplemented"
)

// LogItem is the canonical persisted form: a tagged variant over the seven
// kinds spec.md §3 defines. Every variant carries UserID (optional), Time
// (the effective timestamp this record is archived under), and Source (the
// pre-normalization InterMessage, for forensic replay).
type LogItem struct {
	Kind   LogItemKind
	UserID string // empty means absent
	Time   int64
	Source *InterMessage

	// Message
	Text     string
	Entities []Entity

	// Media
	Caption string
	Media   MediaInfo
	Files   []string

	// Special
	SpecialType SpecialKind

	// Membership
	MembershipType MembershipKind

	// Chat
	ChatEventType ChatEventKind

	// Pin
	PinnedMessage   *LogItem
	PinnedMessageID int64

	// Unimplemented
	UnimplementedTag string
}

type logItemWire struct {
	Kind   LogItemKind   `json:"kind"`
	UserID string        `json:"user_id,omitempty"`
	Time   int64         `json:"time"`
	Source *InterMessage `json:"source,omitempty"`

	Text     string   `json:"text,omitempty"`
	Entities []Entity `json:"entities,omitempty"`

	Caption string    `json:"caption,omitempty"`
	Media   MediaInfo `json:"media,omitempty"`
	Files   []string  `json:"files,omitempty"`

	SpecialType SpecialKind `json:"special_type,omitempty"`

	MembershipType MembershipKind `json:"membership_type,omitempty"`

	ChatEventType ChatEventKind `json:"chat_event_type,omitempty"`

	PinnedMessage   *LogItem `json:"pinned_message,omitempty"`
	PinnedMessageID int64    `json:"pinned_message_id,omitempty"`

	UnimplementedTag string `json:"unimplemented_tag,omitempty"`
}

// MarshalJSON renders the tagged union as a flat {"kind": "...", ...}
// envelope, the same discriminated-envelope approach ChatMeta uses. Source
// carries the pre-normalization InterMessage so spec.md §8 Invariant 3
// (chat_ref resolution must land on a LogItem whose source.id matches the
// original message-id) holds on every persisted record.
func (l LogItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(logItemWire{
		Kind:             l.Kind,
		UserID:           l.UserID,
		Time:             l.Time,
		Source:           l.Source,
		Text:             l.Text,
		Entities:         l.Entities,
		Caption:          l.Caption,
		Media:            l.Media,
		Files:            l.Files,
		SpecialType:      l.SpecialType,
		MembershipType:   l.MembershipType,
		ChatEventType:    l.ChatEventType,
		PinnedMessage:    l.PinnedMessage,
		PinnedMessageID:  l.PinnedMessageID,
		UnimplementedTag: l.UnimplementedTag,
	})
}

// UnmarshalJSON restores a LogItem from its envelope form.
func (l *LogItem) UnmarshalJSON(data []byte) error {
	var w logItemWire
	if err := json.Unmarshal(data, &w); err != nil {
		return errors.Wrap(err, "model: decode LogItem")
	}
	*l = LogItem{
		Kind:             w.Kind,
		UserID:           w.UserID,
		Time:             w.Time,
		Source:           w.Source,
		Text:             w.Text,
		Entities:         w.Entities,
		Caption:          w.Caption,
		Media:            w.Media,
		Files:            w.Files,
		SpecialType:      w.SpecialType,
		MembershipType:   w.MembershipType,
		ChatEventType:    w.ChatEventType,
		PinnedMessage:    w.PinnedMessage,
		PinnedMessageID:  w.PinnedMessageID,
		UnimplementedTag: w.UnimplementedTag,
	}
	return nil
}

// BiggestFile returns the first file-id in Files, which the Normalizer
// always writes biggest-first for Media items with more than one file.
func (l LogItem) BiggestFile() (string, bool) {
	if len(l.Files) == 0 {
		return "", false
	}
	return l.Files[0], true
}
