// Package telegram wraps the upstream Telegram Bot API: update streaming,
// file resolution, and binary download. The wire types below mirror the
// subset of the Bot API surface the archiver needs to observe.
package telegram

// User is an end user or bot, as seen in "from" fields across the API.
type User struct {
	ID int64 `json:"id"`

	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
	IsBot        bool   `json:"is_bot"`
}

// ChatType enumerates the upstream chat kinds.
type ChatType string

const (
	ChatPrivate    ChatType = "private"
	ChatGroup      ChatType = "group"
	ChatSuperGroup ChatType = "supergroup"
	ChatChannel    ChatType = "channel"
)

// Chat is a conversation: a private DM, a group, a supergroup, or a channel.
type Chat struct {
	ID   int64    `json:"id"`
	Type ChatType `json:"type"`

	// Won't be there for ChatPrivate.
	Title string `json:"title,omitempty"`

	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`

	Description string `json:"description,omitempty"`
}

// EntityType enumerates inline markup spans inside text or captions.
type EntityType string

const (
	EntityMention     EntityType = "mention"
	EntityHashtag     EntityType = "hashtag"
	EntityBotCommand  EntityType = "bot_command"
	EntityURL         EntityType = "url"
	EntityEmail       EntityType = "email"
	EntityBold        EntityType = "bold"
	EntityItalic      EntityType = "italic"
	EntityCode        EntityType = "code"
	EntityPre         EntityType = "pre"
	EntityTextLink    EntityType = "text_link"
	EntityTextMention EntityType = "text_mention"
)

// MessageEntity is an inline markup span over Text or Caption.
type MessageEntity struct {
	Type   EntityType `json:"type"`
	Offset int        `json:"offset"`
	Length int        `json:"length"`

	// Only for EntityTextLink.
	URL string `json:"url,omitempty"`

	// Only for EntityTextMention.
	User *User `json:"user,omitempty"`
}

// PhotoSize is one rendition of a photo or thumbnail.
type PhotoSize struct {
	FileID   string `json:"file_id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	FileSize int64  `json:"file_size,omitempty"`
}

// Document is a generic file attachment.
type Document struct {
	FileID   string     `json:"file_id"`
	Thumb    *PhotoSize `json:"thumb,omitempty"`
	FileName string     `json:"file_name,omitempty"`
	MimeType string     `json:"mime_type,omitempty"`
	FileSize int64      `json:"file_size,omitempty"`
}

// Audio is an audio file intended for music players.
type Audio struct {
	FileID    string     `json:"file_id"`
	Duration  int        `json:"duration"`
	MimeType  string     `json:"mime_type,omitempty"`
	FileSize  int64      `json:"file_size,omitempty"`
	Thumb     *PhotoSize `json:"thumb,omitempty"`
	Performer string     `json:"performer,omitempty"`
	Title     string     `json:"title,omitempty"`
}

// Voice is a voice note.
type Voice struct {
	FileID   string `json:"file_id"`
	Duration int    `json:"duration"`
	MimeType string `json:"mime_type,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
}

// VideoNote is a round video message.
type VideoNote struct {
	FileID   string     `json:"file_id"`
	Length   int        `json:"length"`
	Duration int        `json:"duration"`
	Thumb    *PhotoSize `json:"thumb,omitempty"`
	FileSize int64      `json:"file_size,omitempty"`
}

// Video is a regular video attachment.
type Video struct {
	FileID   string     `json:"file_id"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Duration int        `json:"duration"`
	Thumb    *PhotoSize `json:"thumb,omitempty"`
	MimeType string     `json:"mime_type,omitempty"`
	FileSize int64      `json:"file_size,omitempty"`
}

// Sticker is a sticker attachment.
type Sticker struct {
	FileID   string     `json:"file_id"`
	Width    int        `json:"width"`
	Height   int        `json:"height"`
	Thumb    *PhotoSize `json:"thumb,omitempty"`
	Emoji    string     `json:"emoji,omitempty"`
	SetName  string     `json:"set_name,omitempty"`
	FileSize int64      `json:"file_size,omitempty"`
}

// Contact is a shared contact card.
type Contact struct {
	PhoneNumber string `json:"phone_number"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name,omitempty"`
	UserID      int64  `json:"user_id,omitempty"`
}

// Location is a geographic point.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Venue is a named place with a location.
type Venue struct {
	Location Location `json:"location"`
	Title    string   `json:"title"`
	Address  string   `json:"address"`
}

// PollOption is one answer option on a poll.
type PollOption struct {
	Text       string `json:"text"`
	VoterCount int    `json:"voter_count"`
}

// Poll is a native poll.
type Poll struct {
	ID         string       `json:"id"`
	Question   string       `json:"question"`
	Options    []PollOption `json:"options"`
	VoterCount int          `json:"total_voter_count"`
	Closed     bool         `json:"is_closed"`
}

// Message is a single update payload: a text message, channel post, or one
// of the dozen media/service-message variants the Bot API multiplexes onto
// this one struct.
type Message struct {
	ID int64 `json:"message_id"`

	// Absent for channel posts.
	Sender *User `json:"from,omitempty"`

	Unixtime int64 `json:"date"`
	Chat     *Chat `json:"chat"`

	// Forward metadata, present only on forwarded messages.
	OriginalSender     *User  `json:"forward_from,omitempty"`
	OriginalChat       *Chat  `json:"forward_from_chat,omitempty"`
	OriginalMessageID  int64  `json:"forward_from_message_id,omitempty"`
	OriginalSenderName string `json:"forward_sender_name,omitempty"`
	OriginalUnixtime   int64  `json:"forward_date,omitempty"`

	// ReplyTo is never itself a reply (Bot API does not recurse beyond
	// one level), but the archiver re-normalizes it as a standalone
	// InterMessage before the outer message; see internal/normalize.
	ReplyTo *Message `json:"reply_to_message,omitempty"`

	// Non-zero if the message was edited at least once.
	LastEdit int64 `json:"edit_date,omitempty"`

	Text            string          `json:"text,omitempty"`
	Entities        []MessageEntity `json:"entities,omitempty"`
	Caption         string          `json:"caption,omitempty"`
	CaptionEntities []MessageEntity `json:"caption_entities,omitempty"`

	Audio     *Audio     `json:"audio,omitempty"`
	Document  *Document  `json:"document,omitempty"`
	Photo     []PhotoSize `json:"photo,omitempty"`
	Sticker   *Sticker   `json:"sticker,omitempty"`
	Voice     *Voice     `json:"voice,omitempty"`
	VideoNote *VideoNote `json:"video_note,omitempty"`
	Video     *Video     `json:"video,omitempty"`

	Contact  *Contact  `json:"contact,omitempty"`
	Location *Location `json:"location,omitempty"`
	Venue    *Venue    `json:"venue,omitempty"`
	Poll     *Poll     `json:"poll,omitempty"`

	// Service-message fields.
	UsersJoined       []User `json:"new_chat_members,omitempty"`
	UserLeft          *User  `json:"left_chat_member,omitempty"`
	NewGroupTitle     string `json:"new_chat_title,omitempty"`
	NewGroupPhoto     []PhotoSize `json:"new_chat_photo,omitempty"`
	GroupPhotoDeleted bool   `json:"delete_chat_photo,omitempty"`
	PinnedMessage     *Message `json:"pinned_message,omitempty"`

	// ViaBot is set when the message was sent through an inline bot.
	// Not used by any invariant; kept for Unimplemented rendering.
	ViaBot *User `json:"via_bot,omitempty"`
}

// Update is a single event pushed by long-poll. Exactly one of the pointer
// fields below (at most) is populated per delivery.
type Update struct {
	ID int64 `json:"update_id"`

	Message           *Message `json:"message,omitempty"`
	EditedMessage     *Message `json:"edited_message,omitempty"`
	ChannelPost       *Message `json:"channel_post,omitempty"`
	EditedChannelPost *Message `json:"edited_channel_post,omitempty"`
}

// File is the result of resolving an opaque file-id to a fetchable path.
type File struct {
	FileID   string `json:"file_id"`
	FileSize int64  `json:"file_size,omitempty"`
	FilePath string `json:"file_path"`
}
