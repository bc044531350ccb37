package model

import "github.com/rezograf/chatvault/internal/telegram"

// ForwardSourceKind tags the origin of a forwarded message.
type ForwardSourceKind string

const (
	ForwardFromUser             ForwardSourceKind = "User"
	ForwardFromChannel          ForwardSourceKind = "Channel"
	ForwardFromChannelHidden    ForwardSourceKind = "ChannelHiddenUser"
	ForwardFromHiddenGroupAdmin ForwardSourceKind = "HiddenGroupAdmin"
)

// ForwardSource is the tagged variant describing who a forward came from.
type ForwardSource struct {
	Kind ForwardSourceKind

	// ForwardFromUser
	User *UserMeta

	// ForwardFromChannel
	ChannelID        int64
	OriginalMessageID int64

	// ForwardFromChannelHidden
	HiddenName string

	// ForwardFromHiddenGroupAdmin
	AdminChatID int64
	AdminTitle  string
}

// Forward is the replay metadata on a forwarded InterMessage.
type Forward struct {
	Date int64
	From ForwardSource
}

// InterMessage is the normalized form of a message or channel post, built
// from one telegram.Update by the Normalizer.
type InterMessage struct {
	MessageID int64
	From      *UserMeta // absent for channel posts
	Date      int64     // unix seconds, message's own timestamp
	Chat      ChatMeta

	Forward *Forward

	// ReplyTo is the already-normalized parent; nil if this message is
	// not a reply.
	ReplyTo *InterMessage

	EditDate int64 // zero if never edited

	Kind telegram.Message // raw wire shape, preserved for forensic replay
}

// EffectiveTime is the replay timestamp used as the archive key: the
// forward's origin date when forwarded, else the message's own date.
func (m InterMessage) EffectiveTime() int64 {
	if m.Forward != nil {
		return m.Forward.Date
	}
	return m.Date
}
