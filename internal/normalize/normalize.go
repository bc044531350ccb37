// Package normalize transforms a raw telegram.Update into zero or more
// model.InterMessage values (reply chain expansion), and each InterMessage
// into exactly one model.LogItem, including the media fetch/dedupe/sniff
// pipeline described in spec.md §4.3.
package normalize

import (
	"github.com/rezograf/chatvault/internal/model"
	"github.com/rezograf/chatvault/internal/telegram"
)

// MaxReplyDepth bounds reply-chain recursion against adversarial input
// (spec.md §9).
const MaxReplyDepth = 32

// Expand turns one Update into zero or more InterMessages, oldest-context
// first: a reply chain's replied-to message is normalized and returned
// before the message that replies to it, so a later scan of the chat
// contains the replied-to context even if the bot joined after it was
// posted.
func Expand(update telegram.Update) []model.InterMessage {
	switch {
	case update.Message != nil:
		return expandMessage(update.Message, false)
	case update.EditedMessage != nil:
		return expandMessage(update.EditedMessage, false)
	case update.ChannelPost != nil:
		return expandMessage(update.ChannelPost, true)
	case update.EditedChannelPost != nil:
		return expandMessage(update.EditedChannelPost, true)
	default:
		// Update kinds the archiver does not observe (callbacks, inline
		// queries, chat-member updates, ...) are dropped.
		return nil
	}
}

func expandMessage(msg *telegram.Message, isChannelPost bool) []model.InterMessage {
	var out []model.InterMessage
	collectReplyChain(msg, isChannelPost, 0, &out)
	return out
}

// collectReplyChain recursively normalizes msg.ReplyTo (if present and
// within MaxReplyDepth) before msg itself, appending in that order.
func collectReplyChain(msg *telegram.Message, isChannelPost bool, depth int, out *[]model.InterMessage) {
	if msg == nil {
		return
	}
	if msg.ReplyTo != nil && depth < MaxReplyDepth {
		collectReplyChain(msg.ReplyTo, isChannelPost, depth+1, out)
	}
	*out = append(*out, toInterMessage(msg, isChannelPost))
}

func toInterMessage(msg *telegram.Message, isChannelPost bool) model.InterMessage {
	im := model.InterMessage{
		MessageID: msg.ID,
		Date:      msg.Unixtime,
		EditDate:  msg.LastEdit,
		Kind:      *msg,
	}

	if !isChannelPost && msg.Sender != nil {
		u := userMetaFrom(msg.Sender)
		im.From = &u
	}

	if msg.Chat != nil {
		im.Chat = chatMetaFrom(msg.Chat)
	}

	if f := forwardFrom(msg); f != nil {
		im.Forward = f
	}

	return im
}

func userMetaFrom(u *telegram.User) model.UserMeta {
	return model.UserMeta{
		ID:           idString(u.ID),
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Username:     u.Username,
		IsBot:        u.IsBot,
		LanguageCode: u.LanguageCode,
	}
}

func chatMetaFrom(c *telegram.Chat) model.ChatMeta {
	kind := model.ChatKindUnknown
	switch c.Type {
	case telegram.ChatPrivate:
		kind = model.ChatKindPrivateUser
	case telegram.ChatGroup:
		kind = model.ChatKindGroup
	case telegram.ChatSuperGroup:
		kind = model.ChatKindSuperGroup
	case telegram.ChatChannel:
		kind = model.ChatKindChannel
	}
	return model.ChatMeta{
		Kind:        kind,
		ID:          c.ID,
		Title:       c.Title,
		Username:    c.Username,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Description: c.Description,
	}
}

func forwardFrom(msg *telegram.Message) *model.Forward {
	switch {
	case msg.OriginalSender != nil:
		u := userMetaFrom(msg.OriginalSender)
		return &model.Forward{
			Date: msg.OriginalUnixtime,
			From: model.ForwardSource{Kind: model.ForwardFromUser, User: &u},
		}
	case msg.OriginalChat != nil:
		// A forward_from_chat of type channel is a real channel repost; of
		// type group/supergroup it is an anonymous admin's message, which
		// Telegram represents the same way since the admin posted "as the
		// chat" rather than as themselves.
		if msg.OriginalChat.Type == telegram.ChatGroup || msg.OriginalChat.Type == telegram.ChatSuperGroup {
			return &model.Forward{
				Date: msg.OriginalUnixtime,
				From: model.ForwardSource{
					Kind:        model.ForwardFromHiddenGroupAdmin,
					AdminChatID: msg.OriginalChat.ID,
					AdminTitle:  msg.OriginalChat.Title,
				},
			}
		}
		return &model.Forward{
			Date: msg.OriginalUnixtime,
			From: model.ForwardSource{
				Kind:              model.ForwardFromChannel,
				ChannelID:         msg.OriginalChat.ID,
				OriginalMessageID: msg.OriginalMessageID,
			},
		}
	case msg.OriginalSenderName != "":
		return &model.Forward{
			Date: msg.OriginalUnixtime,
			From: model.ForwardSource{Kind: model.ForwardFromChannelHidden, HiddenName: msg.OriginalSenderName},
		}
	default:
		return nil
	}
}
