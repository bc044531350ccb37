package normalize

import "github.com/rezograf/chatvault/internal/model"

// Route resolves which chat an InterMessage archives under and the meta to
// store for that chat. For {PrivateUser, Unknown} receiving chats with a
// forward present, the record is redirected to the forward's origin
// chat-id (spec.md §4.3 "Forwarded-source chat redirection"): a user DMing
// the bot a forwarded channel post folds into that channel's archive. For
// {Group, SuperGroup, Channel} the receiving chat is always the archive
// key, forward or not.
func Route(im model.InterMessage) (chatID int64, meta model.ChatMeta) {
	redirectable := im.Chat.Kind == model.ChatKindPrivateUser || im.Chat.Kind == model.ChatKindUnknown

	if redirectable && im.Forward != nil {
		switch im.Forward.From.Kind {
		case model.ForwardFromUser:
			if im.Forward.From.User != nil {
				id := mustParseID(im.Forward.From.User.ID)
				return id, model.ChatMeta{
					Kind:      model.ChatKindPrivateUser,
					ID:        id,
					FirstName: im.Forward.From.User.FirstName,
					LastName:  im.Forward.From.User.LastName,
					Username:  im.Forward.From.User.Username,
				}
			}
		case model.ForwardFromChannel:
			return im.Forward.From.ChannelID, model.ChatMeta{
				Kind: model.ChatKindChannel,
				ID:   im.Forward.From.ChannelID,
			}
		case model.ForwardFromHiddenGroupAdmin:
			return im.Forward.From.AdminChatID, model.ChatMeta{
				Kind:  model.ChatKindGroup,
				ID:    im.Forward.From.AdminChatID,
				Title: im.Forward.From.AdminTitle,
			}
		case model.ForwardFromChannelHidden:
			// No chat-id to redirect to; stays under the receiving chat.
		}
	}

	return im.Chat.ID, im.Chat
}

func mustParseID(s string) int64 {
	v, err := parseID(s)
	if err != nil {
		return 0
	}
	return v
}
