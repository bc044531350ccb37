package normalize

import (
	"github.com/rezograf/chatvault/internal/model"
	"github.com/rezograf/chatvault/internal/telegram"
)

// BuildLogItem converts one InterMessage into its persisted LogItem form.
// Files is left empty here; the media pipeline (pipeline.go) fills it in
// after fetching, deduping, and sniffing the declared attachments.
func BuildLogItem(im model.InterMessage) model.LogItem {
	item := model.LogItem{
		Time:   im.EffectiveTime(),
		Source: &im,
	}
	if im.From != nil {
		item.UserID = im.From.ID
	}

	msg := im.Kind

	switch {
	case msg.PinnedMessage != nil:
		item.Kind = model.LogItemPin
		item.PinnedMessageID = msg.PinnedMessage.ID

	case len(msg.UsersJoined) > 0:
		item.Kind = model.LogItemMembership
		item.MembershipType = model.MembershipJoined

	case msg.UserLeft != nil:
		item.Kind = model.LogItemMembership
		item.MembershipType = model.MembershipLeft

	case msg.NewGroupTitle != "":
		item.Kind = model.LogItemChat
		item.ChatEventType = model.ChatEventNewTitle

	case len(msg.NewGroupPhoto) > 0:
		item.Kind = model.LogItemChat
		item.ChatEventType = model.ChatEventNewPhoto

	case msg.GroupPhotoDeleted:
		item.Kind = model.LogItemChat
		item.ChatEventType = model.ChatEventDeletePhoto

	case hasMedia(msg):
		item.Kind = model.LogItemMedia
		item.Caption = msg.Caption
		item.Media = mediaInfoFor(msg)

	case msg.Contact != nil:
		item.Kind = model.LogItemSpecial
		item.SpecialType = model.SpecialContact

	case msg.Location != nil:
		item.Kind = model.LogItemSpecial
		item.SpecialType = model.SpecialLocation

	case msg.Venue != nil:
		item.Kind = model.LogItemSpecial
		item.SpecialType = model.SpecialVenue

	case msg.Poll != nil:
		item.Kind = model.LogItemSpecial
		item.SpecialType = model.SpecialPoll

	case msg.Text != "":
		item.Kind = model.LogItemMessage
		item.Text = msg.Text
		item.Entities = entitiesFor(msg.Entities)

	default:
		item.Kind = model.LogItemUnimplemented
		item.UnimplementedTag = unimplementedTag(msg)
	}

	return item
}

func hasMedia(msg telegram.Message) bool {
	return len(msg.Photo) > 0 || msg.Video != nil || msg.Audio != nil ||
		msg.Voice != nil || msg.VideoNote != nil || msg.Document != nil || msg.Sticker != nil
}

// unimplementedTag labels a message that no variant above covers, for the
// Unimplemented catch-all: "via_bot" when it was sent through an inline
// bot, "edited_non_text" for an edited message without text, and
// "unknown" for anything else.
func unimplementedTag(msg telegram.Message) string {
	switch {
	case msg.ViaBot != nil:
		return "via_bot"
	case msg.LastEdit != 0 && msg.Text == "":
		return "edited_non_text"
	default:
		return "unknown"
	}
}
