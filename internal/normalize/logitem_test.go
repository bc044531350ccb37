package normalize

import (
	"testing"

	"github.com/rezograf/chatvault/internal/model"
	"github.com/rezograf/chatvault/internal/telegram"
	"github.com/stretchr/testify/assert"
)

func imWith(kind telegram.Message) model.InterMessage {
	return model.InterMessage{MessageID: kind.ID, Date: kind.Unixtime, Kind: kind}
}

func TestBuildLogItem_PlainText(t *testing.T) {
	item := BuildLogItem(imWith(telegram.Message{Text: "hello", Unixtime: 100}))
	assert.Equal(t, model.LogItemMessage, item.Kind)
	assert.Equal(t, "hello", item.Text)
}

func TestBuildLogItem_Photo(t *testing.T) {
	item := BuildLogItem(imWith(telegram.Message{
		Photo:   []telegram.PhotoSize{{FileID: "p1", Width: 100, Height: 100}},
		Caption: "nice",
	}))
	assert.Equal(t, model.LogItemMedia, item.Kind)
	assert.Equal(t, "nice", item.Caption)
	assert.Equal(t, model.MediaImage, item.Media.Kind)
}

func TestBuildLogItem_PinnedMessageTakesPriorityOverText(t *testing.T) {
	item := BuildLogItem(imWith(telegram.Message{
		Text:          "should be ignored",
		PinnedMessage: &telegram.Message{ID: 7},
	}))
	assert.Equal(t, model.LogItemPin, item.Kind)
	assert.Equal(t, int64(7), item.PinnedMessageID)
}

func TestBuildLogItem_UsersJoined(t *testing.T) {
	item := BuildLogItem(imWith(telegram.Message{UsersJoined: []telegram.User{{ID: 1}}}))
	assert.Equal(t, model.LogItemMembership, item.Kind)
	assert.Equal(t, model.MembershipJoined, item.MembershipType)
}

func TestBuildLogItem_UserLeft(t *testing.T) {
	item := BuildLogItem(imWith(telegram.Message{UserLeft: &telegram.User{ID: 1}}))
	assert.Equal(t, model.LogItemMembership, item.Kind)
	assert.Equal(t, model.MembershipLeft, item.MembershipType)
}

func TestBuildLogItem_NewGroupTitle(t *testing.T) {
	item := BuildLogItem(imWith(telegram.Message{NewGroupTitle: "New Title"}))
	assert.Equal(t, model.LogItemChat, item.Kind)
	assert.Equal(t, model.ChatEventNewTitle, item.ChatEventType)
}

func TestBuildLogItem_Contact(t *testing.T) {
	item := BuildLogItem(imWith(telegram.Message{Contact: &telegram.Contact{FirstName: "Ada"}}))
	assert.Equal(t, model.LogItemSpecial, item.Kind)
	assert.Equal(t, model.SpecialContact, item.SpecialType)
}

func TestBuildLogItem_UnimplementedViaBot(t *testing.T) {
	item := BuildLogItem(imWith(telegram.Message{ViaBot: &telegram.User{ID: 99, Username: "inlinebot"}}))
	assert.Equal(t, model.LogItemUnimplemented, item.Kind)
	assert.Equal(t, "via_bot", item.UnimplementedTag)
}
