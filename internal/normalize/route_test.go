package normalize

import (
	"testing"

	"github.com/rezograf/chatvault/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoute_GroupNeverRedirectsEvenIfForwarded(t *testing.T) {
	im := model.InterMessage{
		Chat: model.ChatMeta{Kind: model.ChatKindGroup, ID: -500, Title: "G"},
		Forward: &model.Forward{
			Date: 111,
			From: model.ForwardSource{
				Kind: model.ForwardFromChannel,
				ChannelID: -900,
			},
		},
	}
	chatID, meta := Route(im)
	assert.Equal(t, int64(-500), chatID)
	assert.Equal(t, model.ChatKindGroup, meta.Kind)
}

func TestRoute_PrivateUserRedirectsToForwardedChannel(t *testing.T) {
	im := model.InterMessage{
		Chat: model.ChatMeta{Kind: model.ChatKindPrivateUser, ID: 12345},
		Forward: &model.Forward{
			Date: 111,
			From: model.ForwardSource{
				Kind:      model.ForwardFromChannel,
				ChannelID: -900,
			},
		},
	}
	chatID, meta := Route(im)
	assert.Equal(t, int64(-900), chatID)
	assert.Equal(t, model.ChatKindChannel, meta.Kind)
}

func TestRoute_PrivateUserRedirectsToForwardedUser(t *testing.T) {
	im := model.InterMessage{
		Chat: model.ChatMeta{Kind: model.ChatKindPrivateUser, ID: 1},
		Forward: &model.Forward{
			Date: 111,
			From: model.ForwardSource{
				Kind: model.ForwardFromUser,
				User: &model.UserMeta{ID: "777", FirstName: "Grace"},
			},
		},
	}
	chatID, meta := Route(im)
	assert.Equal(t, int64(777), chatID)
	assert.Equal(t, "Grace", meta.FirstName)
}

func TestRoute_PrivateUserHiddenChannelForwardStaysUnderReceivingChat(t *testing.T) {
	im := model.InterMessage{
		Chat: model.ChatMeta{Kind: model.ChatKindPrivateUser, ID: 42},
		Forward: &model.Forward{
			Date: 111,
			From: model.ForwardSource{
				Kind:       model.ForwardFromChannelHidden,
				HiddenName: "Anonymous",
			},
		},
	}
	chatID, meta := Route(im)
	assert.Equal(t, int64(42), chatID)
	assert.Equal(t, model.ChatKindPrivateUser, meta.Kind)
}

func TestRoute_NoForwardUsesReceivingChat(t *testing.T) {
	im := model.InterMessage{Chat: model.ChatMeta{Kind: model.ChatKindPrivateUser, ID: 7}}
	chatID, meta := Route(im)
	require.Equal(t, int64(7), chatID)
	assert.Equal(t, model.ChatKindPrivateUser, meta.Kind)
}
