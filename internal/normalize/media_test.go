package normalize

import (
	"testing"

	"github.com/rezograf/chatvault/internal/telegram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBiggestPhoto_PicksMaxArea(t *testing.T) {
	sizes := []telegram.PhotoSize{
		{FileID: "small", Width: 90, Height: 90},
		{FileID: "big", Width: 800, Height: 600},
		{FileID: "medium", Width: 320, Height: 240},
	}
	assert.Equal(t, "big", biggestPhoto(sizes).FileID)
}

func TestBiggestPhoto_TieBreaksFirstSeen(t *testing.T) {
	sizes := []telegram.PhotoSize{
		{FileID: "first", Width: 100, Height: 100},
		{FileID: "second", Width: 100, Height: 100},
	}
	assert.Equal(t, "first", biggestPhoto(sizes).FileID)
}

func TestAttachments_PhotoSelectsBiggest(t *testing.T) {
	msg := telegram.Message{
		Photo: []telegram.PhotoSize{
			{FileID: "thumb", Width: 90, Height: 90, FileSize: 1000},
			{FileID: "full", Width: 1280, Height: 720, FileSize: 90000},
		},
	}
	atts := Attachments(msg)
	require.Len(t, atts, 1)
	assert.Equal(t, "full", atts[0].FileID)
	assert.True(t, atts[0].IsImage)
}

func TestAttachments_VideoOnlyYieldsThumbnail(t *testing.T) {
	msg := telegram.Message{
		Video: &telegram.Video{FileID: "vid1", Thumb: &telegram.PhotoSize{FileID: "vidthumb", FileSize: 500}},
	}
	atts := Attachments(msg)
	require.Len(t, atts, 1)
	assert.Equal(t, "vidthumb", atts[0].FileID)
	assert.True(t, atts[0].IsImage)
}

func TestAttachments_VideoWithoutThumbYieldsNothing(t *testing.T) {
	msg := telegram.Message{Video: &telegram.Video{FileID: "vid1"}}
	assert.Empty(t, Attachments(msg))
}

func TestAttachments_DocumentYieldsMainPlusThumb(t *testing.T) {
	msg := telegram.Message{
		Document: &telegram.Document{FileID: "doc1", FileSize: 2048, Thumb: &telegram.PhotoSize{FileID: "docthumb", FileSize: 300}},
	}
	atts := Attachments(msg)
	require.Len(t, atts, 2)
	assert.Equal(t, "doc1", atts[0].FileID)
	assert.False(t, atts[0].IsImage)
	assert.Equal(t, "docthumb", atts[1].FileID)
	assert.True(t, atts[1].IsImage)
}

func TestAttachments_VoiceYieldsMainOnlyNotImage(t *testing.T) {
	msg := telegram.Message{Voice: &telegram.Voice{FileID: "v1", FileSize: 999}}
	atts := Attachments(msg)
	require.Len(t, atts, 1)
	assert.False(t, atts[0].IsImage)
}

func TestEntitiesFor_MapsTextMentionUser(t *testing.T) {
	src := []telegram.MessageEntity{
		{Type: telegram.EntityTextMention, Offset: 0, Length: 4, User: &telegram.User{ID: 99}},
		{Type: telegram.EntityBold, Offset: 5, Length: 3},
	}
	out := entitiesFor(src)
	require.Len(t, out, 2)
	assert.Equal(t, "99", out[0].MentionedUserID)
	assert.Equal(t, "Bold", string(out[1].Kind))
}
