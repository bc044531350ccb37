package store

import (
	"testing"

	"github.com/rezograf/chatvault/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestPutMessageBlock_WritesAllFiveKeys(t *testing.T) {
	db := openTestDB(t)

	item := model.LogItem{Kind: model.LogItemMessage, Time: 19675 * SecondsPerDay, Text: "hi"}
	meta := model.ChatMeta{Kind: model.ChatKindGroup, ID: -100, Title: "Test Group"}

	require.NoError(t, db.PutMessageBlock(-100, item, meta, 55))

	chats, err := db.IterateChats()
	require.NoError(t, err)
	assert.Contains(t, chats, int64(-100))

	days, err := db.IterateDaysDesc(-100)
	require.NoError(t, err)
	assert.Equal(t, []int64{19675}, days)

	gotMeta, found, err := db.GetChatMeta(-100)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Test Group", gotMeta.Title)

	resolved, found, err := db.ResolveByMessageID(-100, 55)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "hi", resolved.Text)
}

func TestIterateDayMessagesDesc_ReturnsMostRecentFirst(t *testing.T) {
	db := openTestDB(t)
	dayStart := int64(19675) * SecondsPerDay

	meta := model.ChatMeta{Kind: model.ChatKindGroup, ID: -1, Title: "g"}
	require.NoError(t, db.PutMessageBlock(-1, model.LogItem{Kind: model.LogItemMessage, Time: dayStart + 10, Text: "first"}, meta, 1))
	require.NoError(t, db.PutMessageBlock(-1, model.LogItem{Kind: model.LogItemMessage, Time: dayStart + 20, Text: "second"}, meta, 2))
	require.NoError(t, db.PutMessageBlock(-1, model.LogItem{Kind: model.LogItemMessage, Time: dayStart + 30, Text: "third"}, meta, 3))

	items, err := db.IterateDayMessagesDesc(-1, 19675)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "third", items[0].Text)
	assert.Equal(t, "second", items[1].Text)
	assert.Equal(t, "first", items[2].Text)
}

func TestIterateDayMessagesDesc_DoesNotLeakAdjacentDays(t *testing.T) {
	db := openTestDB(t)
	meta := model.ChatMeta{Kind: model.ChatKindGroup, ID: -1, Title: "g"}

	day0Start := int64(100) * SecondsPerDay
	day1Start := int64(101) * SecondsPerDay
	require.NoError(t, db.PutMessageBlock(-1, model.LogItem{Kind: model.LogItemMessage, Time: day0Start + 5, Text: "day0"}, meta, 1))
	require.NoError(t, db.PutMessageBlock(-1, model.LogItem{Kind: model.LogItemMessage, Time: day1Start + 5, Text: "day1"}, meta, 2))

	items, err := db.IterateDayMessagesDesc(-1, 100)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "day0", items[0].Text)
}

func TestLatestDay_NoDataFalse(t *testing.T) {
	db := openTestDB(t)
	_, found, err := db.LatestDay(-999)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHasFile_PutFile_Dedup(t *testing.T) {
	db := openTestDB(t)
	key := ChatMediaKey("file-1")

	exists, err := db.HasFile(key)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, db.PutFile(key, []byte("blob")))

	exists, err = db.HasFile(key)
	require.NoError(t, err)
	assert.True(t, exists)

	data, found, err := db.GetFile(key)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte("blob"), data)
}

func TestPutFile_RejectsEmptyBlob(t *testing.T) {
	db := openTestDB(t)
	err := db.PutFile(ChatMediaKey("x"), nil)
	assert.Error(t, err)
}

func TestGetUserMeta_NotFound(t *testing.T) {
	db := openTestDB(t)
	_, found, err := db.GetUserMeta("123")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPutUserMeta_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.PutUserMeta(model.UserMeta{ID: "42", FirstName: "Ada", Username: "ada"}))

	got, found, err := db.GetUserMeta("42")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "ada", got.Username)
}
