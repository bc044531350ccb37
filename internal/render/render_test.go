package render

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rezograf/chatvault/internal/model"
	"github.com/rezograf/chatvault/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T) (*Server, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := &Server{Store: db, Log: zerolog.Nop()}
	return s, NewRouter(s)
}

func TestHandleHealthz_Returns200(t *testing.T) {
	_, router := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleRoster_ResolvesDisplayNames(t *testing.T) {
	s, router := testServer(t)
	meta := model.ChatMeta{Kind: model.ChatKindGroup, ID: -1, Title: "Engineering"}
	require.NoError(t, s.Store.PutMessageBlock(-1, model.LogItem{Kind: model.LogItemMessage, Time: 1700000000, Text: "hi"}, meta, 1))

	req := httptest.NewRequest(http.MethodGet, "/?format=json", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []rosterEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Engineering", entries[0].DisplayName)
}

func TestHandleDayIndex_MarksFirstAsLatest(t *testing.T) {
	s, router := testServer(t)
	meta := model.ChatMeta{Kind: model.ChatKindGroup, ID: -1, Title: "G"}
	require.NoError(t, s.Store.PutMessageBlock(-1, model.LogItem{Kind: model.LogItemMessage, Time: 19670 * store.SecondsPerDay, Text: "a"}, meta, 1))
	require.NoError(t, s.Store.PutMessageBlock(-1, model.LogItem{Kind: model.LogItemMessage, Time: 19675 * store.SecondsPerDay, Text: "b"}, meta, 2))

	req := httptest.NewRequest(http.MethodGet, "/chat/-1?format=json", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []dayEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Latest)
	assert.Equal(t, int64(19675), entries[0].Day)
}

func TestHandleDayView_LatestResolvesToMaxDay(t *testing.T) {
	s, router := testServer(t)
	meta := model.ChatMeta{Kind: model.ChatKindGroup, ID: -1, Title: "G"}
	require.NoError(t, s.Store.PutMessageBlock(-1, model.LogItem{Kind: model.LogItemMessage, Time: 19670 * store.SecondsPerDay, Text: "old"}, meta, 1))
	require.NoError(t, s.Store.PutMessageBlock(-1, model.LogItem{Kind: model.LogItemMessage, Time: 19675*store.SecondsPerDay + 5, Text: "new"}, meta, 2))

	req := httptest.NewRequest(http.MethodGet, "/chat/-1/latest.json", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var items []model.LogItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "new", items[0].Text)
}

func TestHandleDayView_MalformedDateIsInvalidDate(t *testing.T) {
	_, router := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/chat/-1/not-a-date", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "invalid date", w.Body.String())
}

func TestHandleDayView_MalformedDateJSONErrorEnvelope(t *testing.T) {
	_, router := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/chat/-1/not-a-date.json", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["error"])
	assert.Nil(t, body["data"])
}

func TestHandleDayView_WellFormedDateWithNoDataRendersEmptyPage(t *testing.T) {
	_, router := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/chat/-1/2020-01-01", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleFile_UnknownKindIs404(t *testing.T) {
	_, router := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/file/bogus/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Unknown file request type", w.Body.String())
}

func TestHandleFile_ReturnsStoredBytes(t *testing.T) {
	s, router := testServer(t)
	require.NoError(t, s.Store.PutFile(store.ChatMediaKey("f1"), []byte("hello-bytes")))

	req := httptest.NewRequest(http.MethodGet, "/file/image/f1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello-bytes", w.Body.String())
}

func TestHandleDayView_SingleDayHasDisabledNav(t *testing.T) {
	s, router := testServer(t)
	day := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	meta := model.ChatMeta{Kind: model.ChatKindGroup, ID: -100, Title: "G"}
	require.NoError(t, s.Store.PutMessageBlock(-100, model.LogItem{Kind: model.LogItemMessage, Time: day.Unix() + 5, Text: "hi"}, meta, 1))

	req := httptest.NewRequest(http.MethodGet, "/chat/-100/"+day.Format("2006-01-02"), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<span class="nolink">previous (none)</span>`)
	assert.Contains(t, w.Body.String(), `<span class="nolink">next (none)</span>`)
	assert.Contains(t, w.Body.String(), `href="/chat/-100/latest"`)
}

func TestRewriteMediaFileIDs_OnlyImageAndSticker(t *testing.T) {
	img := model.LogItem{Kind: model.LogItemMedia, Media: model.MediaInfo{Kind: model.MediaImage}, Files: []string{"a"}}
	rewriteMediaFileIDs(&img)
	assert.Equal(t, "/file/image/a", img.Files[0])

	doc := model.LogItem{Kind: model.LogItemMedia, Media: model.MediaInfo{Kind: model.MediaDocument}, Files: []string{"b"}}
	rewriteMediaFileIDs(&doc)
	assert.Equal(t, "b", doc.Files[0])
}
