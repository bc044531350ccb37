package render

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"
)

type rosterEntry struct {
	ChatID      int64
	DisplayName string
}

// handleRoster is GET / — spec.md §4.5: iterate chat_rel: and emit one
// link per chat, resolving the display name via chat:meta:.
func (s *Server) handleRoster(c *gin.Context) {
	ids, err := s.Store.IterateChats()
	if err != nil {
		s.Log.Error().Err(err).Msg("render: iterate chats")
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	entries := make([]rosterEntry, 0, len(ids))
	for _, id := range ids {
		meta, found, err := s.Store.GetChatMeta(id)
		name := strconv.FormatInt(id, 10)
		if err == nil && found {
			name = meta.DisplayName()
		}
		entries = append(entries, rosterEntry{ChatID: id, DisplayName: name})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].DisplayName < entries[j].DisplayName })

	if wantsJSON(c) {
		c.JSON(http.StatusOK, entries)
		return
	}
	renderHTML(c, rosterTemplate, gin.H{"Entries": entries})
}
