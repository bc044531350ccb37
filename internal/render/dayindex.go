package render

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type dayEntry struct {
	Day    int64
	Label  string
	Latest bool
}

// handleDayIndex is GET /chat/<chat-id> — spec.md §4.5: iterate
// chat_index:<chat-id>: in reverse, one link per day descending, the first
// annotated "latest".
func (s *Server) handleDayIndex(c *gin.Context) {
	chatID, err := parseChatID(c.Param("chatID"))
	if err != nil {
		c.String(http.StatusNotFound, "not found")
		return
	}

	days, err := s.Store.IterateDaysDesc(chatID)
	if err != nil {
		s.Log.Error().Err(err).Int64("chat_id", chatID).Msg("render: iterate days")
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	entries := make([]dayEntry, 0, len(days))
	for i, d := range days {
		entries = append(entries, dayEntry{
			Day:    d,
			Label:  dayLabel(d),
			Latest: i == 0,
		})
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, entries)
		return
	}
	renderHTML(c, dayIndexTemplate, gin.H{"ChatID": chatID, "Entries": entries})
}

func dayLabel(day int64) string {
	return time.Unix(day*86400, 0).UTC().Format("2006-01-02")
}
