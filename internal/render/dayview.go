package render

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rezograf/chatvault/internal/model"
	"github.com/rezograf/chatvault/internal/store"
)

// dayRow is the HTML-rendering projection of one LogItem. Only Message,
// Media, and Membership kinds are rendered; every other kind is skipped in
// HTML mode per spec.md §4.5 ("other kinds are not rendered"), though all
// kinds still appear in the JSON array.
type dayRow struct {
	Time        string
	UserDisplay string
	Kind        model.LogItemKind
	Text        string
	Caption     string
	ImageURL    string
	Membership  string
}

// navLink is one entry of the day view's header bar, grounded on
// components/header.rs's HeaderItem::Link: a real href when a target
// exists, or a disabled "(none)" span otherwise.
type navLink struct {
	Label   string
	URL     string
	HasLink bool
}

// handleDayView is GET /chat/<chat-id>/<date> — spec.md §4.5: date is
// either YYYY-MM-DD or "latest" (optionally with a .json suffix to request
// JSON instead of HTML). Messages render in reverse chronological order.
func (s *Server) handleDayView(c *gin.Context) {
	chatID, err := parseChatID(c.Param("chatID"))
	if err != nil {
		c.String(http.StatusNotFound, "not found")
		return
	}

	dateParam := c.Param("date")
	jsonSuffix := strings.HasSuffix(dateParam, ".json")
	dateParam = strings.TrimSuffix(dateParam, ".json")

	day, ok, invalidDate, err := s.resolveDay(chatID, dateParam)
	if err != nil {
		s.Log.Error().Err(err).Int64("chat_id", chatID).Msg("render: resolve day")
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	if invalidDate {
		// chat_listing.rs:50-56 returns the literal body "invalid date" on
		// a NaiveDate parse failure; HTML callers get that body, JSON
		// callers get a {status, error: true, data: null} envelope.
		if jsonSuffix || wantsJSON(c) {
			c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "error": true, "data": nil})
			return
		}
		c.String(http.StatusOK, "invalid date")
		return
	}
	if !ok {
		c.String(http.StatusNotFound, "not found")
		return
	}

	items, err := s.Store.IterateDayMessagesDesc(chatID, day)
	if err != nil {
		s.Log.Error().Err(err).Int64("chat_id", chatID).Int64("day", day).Msg("render: iterate day messages")
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	if jsonSuffix || wantsJSON(c) {
		out := make([]model.LogItem, len(items))
		for i, item := range items {
			rewriteMediaFileIDs(&item)
			out[i] = item
		}
		c.JSON(http.StatusOK, out)
		return
	}

	rows := make([]dayRow, 0, len(items))
	for _, item := range items {
		row, ok := s.renderRow(item)
		if !ok {
			continue
		}
		rows = append(rows, row)
	}

	prev, next, err := s.neighborDays(chatID, day)
	if err != nil {
		s.Log.Error().Err(err).Int64("chat_id", chatID).Int64("day", day).Msg("render: neighbor days")
	}

	renderHTML(c, dayViewTemplate, gin.H{
		"ChatID": chatID,
		"Day":    dayLabel(day),
		"Rows":   rows,
		"Prev":   prev,
		"Next":   next,
		"Latest": navLink{Label: "latest", URL: chatLink(chatID, "latest"), HasLink: true},
	})
}

// resolveDay turns "latest" or a YYYY-MM-DD string into a day bucket.
// invalidDate is true only when dateParam is neither "latest" nor a
// well-formed YYYY-MM-DD string, matching chat_listing.rs's NaiveDate
// parse-failure branch. ok is false only when dateParam is "latest" and the
// chat has no indexed days; a well-formed date with no data still resolves
// (the day page simply renders with zero rows), matching chat_listing.rs's
// unconditional iterator scan over the parsed bound.
func (s *Server) resolveDay(chatID int64, dateParam string) (day int64, ok bool, invalidDate bool, err error) {
	if dateParam == "latest" {
		day, found, err := s.Store.LatestDay(chatID)
		if err != nil || !found {
			return 0, false, false, err
		}
		return day, true, false, nil
	}

	t, parseErr := time.Parse("2006-01-02", dateParam)
	if parseErr != nil {
		return 0, false, true, nil
	}
	return store.DayFromTime(t.Unix()), true, false, nil
}

// neighborDays locates day's position in the chat's indexed day list and
// returns the adjacent entries, newest-first, for the day view's prev/next
// header bar (components/header.rs, chat_listing.rs:98-107). A nav link
// with HasLink false renders as the disabled "(none)" span.
func (s *Server) neighborDays(chatID, day int64) (prev, next navLink, err error) {
	prev = navLink{Label: "previous"}
	next = navLink{Label: "next"}

	days, err := s.Store.IterateDaysDesc(chatID)
	if err != nil {
		return prev, next, err
	}

	pos := -1
	for i, d := range days {
		if d == day {
			pos = i
			break
		}
	}
	if pos == -1 {
		return prev, next, nil
	}
	// days is newest-first: the chronologically-next day sits before pos,
	// the chronologically-previous day sits after pos.
	if pos+1 < len(days) {
		prevDay := days[pos+1]
		prev.HasLink = true
		prev.URL = chatLink(chatID, dayLabel(prevDay))
	}
	if pos > 0 {
		nextDay := days[pos-1]
		next.HasLink = true
		next.URL = chatLink(chatID, dayLabel(nextDay))
	}
	return prev, next, nil
}

func chatLink(chatID int64, date string) string {
	return "/chat/" + strconv.FormatInt(chatID, 10) + "/" + date
}

func (s *Server) renderRow(item model.LogItem) (dayRow, bool) {
	row := dayRow{
		Time:        time.Unix(item.Time, 0).UTC().Format("15:04:05"),
		UserDisplay: s.displayNameForUser(item.UserID),
		Kind:        item.Kind,
	}

	switch item.Kind {
	case model.LogItemMessage:
		row.Text = item.Text
	case model.LogItemMedia:
		row.Caption = item.Caption
		if fileID, ok := item.BiggestFile(); ok {
			row.ImageURL = "/file/image/" + fileID
		}
	case model.LogItemMembership:
		switch item.MembershipType {
		case model.MembershipJoined:
			row.Membership = "joined"
		case model.MembershipLeft:
			row.Membership = "left"
		}
	default:
		return dayRow{}, false
	}
	return row, true
}

// rewriteMediaFileIDs rewrites Files and Media.ThumbFileID to /file/image/
// URLs, but only for Image and Sticker media kinds, per spec.md §4.5's JSON
// rendering rule. Every other media kind keeps its raw file-ids.
func rewriteMediaFileIDs(item *model.LogItem) {
	if item.Kind != model.LogItemMedia {
		return
	}
	if item.Media.Kind != model.MediaImage && item.Media.Kind != model.MediaSticker {
		return
	}
	for i, id := range item.Files {
		item.Files[i] = "/file/image/" + id
	}
	if item.Media.ThumbFileID != "" {
		item.Media.ThumbFileID = "/file/image/" + item.Media.ThumbFileID
	}
}

func parseChatID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
