// Package store defines the composite keyspace over an ordered byte→byte
// map and the boundary iterators built on it. Key encoding lives in this
// file and has no dependency on the underlying KV engine, matching the
// spec's separation between "Key Codec" and the store that embeds it.
package store

import (
	"strconv"
	"strings"
)

const (
	nsMessage    = "chat"
	nsDayIndex   = "chat_index"
	nsChatRoster = "chat_rel"
	nsMsgRef     = "chat_ref"
	nsChatMeta   = "chat"
	nsUserMeta   = "user"
	nsChatMedia  = "file"
	nsUserPhoto  = "file"
	nsVideoThumb = "file"
)

// SecondsPerDay is the fixed bucket width; day = floor(time / SecondsPerDay).
const SecondsPerDay = 86400

func i64(n int64) string { return strconv.FormatInt(n, 10) }

// MessageKey returns the primary record key: chat:<chat-id>:<time>.
func MessageKey(chatID, effectiveTime int64) []byte {
	return []byte(nsMessage + ":" + i64(chatID) + ":" + i64(effectiveTime))
}

// MessagePrefix returns the prefix shared by every message key of a chat.
func MessagePrefix(chatID int64) []byte {
	return []byte(nsMessage + ":" + i64(chatID) + ":")
}

// DayFromTime computes floor(time / 86400).
func DayFromTime(effectiveTime int64) int64 {
	if effectiveTime < 0 {
		// Integer division on negatives would round toward zero; archives
		// predating the epoch are not a real scenario but floor must still
		// hold.
		return (effectiveTime - (SecondsPerDay - 1)) / SecondsPerDay
	}
	return effectiveTime / SecondsPerDay
}

// DayStart returns the first second of the given day bucket.
func DayStart(day int64) int64 { return day * SecondsPerDay }

// DayRange returns the [start, end) message-key bounds covering one day's
// messages in chatID: start = chat:<chatID>:<dayStartSeconds>, end =
// chat:<chatID>:<dayStartSeconds+86400>. Because keys are decimal without
// padding, this only produces a correct bound when every timestamp in range
// shares the same digit width as the boundary values themselves — true for
// all production (ten-digit, post-2001) timestamps. See spec.md §9.
func DayRange(chatID, day int64) (start, end []byte) {
	start = MessageKey(chatID, DayStart(day))
	end = MessageKey(chatID, DayStart(day+1))
	return start, end
}

// DayIndexKey returns chat_index:<chat-id>:<day>.
func DayIndexKey(chatID, day int64) []byte {
	return []byte(nsDayIndex + ":" + i64(chatID) + ":" + i64(day))
}

// DayIndexPrefix returns the prefix shared by every day-index key of a chat.
func DayIndexPrefix(chatID int64) []byte {
	return []byte(nsDayIndex + ":" + i64(chatID) + ":")
}

// ParseDayIndexKey extracts the day bucket from a chat_index key previously
// produced by DayIndexKey.
func ParseDayIndexKey(key []byte) (day int64, ok bool) {
	parts := strings.SplitN(string(key), ":", 3)
	if len(parts) != 3 || parts[0] != nsDayIndex {
		return 0, false
	}
	d, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return 0, false
	}
	return d, true
}

// ChatRosterKey returns chat_rel:<chat-id>, the presence marker iterated to
// enumerate known chats.
func ChatRosterKey(chatID int64) []byte {
	return []byte(nsChatRoster + ":" + i64(chatID))
}

// ChatRosterPrefix is the prefix of every roster key.
func ChatRosterPrefix() []byte { return []byte(nsChatRoster + ":") }

// ParseChatRosterKey extracts the chat id from a chat_rel key.
func ParseChatRosterKey(key []byte) (chatID int64, ok bool) {
	parts := strings.SplitN(string(key), ":", 2)
	if len(parts) != 2 || parts[0] != nsChatRoster {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// MsgRefKey returns chat_ref:<chat-id>:<message-id>, a direct lookup from
// the originally-received message-id to its effective timestamp.
func MsgRefKey(chatID, messageID int64) []byte {
	return []byte(nsMsgRef + ":" + i64(chatID) + ":" + i64(messageID))
}

// ChatMetaKey returns chat:meta:<chat-id>.
func ChatMetaKey(chatID int64) []byte {
	return []byte(nsChatMeta + ":meta:" + i64(chatID))
}

// UserMetaKey returns user:meta:<user-id>. userID is the decimal Telegram
// user id as a string (UserMeta.ID's native form).
func UserMetaKey(userID string) []byte {
	return []byte(nsUserMeta + ":meta:" + userID)
}

// ChatMediaKey returns file:chat:<file-id>.
func ChatMediaKey(fileID string) []byte {
	return []byte(nsChatMedia + ":chat:" + fileID)
}

// UserPhotoKey returns file:user:<user-id>.
func UserPhotoKey(userID string) []byte {
	return []byte(nsUserPhoto + ":user:" + userID)
}

// VideoThumbKey returns file:video_thumb:<file-id>.
func VideoThumbKey(fileID string) []byte {
	return []byte(nsVideoThumb + ":video_thumb:" + fileID)
}

// FileKind enumerates the three file:* sub-namespaces the render layer's
// GET /file/<kind>/<file-id> route maps onto.
type FileKind string

const (
	FileKindUser       FileKind = "user"
	FileKindImage      FileKind = "image"
	FileKindVideoThumb FileKind = "video_thumb"
)

// FileKeyFor resolves a (kind, id) pair to its storage key. ok is false for
// an unrecognized kind.
func FileKeyFor(kind FileKind, id string) (key []byte, ok bool) {
	switch kind {
	case FileKindUser:
		return UserPhotoKey(id), true
	case FileKindImage:
		return ChatMediaKey(id), true
	case FileKindVideoThumb:
		return VideoThumbKey(id), true
	default:
		return nil, false
	}
}
