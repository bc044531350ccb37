package normalize

import (
	"github.com/rezograf/chatvault/internal/model"
	"github.com/rezograf/chatvault/internal/store"
	"github.com/rezograf/chatvault/internal/telegram"
)

func entitiesFor(src []telegram.MessageEntity) []model.Entity {
	out := make([]model.Entity, 0, len(src))
	for _, e := range src {
		ent := model.Entity{
			Offset: e.Offset,
			Length: e.Length,
			URL:    e.URL,
		}
		switch e.Type {
		case telegram.EntityMention:
			ent.Kind = model.EntityMention
		case telegram.EntityHashtag:
			ent.Kind = model.EntityHashtag
		case telegram.EntityBotCommand:
			ent.Kind = model.EntityBotCommand
		case telegram.EntityURL:
			ent.Kind = model.EntityURL
		case telegram.EntityEmail:
			ent.Kind = model.EntityEmail
		case telegram.EntityBold:
			ent.Kind = model.EntityBold
		case telegram.EntityItalic:
			ent.Kind = model.EntityItalic
		case telegram.EntityCode:
			ent.Kind = model.EntityCode
		case telegram.EntityPre:
			ent.Kind = model.EntityPre
		case telegram.EntityTextLink:
			ent.Kind = model.EntityTextLink
		case telegram.EntityTextMention:
			ent.Kind = model.EntityTextMention
			if e.User != nil {
				ent.MentionedUserID = idString(e.User.ID)
			}
		default:
			ent.Kind = model.EntityUnknown
		}
		out = append(out, ent)
	}
	return out
}

// mediaInfoFor fills in the shape-specific fields of MediaInfo from the raw
// wire message. File-id references (Files, ThumbFileID) are NOT set here;
// see Attachments below and MediaPipeline.Resolve in pipeline.go.
func mediaInfoFor(msg telegram.Message) model.MediaInfo {
	switch {
	case len(msg.Photo) > 0:
		best := biggestPhoto(msg.Photo)
		return model.MediaInfo{Kind: model.MediaImage, Width: best.Width, Height: best.Height}
	case msg.Video != nil:
		return model.MediaInfo{Kind: model.MediaVideo, Width: msg.Video.Width, Height: msg.Video.Height, DurationSeconds: msg.Video.Duration, MimeType: msg.Video.MimeType}
	case msg.Audio != nil:
		return model.MediaInfo{Kind: model.MediaAudio, DurationSeconds: msg.Audio.Duration, MimeType: msg.Audio.MimeType}
	case msg.Voice != nil:
		return model.MediaInfo{Kind: model.MediaVoice, DurationSeconds: msg.Voice.Duration, MimeType: msg.Voice.MimeType}
	case msg.VideoNote != nil:
		return model.MediaInfo{Kind: model.MediaVideoNote, DurationSeconds: msg.VideoNote.Duration}
	case msg.Document != nil:
		return model.MediaInfo{Kind: model.MediaDocument, MimeType: msg.Document.MimeType}
	case msg.Sticker != nil:
		return model.MediaInfo{Kind: model.MediaSticker, Width: msg.Sticker.Width, Height: msg.Sticker.Height}
	default:
		return model.MediaInfo{}
	}
}

// biggestPhoto picks the PhotoSize maximizing width*height. Ties resolve to
// first-seen.
func biggestPhoto(sizes []telegram.PhotoSize) telegram.PhotoSize {
	best := sizes[0]
	bestArea := best.Width * best.Height
	for _, s := range sizes[1:] {
		area := s.Width * s.Height
		if area > bestArea {
			best = s
			bestArea = area
		}
	}
	return best
}

// Attachment is one candidate blob the media pipeline may fetch, dedupe,
// sniff, and persist.
type Attachment struct {
	FileID      string
	DeclaredSize int64 // 0 means unknown
	StoreKind   store.FileKind // image or video_thumb
	IsImage     bool           // run through the format sniffer
}

// Attachments returns every candidate attachment for msg, main blob(s) and
// thumbnail(s) alike, in the order Files should be recorded (primary
// first). Videos are deliberately excluded from their own main blob: only
// their thumbnail is a candidate, per spec.md §4.3.
func Attachments(msg telegram.Message) []Attachment {
	var out []Attachment

	switch {
	case len(msg.Photo) > 0:
		best := biggestPhoto(msg.Photo)
		out = append(out, Attachment{FileID: best.FileID, DeclaredSize: best.FileSize, StoreKind: store.FileKindImage, IsImage: true})

	case msg.Video != nil:
		if msg.Video.Thumb != nil {
			out = append(out, Attachment{FileID: msg.Video.Thumb.FileID, DeclaredSize: msg.Video.Thumb.FileSize, StoreKind: store.FileKindVideoThumb, IsImage: true})
		}

	case msg.VideoNote != nil:
		if msg.VideoNote.Thumb != nil {
			out = append(out, Attachment{FileID: msg.VideoNote.Thumb.FileID, DeclaredSize: msg.VideoNote.Thumb.FileSize, StoreKind: store.FileKindVideoThumb, IsImage: true})
		}

	case msg.Document != nil:
		out = append(out, Attachment{FileID: msg.Document.FileID, DeclaredSize: msg.Document.FileSize, StoreKind: store.FileKindImage, IsImage: false})
		if msg.Document.Thumb != nil {
			out = append(out, Attachment{FileID: msg.Document.Thumb.FileID, DeclaredSize: msg.Document.Thumb.FileSize, StoreKind: store.FileKindImage, IsImage: true})
		}

	case msg.Audio != nil:
		out = append(out, Attachment{FileID: msg.Audio.FileID, DeclaredSize: msg.Audio.FileSize, StoreKind: store.FileKindImage, IsImage: false})
		if msg.Audio.Thumb != nil {
			out = append(out, Attachment{FileID: msg.Audio.Thumb.FileID, DeclaredSize: msg.Audio.Thumb.FileSize, StoreKind: store.FileKindImage, IsImage: true})
		}

	case msg.Voice != nil:
		out = append(out, Attachment{FileID: msg.Voice.FileID, DeclaredSize: msg.Voice.FileSize, StoreKind: store.FileKindImage, IsImage: false})

	case msg.Sticker != nil:
		out = append(out, Attachment{FileID: msg.Sticker.FileID, DeclaredSize: msg.Sticker.FileSize, StoreKind: store.FileKindImage, IsImage: true})
		if msg.Sticker.Thumb != nil {
			out = append(out, Attachment{FileID: msg.Sticker.Thumb.FileID, DeclaredSize: msg.Sticker.Thumb.FileSize, StoreKind: store.FileKindImage, IsImage: true})
		}
	}

	return out
}
