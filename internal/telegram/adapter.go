package telegram

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	tb "gopkg.in/tucnak/telebot.v2"
)

// Adapter wraps an upstream bot identity: long-poll streaming, file
// resolution, and download. All suspension points inside it are
// cancellation points for whatever drains Stream.
type Adapter struct {
	bot   *tb.Bot
	token string
}

// New creates an Adapter holding the given bot credential. The poller
// timeout matches the teacher's own LongPoller setup.
func New(token string) (*Adapter, error) {
	bot, err := tb.NewBot(tb.Settings{
		Token:  token,
		Poller: &tb.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, errors.Wrap(err, "telegram: create bot")
	}
	return &Adapter{bot: bot, token: token}, nil
}

// Stream drains the bot's poller into a channel of normalized Updates. It
// closes the returned channel when ctx is cancelled. This mirrors the
// teacher's Poller interface: Poll(b *Bot, updates chan Update, stop chan
// struct{}) is handed our own stop channel wired to ctx.Done().
func (a *Adapter) Stream(ctx context.Context) <-chan Update {
	raw := make(chan tb.Update)
	stop := make(chan struct{})
	out := make(chan Update)

	go a.bot.Poller.Poll(a.bot, raw, stop)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				close(stop)
				return
			case u, ok := <-raw:
				if !ok {
					return
				}
				out <- fromUpstream(u)
			}
		}
	}()

	return out
}

// FilePath resolves an opaque file-id to a relative download path. The
// second return value is false when the upstream has no such file.
func (a *Adapter) FilePath(ctx context.Context, fileID string) (string, int64, bool, error) {
	f, err := a.bot.FileByID(fileID)
	if err != nil {
		return "", 0, false, errors.Wrapf(err, "telegram: resolve file %s", fileID)
	}
	if f.FilePath == "" {
		return "", 0, false, nil
	}
	return f.FilePath, int64(f.FileSize), true, nil
}

// Download fetches the body at filePath, stopping after ceiling bytes. This
// is the teacher's Bot.GetFile method (main.go:584-609), adapted to return a
// bounded byte slice instead of an unbounded io.ReadCloser.
func (a *Adapter) Download(ctx context.Context, filePath string, ceiling int64) ([]byte, error) {
	url := "https://api.telegram.org/file/bot" + a.token + "/" + filePath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "telegram: build download request")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "telegram: download request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("telegram: expected status 200 but got %s", resp.Status)
	}

	limited := io.LimitReader(resp.Body, ceiling+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, errors.Wrap(err, "telegram: read download body")
	}
	if int64(len(body)) > ceiling {
		return nil, errors.Errorf("telegram: body exceeds ceiling of %d bytes", ceiling)
	}
	return body, nil
}

// ProfilePhotos returns the user's profile photos, most recent first.
func (a *Adapter) ProfilePhotos(ctx context.Context, userID int64) ([]PhotoSize, error) {
	photos, err := a.bot.ProfilePhotosOf(&tb.User{ID: int(userID)})
	if err != nil {
		return nil, errors.Wrapf(err, "telegram: profile photos of %d", userID)
	}
	out := make([]PhotoSize, 0, len(photos))
	for _, p := range photos {
		out = append(out, PhotoSize{FileID: p.FileID, Width: p.Width, Height: p.Height})
	}
	return out, nil
}

func fromUpstream(u tb.Update) Update {
	return Update{
		ID:                int64(u.ID),
		Message:           fromUpstreamMessage(u.Message),
		EditedMessage:     fromUpstreamMessage(u.EditedMessage),
		ChannelPost:       fromUpstreamMessage(u.ChannelPost),
		EditedChannelPost: fromUpstreamMessage(u.EditedChannelPost),
	}
}

func fromUpstreamMessage(m *tb.Message) *Message {
	if m == nil {
		return nil
	}

	out := &Message{
		ID:                 int64(m.ID),
		Sender:             fromUpstreamUser(m.Sender),
		Unixtime:           m.Unixtime,
		Chat:               fromUpstreamChat(m.Chat),
		OriginalSender:     fromUpstreamUser(m.OriginalSender),
		OriginalChat:       fromUpstreamChat(m.OriginalChat),
		OriginalMessageID:  int64(m.OriginalMessageID),
		OriginalSenderName: m.OriginalSenderName,
		OriginalUnixtime:   int64(m.OriginalUnixtime),
		ReplyTo:            fromUpstreamMessage(m.ReplyTo),
		LastEdit:           m.LastEdit,
		Text:               m.Text,
		Caption:            m.Caption,
		GroupPhotoDeleted:  m.GroupPhotoDeleted,
		NewGroupTitle:      m.NewGroupTitle,
		PinnedMessage:      fromUpstreamMessage(m.PinnedMessage),
	}

	for _, e := range m.Entities {
		out.Entities = append(out.Entities, fromUpstreamEntity(e))
	}
	for _, e := range m.CaptionEntities {
		out.CaptionEntities = append(out.CaptionEntities, fromUpstreamEntity(e))
	}
	for _, u := range m.UsersJoined {
		out.UsersJoined = append(out.UsersJoined, *fromUpstreamUser(&u))
	}
	if m.UserLeft != nil {
		out.UserLeft = fromUpstreamUser(m.UserLeft)
	}
	if m.Via != nil {
		out.ViaBot = fromUpstreamUser(m.Via)
	}

	if m.Audio != nil {
		out.Audio = &Audio{FileID: m.Audio.FileID, Duration: m.Audio.Duration, MimeType: m.Audio.MIME, FileSize: int64(m.Audio.FileSize), Performer: m.Audio.Performer, Title: m.Audio.Title}
	}
	if m.Document != nil {
		out.Document = &Document{FileID: m.Document.FileID, FileName: m.Document.FileName, MimeType: m.Document.MIME, FileSize: int64(m.Document.FileSize)}
	}
	if m.Photo != nil {
		out.Photo = []PhotoSize{{FileID: m.Photo.FileID, Width: m.Photo.Width, Height: m.Photo.Height, FileSize: int64(m.Photo.FileSize)}}
	}
	if m.NewGroupPhoto != nil {
		out.NewGroupPhoto = []PhotoSize{{FileID: m.NewGroupPhoto.FileID, Width: m.NewGroupPhoto.Width, Height: m.NewGroupPhoto.Height}}
	}
	if m.Sticker != nil {
		out.Sticker = &Sticker{FileID: m.Sticker.FileID, Width: m.Sticker.Width, Height: m.Sticker.Height, Emoji: m.Sticker.Emoji}
	}
	if m.Voice != nil {
		out.Voice = &Voice{FileID: m.Voice.FileID, Duration: m.Voice.Duration, MimeType: m.Voice.MIME, FileSize: int64(m.Voice.FileSize)}
	}
	if m.VideoNote != nil {
		out.VideoNote = &VideoNote{FileID: m.VideoNote.FileID, Duration: m.VideoNote.Duration, Length: m.VideoNote.Length}
	}
	if m.Video != nil {
		out.Video = &Video{FileID: m.Video.FileID, Width: m.Video.Width, Height: m.Video.Height, Duration: m.Video.Duration, MimeType: m.Video.MIME, FileSize: int64(m.Video.FileSize)}
	}
	if m.Contact != nil {
		out.Contact = &Contact{PhoneNumber: m.Contact.PhoneNumber, FirstName: m.Contact.FirstName, LastName: m.Contact.LastName, UserID: int64(m.Contact.UserID)}
	}
	if m.Location != nil {
		out.Location = &Location{Latitude: float64(m.Location.Lat), Longitude: float64(m.Location.Lng)}
	}
	if m.Venue != nil {
		out.Venue = &Venue{Title: m.Venue.Title, Address: m.Venue.Address}
		if m.Venue.Location != nil {
			out.Venue.Location = Location{Latitude: float64(m.Venue.Location.Lat), Longitude: float64(m.Venue.Location.Lng)}
		}
	}
	if m.Poll != nil {
		out.Poll = &Poll{ID: m.Poll.ID, Question: m.Poll.Question, VoterCount: m.Poll.VoterCount, Closed: m.Poll.Closed}
		for _, o := range m.Poll.Options {
			out.Poll.Options = append(out.Poll.Options, PollOption{Text: o.Text, VoterCount: o.VoterCount})
		}
	}

	return out
}

func fromUpstreamUser(u *tb.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:           int64(u.ID),
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Username:     u.Username,
		LanguageCode: u.LanguageCode,
		IsBot:        u.IsBot,
	}
}

func fromUpstreamChat(c *tb.Chat) *Chat {
	if c == nil {
		return nil
	}
	return &Chat{
		ID:        c.ID,
		Type:      ChatType(c.Type),
		Title:     c.Title,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Username:  c.Username,
	}
}

func fromUpstreamEntity(e tb.MessageEntity) MessageEntity {
	out := MessageEntity{
		Type:   EntityType(e.Type),
		Offset: e.Offset,
		Length: e.Length,
		URL:    e.URL,
	}
	if e.User != nil {
		out.User = fromUpstreamUser(e.User)
	}
	return out
}
