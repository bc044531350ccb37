// Package ingest pulls updates from the Chat-API adapter, drives the
// normalizer, and writes the resulting records into the store, per
// spec.md §4.4.
package ingest

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rezograf/chatvault/internal/model"
	"github.com/rezograf/chatvault/internal/normalize"
	"github.com/rezograf/chatvault/internal/store"
	"github.com/rezograf/chatvault/internal/telegram"
	"github.com/rs/zerolog"
)

// Stream is the subset of telegram.Adapter the worker depends on.
type Stream interface {
	Stream(ctx context.Context) <-chan telegram.Update
	ProfilePhotos(ctx context.Context, userID int64) ([]telegram.PhotoSize, error)
}

// Worker drains one update stream and writes every normalized record to
// Store. A single Run call processes updates until ctx is cancelled or an
// update fails to process; either way it returns, and the supervisor
// restarts it after its fixed sleep.
type Worker struct {
	Adapter  Stream
	Store    *store.DB
	Pipeline *normalize.MediaPipeline
	Log      zerolog.Logger
}

// Run processes updates until ctx is cancelled or a single update's
// processing fails. Per spec.md §4.4's failure policy, there is no
// per-update retry: the upstream long-poll will redeliver unacknowledged
// updates after a restart.
func (w *Worker) Run(ctx context.Context) error {
	updates := w.Adapter.Stream(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			if err := w.processUpdate(ctx, upd); err != nil {
				w.Log.Error().Err(err).Int64("update_id", upd.ID).Msg("ingest: update failed, restarting worker")
				return err
			}
		}
	}
}

func (w *Worker) processUpdate(ctx context.Context, upd telegram.Update) error {
	for _, im := range normalize.Expand(upd) {
		if err := w.ingestOne(ctx, im); err != nil {
			return err
		}
	}
	return nil
}

func (w *Worker) ingestOne(ctx context.Context, im model.InterMessage) error {
	chatID, chatMeta := normalize.Route(im)

	item := normalize.BuildLogItem(im)

	if item.Kind == model.LogItemMedia {
		files, err := w.Pipeline.Resolve(ctx, im.Kind)
		if err != nil {
			return errors.Wrap(err, "ingest: resolve media")
		}
		item.Files = files
		// The last candidate attachment is a thumbnail when it follows a main
		// blob, or when it is a video thumbnail on its own.
		if atts := normalize.Attachments(im.Kind); len(files) > 0 && len(atts) > 0 {
			last := atts[len(atts)-1]
			isThumb := len(atts) > 1 || last.StoreKind == store.FileKindVideoThumb
			if isThumb && files[len(files)-1] == last.FileID {
				item.Media.ThumbFileID = last.FileID
			}
		}
	}

	if err := w.Store.PutMessageBlock(chatID, item, chatMeta, im.MessageID); err != nil {
		return errors.Wrap(err, "ingest: write message block")
	}

	if im.From != nil {
		if err := w.Store.PutUserMeta(*im.From); err != nil {
			return errors.Wrap(err, "ingest: write user meta")
		}
		w.fetchProfilePhotoBestEffort(ctx, *im.From)
	}

	return nil
}

// fetchProfilePhotoBestEffort stores the user's most recent profile photo
// when no photo is stored for that user yet; an existing photo is never
// overwritten. Failures are swallowed: spec.md §4.4 calls this step
// "best-effort".
func (w *Worker) fetchProfilePhotoBestEffort(ctx context.Context, user model.UserMeta) {
	userID, err := parseID(user.ID)
	if err != nil {
		return
	}
	photos, err := w.Adapter.ProfilePhotos(ctx, userID)
	if err != nil || len(photos) == 0 {
		return
	}

	key, _ := store.FileKeyFor(store.FileKindUser, user.ID)
	exists, err := w.Store.HasFile(key)
	if err != nil || exists {
		return
	}

	resolver, ok := w.Adapter.(fileResolver)
	if !ok {
		return
	}
	best := photos[0]
	path, size, found, err := resolver.FilePath(ctx, best.FileID)
	if err != nil || !found || (size > 0 && size > w.Pipeline.CeilingOrDefault()) {
		return
	}
	data, err := resolver.Download(ctx, path, w.Pipeline.CeilingOrDefault())
	if err != nil {
		return
	}
	if !w.Pipeline.Sniffer.Valid(data) {
		return
	}
	_ = w.Store.PutFile(key, data)
}

type fileResolver interface {
	FilePath(ctx context.Context, fileID string) (string, int64, bool, error)
	Download(ctx context.Context, filePath string, ceiling int64) ([]byte, error)
}
