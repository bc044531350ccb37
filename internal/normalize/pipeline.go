package normalize

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rezograf/chatvault/internal/imagesniff"
	"github.com/rezograf/chatvault/internal/store"
	"github.com/rezograf/chatvault/internal/telegram"
)

// FileResolver is the subset of telegram.Adapter the media pipeline needs;
// narrowed to an interface so tests can fake network I/O.
type FileResolver interface {
	FilePath(ctx context.Context, fileID string) (path string, size int64, found bool, err error)
	Download(ctx context.Context, filePath string, ceiling int64) ([]byte, error)
}

// MediaPipeline fetches, dedupes, sniffs, and persists the attachments of
// one media-bearing message, per spec.md §4.3.
type MediaPipeline struct {
	Resolver FileResolver
	Store    *store.DB
	Sniffer  imagesniff.Sniffer
	Ceiling  int64 // bytes; 0 falls back to DefaultCeiling
}

// DefaultCeiling is spec.md §6's 50 MiB media size ceiling.
const DefaultCeiling = 50 * 1024 * 1024

func (p *MediaPipeline) ceiling() int64 {
	return p.CeilingOrDefault()
}

// CeilingOrDefault returns the configured size ceiling, or DefaultCeiling
// if unset.
func (p *MediaPipeline) CeilingOrDefault() int64 {
	if p.Ceiling > 0 {
		return p.Ceiling
	}
	return DefaultCeiling
}

// Resolve fetches every candidate attachment of msg and returns the
// file-ids that were successfully persisted, in Attachments' order
// (primary blob first, thumbnail(s) after). An attachment is silently
// dropped — never an error — on oversize, missing, download failure, or
// (for images) sniff failure, matching spec.md §7's error policy.
func (p *MediaPipeline) Resolve(ctx context.Context, msg telegram.Message) ([]string, error) {
	var files []string
	for _, a := range Attachments(msg) {
		ok, err := p.resolveOne(ctx, a)
		if err != nil {
			return nil, err
		}
		if ok {
			files = append(files, a.FileID)
		}
	}
	return files, nil
}

func (p *MediaPipeline) resolveOne(ctx context.Context, a Attachment) (bool, error) {
	key, ok := store.FileKeyFor(a.StoreKind, a.FileID)
	if !ok {
		return false, nil
	}

	if a.DeclaredSize == 0 || a.DeclaredSize > p.ceiling() {
		return false, nil
	}

	exists, err := p.Store.HasFile(key)
	if err != nil {
		return false, errors.Wrap(err, "normalize: check existing file")
	}
	if exists {
		return true, nil
	}

	path, resolvedSize, found, err := p.Resolver.FilePath(ctx, a.FileID)
	if err != nil {
		// Upstream transport failure on a single attachment: drop it, the
		// LogItem still records the remaining file-ids.
		return false, nil
	}
	if !found {
		return false, nil
	}
	if resolvedSize > 0 && resolvedSize > p.ceiling() {
		return false, nil
	}

	data, err := p.Resolver.Download(ctx, path, p.ceiling())
	if err != nil {
		return false, nil
	}

	if a.IsImage && !p.Sniffer.Valid(data) {
		return false, nil
	}

	if err := p.Store.PutFile(key, data); err != nil {
		return false, errors.Wrap(err, "normalize: persist file")
	}
	return true, nil
}
