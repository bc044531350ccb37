// Package imagesniff re-parses candidate image bytes through the standard
// image decoders to validate them before they are persisted, the same
// config-only decode used elsewhere in the corpus (connector.analyzeImage)
// to avoid storing corrupt or mistyped blobs.
package imagesniff

import (
	"bytes"
	"image"

	// Blank imports register format decoders with image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Sniffer validates that a byte slice decodes as a supported image format.
type Sniffer interface {
	Valid(data []byte) bool
}

// Default is the stdlib-backed Sniffer used outside of tests.
type Default struct{}

// Valid reports whether data decodes as a recognized image format. It reads
// only the header (image.DecodeConfig), not the full pixel grid, since the
// archiver only needs to reject corrupt or mistyped blobs, not render them.
func (Default) Valid(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	_, _, err := image.DecodeConfig(bytes.NewReader(data))
	return err == nil
}
