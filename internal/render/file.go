package render

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rezograf/chatvault/internal/store"
)

// handleFile is GET /file/<kind>/<file-id> — spec.md §4.5: binary
// passthrough where kind maps to one of the three file:* namespaces.
// Content-type is sniffed from the bytes; an unrecognized kind is a 404
// with body "Unknown file request type", matching get_file.rs.
func (s *Server) handleFile(c *gin.Context) {
	kind := store.FileKind(c.Param("kind"))
	fileID := c.Param("fileID")

	key, ok := store.FileKeyFor(kind, fileID)
	if !ok {
		c.String(http.StatusNotFound, "Unknown file request type")
		return
	}

	data, found, err := s.Store.GetFile(key)
	if err != nil {
		s.Log.Error().Err(err).Str("kind", string(kind)).Str("file_id", fileID).Msg("render: get file")
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	if !found {
		c.String(http.StatusNotFound, "not found")
		return
	}

	contentType := sniffContentType(kind, data)
	c.Data(http.StatusOK, contentType, data)
}

// sniffContentType matches spec.md §4.5: content-type is sniffed from the
// bytes for every kind; non-image kinds fall through to
// application/octet-stream when sniffing cannot identify an image format.
func sniffContentType(kind store.FileKind, data []byte) string {
	detected := http.DetectContentType(data)
	if kind == store.FileKindImage || kind == store.FileKindVideoThumb || kind == store.FileKindUser {
		if len(detected) >= 6 && detected[:6] == "image/" {
			return detected
		}
	}
	return "application/octet-stream"
}
