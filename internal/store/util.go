package store

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rezograf/chatvault/internal/model"
)

func jsonMarshalUserMeta(u model.UserMeta) ([]byte, error) {
	data, err := json.Marshal(u)
	if err != nil {
		return nil, errors.Wrap(err, "store: marshal UserMeta")
	}
	return data, nil
}

func jsonUnmarshalUserMeta(data []byte, out *model.UserMeta) error {
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, "store: unmarshal UserMeta")
	}
	return nil
}

func parseInt64(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "store: parse int64 %q", s)
	}
	return v, nil
}

// bytesLess reports whether a sorts strictly before b.
func bytesLess(a, b []byte) bool {
	return bytes.Compare(a, b) < 0
}

// prevKey returns a seek key for a reverse iterator such that Seek lands on
// the largest real key less than or equal to key, or on a key that has key
// as a prefix. Appending a byte higher than any byte a real ASCII
// colon-separated key can contain is sufficient: a reverse badger iterator
// seeks to the first key <= the seek key, and no stored key equals key+0xff.
// Callers scanning a half-open range skip keys that are not below key.
func prevKey(key []byte) []byte {
	out := make([]byte, len(key)+1)
	copy(out, key)
	out[len(key)] = 0xff
	return out
}
