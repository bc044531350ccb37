package store

import (
	"sync"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
	"github.com/rezograf/chatvault/internal/model"
)

// DB wraps a badger handle behind a single exclusive lock. Badger is safe
// for concurrent use on its own, but spec.md §5 requires that external
// readers observe either none or all of a message block's five writes; the
// mutex is the more literal rendering of that all-or-nothing rule across a
// multi-key write than relying on badger's own transaction-conflict retries
// would be (see DESIGN.md).
type DB struct {
	mu sync.Mutex
	bd *badger.DB
}

// Open opens (creating if absent) a badger store rooted at path.
func Open(path string) (*DB, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	bd, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "store: open badger at %s", path)
	}
	return &DB{bd: bd}, nil
}

// OpenInMemory opens a badger store with no on-disk footprint, for tests.
func OpenInMemory() (*DB, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	bd, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "store: open in-memory badger")
	}
	return &DB{bd: bd}, nil
}

// Close releases the underlying badger handle.
func (d *DB) Close() error {
	return d.bd.Close()
}

// PutMessageBlock performs the five writes of spec.md §4.4 atomically
// behind the exclusive lock: the message record, its day-index entry, the
// chat roster marker, the message-id ref, and the chat meta snapshot.
func (d *DB) PutMessageBlock(chatID int64, item model.LogItem, meta model.ChatMeta, sourceMessageID int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	itemJSON, err := item.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "store: marshal LogItem")
	}
	metaJSON, err := meta.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "store: marshal ChatMeta")
	}

	day := DayFromTime(item.Time)

	return d.bd.Update(func(txn *badger.Txn) error {
		if err := txn.Set(MessageKey(chatID, item.Time), itemJSON); err != nil {
			return errors.Wrap(err, "store: set message")
		}
		if err := txn.Set(DayIndexKey(chatID, day), []byte{0}); err != nil {
			return errors.Wrap(err, "store: set day index")
		}
		if err := txn.Set(ChatRosterKey(chatID), []byte{0}); err != nil {
			return errors.Wrap(err, "store: set chat roster")
		}
		if err := txn.Set(MsgRefKey(chatID, sourceMessageID), []byte(i64(item.Time))); err != nil {
			return errors.Wrap(err, "store: set msg ref")
		}
		if err := txn.Set(ChatMetaKey(chatID), metaJSON); err != nil {
			return errors.Wrap(err, "store: set chat meta")
		}
		return nil
	})
}

// PutUserMeta upserts a user identity snapshot.
func (d *DB) PutUserMeta(meta model.UserMeta) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	data, err := jsonMarshalUserMeta(meta)
	if err != nil {
		return err
	}
	return d.bd.Update(func(txn *badger.Txn) error {
		return txn.Set(UserMetaKey(meta.ID), data)
	})
}

// GetUserMeta resolves a user-id to its identity snapshot.
func (d *DB) GetUserMeta(userID string) (model.UserMeta, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var meta model.UserMeta
	found := true
	err := d.bd.View(func(txn *badger.Txn) error {
		item, err := txn.Get(UserMetaKey(userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			found = false
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return jsonUnmarshalUserMeta(val, &meta)
		})
	})
	if err != nil {
		return model.UserMeta{}, false, errors.Wrap(err, "store: get user meta")
	}
	return meta, found, nil
}

// GetChatMeta resolves a chat-id to its display metadata.
func (d *DB) GetChatMeta(chatID int64) (model.ChatMeta, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var meta model.ChatMeta
	found := true
	err := d.bd.View(func(txn *badger.Txn) error {
		item, err := txn.Get(ChatMetaKey(chatID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			found = false
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return meta.UnmarshalJSON(val)
		})
	})
	if err != nil {
		return model.ChatMeta{}, false, errors.Wrap(err, "store: get chat meta")
	}
	return meta, found, nil
}

// HasFile reports whether a blob already exists at key, used by the media
// pipeline's pre-check before a redundant download.
func (d *DB) HasFile(key []byte) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	exists := false
	err := d.bd.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	})
	if err != nil {
		return false, errors.Wrap(err, "store: check file existence")
	}
	return exists, nil
}

// PutFile writes a binary blob at key if it is non-empty.
func (d *DB) PutFile(key []byte, data []byte) error {
	if len(data) == 0 {
		return errors.New("store: refusing to store empty file blob")
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.bd.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// GetFile reads a binary blob at key.
func (d *DB) GetFile(key []byte) ([]byte, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var data []byte
	found := true
	err := d.bd.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			found = false
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			data = append([]byte(nil), val...)
			return nil
		})
	})
	if err != nil {
		return nil, false, errors.Wrap(err, "store: get file")
	}
	return data, found, nil
}

// IterateChats returns every known chat id from the chat_rel roster, in no
// particular order (the render layer sorts by display name).
func (d *DB) IterateChats() ([]int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var ids []int64
	err := d.bd.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := ChatRosterPrefix()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			if id, ok := ParseChatRosterKey(key); ok {
				ids = append(ids, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "store: iterate chats")
	}
	return ids, nil
}

// IterateDaysDesc returns every indexed day bucket for chatID, most recent
// first.
func (d *DB) IterateDaysDesc(chatID int64) ([]int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var days []int64
	err := d.bd.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := DayIndexPrefix(chatID)
		// Reverse iteration seeks from the prefix's upper bound.
		seekFrom := append(append([]byte(nil), prefix...), 0x7f)
		for it.Seek(seekFrom); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			if day, ok := ParseDayIndexKey(key); ok {
				days = append(days, day)
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "store: iterate days")
	}
	return days, nil
}

// LatestDay returns the most recent indexed day bucket for chatID.
func (d *DB) LatestDay(chatID int64) (int64, bool, error) {
	days, err := d.IterateDaysDesc(chatID)
	if err != nil {
		return 0, false, err
	}
	if len(days) == 0 {
		return 0, false, nil
	}
	return days[0], true, nil
}

// IterateDayMessagesDesc returns every LogItem archived in chatID on day,
// most recent first. A record that fails to deserialize is skipped, per
// spec.md §7 ("the row is skipped; the page continues").
func (d *DB) IterateDayMessagesDesc(chatID, day int64) ([]model.LogItem, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	start, end := DayRange(chatID, day)

	var items []model.LogItem
	err := d.bd.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration over [start, end): seek just before end, stop
		// once we pass start.
		for it.Seek(prevKey(end)); it.Valid(); it.Next() {
			key := it.Item().Key()
			if !bytesLess(key, end) {
				continue
			}
			if bytesLess(key, start) {
				break
			}
			var item model.LogItem
			err := it.Item().Value(func(val []byte) error {
				return item.UnmarshalJSON(val)
			})
			if err != nil {
				continue
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "store: iterate day messages")
	}
	return items, nil
}

// ResolveByMessageID looks up the effective timestamp for a
// (chat, source-message-id) pair and returns the stored LogItem.
func (d *DB) ResolveByMessageID(chatID, messageID int64) (model.LogItem, bool, error) {
	d.mu.Lock()
	var effTime int64
	found := true
	err := d.bd.View(func(txn *badger.Txn) error {
		item, err := txn.Get(MsgRefKey(chatID, messageID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			found = false
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			t, perr := parseInt64(string(val))
			if perr != nil {
				return perr
			}
			effTime = t
			return nil
		})
	})
	d.mu.Unlock()
	if err != nil {
		return model.LogItem{}, false, errors.Wrap(err, "store: resolve msg ref")
	}
	if !found {
		return model.LogItem{}, false, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	var out model.LogItem
	err = d.bd.View(func(txn *badger.Txn) error {
		item, err := txn.Get(MessageKey(chatID, effTime))
		if errors.Is(err, badger.ErrKeyNotFound) {
			found = false
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return out.UnmarshalJSON(val)
		})
	})
	if err != nil {
		return model.LogItem{}, false, errors.Wrap(err, "store: resolve message by ref")
	}
	return out, found, nil
}
