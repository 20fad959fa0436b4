package store

import (
	"encoding/binary"

	"github.com/dgraph-io/badger/v4"
)

// BadgerSessionRepository implements SessionRepository using BadgerDB.
// Session entries expire automatically via Badger's TTL support.
type BadgerSessionRepository struct {
	db *badger.DB
}

// NewBadgerSessionRepository creates a new BadgerSessionRepository
func NewBadgerSessionRepository(db *badger.DB) *BadgerSessionRepository {
	return &BadgerSessionRepository{db: db}
}

// Create stores a session token for a user.
func (r *BadgerSessionRepository) Create(token string, userID int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		val := make([]byte, 4)
		binary.BigEndian.PutUint32(val, uint32(userID))
		entry := badger.NewEntry([]byte(SessionKeyPrefix+token), val).WithTTL(SessionTTL)
		return txn.SetEntry(entry)
	})
}

// Lookup resolves a session token to the owning user ID.
func (r *BadgerSessionRepository) Lookup(token string) (int, error) {
	var userID int
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(SessionKeyPrefix + token))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			userID = int(binary.BigEndian.Uint32(val))
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// Delete removes a session token.
func (r *BadgerSessionRepository) Delete(token string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(SessionKeyPrefix + token))
	})
}
