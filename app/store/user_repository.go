package store

import (
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// BadgerUserRepository implements UserRepository using BadgerDB
type BadgerUserRepository struct {
	db *badger.DB
}

// NewBadgerUserRepository creates a new BadgerUserRepository
func NewBadgerUserRepository(db *badger.DB) *BadgerUserRepository {
	return &BadgerUserRepository{db: db}
}

// Create creates a new user and the email lookup index entry.
func (r *BadgerUserRepository) Create(user *User) error {
	return r.db.Update(func(txn *badger.Txn) error {
		id, err := getNextID(txn, UserSeqKey)
		if err != nil {
			return err
		}
		user.ID = id

		data, err := marshalEntity(user)
		if err != nil {
			return err
		}
		if err := txn.Set(entityKey(UserKeyPrefix, user.ID), data); err != nil {
			return err
		}

		idxKey := []byte(EmailIndexPrefix + normalizeEmail(user.Email))
		idBytes := make([]byte, 4)
		idBytes[0] = byte(user.ID >> 24)
		idBytes[1] = byte(user.ID >> 16)
		idBytes[2] = byte(user.ID >> 8)
		idBytes[3] = byte(user.ID)
		return txn.Set(idxKey, idBytes)
	})
}

// GetByID retrieves a user by ID
func (r *BadgerUserRepository) GetByID(id int) (*User, error) {
	var user User
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(entityKey(UserKeyPrefix, id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalEntity(val, &user)
		})
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user through the email index.
func (r *BadgerUserRepository) GetByEmail(email string) (*User, error) {
	var id int
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(EmailIndexPrefix + normalizeEmail(email)))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			id = int(val[0])<<24 | int(val[1])<<16 | int(val[2])<<8 | int(val[3])
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
