package journal

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/boltdb/bolt"
	"github.com/hashicorp/go-uuid"
	"github.com/pkg/errors"
)

// Status of a journaled operation
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

const fileName = "journal.db"

var bucketName = []byte("entries")

var ErrNotFound = errors.New("journal entry not found")

// Entry is one operation sent to the sol_bank program.
type Entry struct {
	ID          string    `json:"id"`
	Instruction string    `json:"instruction"`
	User        string    `json:"user"`
	PDA         string    `json:"pda"`
	Amount      uint64    `json:"amount"`
	Signature   string    `json:"signature,omitempty"`
	Status      Status    `json:"status"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// Store keeps entries in a bolt database under a directory.
type Store struct {
	db  *bolt.DB
	now func() time.Time
}

func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("journal directory is required")
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, errors.Wrap(err, "MkdirAll")
	}
	db, err := bolt.Open(filepath.Join(dir, fileName), 0600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open journal in %s", dir)
	}
	if err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "CreateBucket")
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a new entry and returns its id.
func (s *Store) Record(ctx context.Context, entry *Entry) (string, error) {
	if entry.ID == "" {
		id, err := uuid.GenerateUUID()
		if err != nil {
			return "", errors.Wrap(err, "GenerateUUID")
		}
		entry.ID = id
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}
	if entry.Status == "" {
		entry.Status = StatusPending
	}
	bz, err := json.Marshal(entry)
	if err != nil {
		return "", errors.Wrap(err, "Encode")
	}
	if err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(entry.ID), bz)
	}); err != nil {
		return "", errors.Wrap(err, "Update")
	}
	return entry.ID, nil
}

// Update sets the outcome of an entry. signature is left unchanged when empty.
func (s *Store) Update(ctx context.Context, id string, status Status, signature string, errMsg string) error {
	return errors.Wrap(s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		raw := b.Get([]byte(id))
		if raw == nil {
			return errors.Wrap(ErrNotFound, id)
		}
		entry := &Entry{}
		if err := json.Unmarshal(raw, entry); err != nil {
			return errors.Wrap(err, "Decode")
		}
		entry.Status = status
		entry.Error = errMsg
		if signature != "" {
			entry.Signature = signature
		}
		entry.UpdatedAt = s.now().UTC()
		bz, err := json.Marshal(entry)
		if err != nil {
			return errors.Wrap(err, "Encode")
		}
		return b.Put([]byte(id), bz)
	}), "Update")
}

func (s *Store) Get(ctx context.Context, id string) (*Entry, error) {
	var entry *Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketName).Get([]byte(id))
		if raw == nil {
			return errors.Wrap(ErrNotFound, id)
		}
		entry = &Entry{}
		return errors.Wrap(json.Unmarshal(raw, entry), "Decode")
	})
	return entry, err
}

// List returns the entries of user, newest first. An empty user lists everything.
func (s *Store) List(ctx context.Context, user string) ([]*Entry, error) {
	entries := []*Entry{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).ForEach(func(k, v []byte) error {
			entry := &Entry{}
			if err := json.Unmarshal(v, entry); err != nil {
				return errors.Wrapf(err, "Decode %s", string(k))
			}
			if user == "" || entry.User == user {
				entries = append(entries, entry)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}
