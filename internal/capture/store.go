// Package capture persists raw datagrams in a pebble database keyed by
// time-ordered KSUIDs, so a session can be replayed through the decoder.
package capture

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/danmuck/disctl/internal/protocol/record"
	"github.com/danmuck/disctl/internal/protocol/wire"
	"github.com/segmentio/ksuid"
)

var (
	ErrNotFound = errors.New("capture: entry not found")
	ErrClosed   = errors.New("capture: store closed")
	ErrNoStore  = errors.New("capture: no store at path")
)

const maxSourceLen = 255

var (
	keyPrefix = []byte("d/")
	keyEnd    = []byte("d0")
)

// Entry is one captured datagram.
type Entry struct {
	ID       ksuid.KSUID
	Received time.Time
	Source   string
	Datagram []byte
}

type Store struct {
	mu   sync.Mutex
	db   *pebble.DB
	last ksuid.KSUID
	sync bool
}

type Options struct {
	// Sync forces a WAL sync per append.
	Sync bool
	// MustExist refuses to create a store; readers set it so a mistyped
	// path fails instead of yielding an empty capture.
	MustExist bool
}

func Open(dir string, opts Options) (*Store, error) {
	if opts.MustExist {
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrNoStore, dir, err)
		}
	}
	db, err := pebble.Open(dir, &pebble.Options{ErrorIfNotExists: opts.MustExist})
	if errors.Is(err, pebble.ErrDBDoesNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoStore, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("capture: open %s: %w", dir, err)
	}
	s := &Store{db: db, sync: opts.Sync}
	if err := s.loadLast(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) loadLast() error {
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: keyPrefix, UpperBound: keyEnd})
	if err != nil {
		return fmt.Errorf("capture: iterate: %w", err)
	}
	defer iter.Close()
	if iter.Last() {
		id, err := ksuid.FromBytes(iter.Key()[len(keyPrefix):])
		if err != nil {
			return fmt.Errorf("capture: corrupt key: %w", err)
		}
		s.last = id
	}
	return iter.Error()
}

// Append stores e and returns its assigned ID. IDs are strictly increasing
// in append order even when several datagrams share a timestamp.
func (s *Store) Append(e Entry) (ksuid.KSUID, error) {
	if e.Received.IsZero() {
		e.Received = time.Now()
	}
	value, err := encodeEntry(e)
	if err != nil {
		return ksuid.Nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ksuid.Nil, ErrClosed
	}
	id, err := ksuid.NewRandomWithTime(e.Received)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("capture: new id: %w", err)
	}
	if ksuid.Compare(id, s.last) <= 0 {
		id = s.last.Next()
	}

	opt := pebble.NoSync
	if s.sync {
		opt = pebble.Sync
	}
	if err := s.db.Set(key(id), value, opt); err != nil {
		return ksuid.Nil, fmt.Errorf("capture: append: %w", err)
	}
	s.last = id
	return id, nil
}

func (s *Store) Get(id ksuid.KSUID) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return Entry{}, ErrClosed
	}
	value, closer, err := s.db.Get(key(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("capture: get %s: %w", id, err)
	}
	defer closer.Close()
	return decodeEntry(id, value)
}

// Scan calls fn for every entry in ID order. A non-nil error from fn stops
// the scan and is returned. Scan must not run concurrently with Close.
func (s *Store) Scan(fn func(Entry) error) error {
	s.mu.Lock()
	if s.db == nil {
		s.mu.Unlock()
		return ErrClosed
	}
	iter, err := s.db.NewIter(&pebble.IterOptions{LowerBound: keyPrefix, UpperBound: keyEnd})
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("capture: iterate: %w", err)
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key()[len(keyPrefix):])
		if err != nil {
			return fmt.Errorf("capture: corrupt key: %w", err)
		}
		e, err := decodeEntry(id, iter.Value())
		if err != nil {
			return err
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return iter.Error()
}

func (s *Store) Count() (int, error) {
	n := 0
	err := s.Scan(func(Entry) error {
		n++
		return nil
	})
	return n, err
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func key(id ksuid.KSUID) []byte {
	return append(append([]byte{}, keyPrefix...), id.Bytes()...)
}

// envelope is the stored value layout.
type envelope struct {
	Received int64
	Source   []byte
	Datagram []byte
}

func (e *envelope) Fields() []record.Field {
	source := record.NewBlob(&e.Source, 1)
	datagram := record.NewBlob(&e.Datagram, 1)
	return []record.Field{
		record.Int64("receivedUnixNano", &e.Received),
		source.Octets8("sourceLength"),
		datagram.Octets16("datagramLength"),
		source.Data("source"),
		datagram.Data("datagram"),
	}
}

var envelopeLimits = wire.Limits{MaxPduBytes: 65535}

func encodeEntry(e Entry) ([]byte, error) {
	source := e.Source
	if len(source) > maxSourceLen {
		source = source[:maxSourceLen]
	}
	b, err := record.Encode(&envelope{
		Received: e.Received.UnixNano(),
		Source:   []byte(source),
		Datagram: e.Datagram,
	})
	if err != nil {
		return nil, fmt.Errorf("capture: encode entry: %w", err)
	}
	return b, nil
}

func decodeEntry(id ksuid.KSUID, value []byte) (Entry, error) {
	var env envelope
	if err := record.Decode(value, &env, envelopeLimits); err != nil {
		return Entry{}, fmt.Errorf("capture: decode %s: %w", id, err)
	}
	return Entry{
		ID:       id,
		Received: time.Unix(0, env.Received),
		Source:   string(env.Source),
		Datagram: env.Datagram,
	}, nil
}
