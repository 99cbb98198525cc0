// Package sessionstore is the in-memory table of live sessions: random
// 128-bit session ids mapped to their symmetric key, handshake transcript,
// and replay-protection counters. It has no persistence and no TTL —
// sessions are lost on restart by design, and staleness is the transport's
// responsibility to enforce from the outside.
package sessionstore

import (
	"encoding/hex"
	"sync"
	"time"

	"github.com/pearpass/native-core/pkg/crypto"
)

// sessionIDBytes is the number of random bytes hex-encoded into a session
// id (128 bits, per spec).
const sessionIDBytes = 16

// Store is the session table. The zero value is not usable; use NewStore.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore returns an empty session table.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create allocates a fresh session id, stores a new Session bound to key
// and transcript, and returns the id. Collisions on the 128-bit id space
// are retried; in practice this loop runs once.
func (st *Store) Create(key [32]byte, transcript []byte) (string, error) {
	id, err := st.newID()
	if err != nil {
		return "", err
	}

	sess := &Session{
		id:        id,
		key:       key,
		transcript: append([]byte(nil), transcript...),
		createdAt: time.Now().UTC(),
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	for {
		if _, exists := st.sessions[id]; !exists {
			break
		}
		id, err = st.newID()
		if err != nil {
			return "", err
		}
		sess.id = id
	}
	st.sessions[id] = sess
	return id, nil
}

func (st *Store) newID() (string, error) {
	raw, err := crypto.RandomBytes(sessionIDBytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// Get returns the session named by id, or ErrSessionNotFound.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	sess, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Close removes the session named by id. Closing an unknown id returns
// ErrSessionNotFound.
func (st *Store) Close(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(st.sessions, id)
	return nil
}

// ClearAll removes every session and returns how many were removed.
func (st *Store) ClearAll() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	n := len(st.sessions)
	st.sessions = make(map[string]*Session)
	return n
}

// Count returns the number of live sessions.
func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
