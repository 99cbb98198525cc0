package sessionstore

import (
	"sync"
	"time"
)

// Session is an ephemeral authenticated channel between host and a single
// peer instance, anchored to the identity and peer record that were active
// at handshake time. It is in-memory only: session loss on restart is
// expected, and the core offers no TTL — staleness is the transport's job.
type Session struct {
	id        string
	key       [32]byte // raw X25519 ECDH shared secret; see pkg/handshake
	transcript []byte   // hostEphPub || extEphPub || peerEdPub
	createdAt time.Time

	mu           sync.Mutex
	sendSeq      uint64
	lastRecvSeq  uint64
	peerVerified bool
}

// ID returns the session's hex-encoded 128-bit identifier.
func (s *Session) ID() string { return s.id }

// Key returns the session's symmetric key.
func (s *Session) Key() [32]byte { return s.key }

// Transcript returns the handshake transcript this session was created
// with: hostEphPub || extEphPub || peerEdPub.
func (s *Session) Transcript() []byte { return s.transcript }

// CreatedAt returns when the session was created.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// PeerVerified reports whether FinishHandshake has verified the peer's
// transcript signature on this session.
func (s *Session) PeerVerified() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.peerVerified
}

// SetPeerVerified marks the session as having a verified peer signature.
func (s *Session) SetPeerVerified() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.peerVerified = true
}

// NextSendSeq increments and returns the session's outbound sequence
// number. The first call returns 1.
func (s *Session) NextSendSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendSeq++
	return s.sendSeq
}

// RecordIncomingSeq enforces seq > lastRecvSeq, returning ErrReplayDetected
// otherwise. On success it updates lastRecvSeq to seq.
func (s *Session) RecordIncomingSeq(seq uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.lastRecvSeq {
		return ErrReplayDetected
	}
	s.lastRecvSeq = seq
	return nil
}
