package sessionstore

import "errors"

// ErrSessionNotFound is returned by Get and Close when sessionId names no
// live session. Sessions have no TTL in this store; callers must tolerate
// this error at any time, since staleness is enforced by the transport.
var ErrSessionNotFound = errors.New("sessionstore: session not found")

// ErrReplayDetected is returned by Session.RecordIncomingSeq when seq does
// not strictly exceed the last accepted sequence number.
var ErrReplayDetected = errors.New("sessionstore: replay detected")
