package sessionstore

import "testing"

func TestCreateGetRoundTrip(t *testing.T) {
	st := NewStore()
	var key [32]byte
	key[0] = 1
	transcript := []byte("transcript-bytes")

	id, err := st.Create(key, transcript)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(id) != 32 { // 16 bytes hex-encoded
		t.Fatalf("unexpected session id length: %d", len(id))
	}

	sess, err := st.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if sess.Key() != key {
		t.Fatal("Get returned session with wrong key")
	}
	if string(sess.Transcript()) != string(transcript) {
		t.Fatal("Get returned session with wrong transcript")
	}
}

func TestGetUnknownSessionFails(t *testing.T) {
	st := NewStore()
	if _, err := st.Get("deadbeef"); err != ErrSessionNotFound {
		t.Fatalf("Get unknown id: got %v, want ErrSessionNotFound", err)
	}
}

func TestCloseRemovesSession(t *testing.T) {
	st := NewStore()
	var key [32]byte
	id, err := st.Create(key, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := st.Close(id); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := st.Get(id); err != ErrSessionNotFound {
		t.Fatalf("Get after Close: got %v, want ErrSessionNotFound", err)
	}
	if err := st.Close(id); err != ErrSessionNotFound {
		t.Fatalf("Close twice: got %v, want ErrSessionNotFound", err)
	}
}

func TestClearAllReturnsCount(t *testing.T) {
	st := NewStore()
	var key [32]byte
	for i := 0; i < 3; i++ {
		if _, err := st.Create(key, nil); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	if n := st.ClearAll(); n != 3 {
		t.Fatalf("ClearAll returned %d, want 3", n)
	}
	if st.Count() != 0 {
		t.Fatal("sessions remain after ClearAll")
	}
}

func TestRecordIncomingSeqEnforcesStrictIncrease(t *testing.T) {
	s := &Session{}

	if err := s.RecordIncomingSeq(5); err != nil {
		t.Fatalf("RecordIncomingSeq(5): %v", err)
	}
	if err := s.RecordIncomingSeq(5); err != ErrReplayDetected {
		t.Fatalf("RecordIncomingSeq(5) replay: got %v, want ErrReplayDetected", err)
	}
	if err := s.RecordIncomingSeq(3); err != ErrReplayDetected {
		t.Fatalf("RecordIncomingSeq(3) out of order: got %v, want ErrReplayDetected", err)
	}
	if err := s.RecordIncomingSeq(6); err != nil {
		t.Fatalf("RecordIncomingSeq(6): %v", err)
	}
}

func TestNextSendSeqStartsAtOne(t *testing.T) {
	s := &Session{}
	if got := s.NextSendSeq(); got != 1 {
		t.Fatalf("first NextSendSeq() = %d, want 1", got)
	}
	if got := s.NextSendSeq(); got != 2 {
		t.Fatalf("second NextSendSeq() = %d, want 2", got)
	}
}

func TestPeerVerifiedDefaultsFalse(t *testing.T) {
	s := &Session{}
	if s.PeerVerified() {
		t.Fatal("new session reports peerVerified=true")
	}
	s.SetPeerVerified()
	if !s.PeerVerified() {
		t.Fatal("SetPeerVerified did not stick")
	}
}
