package pairing

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/pearpass/native-core/pkg/kvstore"
)

// State is a peer record's position in the pairing state machine:
// absent -> PENDING (PinPeer) -> CONFIRMED (ConfirmPeer).
type State string

const (
	StatePending   State = "PENDING"
	StateConfirmed State = "CONFIRMED"
)

// PeerRecord is the persisted record of the single peer this host is
// paired, or pairing, with. Only one peer record exists at a time.
type PeerRecord struct {
	PublicKey [32]byte
	State     State
}

// peerRecordJSON is PeerRecord's wire shape inside the KV store, matching
// the documented blob format for kvstore.KeyPeerData: {"publicKey":"<b64>",
// "pairingState":"PENDING"|"CONFIRMED"}.
type peerRecordJSON struct {
	PublicKey    string `json:"publicKey"`
	PairingState State  `json:"pairingState"`
}

func loadPeerRecord(ctx context.Context, kv kvstore.Store) (*PeerRecord, bool) {
	blob, ok, err := kv.Get(ctx, kvstore.KeyPeerData)
	if err != nil || !ok || blob == "" {
		return nil, false
	}

	var wire peerRecordJSON
	if err := json.Unmarshal([]byte(blob), &wire); err != nil {
		return nil, false
	}

	raw, err := base64.StdEncoding.DecodeString(wire.PublicKey)
	if err != nil || len(raw) != 32 {
		return nil, false
	}

	rec := &PeerRecord{State: wire.PairingState}
	copy(rec.PublicKey[:], raw)
	return rec, true
}

func savePeerRecord(ctx context.Context, kv kvstore.Store, rec *PeerRecord) error {
	wire := peerRecordJSON{
		PublicKey:    base64.StdEncoding.EncodeToString(rec.PublicKey[:]),
		PairingState: rec.State,
	}
	blob, err := json.Marshal(wire)
	if err != nil {
		return err
	}
	return kv.Put(ctx, kvstore.KeyPeerData, string(blob))
}

func clearPeerRecord(ctx context.Context, kv kvstore.Store) error {
	return kv.Put(ctx, kvstore.KeyPeerData, "")
}
