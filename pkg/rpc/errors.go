package rpc

import (
	"errors"
	"fmt"

	"github.com/pearpass/native-core/pkg/crypto"
	"github.com/pearpass/native-core/pkg/handshake"
	"github.com/pearpass/native-core/pkg/identity"
	"github.com/pearpass/native-core/pkg/pairing"
	"github.com/pearpass/native-core/pkg/sessionstore"
)

// ErrorKind is a stable wire error code. Kinds, not Go types, are the
// taxonomy the extension depends on — adding a kind is compatible, but
// renaming or removing one is a wire-breaking change.
type ErrorKind string

const (
	KindPairingTokenRequired     ErrorKind = "PairingTokenRequired"
	KindPeerPublicKeyRequired    ErrorKind = "PeerPublicKeyRequired"
	KindInvalidPairingToken      ErrorKind = "InvalidPairingToken"
	KindInvalidPairingSecret     ErrorKind = "InvalidPairingSecret"
	KindPeerAlreadyPaired        ErrorKind = "PeerAlreadyPaired"
	KindNotPaired                ErrorKind = "NotPaired"
	KindPeerNotPaired            ErrorKind = "PeerNotPaired"
	KindNoPendingPairing         ErrorKind = "NoPendingPairing"
	KindPeerKeyMismatch          ErrorKind = "PeerKeyMismatch"
	KindMissingEphemeralPubKey   ErrorKind = "MissingEphemeralPublicKey"
	KindMissingSessionId         ErrorKind = "MissingSessionId"
	KindMissingClientSignature   ErrorKind = "MissingClientSignature"
	KindSessionNotFound          ErrorKind = "SessionNotFound"
	KindInvalidPeerPublicKey     ErrorKind = "InvalidPeerPublicKey"
	KindInvalidClientSignature   ErrorKind = "InvalidClientSignature"
	KindInvalidTranscript        ErrorKind = "InvalidTranscript"
	KindPeerSignatureInvalid     ErrorKind = "PeerSignatureInvalid"
	KindDecryptFailed            ErrorKind = "DecryptFailed"
	KindInvalidSeq               ErrorKind = "InvalidSeq"
	KindReplayDetected           ErrorKind = "ReplayDetected"
	KindIdentityKeysUnavailable  ErrorKind = "IdentityKeysUnavailable"
	KindNativeMessagingDisabled  ErrorKind = "NativeMessagingDisabled"
)

// ProtocolError is the tagged-sum error every RPC operation returns on
// failure. The RPC layer serializes it to {code: Kind, message: Detail} on
// the wire.
type ProtocolError struct {
	Kind   ErrorKind
	Detail string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func protoErr(kind ErrorKind, detail string) *ProtocolError {
	return &ProtocolError{Kind: kind, Detail: detail}
}

// mapErr translates a sentinel error from the component packages into a
// ProtocolError. It panics only if called with nil, which callers never do.
func mapErr(err error) *ProtocolError {
	switch {
	case errors.Is(err, pairing.ErrPeerAlreadyPaired):
		return protoErr(KindPeerAlreadyPaired, err.Error())
	case errors.Is(err, pairing.ErrNoPendingPairing):
		return protoErr(KindNoPendingPairing, err.Error())
	case errors.Is(err, pairing.ErrPeerKeyMismatch):
		return protoErr(KindPeerKeyMismatch, err.Error())
	case errors.Is(err, pairing.ErrInvalidPeerPublicKey):
		return protoErr(KindInvalidPeerPublicKey, err.Error())
	case errors.Is(err, handshake.ErrNotPaired):
		return protoErr(KindNotPaired, err.Error())
	case errors.Is(err, handshake.ErrPeerNotPaired):
		return protoErr(KindPeerNotPaired, err.Error())
	case errors.Is(err, handshake.ErrIdentityKeysUnavailable):
		return protoErr(KindIdentityKeysUnavailable, err.Error())
	case errors.Is(err, handshake.ErrInvalidPeerPublicKey):
		return protoErr(KindInvalidPeerPublicKey, err.Error())
	case errors.Is(err, handshake.ErrInvalidClientSignature):
		return protoErr(KindInvalidClientSignature, err.Error())
	case errors.Is(err, handshake.ErrInvalidTranscript):
		return protoErr(KindInvalidTranscript, err.Error())
	case errors.Is(err, handshake.ErrPeerSignatureInvalid):
		return protoErr(KindPeerSignatureInvalid, err.Error())
	case errors.Is(err, handshake.ErrDecryptFailed):
		return protoErr(KindDecryptFailed, err.Error())
	case errors.Is(err, sessionstore.ErrSessionNotFound):
		return protoErr(KindSessionNotFound, err.Error())
	case errors.Is(err, sessionstore.ErrReplayDetected):
		return protoErr(KindReplayDetected, err.Error())
	case errors.Is(err, identity.ErrKeysUnavailable):
		return protoErr(KindIdentityKeysUnavailable, err.Error())
	case errors.Is(err, crypto.ErrZeroSharedSecret), errors.Is(err, crypto.ErrInvalidKeyLength):
		return protoErr(KindInvalidPeerPublicKey, err.Error())
	case errors.Is(err, crypto.ErrInvalidSignatureLength):
		return protoErr(KindInvalidClientSignature, err.Error())
	case errors.Is(err, crypto.ErrInvalidNonceLength), errors.Is(err, crypto.ErrOpenFailed):
		return protoErr(KindDecryptFailed, err.Error())
	default:
		// Unclassified failures surface as the closest thing to "bad key
		// material" rather than a misleading specific kind.
		return protoErr(KindInvalidPeerPublicKey, err.Error())
	}
}
