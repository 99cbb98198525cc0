package rpc

import (
	"context"
	"encoding/base64"

	"github.com/google/uuid"
	"github.com/pearpass/native-core/pkg/identity"
	"github.com/pearpass/native-core/pkg/pairing"
)

// requireField returns a ProtocolError of kind if value is empty.
func requireField(value string, kind ErrorKind, name string) *ProtocolError {
	if value == "" {
		return protoErr(kind, name+" is required")
	}
	return nil
}

// traceRequest logs an operation's entry with a fresh correlation id and
// returns a function to log its outcome. Correlation ids only ever appear
// in logs — they are not part of any response and carry no protocol
// meaning.
func (c *Core) traceRequest(op string) func(pe *ProtocolError) {
	if c.log == nil {
		return func(*ProtocolError) {}
	}
	reqID := uuid.NewString()
	c.log.Debugf("[%s] %s start", reqID, op)
	return func(pe *ProtocolError) {
		if pe != nil {
			c.log.Debugf("[%s] %s failed: %s", reqID, op, pe.Kind)
			return
		}
		c.log.Debugf("[%s] %s ok", reqID, op)
	}
}

// GetAppIdentityParams mirrors the wire request for "getAppIdentity".
type GetAppIdentityParams struct {
	PairingToken string
	PeerEdPubB64 string
}

// GetAppIdentityResult mirrors the wire response for "getAppIdentity".
type GetAppIdentityResult struct {
	EdPubB64    string
	XPubB64     string
	Fingerprint string
}

// GetAppIdentity verifies the user-typed pairing token and pins the
// caller's public key as PENDING. Unlike the other five operations, it is
// not gated on native-messaging being enabled — it is the bootstrap step
// that lets a user enable native messaging in the first place; see
// DESIGN.md for this disposition of the ambiguous "except identity read"
// carve-out in spec §4.6.
func (c *Core) GetAppIdentity(ctx context.Context, p GetAppIdentityParams) (result GetAppIdentityResult, pe *ProtocolError) {
	done := c.traceRequest("getAppIdentity")
	defer func() { done(pe) }()

	if p.PairingToken == "" {
		return GetAppIdentityResult{}, protoErr(KindPairingTokenRequired, "pairingToken is required")
	}
	if p.PeerEdPubB64 == "" {
		return GetAppIdentityResult{}, protoErr(KindPeerPublicKeyRequired, "peerEdPubB64 is required")
	}

	ok, err := c.pairing.VerifyPairingCode(ctx, p.PairingToken)
	if err != nil {
		return GetAppIdentityResult{}, mapErr(err)
	}
	if !ok {
		return GetAppIdentityResult{}, protoErr(KindInvalidPairingToken, "pairing token does not match")
	}

	peerEdPub, err := pairing.DecodePeerKey(p.PeerEdPubB64)
	if err != nil {
		return GetAppIdentityResult{}, mapErr(err)
	}

	if err := c.pairing.PinPeer(ctx, peerEdPub); err != nil {
		return GetAppIdentityResult{}, mapErr(err)
	}

	pub, err := c.identity.GetOrCreate(ctx)
	if err != nil {
		return GetAppIdentityResult{}, mapErr(err)
	}

	return GetAppIdentityResult{
		EdPubB64:    b64Encode(pub.EdPub[:]),
		XPubB64:     b64Encode(pub.XPub[:]),
		Fingerprint: identity.GetFingerprint(pub.EdPub),
	}, nil
}

// BeginHandshakeResult mirrors the wire response for "beginHandshake".
type BeginHandshakeResult struct {
	HostEphPubB64 string
	SignatureB64  string
	SessionID     string
}

// BeginHandshake requires a pinned peer and native messaging enabled.
func (c *Core) BeginHandshake(ctx context.Context, extEphPubB64 string) (result BeginHandshakeResult, pe *ProtocolError) {
	done := c.traceRequest("beginHandshake")
	defer func() { done(pe) }()

	if pe = c.requireNativeMessaging(); pe != nil {
		return BeginHandshakeResult{}, pe
	}
	if extEphPubB64 == "" {
		pe = protoErr(KindMissingEphemeralPubKey, "extEphPubB64 is required")
		return BeginHandshakeResult{}, pe
	}

	res, err := c.handshake.BeginHandshake(ctx, extEphPubB64)
	if err != nil {
		pe = mapErr(err)
		return BeginHandshakeResult{}, pe
	}
	return BeginHandshakeResult(res), nil
}

// FinishHandshake verifies the extension's client-finish signature.
func (c *Core) FinishHandshake(ctx context.Context, sessionID, clientSigB64 string) (pe *ProtocolError) {
	done := c.traceRequest("finishHandshake")
	defer func() { done(pe) }()

	if pe = c.requireNativeMessaging(); pe != nil {
		return pe
	}
	if pe = requireField(sessionID, KindMissingSessionId, "sessionId"); pe != nil {
		return pe
	}
	if pe = requireField(clientSigB64, KindMissingClientSignature, "clientSigB64"); pe != nil {
		return pe
	}

	if err := c.handshake.FinishHandshake(ctx, sessionID, clientSigB64); err != nil {
		pe = mapErr(err)
		return pe
	}
	return nil
}

// CloseSession tears down a single session.
func (c *Core) CloseSession(ctx context.Context, sessionID string) (pe *ProtocolError) {
	done := c.traceRequest("closeSession")
	defer func() { done(pe) }()

	if pe = c.requireNativeMessaging(); pe != nil {
		return pe
	}
	if pe = requireField(sessionID, KindMissingSessionId, "sessionId"); pe != nil {
		return pe
	}

	if err := c.handshake.CloseSession(ctx, sessionID); err != nil {
		pe = mapErr(err)
		return pe
	}
	return nil
}

// CheckPairingStatus reports whether peerEdPubB64 is the confirmed peer,
// using the unprotected cache so this works while the vault is locked.
func (c *Core) CheckPairingStatus(ctx context.Context, peerEdPubB64 string) (paired bool, pe *ProtocolError) {
	done := c.traceRequest("checkPairingStatus")
	defer func() { done(pe) }()

	if pe = c.requireNativeMessaging(); pe != nil {
		return false, pe
	}
	if peerEdPubB64 == "" {
		pe = protoErr(KindPeerPublicKeyRequired, "peerEdPubB64 is required")
		return false, pe
	}

	peerEdPub, err := pairing.DecodePeerKey(peerEdPubB64)
	if err != nil {
		pe = mapErr(err)
		return false, pe
	}

	cached, ok := c.cache.Get()
	if !ok {
		return false, nil
	}
	return cached == peerEdPub, nil
}

// ResetPairingResult mirrors the wire response for "resetPairing".
type ResetPairingResult struct {
	ClearedSessions int
	NewIdentity     identity.Public
}

// ResetPairing tears down every session, unpins the peer, and mints a
// fresh host identity. It is the only place in this module that composes
// all three stateful components in one operation — see DESIGN.md for why
// this orchestration lives here rather than inside pkg/identity.
func (c *Core) ResetPairing(ctx context.Context) (result ResetPairingResult, pe *ProtocolError) {
	done := c.traceRequest("resetPairing")
	defer func() { done(pe) }()

	if pe = c.requireNativeMessaging(); pe != nil {
		return ResetPairingResult{}, pe
	}

	cleared := c.handshake.ClearAllSessions(ctx)
	c.pairing.Reset(ctx)
	newID, err := c.identity.Reset(ctx)
	if err != nil {
		pe = mapErr(err)
		return ResetPairingResult{}, pe
	}

	if c.log != nil {
		c.log.Infof("pairing reset: cleared %d sessions, minted new identity", cleared)
	}

	return ResetPairingResult{ClearedSessions: cleared, NewIdentity: newID}, nil
}

func b64Encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
