// Package rpc is the stateless façade mapping named requests onto the
// pairing and session-handshake operations. It owns no protocol state of
// its own — every mutation happens in pkg/identity, pkg/pairing, or
// pkg/handshake — but it is the one place that enforces the
// native-messaging-enabled gate and validates required parameters before
// business logic ever runs.
package rpc

import (
	"context"

	"github.com/pearpass/native-core/pkg/handshake"
	"github.com/pearpass/native-core/pkg/identity"
	"github.com/pearpass/native-core/pkg/kvstore"
	"github.com/pearpass/native-core/pkg/pairing"
	"github.com/pearpass/native-core/pkg/sessionstore"
	"github.com/pion/logging"
)

// Config wires the façade's dependencies. NativeMessagingEnabled is polled
// on every request rather than cached, since the surrounding app can flip
// it at any time independent of this core.
type Config struct {
	KV                     kvstore.Store
	LoggerFactory          logging.LoggerFactory
	NativeMessagingEnabled func() bool
}

// Core is the explicit, per-process object replacing the source's global
// mutable singletons (see DESIGN.md): one Core owns one identity, one
// pairing record, and one session table. Construct it once at startup and
// pass it to the RPC dispatcher; tests construct isolated Cores freely.
type Core struct {
	identity  *identity.Store
	pairing   *pairing.Manager
	handshake *handshake.Manager
	cache     *pairing.UnprotectedCache

	nativeMessagingEnabled func() bool
	log                    logging.LeveledLogger
}

// NewCore constructs a Core from cfg.
func NewCore(cfg Config) *Core {
	id := identity.New(cfg.KV, cfg.LoggerFactory)
	cache := pairing.NewUnprotectedCache()
	pm := pairing.NewManager(cfg.KV, id, cache, cfg.LoggerFactory)
	sessions := sessionstore.NewStore()
	hm := handshake.NewManager(id, pm, sessions, cfg.LoggerFactory)

	enabled := cfg.NativeMessagingEnabled
	if enabled == nil {
		enabled = func() bool { return false }
	}

	c := &Core{
		identity:               id,
		pairing:                pm,
		handshake:              hm,
		cache:                  cache,
		nativeMessagingEnabled: enabled,
	}
	if cfg.LoggerFactory != nil {
		c.log = cfg.LoggerFactory.NewLogger("rpc")
	}
	return c
}

// PairingCode returns the host's current pairing code, generating the
// host identity on first use. This is not part of the extension-facing
// RPC surface in §6 — it is the string the surrounding app displays to the
// user so they can type it into the extension.
func (c *Core) PairingCode(ctx context.Context) (string, error) {
	return c.pairing.PairingCode(ctx)
}

func (c *Core) requireNativeMessaging() *ProtocolError {
	if !c.nativeMessagingEnabled() {
		return protoErr(KindNativeMessagingDisabled, "native messaging is disabled")
	}
	return nil
}
