package pairing

import "sync"

// UnprotectedCache mirrors the confirmed peer's public key outside the
// encrypted KV store, so pairing-status checks (rpc.Core.CheckPairingStatus)
// work without first unlocking the vault. It only ever holds a CONFIRMED peer's
// key — see Manager.ConfirmPeer and Manager.Reset.
type UnprotectedCache struct {
	mu   sync.RWMutex
	peer [32]byte
	set  bool
}

// NewUnprotectedCache returns an empty cache.
func NewUnprotectedCache() *UnprotectedCache {
	return &UnprotectedCache{}
}

// Get returns the cached peer key, or ok=false if none is cached.
func (c *UnprotectedCache) Get() (peer [32]byte, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.peer, c.set
}

// Set stores peer as the confirmed peer key.
func (c *UnprotectedCache) Set(peer [32]byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.peer = peer
	c.set = true
}

// Clear removes any cached peer key.
func (c *UnprotectedCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.peer = [32]byte{}
	c.set = false
}
