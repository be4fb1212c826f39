package auth

import "sync"

// KeyRing is a small set of HS256 signing keys indexed by key-id, loaded
// once at startup and shared across request goroutines; Rotate is the only
// mutation, guarded by an RWMutex. Keyed by id rather than holding a
// single key so a key can be rotated without invalidating tokens signed
// under the previous one.
type KeyRing struct {
	mu       sync.RWMutex
	keys     map[string][]byte
	activeID string
}

// NewKeyRing constructs a KeyRing whose active (signing) key is
// identified by activeID; all entries in keys remain valid for
// verification (KeyRing has no method that removes a key).
func NewKeyRing(keys map[string][]byte, activeID string) *KeyRing {
	cp := make(map[string][]byte, len(keys))
	for k, v := range keys {
		cp[k] = v
	}
	return &KeyRing{keys: cp, activeID: activeID}
}

// Active returns the key-id and key material new tokens are signed with.
func (r *KeyRing) Active() (string, []byte) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activeID, r.keys[r.activeID]
}

// Lookup returns the key material for kid, for verifying a token signed
// under a (possibly retired) key.
func (r *KeyRing) Lookup(kid string) ([]byte, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key, ok := r.keys[kid]
	return key, ok
}

// Rotate installs a new active signing key without removing any
// existing verification key.
func (r *KeyRing) Rotate(kid string, key []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[kid] = key
	r.activeID = kid
}
