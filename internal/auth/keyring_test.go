package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fatcat-project/fatcat/internal/auth"
)

func TestKeyRingActiveAndLookup(t *testing.T) {
	keys := map[string][]byte{"k1": []byte("secret1")}
	ring := auth.NewKeyRing(keys, "k1")

	kid, key := ring.Active()
	assert.Equal(t, "k1", kid)
	assert.Equal(t, []byte("secret1"), key)

	got, ok := ring.Lookup("k1")
	assert.True(t, ok)
	assert.Equal(t, []byte("secret1"), got)

	_, ok = ring.Lookup("missing")
	assert.False(t, ok)
}

func TestKeyRingRotateKeepsOldKeyVerifiable(t *testing.T) {
	ring := auth.NewKeyRing(map[string][]byte{"k1": []byte("secret1")}, "k1")
	ring.Rotate("k2", []byte("secret2"))

	kid, key := ring.Active()
	assert.Equal(t, "k2", kid)
	assert.Equal(t, []byte("secret2"), key)

	old, ok := ring.Lookup("k1")
	assert.True(t, ok, "rotating must not invalidate tokens signed under the old key")
	assert.Equal(t, []byte("secret1"), old)
}

func TestKeyRingIsolatedFromCallerMap(t *testing.T) {
	keys := map[string][]byte{"k1": []byte("secret1")}
	ring := auth.NewKeyRing(keys, "k1")
	keys["k1"] = []byte("mutated")

	_, key := ring.Active()
	assert.Equal(t, []byte("secret1"), key, "KeyRing must copy its input map")
}
