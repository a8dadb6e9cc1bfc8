package objtrack

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyIdentity(t *testing.T) {
	a := &payload{V: "same"}
	b := &payload{V: "same"}

	assert.Equal(t, KeyOf(a), KeyOf(a), "keys for one instance must match")
	assert.NotEqual(t, KeyOf(a), KeyOf(b), "value equality must not imply key equality")
	runtime.KeepAlive(a)
	runtime.KeepAlive(b)
}

func TestKeyResolvesObject(t *testing.T) {
	obj := &payload{V: "x"}
	key := KeyOf(obj)

	assert.True(t, key.Alive())
	assert.Same(t, obj, key.Object())
	runtime.KeepAlive(obj)
}

func TestKeyAsMapKey(t *testing.T) {
	obj := &payload{V: "x"}
	m := map[Key[payload]]uint64{KeyOf(obj): 7}

	// A key derived later from the same object probes the same entry.
	got, ok := m[KeyOf(obj)]
	require.True(t, ok)
	assert.Equal(t, uint64(7), got)
	runtime.KeepAlive(obj)
}

func TestKeySurvivesReclamation(t *testing.T) {
	key := func() Key[payload] {
		return KeyOf(&payload{V: "transient"})
	}()

	require.Eventually(t, func() bool {
		runtime.GC()
		return !key.Alive()
	}, 5*time.Second, 10*time.Millisecond)

	// The token stays a usable map key after its object is gone.
	assert.Nil(t, key.Object())
	assert.Equal(t, key, key)
	m := map[Key[payload]]uint64{key: 1}
	_, ok := m[key]
	assert.True(t, ok)
	assert.NotEmpty(t, key.String())
}
