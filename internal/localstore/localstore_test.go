package localstore

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	return store
}

func TestOpenMissingFile(t *testing.T) {
	store := openTempStore(t)
	assert.Equal(t, "", store.Get("anything"))
}

func TestSetGetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("key", "value"))

	// Reopen and verify persistence.
	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "value", reopened.Get("key"))
}

func TestThemeDefault(t *testing.T) {
	store := openTempStore(t)
	assert.Equal(t, DefaultTheme, store.Theme())

	require.NoError(t, store.SetTheme("light"))
	assert.Equal(t, "light", store.Theme())
}

func TestInstanceIDMintedOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	store, err := Open(path)
	require.NoError(t, err)

	id, err := store.InstanceID()
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err, "instance ID must be a valid UUID")

	again, err := store.InstanceID()
	require.NoError(t, err)
	assert.Equal(t, id, again)

	// Stable across reopen too.
	reopened, err := Open(path)
	require.NoError(t, err)
	persisted, err := reopened.InstanceID()
	require.NoError(t, err)
	assert.Equal(t, id, persisted)
}

func TestStateSnapshot(t *testing.T) {
	store := openTempStore(t)
	assert.Nil(t, store.StateSnapshot())

	snapshot := []byte(`{"subscription":{"tier":"FREE"}}`)
	require.NoError(t, store.SetStateSnapshot(snapshot))
	assert.Equal(t, snapshot, store.StateSnapshot())
}
