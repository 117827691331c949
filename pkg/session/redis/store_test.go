package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hldiojin/hmes-dashboard-sub001/pkg/session"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, goredis.UniversalClient) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func testSession() session.Session {
	return session.Session{
		Token: "T",
		User:  &session.User{ID: "u-1", Name: "A", Email: "a@b.com", Role: "admin", Status: "active"},
	}
}

func TestStore_SaveAndCurrent(t *testing.T) {
	_, client := newTestRedis(t)
	store := New(client, "")

	require.True(t, store.Current().Empty())
	require.NoError(t, store.Save(testSession()))

	got := store.Current()
	assert.True(t, got.Authenticated())
	assert.Equal(t, "A", got.User.Name)
}

func TestStore_PersistAcrossClients(t *testing.T) {
	_, client := newTestRedis(t)

	first := New(client, "")
	require.NoError(t, first.Save(testSession()))

	// A second store on the same backend simulates a new process.
	restored := New(client, "")
	got := restored.Current()
	require.True(t, got.Authenticated())
	assert.Equal(t, "T", got.Token)
	assert.Equal(t, "u-1", got.User.ID)
}

func TestStore_Clear(t *testing.T) {
	mr, client := newTestRedis(t)
	store := New(client, "")

	require.NoError(t, store.Save(testSession()))
	require.NoError(t, store.Clear())

	assert.True(t, store.Current().Empty())
	assert.False(t, mr.Exists(DefaultKeyPrefix+":token"))
	assert.False(t, mr.Exists(DefaultKeyPrefix+":user"))
}

func TestStore_HalfPresentPairIsEmptySession(t *testing.T) {
	mr, client := newTestRedis(t)
	require.NoError(t, mr.Set(DefaultKeyPrefix+":token", "T"))

	store := New(client, "")
	assert.True(t, store.Current().Empty(), "token without user must not restore")
}

func TestStore_CorruptUserIsEmptySession(t *testing.T) {
	mr, client := newTestRedis(t)
	require.NoError(t, mr.Set(DefaultKeyPrefix+":token", "T"))
	require.NoError(t, mr.Set(DefaultKeyPrefix+":user", "{not json"))

	store := New(client, "")
	assert.True(t, store.Current().Empty())
}

func TestStore_RejectsHalfSetPair(t *testing.T) {
	_, client := newTestRedis(t)
	store := New(client, "")

	assert.ErrorIs(t, store.Save(session.Session{Token: "T"}), session.ErrIncompleteSession)
	assert.True(t, store.Current().Empty())
}

func TestStore_BackendDownStillServesCurrent(t *testing.T) {
	mr, client := newTestRedis(t)
	store := New(client, "")
	require.NoError(t, store.Save(testSession()))

	mr.Close()

	// Current is memory-only; Save surfaces the backend failure.
	assert.True(t, store.Current().Authenticated())
	assert.Error(t, store.Save(testSession()))
}
