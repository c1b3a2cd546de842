package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

func newRedisStoreForTest(t *testing.T) (Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(logger.Nop(), rdb, time.Hour), mr
}

func disguisedSession(t *testing.T, s Store) *types.Session {
	t.Helper()
	realUser := &types.SessionUser{ID: uuid.New(), Username: "alice", FirstName: "Alice", Auth: "manual"}
	sess, err := s.Create(context.Background(), realUser)
	require.NoError(t, err)

	sess.Disguise = &types.DisguiseState{
		OriginalSession: &types.SessionSnapshot{Values: map[string]string{"lang": "en"}},
		OriginalUser:    realUser,
		ContextID:       uuid.New(),
	}
	sess.User = &types.SessionUser{ID: uuid.New(), Username: "d1", Auth: "disguise", RealUser: realUser}
	return sess
}

func TestStoresRoundTrip(t *testing.T) {
	redisStore, _ := newRedisStoreForTest(t)
	stores := map[string]Store{
		"redis":  redisStore,
		"memory": NewMemoryStore(logger.Nop(), time.Hour),
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			sess := disguisedSession(t, store)
			require.NoError(t, store.Replace(ctx, sess))

			got, err := store.Load(ctx, sess.ID)
			require.NoError(t, err)
			if diff := cmp.Diff(sess, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}

			got.Values["mutated"] = "yes"
			again, err := store.Load(ctx, sess.ID)
			require.NoError(t, err)
			require.NotContains(t, again.Values, "mutated")

			require.NoError(t, store.Delete(ctx, sess.ID))
			_, err = store.Load(ctx, sess.ID)
			require.ErrorIs(t, err, ErrSessionNotFound)
		})
	}
}

func TestStoresRejectPartialDisguiseState(t *testing.T) {
	redisStore, _ := newRedisStoreForTest(t)
	stores := map[string]Store{
		"redis":  redisStore,
		"memory": NewMemoryStore(logger.Nop(), time.Hour),
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			sess := disguisedSession(t, store)
			sess.Disguise.OriginalUser = nil
			err := store.Replace(context.Background(), sess)
			require.ErrorIs(t, err, ErrCorruptSession)
		})
	}
}

func TestRedisStoreRejectsCorruptPayload(t *testing.T) {
	store, mr := newRedisStoreForTest(t)
	ctx := context.Background()

	partial := map[string]any{
		"id":       "abc",
		"user":     map[string]any{"id": uuid.NewString()},
		"disguise": map[string]any{"context_id": uuid.NewString()},
	}
	raw, err := json.Marshal(partial)
	require.NoError(t, err)
	require.NoError(t, mr.Set(redisKeyPrefix+"abc", string(raw)))

	_, err = store.Load(ctx, "abc")
	require.ErrorIs(t, err, ErrCorruptSession)
}

func TestRedisStoreAppliesTTL(t *testing.T) {
	store, mr := newRedisStoreForTest(t)
	sess, err := store.Create(context.Background(), &types.SessionUser{ID: uuid.New()})
	require.NoError(t, err)
	require.Equal(t, time.Hour, mr.TTL(redisKeyPrefix+sess.ID))

	mr.FastForward(2 * time.Hour)
	_, err = store.Load(context.Background(), sess.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStoresLoadWritableValues(t *testing.T) {
	redisStore, _ := newRedisStoreForTest(t)
	stores := map[string]Store{
		"redis":  redisStore,
		"memory": NewMemoryStore(logger.Nop(), time.Hour),
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			sess, err := store.Create(ctx, &types.SessionUser{ID: uuid.New(), Username: "fresh"})
			require.NoError(t, err)

			got, err := store.Load(ctx, sess.ID)
			require.NoError(t, err)
			require.NotNil(t, got.Values)
			got.Values["lang"] = "en"
			require.NoError(t, store.Replace(ctx, got))

			again, err := store.Load(ctx, sess.ID)
			require.NoError(t, err)
			require.Equal(t, "en", again.Values["lang"])
		})
	}
}
