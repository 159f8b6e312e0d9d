package session

import (
	"context"
	"testing"
	"time"

	"bluecollar/models/role"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(rdb, time.Hour), mr
}

func validSession() *Session {
	return &Session{
		Token: "tok-123",
		User: Profile{
			Username:  "ade",
			Email:     "ade@example.com",
			Role:      role.User,
			FirstName: "Ade",
			LastName:  "Balogun",
			Location:  "Lagos",
			Active:    true,
		},
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, validSession()))

	got, err := store.Load(ctx, "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "ade", got.User.Username)
	assert.Equal(t, role.User, got.User.Role)
}

func TestSaveRejectsInvalidProfile(t *testing.T) {
	store, _ := newTestStore(t)

	sess := validSession()
	sess.User.Role = "Superuser"

	err := store.Save(context.Background(), sess)
	require.Error(t, err)
}

func TestLoadMissingSession(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadClearsMalformedSession(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("session:bad", "{not json"))

	_, err := store.Load(ctx, "bad")
	assert.ErrorIs(t, err, ErrInvalidSession)

	// The poisoned entry is gone; a retry sees a clean miss.
	_, err = store.Load(ctx, "bad")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadClearsSessionWithMissingRole(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("session:tok",
		`{"token":"tok","user":{"username":"ade","email":"ade@example.com","role":""}}`))

	_, err := store.Load(ctx, "tok")
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = store.Load(ctx, "tok")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClear(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, validSession()))
	require.NoError(t, store.Clear(ctx, "tok-123"))

	_, err := store.Load(ctx, "tok-123")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionExpires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, validSession()))

	mr.FastForward(2 * time.Hour)

	_, err := store.Load(ctx, "tok-123")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Profile)
		wantErr bool
	}{
		{"valid", func(p *Profile) {}, false},
		{"missing username", func(p *Profile) { p.Username = "" }, true},
		{"missing email", func(p *Profile) { p.Email = "" }, true},
		{"invalid role", func(p *Profile) { p.Role = "Ghost" }, true},
		{"empty role", func(p *Profile) { p.Role = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validSession().User
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
