package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bluecollar/models/role"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrNotFound means no session exists for the given token.
	ErrNotFound = errors.New("session not found")

	// ErrInvalidSession means the stored session failed the shape check
	// and has been cleared.
	ErrInvalidSession = errors.New("stored session is invalid")
)

// Profile is the serialized account snapshot kept alongside the token.
type Profile struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      role.Role `json:"role"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Location  string    `json:"location"`
	Address   string    `json:"address"`
	Active    bool      `json:"active"`
}

// Validate is the required-field/role-shape check applied on every load.
func (p Profile) Validate() error {
	if p.Username == "" {
		return fmt.Errorf("session profile missing username")
	}
	if p.Email == "" {
		return fmt.Errorf("session profile missing email")
	}
	if !p.Role.IsValid() {
		return fmt.Errorf("session profile has invalid role %q", p.Role)
	}
	return nil
}

// Session binds a bearer token to the profile it was issued for.
type Session struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// Store keeps sessions in redis with an explicit init/teardown
// lifecycle: saved on login, revalidated on load, cleared wholesale on
// logout or validation failure.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func sessionKey(token string) string {
	return "session:" + token
}

// Save persists the session. The profile must already be valid.
func (s *Store) Save(ctx context.Context, sess *Session) error {
	if err := sess.User.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKey(sess.Token), payload, s.ttl).Err()
}

// Load fetches and revalidates the session for a token. A session that
// fails to decode or fails the shape check is cleared and reported as
// invalid, forcing re-authentication.
func (s *Store) Load(ctx context.Context, token string) (*Session, error) {
	payload, err := s.rdb.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		_ = s.Clear(ctx, token)
		return nil, ErrInvalidSession
	}
	if err := sess.User.Validate(); err != nil {
		_ = s.Clear(ctx, token)
		return nil, ErrInvalidSession
	}
	return &sess, nil
}

// Clear removes the session for a token.
func (s *Store) Clear(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, sessionKey(token)).Err()
}
