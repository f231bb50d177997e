package store

import (
	"context"
	"encoding/json"
	"log"

	"canteen-web/internal/auth"
)

// Fixed key names inside a session namespace
const (
	KeyToken   = "token"
	KeyUser    = "user"
	KeyCart    = "cart"
	KeyOrderID = "order_id"
	KeyLang    = "lang"
	KeyFlash   = "flash"
	KeyCSRF    = "csrf"
)

// Flash kinds
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Flash is a one-shot message shown on the next rendered page
type Flash struct {
	Kind  string   `json:"kind"`
	Text  string   `json:"text"`
	Lines []string `json:"lines,omitempty"`
}

// Store is the state of one browser session
type Store struct {
	backend Backend
	sid     string

	cart       Cart
	cartLoaded bool
}

// New returns the store for session sid
func New(backend Backend, sid string) *Store {
	return &Store{backend: backend, sid: sid}
}

// ID returns the session id
func (s *Store) ID() string {
	return s.sid
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	v, _, err := s.backend.Get(ctx, s.sid, key)
	return v, err
}

// Token returns the API access token, or "" when logged out
func (s *Store) Token(ctx context.Context) (string, error) {
	return s.get(ctx, KeyToken)
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.backend.Set(ctx, s.sid, KeyToken, token)
}

func (s *Store) ClearToken(ctx context.Context) error {
	return s.backend.Delete(ctx, s.sid, KeyToken)
}

// User returns the stored profile. A missing or unreadable profile yields nil.
func (s *Store) User(ctx context.Context) (*auth.User, error) {
	raw, err := s.get(ctx, KeyUser)
	if err != nil || raw == "" {
		return nil, err
	}
	var user auth.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		log.Printf("[store] Discarding unreadable user profile in session %s: %v", s.sid, err)
		return nil, nil
	}
	return &user, nil
}

func (s *Store) SetUser(ctx context.Context, user *auth.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.backend.Set(ctx, s.sid, KeyUser, string(raw))
}

func (s *Store) ClearUser(ctx context.Context) error {
	return s.backend.Delete(ctx, s.sid, KeyUser)
}

// Session returns the token and user together
func (s *Store) Session(ctx context.Context) (auth.Session, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return auth.Session{}, err
	}
	user, err := s.User(ctx)
	if err != nil {
		return auth.Session{}, err
	}
	return auth.Session{Token: token, User: user}, nil
}

// ClearSession forgets the token and the user profile. Cart and language are kept.
func (s *Store) ClearSession(ctx context.Context) error {
	return s.backend.Delete(ctx, s.sid, KeyToken, KeyUser)
}

// LastOrderID returns the id of the last created order
func (s *Store) LastOrderID(ctx context.Context) (string, error) {
	return s.get(ctx, KeyOrderID)
}

func (s *Store) SetLastOrderID(ctx context.Context, id string) error {
	return s.backend.Set(ctx, s.sid, KeyOrderID, id)
}

func (s *Store) ClearLastOrderID(ctx context.Context) error {
	return s.backend.Delete(ctx, s.sid, KeyOrderID)
}

// Lang returns the stored language preference, or "" when unset
func (s *Store) Lang(ctx context.Context) (string, error) {
	return s.get(ctx, KeyLang)
}

func (s *Store) SetLang(ctx context.Context, lang string) error {
	return s.backend.Set(ctx, s.sid, KeyLang, lang)
}

// SetFlash replaces the pending flash message. Lines are shown below the text.
func (s *Store) SetFlash(ctx context.Context, kind, text string, lines ...string) error {
	raw, err := json.Marshal(Flash{Kind: kind, Text: text, Lines: lines})
	if err != nil {
		return err
	}
	return s.backend.Set(ctx, s.sid, KeyFlash, string(raw))
}

// PopFlash returns the pending flash message and removes it
func (s *Store) PopFlash(ctx context.Context) (*Flash, error) {
	raw, ok, err := s.backend.Get(ctx, s.sid, KeyFlash)
	if err != nil || !ok {
		return nil, err
	}
	if err := s.backend.Delete(ctx, s.sid, KeyFlash); err != nil {
		return nil, err
	}
	var f Flash
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		return nil, nil
	}
	return &f, nil
}

// CSRF returns the anti-forgery token of the session, or "" when none was issued
func (s *Store) CSRF(ctx context.Context) (string, error) {
	return s.get(ctx, KeyCSRF)
}

func (s *Store) SetCSRF(ctx context.Context, token string) error {
	return s.backend.Set(ctx, s.sid, KeyCSRF, token)
}
