package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/99minutos/storefront/internal/core/domain"
	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/core/state"
)

// SessionHook runs after a session is established or cleared.
type SessionHook func(ctx context.Context, s domain.Session)

// SessionService owns the authenticated identity and its persistence.
type SessionService struct {
	api      ports.StorefrontAPI
	store    ports.SessionStore
	session  *state.Value[domain.Session]
	notifier ports.Notifier
	nav      ports.Navigator
	log      zerolog.Logger

	hooksMu  sync.Mutex
	hooks    map[int]SessionHook
	nextHook int
}

func NewSessionService(
	api ports.StorefrontAPI,
	store ports.SessionStore,
	session *state.Value[domain.Session],
	notifier ports.Notifier,
	nav ports.Navigator,
	log zerolog.Logger,
) *SessionService {
	return &SessionService{
		api:      api,
		store:    store,
		session:  session,
		notifier: notifier,
		nav:      nav,
		log:      log,
		hooks:    make(map[int]SessionHook),
	}
}

// State exposes the session value for renderers.
func (s *SessionService) State() *state.Value[domain.Session] { return s.session }

// Current returns the in-memory session.
func (s *SessionService) Current() domain.Session { return s.session.Get() }

// Token is the credential source for the HTTP client.
func (s *SessionService) Token() string { return s.session.Get().Token }

// OnChange registers a dependent refresh. The returned function releases it.
func (s *SessionService) OnChange(h SessionHook) func() {
	s.hooksMu.Lock()
	id := s.nextHook
	s.nextHook++
	s.hooks[id] = h
	s.hooksMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.hooksMu.Lock()
			delete(s.hooks, id)
			s.hooksMu.Unlock()
		})
	}
}

// Load restores the persisted session. A missing, blank or unparsable entry
// yields the anonymous session.
func (s *SessionService) Load(ctx context.Context) domain.Session {
	stored, err := s.store.Read(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("session store read failed, starting anonymous")
		s.session.Set(domain.Session{})
		return domain.Session{}
	}

	sess, ok := decodeStored(stored)
	if !ok {
		s.log.Debug().Msg("no usable persisted session")
		s.session.Set(domain.Session{})
		return domain.Session{}
	}

	s.session.Set(sess)
	s.log.Debug().Str("user_id", sess.User.ID).Str("role", string(sess.User.Role)).Msg("session restored")
	return sess
}

func decodeStored(stored ports.StoredSession) (domain.Session, bool) {
	token := strings.TrimSpace(stored.AuthToken)
	if token == "" || strings.TrimSpace(stored.CurrentUser) == "" {
		return domain.Session{}, false
	}
	var u domain.User
	if err := json.Unmarshal([]byte(stored.CurrentUser), &u); err != nil {
		return domain.Session{}, false
	}
	return domain.Session{Token: token, User: &u}, true
}

// Establish persists token and user together, then updates the in-memory
// identity and runs the dependent refreshes. Nothing changes in memory if the
// write fails.
func (s *SessionService) Establish(ctx context.Context, token string, user *domain.User) error {
	if strings.TrimSpace(token) == "" || user == nil {
		return domain.ErrIncompleteSession
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("establish session: encode user: %w", err)
	}
	if err := s.store.Write(ctx, ports.StoredSession{AuthToken: token, CurrentUser: string(raw)}); err != nil {
		return fmt.Errorf("establish session: %w", err)
	}

	u := *user
	sess := domain.Session{Token: token, User: &u}
	s.session.Set(sess)

	s.log.Info().Str("user_id", u.ID).Str("role", string(u.Role)).Msg("session established")
	s.runHooks(ctx, sess)
	return nil
}

// Clear erases the persisted session and reverts to anonymous. The in-memory
// session is cleared even when the erase fails.
func (s *SessionService) Clear(ctx context.Context) error {
	eraseErr := s.store.Erase(ctx)
	if eraseErr != nil {
		s.log.Warn().Err(eraseErr).Msg("session store erase failed")
	}

	s.session.Set(domain.Session{})
	s.runHooks(ctx, domain.Session{})

	if eraseErr != nil {
		return fmt.Errorf("clear session: %w", eraseErr)
	}
	return nil
}

func (s *SessionService) runHooks(ctx context.Context, sess domain.Session) {
	s.hooksMu.Lock()
	ids := make([]int, 0, len(s.hooks))
	for id := range s.hooks {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	hooks := make([]SessionHook, 0, len(ids))
	for _, id := range ids {
		hooks = append(hooks, s.hooks[id])
	}
	s.hooksMu.Unlock()

	for _, h := range hooks {
		h(ctx, sess)
	}
}

// Login authenticates and establishes the session.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	res, err := s.api.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		s.log.Error().Err(err).Msg("login failed")
		return nil, fmt.Errorf("login: %w", err)
	}
	if err := s.Establish(ctx, res.Token, res.User); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	s.notifier.Notify(ports.LevelSuccess, messageOr(res.Message, "Login successful"))
	return res.User, nil
}

// Register creates an account and establishes the session.
func (s *SessionService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Role == "" {
		in.Role = domain.RoleUser
	}
	in.Email = strings.TrimSpace(in.Email)

	res, err := s.api.Register(ctx, in)
	if err != nil {
		s.log.Error().Err(err).Msg("registration failed")
		return nil, fmt.Errorf("register: %w", err)
	}
	if err := s.Establish(ctx, res.Token, res.User); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	s.notifier.Notify(ports.LevelSuccess, messageOr(res.Message, "Registration successful"))
	return res.User, nil
}

// BecomeSeller upgrades the current user's role and keeps the existing token.
func (s *SessionService) BecomeSeller(ctx context.Context) (*domain.User, error) {
	cur := s.Current()
	if cur.Token == "" {
		s.notifier.Notify(ports.LevelError, "Please login first")
		return nil, domain.ErrLoginRequired
	}

	res, err := s.api.BecomeSeller(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("become seller failed")
		return nil, fmt.Errorf("become seller: %w", err)
	}
	if err := s.Establish(ctx, cur.Token, res.User); err != nil {
		return nil, fmt.Errorf("become seller: %w", err)
	}

	s.notifier.Notify(ports.LevelSuccess, messageOr(res.Message, "You are now a seller"))
	s.nav.Redirect(domain.PageSellerConsole)
	return res.User, nil
}

// Logout clears the session; dependent state reverts through the hooks.
func (s *SessionService) Logout(ctx context.Context) error {
	err := s.Clear(ctx)
	s.notifier.Notify(ports.LevelInfo, "Logged out successfully")
	return err
}

// TokenInfo is what the client can read from its own credential without
// verifying it. It is informational only.
type TokenInfo struct {
	Subject   string
	Role      string
	ExpiresAt *time.Time
}

var errNoToken = errors.New("no credential")

// Claims decodes the current token's payload without verifying the
// signature. Tokens that are not JWTs return an error.
func (s *SessionService) Claims() (TokenInfo, error) {
	token := s.Token()
	if token == "" {
		return TokenInfo{}, errNoToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, fmt.Errorf("decode token: %w", err)
	}

	info := TokenInfo{}
	info.Subject, _ = claims.GetSubject()
	info.Role, _ = claims["role"].(string)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time.UTC()
		info.ExpiresAt = &t
	}
	return info, nil
}

func messageOr(msg, fallback string) string {
	if strings.TrimSpace(msg) == "" {
		return fallback
	}
	return msg
}
