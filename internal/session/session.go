package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/google/uuid"

	"github.com/hieuluvjingliu/GardenBred/internal/domain"
	"github.com/hieuluvjingliu/GardenBred/internal/game"
	"github.com/hieuluvjingliu/GardenBred/internal/logger"
	"github.com/hieuluvjingliu/GardenBred/internal/repository"
)

const (
	maxUsernameLen = 32
	cacheSize      = 4096
)

// Manager issues session tokens at login and resolves them back to user ids.
// Resolution is cached in-process; tokens are immutable once issued, so a
// cached entry never goes stale.
type Manager struct {
	store repository.Store
	cache *lru.Cache[string, int64]
	now   func() int64
}

// NewManager creates a session manager backed by the given store.
func NewManager(store repository.Store) (*Manager, error) {
	cache, err := lru.New[string, int64](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating session cache: %w", err)
	}
	return &Manager{
		store: store,
		cache: cache,
		now:   func() int64 { return time.Now().UnixMilli() },
	}, nil
}

// Login finds or creates the user for username and returns a fresh session
// token. A first login also provisions the starting floor and its plots.
func (m *Manager) Login(ctx context.Context, username string) (*domain.User, string, error) {
	username = strings.TrimSpace(username)
	if !validUsername(username) {
		return nil, "", domain.ErrInvalidUsername
	}

	now := m.now()
	user, err := m.store.GetOrCreateUser(ctx, username, game.StartingCoins, now)
	if err != nil {
		return nil, "", fmt.Errorf("login user %q: %w", username, err)
	}

	floors, err := m.store.CountUnlockedFloors(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("counting floors for user %d: %w", user.ID, err)
	}
	if floors == 0 {
		if _, err := m.store.CreateFloor(ctx, user.ID, 1, game.PlotsPerFloor); err != nil {
			return nil, "", fmt.Errorf("provisioning first floor for user %d: %w", user.ID, err)
		}
	}

	token := uuid.NewString()
	if err := m.store.CreateSession(ctx, token, user.ID, now); err != nil {
		return nil, "", fmt.Errorf("creating session: %w", err)
	}
	m.cache.Add(token, user.ID)

	payload, _ := json.Marshal(map[string]any{"username": user.Username})
	if err := m.store.LogAction(ctx, user.ID, "auth_login", payload, now); err != nil {
		logger.FromContext(ctx).Warn("Audit write failed", "action", "auth_login", "error", err)
	}

	return user, token, nil
}

// Resolve maps a session token to its user id.
func (m *Manager) Resolve(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, domain.ErrSessionNotFound
	}
	if userID, ok := m.cache.Get(token); ok {
		return userID, nil
	}
	userID, err := m.store.GetSession(ctx, token)
	if err != nil {
		return 0, err
	}
	m.cache.Add(token, userID)
	return userID, nil
}

func validUsername(name string) bool {
	if name == "" || len(name) > maxUsernameLen {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return false
		}
	}
	return true
}
