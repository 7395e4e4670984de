package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/alumniportal/internal/app/models"
	"github.com/yigit/alumniportal/internal/pkg/apperrors"
	"github.com/yigit/alumniportal/internal/pkg/auth"
	"github.com/yigit/alumniportal/internal/pkg/validation"
	"golang.org/x/crypto/bcrypt"
)

// memStore is an in-memory stand-in for the PostgreSQL repositories.
// Uniqueness of usernames and of per-user tokens is enforced under mu,
// the same way the database constraints do.
type memStore struct {
	mu          sync.Mutex
	nextID      int64
	clock       time.Time
	users       map[int64]*models.User
	alumni      map[int64]*models.Alumni
	tokens      map[int64]*models.Token
	events      []*models.Event
	internships []*models.InternshipOpportunity
	failWith    error
}

func newMemStore() *memStore {
	return &memStore{
		clock:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		users:  make(map[int64]*models.User),
		alumni: make(map[int64]*models.Alumni),
		tokens: make(map[int64]*models.Token),
	}
}

func (m *memStore) addUser(u *models.User) *models.User {
	m.nextID++
	m.clock = m.clock.Add(time.Minute)
	u.ID = m.nextID
	u.DateJoined = m.clock
	m.users[u.ID] = u
	return u
}

func (m *memStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (m *memStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := m.GetByUsername(ctx, username)
	return err == nil, nil
}

func (m *memStore) CreateWithUser(_ context.Context, a *models.Alumni) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	for _, u := range m.users {
		if u.Username == a.User.Username {
			return fmt.Errorf("%w: username %q", apperrors.ErrResourceAlreadyExists, a.User.Username)
		}
	}
	m.addUser(a.User)
	a.UserID = a.User.ID
	m.alumni[a.UserID] = a
	return nil
}

func (m *memStore) GetByUserID(_ context.Context, userID int64) (*models.Alumni, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.alumni[userID]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return a, nil
}

func (m *memStore) GetNewest(_ context.Context, limit int) ([]*models.Alumni, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]*models.Alumni, 0, len(m.alumni))
	for _, a := range m.alumni {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].User.DateJoined.Equal(all[j].User.DateJoined) {
			return all[i].User.DateJoined.After(all[j].User.DateJoined)
		}
		return all[i].UserID > all[j].UserID
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *memStore) GetOrCreate(_ context.Context, userID int64, candidateKey string) (*models.Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tokens[userID]; ok {
		return t, nil
	}
	t := &models.Token{Key: candidateKey, UserID: userID, CreatedAt: time.Now()}
	m.tokens[userID] = t
	return t, nil
}

func (m *memStore) GetUserByKey(_ context.Context, key string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for userID, t := range m.tokens {
		if t.Key == key {
			copied := *m.users[userID]
			return &copied, nil
		}
	}
	return nil, apperrors.ErrTokenNotFound
}

func (m *memStore) ListWithImages(context.Context) ([]*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.events, nil
}

func (m *memStore) ListWithCompany(context.Context) ([]*models.InternshipOpportunity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.internships, nil
}

// memStorage records saved and deleted media references
type memStorage struct {
	mu      sync.Mutex
	saved   []string
	deleted []string
}

func (s *memStorage) SaveFileWithPath(fh *multipart.FileHeader, subPath string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref := fmt.Sprintf("/media/%s/%d-%s", subPath, len(s.saved)+1, fh.Filename)
	s.saved = append(s.saved, ref)
	return ref, nil
}

func (s *memStorage) DeleteFile(ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, ref)
	return nil
}

type fixture struct {
	store       *memStore
	storage     *memStorage
	credentials *CredentialService
	auth        *AuthService
	home        *HomeService
}

// countingHasher records how many password comparisons were made
type countingHasher struct {
	*auth.PasswordHasher
	checks atomic.Int64
}

func (h *countingHasher) CheckPassword(hashedPassword, password string) bool {
	h.checks.Add(1)
	return h.PasswordHasher.CheckPassword(hashedPassword, password)
}

func newFixture() *fixture {
	return newFixtureWithHasher(auth.NewPasswordHasher(bcrypt.MinCost))
}

func newFixtureWithHasher(hasher PasswordHasher) *fixture {
	store := newMemStore()
	storage := &memStorage{}
	logger := zerolog.Nop()
	credentials := NewCredentialService(store, hasher, logger)
	return &fixture{
		store:       store,
		storage:     storage,
		credentials: credentials,
		auth:        NewAuthService(store, store, credentials, storage, validation.New(), logger),
		home:        NewHomeService(store, store, store, logger),
	}
}
