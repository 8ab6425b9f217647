// Package users is the local directory store: the full user collection
// persisted as one JSON array under common.UsersKey. Every call re-reads
// the collection and every mutation rewrites it; a mutex serialises the
// read-modify-write so overlapping calls cannot lose updates.
package users

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/client/repositories/storage"
	"github.com/dmitrijs2005/useradmin/internal/clock"
	"github.com/dmitrijs2005/useradmin/internal/common"
	"github.com/dmitrijs2005/useradmin/internal/cryptox"
)

type Store struct {
	mu    sync.Mutex
	repo  storage.Repository
	codec *cryptox.PasswordCodec
	clock clock.Clock
}

func NewStore(repo storage.Repository, codec *cryptox.PasswordCodec, clk clock.Clock) *Store {
	if clk == nil {
		clk = clock.Real()
	}
	return &Store{repo: repo, codec: codec, clock: clk}
}

// load returns the persisted collection; a missing key is an empty one.
func (s *Store) load(ctx context.Context) ([]models.User, error) {
	raw, ok, err := s.repo.Get(ctx, common.UsersKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []models.User{}, nil
	}
	var users []models.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return nil, fmt.Errorf("decode %s: %w", common.UsersKey, err)
	}
	return users, nil
}

func (s *Store) save(ctx context.Context, users []models.User) error {
	b, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode %s: %w", common.UsersKey, err)
	}
	return s.repo.Set(ctx, common.UsersKey, string(b))
}

func (s *Store) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Millisecond)
}

// List applies search, role and active filters, sorts and pages the
// collection.
func (s *Store) List(ctx context.Context, filter models.ListFilter) (*models.UserPage, error) {
	s.mu.Lock()
	users, err := s.load(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	f := filter.Normalized()
	matched := make([]models.User, 0, len(users))
	search := strings.ToLower(f.Search)
	role, byRole := f.RoleFilter()
	active, byActive := f.ActiveFilter()

	for _, u := range users {
		if search != "" && !matchesSearch(u, search) {
			continue
		}
		if byRole && u.Role != role {
			continue
		}
		if byActive && u.Active != active {
			continue
		}
		matched = append(matched, u)
	}

	sortUsers(matched, f.SortBy, f.SortOrder)

	total := len(matched)
	start := total
	if f.Page-1 <= total/f.Limit {
		start = min((f.Page-1)*f.Limit, total)
	}
	end := start + min(f.Limit, total-start)

	return &models.UserPage{
		Users:      slices.Clone(matched[start:end]),
		Pagination: models.NewPagination(f.Page, f.Limit, total),
	}, nil
}

func matchesSearch(u models.User, needle string) bool {
	return strings.Contains(strings.ToLower(u.DisplayName), needle) ||
		strings.Contains(strings.ToLower(u.LoginName), needle) ||
		strings.Contains(strings.ToLower(u.Email), needle)
}

func (s *Store) GetByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(users, id)
	if i < 0 {
		return nil, fmt.Errorf("user %d: %w", id, common.ErrorNotFound)
	}
	u := users[i]
	return &u, nil
}

// Create appends a new active record with id = max(existing ids) + 1.
func (s *Store) Create(ctx context.Context, data models.CreateUserData) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkUnique(users, -1, data.LoginName, data.Email); err != nil {
		return nil, err
	}

	var maxID int64
	for _, u := range users {
		maxID = max(maxID, u.ID)
	}

	now := s.now()
	u := models.User{
		ID:             maxID + 1,
		DisplayName:    data.DisplayName,
		LoginName:      data.LoginName,
		Email:          data.Email,
		PasswordDigest: s.codec.Encode(data.Password),
		CompanyID:      data.CompanyID,
		Active:         true,
		Role:           data.Role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.save(ctx, append(users, u)); err != nil {
		return nil, err
	}
	return &u, nil
}

// Update merges the supplied fields into record id. The digest is replaced
// only when a new password is given; UpdatedAt always moves forward.
func (s *Store) Update(ctx context.Context, id int64, data models.UpdateUserData) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(users, id)
	if i < 0 {
		return nil, fmt.Errorf("user %d: %w", id, common.ErrorNotFound)
	}

	var login, email string
	if data.LoginName != nil {
		login = *data.LoginName
	}
	if data.Email != nil {
		email = *data.Email
	}
	if err := checkUnique(users, i, login, email); err != nil {
		return nil, err
	}

	u := users[i]
	data.Apply(&u)
	if data.Password != nil && *data.Password != "" {
		u.PasswordDigest = s.codec.Encode(*data.Password)
	}

	now := s.now()
	if !now.After(u.UpdatedAt) {
		now = u.UpdatedAt.Add(time.Millisecond)
	}
	u.UpdatedAt = now

	users[i] = u
	if err := s.save(ctx, users); err != nil {
		return nil, err
	}
	return &u, nil
}

// Delete removes record id. A missing id is not an error.
func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return err
	}
	return s.save(ctx, slices.DeleteFunc(users, func(u models.User) bool { return u.ID == id }))
}

// Authenticate returns the active record whose login and password match.
func (s *Store) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.LoginName == login && u.Active && s.codec.Matches(password, u.PasswordDigest) {
			return &u, nil
		}
	}
	return nil, common.ErrInvalidCredentials
}

// Replace overwrites the whole collection.
func (s *Store) Replace(ctx context.Context, users []models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, users)
}

// Exists reports whether a collection has been persisted at all.
func (s *Store) Exists(ctx context.Context) (bool, error) {
	_, ok, err := s.repo.Get(ctx, common.UsersKey)
	return ok, err
}

func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

// EncodePassword exposes the store's digest codec to seeders.
func (s *Store) EncodePassword(plaintext string) string {
	return s.codec.Encode(plaintext)
}

func indexOf(users []models.User, id int64) int {
	return slices.IndexFunc(users, func(u models.User) bool { return u.ID == id })
}

// checkUnique rejects login or email values held by a record other than
// users[self]. Empty values are not checked.
func checkUnique(users []models.User, self int, login, email string) error {
	for i, u := range users {
		if i == self {
			continue
		}
		if login != "" && u.LoginName == login {
			return common.ErrDuplicateLogin
		}
	}
	for i, u := range users {
		if i == self {
			continue
		}
		if email != "" && u.Email == email {
			return common.ErrDuplicateEmail
		}
	}
	return nil
}
