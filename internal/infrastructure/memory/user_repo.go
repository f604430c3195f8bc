package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

type UserRepo struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string // email -> userID
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.byID[id], nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u.ID == "" {
		return domain.User{}, domain.ErrInternal(nil)
	}
	if _, exists := r.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}

	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return u, nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, userID, email, name string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	if email != "" && email != u.Email {
		if _, taken := r.byEmail[email]; taken {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
		delete(r.byEmail, u.Email)
		r.byEmail[email] = userID
		u.Email = email
	}
	if name != "" {
		u.Name = name
	}
	r.byID[userID] = u
	return u, nil
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.PasswordHash = newHash
	r.byID[userID] = u
	return nil
}

func (r *UserRepo) SetResetToken(ctx context.Context, userID, tokenHash string, expire time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.ResetPasswordToken = tokenHash
	u.ResetPasswordExpire = &expire
	r.byID[userID] = u
	return nil
}

func (r *UserRepo) ClearResetToken(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.ResetPasswordToken = ""
	u.ResetPasswordExpire = nil
	r.byID[userID] = u
	return nil
}

// ConsumeResetToken holds the write lock for the whole match-and-update.
func (r *UserRepo) ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time, newHash string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tokenHash == "" {
		return domain.User{}, domain.ErrResetTokenInvalid()
	}
	for id, u := range r.byID {
		if u.ResetPasswordToken != tokenHash || u.ResetPasswordExpire == nil || !u.ResetPasswordExpire.After(now) {
			continue
		}
		u.PasswordHash = newHash
		u.ResetPasswordToken = ""
		u.ResetPasswordExpire = nil
		r.byID[id] = u
		return u, nil
	}
	return domain.User{}, domain.ErrResetTokenInvalid()
}

func (r *UserRepo) GetSummaries(ctx context.Context, ids []string) (map[string]domain.UserSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]domain.UserSummary, len(ids))
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			out[id] = domain.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
		}
	}
	return out, nil
}

// List returns all users ordered by email; used by seeding and tests.
func (r *UserRepo) List() []domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}
