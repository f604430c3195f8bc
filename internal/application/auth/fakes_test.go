package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
)

/*
Shared audit capture
*/

type auditEntry struct {
	action string
	fields map[string]string
}

type auditLog struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (a *auditLog) record(action string, fields map[string]string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, auditEntry{action: action, fields: fields})
}

func (a *auditLog) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.action+":"+e.fields["result"])
	}
	return out
}

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	byID map[string]domain.User

	// injected errors (if set, method returns error)
	getByEmailErr error
	createErr     error
	setResetErr   error
	clearResetErr error

	clearedReset []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]domain.User{}}
}

func (f *fakeUserRepo) put(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
}

func (f *fakeUserRepo) get(id string) domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id]
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound()
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
	}
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, userID, email, name string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byID[userID]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	if email != "" {
		for id, other := range f.byID {
			if id != userID && other.Email == email {
				return domain.User{}, domain.ErrEmailAlreadyExists()
			}
		}
		u.Email = email
	}
	if name != "" {
		u.Name = name
	}
	f.byID[userID] = u
	return u, nil
}

func (f *fakeUserRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.PasswordHash = newHash
	f.byID[userID] = u
	return nil
}

func (f *fakeUserRepo) SetResetToken(ctx context.Context, userID, tokenHash string, expire time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setResetErr != nil {
		return f.setResetErr
	}
	u := f.byID[userID]
	u.ResetPasswordToken = tokenHash
	u.ResetPasswordExpire = &expire
	f.byID[userID] = u
	return nil
}

func (f *fakeUserRepo) ClearResetToken(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.clearedReset = append(f.clearedReset, userID)
	if f.clearResetErr != nil {
		return f.clearResetErr
	}
	u := f.byID[userID]
	u.ResetPasswordToken = ""
	u.ResetPasswordExpire = nil
	f.byID[userID] = u
	return nil
}

func (f *fakeUserRepo) ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time, newHash string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, u := range f.byID {
		if u.ResetPasswordToken == tokenHash && u.ResetPasswordExpire != nil && u.ResetPasswordExpire.After(now) {
			u.PasswordHash = newHash
			u.ResetPasswordToken = ""
			u.ResetPasswordExpire = nil
			f.byID[id] = u
			return u, nil
		}
	}
	return domain.User{}, domain.ErrResetTokenInvalid()
}

// fakeHasher is reversible so tests can assert on stored hashes.
type fakeHasher struct {
	mu      sync.Mutex
	hashErr error
	calls   int
}

func (h *fakeHasher) Hash(pw string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls++
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + pw, nil
}

func (h *fakeHasher) Compare(hash, pw string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls++
	if hash != "hashed:"+pw {
		return errors.New("mismatch")
	}
	return nil
}

type fakeSigner struct {
	mu     sync.Mutex
	n      int
	tokens map[string]TokenClaims
	now    func() time.Time
}

func newFakeSigner(now func() time.Time) *fakeSigner {
	return &fakeSigner{tokens: map[string]TokenClaims{}, now: now}
}

func (s *fakeSigner) SignAccessToken(userID, role string, ttl time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	tok := fmt.Sprintf("tok-%d", s.n)
	s.tokens[tok] = TokenClaims{UserID: userID, Role: role, ID: fmt.Sprintf("jti-%d", s.n), Exp: s.now().Add(ttl)}
	return tok, nil
}

func (s *fakeSigner) VerifyAccessToken(token string) (TokenClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.tokens[token]
	if !ok {
		return TokenClaims{}, domain.ErrTokenInvalid()
	}
	if !c.Exp.After(s.now()) {
		return TokenClaims{}, domain.ErrTokenExpired()
	}
	return c, nil
}

type fakeDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	err     error
}

func newFakeDenylist() *fakeDenylist { return &fakeDenylist{revoked: map[string]time.Duration{}} }

func (d *fakeDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.revoked[jti] = ttl
	return nil
}

func (d *fakeDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return false, d.err
	}
	_, ok := d.revoked[jti]
	return ok, nil
}

type sentMail struct{ to, subject, body string }

type fakeMailer struct {
	mu   sync.Mutex
	err  error
	sent []sentMail
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

// lastToken pulls the hex token from the last mail body.
func (m *fakeMailer) lastToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return ""
	}
	fields := strings.Fields(m.sent[len(m.sent)-1].body)
	return fields[len(fields)-1]
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

/*
Harness
*/

type harness struct {
	svc      *Service
	users    *fakeUserRepo
	hasher   *fakeHasher
	signer   *fakeSigner
	denylist *fakeDenylist
	mailer   *fakeMailer
	clock    *fakeClock
	audit    *auditLog
}

func newHarness() *harness {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	h := &harness{
		users:    newFakeUserRepo(),
		hasher:   &fakeHasher{},
		signer:   newFakeSigner(clock.Now),
		denylist: newFakeDenylist(),
		mailer:   &fakeMailer{},
		clock:    clock,
		audit:    &auditLog{},
	}
	h.svc = NewService(h.users, h.hasher, h.signer, h.denylist, h.mailer, h.clock, Config{
		SessionTTL:       time.Hour,
		PasswordResetTTL: time.Hour,
	}).WithAudit(h.audit.record)
	return h
}

func (h *harness) seedUser(id, email, password, role string) domain.User {
	u := domain.User{ID: id, Email: email, Name: "User " + id, Role: role, PasswordHash: "hashed:" + password}
	h.users.put(u)
	return u
}
