package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
)

// PasswordHasher hashes and verifies passwords. Verify returns (false, nil) on mismatch.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) (bool, error)
}

// TokenIssuer signs a session token for a user id.
type TokenIssuer interface {
	CreateToken(userID uint) (string, error)
}

// AdminIdentity is the predetermined account created by BootstrapAdmin.
type AdminIdentity struct {
	Name     string
	Email    string
	Password string
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RollNo   string `json:"rollNo"`
	College  string `json:"college"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileInput: College and RollNo are ignored for admins; an empty NewPassword keeps the password.
type UpdateProfileInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	College     string `json:"college"`
	RollNo      string `json:"rollNo"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// AuthResult is returned by every operation that authenticates someone.
type AuthResult struct {
	Token string
	User  View
}

// Service implements the account flows on top of a Store.
type Service struct {
	store   Store
	hasher  PasswordHasher
	tokens  TokenIssuer
	limiter AttemptLimiter
	admin   AdminIdentity
	log     *slog.Logger

	dummyOnce   sync.Once
	dummyDigest string
}

type Option func(*Service)

func WithLimiter(l AttemptLimiter) Option {
	return func(s *Service) { s.limiter = l }
}

func WithAdmin(a AdminIdentity) Option {
	return func(s *Service) { s.admin = a }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(store Store, hasher PasswordHasher, tokens TokenIssuer, opts ...Option) *Service {
	s := &Service{
		store:   store,
		hasher:  hasher,
		tokens:  tokens,
		limiter: nopLimiter{},
		admin: AdminIdentity{
			Name:     "System Administrator",
			Email:    "admin@gmail.com",
			Password: "admin123456",
		},
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a student account and signs it in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	if _, err := s.store.FindByEmail(ctx, in.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if _, err := s.store.FindByRollNo(ctx, in.RollNo); err == nil {
		return nil, ErrDuplicateRollNo
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.store.Insert(ctx, &Account{
		Name:         strings.TrimSpace(in.Name),
		Email:        NormalizeEmail(in.Email),
		PasswordHash: digest,
		Profile: Student{
			RollNo:  NormalizeRollNo(in.RollNo),
			College: strings.TrimSpace(in.College),
		},
	})
	if err != nil {
		return nil, duplicateToDomain(err)
	}
	return s.signIn(account)
}

// Login never tells the caller whether the email or the password was wrong.
func (s *Service) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if err := validateLogin(in); err != nil {
		return nil, err
	}
	email := NormalizeEmail(in.Email)

	allowed, err := s.limiter.Allow(ctx, email)
	if err != nil {
		s.log.Warn("login limiter unavailable", "error", err)
		allowed = true
	}
	if !allowed {
		return nil, ErrTooManyAttempts
	}

	account, err := s.store.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, ErrNotFound):
		// burn the same hashing time as a real check
		_, _ = s.hasher.Verify(in.Password, s.dummy())
		s.recordFailure(ctx, email)
		return nil, ErrInvalidCredentials
	case err != nil:
		return nil, err
	}

	ok, err := s.hasher.Verify(in.Password, account.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.recordFailure(ctx, email)
		return nil, ErrInvalidCredentials
	}

	if err := s.limiter.Reset(ctx, email); err != nil {
		s.log.Warn("reset login attempts failed", "error", err)
	}
	return s.signIn(account)
}

// UpdateProfile applies the patch for an already authenticated actor and issues a fresh token.
// Tokens issued before a password change stay valid until they expire.
func (s *Service) UpdateProfile(ctx context.Context, actor *Account, in UpdateProfileInput) (*AuthResult, error) {
	role := actor.Role()
	if err := validateProfileUpdate(role, in); err != nil {
		return nil, err
	}

	if other, err := s.store.FindByEmail(ctx, in.Email); err == nil && other.ID != actor.ID {
		return nil, ErrDuplicateEmail
	} else if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	patch := Patch{
		Name:  in.Name,
		Email: in.Email,
	}
	if role == RoleStudent {
		if other, err := s.store.FindByRollNo(ctx, in.RollNo); err == nil && other.ID != actor.ID {
			return nil, ErrDuplicateRollNo
		} else if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		patch.Student = &Student{RollNo: in.RollNo, College: in.College}
	}

	current, err := s.store.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if in.NewPassword != "" {
		ok, err := s.hasher.Verify(in.OldPassword, current.PasswordHash)
		if err != nil {
			return nil, fmt.Errorf("verify password: %w", err)
		}
		if !ok {
			return nil, ErrIncorrectPassword
		}
		if patch.PasswordHash, err = s.hasher.Hash(in.NewPassword); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	updated, err := s.store.Update(ctx, actor.ID, patch)
	if err != nil {
		return nil, duplicateToDomain(err)
	}
	return s.signIn(updated)
}

// BootstrapAdmin creates the single admin account. It fails with ErrAdminAlreadyExists
// on every call after the first success.
func (s *Service) BootstrapAdmin(ctx context.Context) (*AuthResult, error) {
	exists, err := s.store.ExistsAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAdminAlreadyExists
	}

	digest, err := s.hasher.Hash(s.admin.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	account, err := s.store.Insert(ctx, &Account{
		Name:         s.admin.Name,
		Email:        s.admin.Email,
		PasswordHash: digest,
		Profile:      Admin{},
	})
	if err != nil {
		return nil, duplicateToDomain(err)
	}
	return s.signIn(account)
}

func (s *Service) CheckAdminExists(ctx context.Context) (bool, error) {
	return s.store.ExistsAdmin(ctx)
}

// Resolve loads the account a verified token refers to.
func (s *Service) Resolve(ctx context.Context, userID uint) (*Account, error) {
	account, err := s.store.FindByID(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUnauthorized
	}
	return account, err
}

func (s *Service) GetCurrentUser(actor *Account) View {
	return actor.View()
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
	maxOffset       = math.MaxInt32
)

// StudentPage is one page of students. Page and PageSize are the values actually applied.
type StudentPage struct {
	Students []View
	Total    int64
	Page     int
	PageSize int
}

// ListStudents returns one page of students. page starts at 1; out-of-range values are clamped.
func (s *Service) ListStudents(ctx context.Context, page, pageSize int) (*StudentPage, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	pageSize = min(pageSize, maxPageSize)
	page = max(page, 1)
	page = min(page, maxOffset/pageSize+1)

	accounts, total, err := s.store.ListStudents(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	views := make([]View, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, a.View())
	}
	return &StudentPage{Students: views, Total: total, Page: page, PageSize: pageSize}, nil
}

// AllStudents walks every student in id order.
func (s *Service) AllStudents(ctx context.Context) ([]*Account, error) {
	const batch = 500
	var all []*Account
	for offset := 0; ; offset += batch {
		accounts, _, err := s.store.ListStudents(ctx, offset, batch)
		if err != nil {
			return nil, err
		}
		all = append(all, accounts...)
		if len(accounts) < batch {
			return all, nil
		}
	}
}

func (s *Service) signIn(account *Account) (*AuthResult, error) {
	token, err := s.tokens.CreateToken(account.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: token, User: account.View()}, nil
}

func (s *Service) recordFailure(ctx context.Context, email string) {
	if err := s.limiter.Fail(ctx, email); err != nil {
		s.log.Warn("record login failure failed", "error", err)
	}
}

func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyDigest, _ = s.hasher.Hash("techfest-placeholder")
	})
	return s.dummyDigest
}
