package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/geocoder89/todohub/internal/apperr"
	"github.com/geocoder89/todohub/internal/domain/user"
	"github.com/geocoder89/todohub/internal/validation"
)

const (
	msgValidation         = "validation failed"
	msgEmailExists        = "email already exists"
	msgInvalidCredentials = "invalid credentials"
)

type LoginResult struct {
	User      user.Public `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

type AccountService struct {
	users  UserStore
	hasher PasswordHasher
	tokens TokenIssuer
	val    *validation.Validator
	log    *slog.Logger

	// decoy is verified against when the email is unknown so both login
	// failures cost one hash computation.
	decoyOnce sync.Once
	decoy     string
}

func NewAccountService(users UserStore, hasher PasswordHasher, tokens TokenIssuer, val *validation.Validator, log *slog.Logger) *AccountService {
	if log == nil {
		log = slog.Default()
	}
	return &AccountService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		val:    val,
		log:    log,
	}
}

func (s *AccountService) Register(ctx context.Context, in user.Credentials) (user.Public, error) {
	if fields := s.val.Struct(in); fields != nil {
		return user.Public{}, apperr.Validation(msgValidation, fields)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		s.log.ErrorContext(ctx, "password hashing failed", "err", err)
		return user.Public{}, apperr.Internal(msgInternal, err)
	}

	u, err := s.users.Create(ctx, in.Email, hash)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			s.log.WarnContext(ctx, "register conflict", "err", err)
			return user.Public{}, apperr.Conflict(msgEmailExists, err)
		}
		s.log.ErrorContext(ctx, "register failed", "err", err)
		return user.Public{}, apperr.Internal(msgInternal, err)
	}

	s.log.InfoContext(ctx, "user registered", "user_id", u.ID)

	return u.Public(), nil
}

func (s *AccountService) Login(ctx context.Context, in user.Credentials) (LoginResult, error) {
	if fields := s.val.Struct(in); fields != nil {
		return LoginResult{}, apperr.Validation(msgValidation, fields)
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			s.burnVerify(in.Password)
			return LoginResult{}, apperr.Unauthorized(msgInvalidCredentials)
		}
		s.log.ErrorContext(ctx, "login lookup failed", "err", err)
		return LoginResult{}, apperr.Internal(msgInternal, err)
	}

	if !s.hasher.Verify(in.Password, u.PasswordHash) {
		return LoginResult{}, apperr.Unauthorized(msgInvalidCredentials)
	}

	tok, err := s.tokens.Issue(u.ID)
	if err != nil {
		s.log.ErrorContext(ctx, "token issuance failed", "user_id", u.ID, "err", err)
		return LoginResult{}, apperr.Internal(msgInternal, err)
	}

	return LoginResult{
		User:      u.Public(),
		Token:     tok.Value,
		ExpiresAt: tok.ExpiresAt,
	}, nil
}

func (s *AccountService) burnVerify(plain string) {
	s.decoyOnce.Do(func() {
		s.decoy, _ = s.hasher.Hash("decoy-password")
	})
	if s.decoy != "" {
		s.hasher.Verify(plain, s.decoy)
	}
}
