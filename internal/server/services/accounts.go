package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/imagetags/internal/common"
	"github.com/dmitrijs2005/imagetags/internal/server/auth"
	"github.com/dmitrijs2005/imagetags/internal/server/models"
	"github.com/dmitrijs2005/imagetags/internal/server/repositories/repomanager"
)

const bearerPrefix = "Bearer "

// Tokens signs and verifies bearer tokens. *auth.TokenManager implements it.
type Tokens interface {
	Issue(userID int64, userName string) (string, error)
	Verify(token string) (*auth.Claims, error)
}

// AccountService registers accounts, signs them in and resolves bearer
// tokens back to accounts.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	tokens      Tokens
	now         func() time.Time
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher, tokens Tokens) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		now:         time.Now,
	}
}

// Register validates the candidate, stores the account with a hashed
// password and returns its public form. Validation failures, including a
// taken user name, are *ValidationError and write nothing.
func (s *AccountService) Register(ctx context.Context, c Candidate) (*models.PublicAccount, error) {
	if err := ValidateCandidate(c); err != nil {
		return nil, err
	}
	if l, ok := s.hasher.(auth.InputLimiter); ok && len(c.Password) > l.MaxInputBytes() {
		return nil, &ValidationError{Code: ErrPasswordTooLong}
	}

	hash, err := s.hasher.Hash(c.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account := &models.Account{
		UserName:     c.UserName,
		FullName:     c.FullName,
		PasswordHash: hash,
		DateCreated:  s.now().UTC(),
	}

	account, err = s.repomanager.Users(s.db).Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrUsernameTaken) {
			return nil, &ValidationError{Code: common.ErrUsernameTaken}
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	public := account.Public()
	return &public, nil
}

// Login checks the password and returns a signed access token. An unknown
// user and a wrong password both yield common.ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, userName, password string) (string, error) {
	if err := requireFields("user_name", userName, "password", password); err != nil {
		return "", err
	}

	account, err := s.repomanager.Users(s.db).FindByUsername(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("error searching user: %w", err)
	}

	ok, err := s.hasher.Verify(password, account.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		return "", common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(account.ID, account.UserName)
	if err != nil {
		return "", fmt.Errorf("error issuing token: %w", err)
	}
	return token, nil
}

// Authenticate resolves the value of an Authorization header to the caller's
// identity. It reads storage once and never writes.
//
// Rejections are common.ErrMissingBearerToken (no header) and
// common.ErrUnauthorizedRequest (anything wrong with the token or its
// subject). Any other error is a storage fault.
func (s *AccountService) Authenticate(ctx context.Context, authorization string) (auth.Identity, error) {
	if authorization == "" {
		return auth.Identity{}, common.ErrMissingBearerToken
	}

	var token string
	if strings.HasPrefix(authorization, bearerPrefix) {
		token = authorization[len(bearerPrefix):]
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return auth.Identity{}, common.ErrUnauthorizedRequest
	}

	account, err := s.repomanager.Users(s.db).FindByUsername(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return auth.Identity{}, common.ErrUnauthorizedRequest
		}
		return auth.Identity{}, fmt.Errorf("error searching user: %w", err)
	}

	return auth.Identity{AccountID: account.ID, UserName: account.UserName}, nil
}
