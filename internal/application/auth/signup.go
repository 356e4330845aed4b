package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	domain "github.com/orgstack/orgstack/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type SignupInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type SignupOutput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Signup interface {
	Execute(ctx context.Context, in SignupInput) (SignupOutput, error)
}

type signupUserRepo interface {
	CreateInactive(ctx context.Context, u domain.User, passwordHash string) (domain.User, error)
}

type verificationMailer interface {
	SendVerification(ctx context.Context, to, username, link string) error
}

type signup struct {
	users   signupUserRepo
	tokens  *EmailTokenCodec
	mailer  verificationMailer
	baseURL string
	logger  *log.Logger
}

func NewSignup(users signupUserRepo, tokens *EmailTokenCodec, mailer verificationMailer, baseURL string, logger *log.Logger) Signup {
	return &signup{users: users, tokens: tokens, mailer: mailer, baseURL: baseURL, logger: logger}
}

// Execute registers an inactive account and queues the verification
// email. The account cannot sign in until the emailed link is followed.
func (uc *signup) Execute(ctx context.Context, in SignupInput) (SignupOutput, error) {
	u, err := domain.NewUser(in.Username, in.Email)
	if err != nil {
		return SignupOutput{}, ErrInvalidSignup
	}
	if len(in.Password) < minPasswordLength {
		return SignupOutput{}, ErrInvalidSignup
	}
	u.FirstName = in.FirstName
	u.LastName = in.LastName

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return SignupOutput{}, fmt.Errorf("hash password: %w", err)
	}

	created, err := uc.users.CreateInactive(ctx, u, string(hash))
	if err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) || errors.Is(err, domain.ErrEmailTaken) {
			return SignupOutput{}, ErrUserExists
		}
		return SignupOutput{}, fmt.Errorf("create user: %w", err)
	}

	token, err := uc.tokens.Sign(created.Email)
	if err != nil {
		return SignupOutput{}, err
	}
	link := uc.baseURL + "/api/v1/auth/verify-email?token=" + token

	if err := uc.mailer.SendVerification(ctx, created.Email, created.Username, link); err != nil {
		// The account exists either way; the user can request another
		// email.
		uc.logger.Error("queue verification email", "username", created.Username, "err", err)
	}

	return SignupOutput{Username: created.Username, Email: created.Email}, nil
}
