package service

import (
	"context"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/postly/postly/internal/model"
	appErr "github.com/postly/postly/internal/pkg/errors"
	"github.com/postly/postly/internal/pkg/jwt"
	"github.com/postly/postly/internal/pkg/otp"
	"github.com/postly/postly/internal/pkg/password"
	"github.com/postly/postly/internal/pkg/timeutil"
	"github.com/postly/postly/internal/repo"
)

const (
	verificationSubject = "Verification Code"
	resetSubject        = "Forgot Password Code"
)

type AuthService struct {
	users      *repo.UserRepo
	sender     EmailSender
	jwtSecret  []byte
	jwtTTL     time.Duration
	codeSecret []byte
}

func NewAuthService(users *repo.UserRepo, sender EmailSender, jwtSecret, codeSecret []byte, jwtTTL time.Duration) *AuthService {
	return &AuthService{users: users, sender: sender, jwtSecret: jwtSecret, jwtTTL: jwtTTL, codeSecret: codeSecret}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates an unverified account and returns its public view.
func (s *AuthService) Signup(ctx context.Context, email, plainPassword string) (*model.UserView, error) {
	email = normalizeEmail(email)
	hash, err := password.Hash(plainPassword, password.Cost)
	if err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	user := &model.User{
		ID:           newID(),
		Email:        email,
		PasswordHash: hash,
		Verified:     false,
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user.View(), nil
}

// Signin checks the credential and issues a session token.
func (s *AuthService) Signin(ctx context.Context, email, plainPassword string) (string, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", err
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return "", appErr.ErrInvalidCredentials
	}
	return jwt.GenerateToken(user.ID, user.Email, user.Verified, s.jwtSecret, s.jwtTTL)
}

// TokenTTL exposes the session lifetime for cookie expiry.
func (s *AuthService) TokenTTL() time.Duration {
	return s.jwtTTL
}

// SendVerificationCode issues a fresh verification code. The pending hash is
// persisted only after the mail was accepted for delivery, so a failed send
// leaves the account untouched.
func (s *AuthService) SendVerificationCode(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if user.Verified {
		return appErr.ErrAlreadyVerified
	}
	return s.issueCode(ctx, user, repo.CodeKindVerification, verificationSubject)
}

// SendForgotPasswordCode issues a reset code. Any existing account may request
// one regardless of verification state.
func (s *AuthService) SendForgotPasswordCode(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	return s.issueCode(ctx, user, repo.CodeKindReset, resetSubject)
}

func (s *AuthService) issueCode(ctx context.Context, user *model.User, kind, subject string) error {
	code := otp.Generate()
	body := "Your verification code is " + code
	if err := s.sender.Send(user.Email, subject, body); err != nil {
		logutil.GetLogger(ctx).Error("send code mail failed",
			zap.String("user_id", user.ID), zap.String("kind", kind), zap.Error(err))
		return appErr.ErrDeliveryFailed
	}
	hash := otp.KeyedHash(code, s.codeSecret)
	return s.users.SetPendingCode(ctx, user.ID, kind, hash, timeutil.NowUnix())
}

// VerifyVerificationCode validates the pending code and, in the same store
// write, marks the account verified and clears the pending pair.
func (s *AuthService) VerifyVerificationCode(ctx context.Context, email, providedCode string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if user.Verified {
		return appErr.ErrAlreadyVerified
	}
	if err := s.checkPendingCode(user.VerificationCodeHash, user.VerificationCodeIssuedAt, providedCode); err != nil {
		return err
	}
	return s.users.ConsumeVerificationCode(ctx, user.ID, *user.VerificationCodeHash, timeutil.NowUnix())
}

// VerifyForgotPasswordCode validates the pending reset code and installs the
// new credential atomically with clearing the pending pair.
func (s *AuthService) VerifyForgotPasswordCode(ctx context.Context, email, providedCode, newPassword string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if err := s.checkPendingCode(user.ResetCodeHash, user.ResetCodeIssuedAt, providedCode); err != nil {
		return err
	}
	hash, err := password.Hash(newPassword, password.Cost)
	if err != nil {
		return err
	}
	return s.users.ConsumeResetCode(ctx, user.ID, *user.ResetCodeHash, hash, timeutil.NowUnix())
}

func (s *AuthService) checkPendingCode(storedHash *string, issuedAt *int64, providedCode string) error {
	if storedHash == nil || issuedAt == nil {
		return appErr.ErrNoPendingCode
	}
	if timeutil.NowUnix()-*issuedAt > int64(otp.TTL/time.Second) {
		return appErr.ErrCodeExpired
	}
	if !otp.Equal(otp.KeyedHash(providedCode, s.codeSecret), *storedHash) {
		return appErr.ErrCodeMismatch
	}
	return nil
}

// ChangePassword replaces the credential of a verified, signed-in account.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, verified bool, oldPassword, newPassword string) error {
	if !verified {
		return appErr.ErrNotVerified
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := password.Compare(user.PasswordHash, oldPassword); err != nil {
		return appErr.ErrInvalidCredentials
	}
	hash, err := password.Hash(newPassword, password.Cost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hash, timeutil.NowUnix())
}
