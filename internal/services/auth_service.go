package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"facturo/internal/models/db_models"
	"facturo/internal/models/request_models"
	resp "facturo/internal/models/response_models"
	"facturo/internal/repositories"
	"facturo/pkg/i18n"
	mem "facturo/pkg/memcache"
	"facturo/pkg/utils"
)

// resetTokenBytes gives 64 hex characters.
const resetTokenBytes = 32

type AuthServiceInterface interface {
	Register(ctx context.Context, request request_models.RegisterRequest) (*resp.AuthResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*resp.AuthResponse, error)
	Logout(ctx context.Context, claims *utils.Claims) error
	Me(ctx context.Context, accountID uint) (*resp.AccountResponse, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ForgotPassword(ctx context.Context, email string) error
	VerifyResetToken(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error
}

type AuthSettings struct {
	AppBaseURL    string
	ResetTokenTTL time.Duration
}

type AuthService struct {
	accountRepo repositories.AccountRepository
	resetRepo   repositories.PasswordResetRepository
	tokens      *utils.TokenManager
	revoked     mem.RevocationStore
	mail        IMailService
	settings    AuthSettings
	clock       utils.Clock
	log         *zap.Logger
}

func NewAuthService(
	accountRepo repositories.AccountRepository,
	resetRepo repositories.PasswordResetRepository,
	tokens *utils.TokenManager,
	revoked mem.RevocationStore,
	mail IMailService,
	settings AuthSettings,
	clock utils.Clock,
	log *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		accountRepo: accountRepo,
		resetRepo:   resetRepo,
		tokens:      tokens,
		revoked:     revoked,
		mail:        mail,
		settings:    settings,
		clock:       clock,
		log:         log.Named("auth"),
	}
}

func (a *AuthService) Register(ctx context.Context, request request_models.RegisterRequest) (*resp.AuthResponse, error) {
	email := normalizeEmail(request.Email)
	taken, err := a.accountRepo.EmailTaken(ctx, email, 0)
	if err != nil {
		return nil, utils.WrapDB("check email", err)
	}
	if taken {
		return nil, utils.NewValidationError("email", i18n.KeyEmailTaken)
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &db_models.Account{PasswordHash: hashedPassword}
	applyProfile(account, request.AccountProfile)

	if err := a.accountRepo.InsertTx(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewValidationError("email", i18n.KeyEmailTaken)
		}
		return nil, utils.WrapDB("insert account", err)
	}

	a.log.Info("account registered", zap.Uint("account_id", account.ID))
	return a.issue(account)
}

// Login never tells an unknown email apart from a wrong password.
func (a *AuthService) Login(ctx context.Context, request request_models.LoginRequest) (*resp.AuthResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, utils.WrapDB("find account", err)
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}
	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}
	return a.issue(account)
}

func (a *AuthService) issue(account *db_models.Account) (*resp.AuthResponse, error) {
	token, claims, err := a.tokens.CreateToken(account.ID, account.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &resp.AuthResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: claims.ExpiresAt.Time,
		Account:   resp.FromAccount(*account),
	}, nil
}

// Logout revokes only the presented token, until it would have expired anyway.
func (a *AuthService) Logout(ctx context.Context, claims *utils.Claims) error {
	if claims == nil {
		return utils.ErrUnauthorized
	}
	ttl := a.tokens.Remaining(claims)
	if ttl <= 0 {
		return nil
	}
	if err := a.revoked.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (a *AuthService) Me(ctx context.Context, accountID uint) (*resp.AccountResponse, error) {
	account, err := a.accountRepo.FindById(ctx, accountID)
	if err != nil {
		return nil, utils.WrapDB("find account", err)
	}
	if account == nil {
		return nil, utils.ErrUnauthorized
	}
	out := resp.FromAccount(*account)
	return &out, nil
}

func (a *AuthService) EmailExists(ctx context.Context, email string) (bool, error) {
	account, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return false, utils.WrapDB("find account", err)
	}
	return account != nil, nil
}

// ForgotPassword succeeds whether or not the email is known.
func (a *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return utils.WrapDB("find account", err)
	}
	if account == nil {
		return nil
	}

	token, err := utils.GenerateSecureToken(resetTokenBytes)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	expiresAt := a.clock.Now().UTC().Add(a.settings.ResetTokenTTL)
	if _, err := a.resetRepo.Replace(ctx, account.ID, token, expiresAt); err != nil {
		return utils.WrapDB("store reset token", err)
	}

	link := a.resetLink(ctx, token, account.Email)
	if err := a.mail.SendMailToResetPassword(ctx, account.Email, link); err != nil {
		a.log.Error("reset mail not sent", zap.Uint("account_id", account.ID), zap.Error(err))
	}
	return nil
}

func (a *AuthService) resetLink(ctx context.Context, token, email string) string {
	q := url.Values{}
	q.Set("token", token)
	q.Set("email", email)
	return fmt.Sprintf("%s/%s/reset-password?%s",
		strings.TrimRight(a.settings.AppBaseURL, "/"),
		i18n.Code(i18n.FromContext(ctx)),
		q.Encode(),
	)
}

func (a *AuthService) VerifyResetToken(ctx context.Context, token string) error {
	_, err := a.validResetToken(ctx, token)
	return err
}

func (a *AuthService) ResetPassword(ctx context.Context, request request_models.ResetPasswordRequest) error {
	record, err := a.validResetToken(ctx, request.Token)
	if err != nil {
		return err
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := a.resetRepo.Consume(ctx, record, hashedPassword, a.clock.Now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrInvalidResetToken
		}
		return utils.WrapDB("consume reset token", err)
	}
	a.log.Info("password reset", zap.Uint("account_id", record.AccountID))
	return nil
}

// validResetToken reports unknown and expired tokens identically.
func (a *AuthService) validResetToken(ctx context.Context, token string) (*db_models.PasswordResetToken, error) {
	if token == "" {
		return nil, utils.ErrInvalidResetToken
	}
	record, err := a.resetRepo.FindByToken(ctx, token)
	if err != nil {
		return nil, utils.WrapDB("find reset token", err)
	}
	if record == nil || !record.IsValid(a.clock.Now()) {
		return nil, utils.ErrInvalidResetToken
	}
	return record, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
