package services

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"facturo/internal/models/db_models"
	"facturo/internal/models/request_models"
	"facturo/pkg/i18n"
	mem "facturo/pkg/memcache"
	"facturo/pkg/utils"
)

type authFixture struct {
	store   *memStore
	mailer  *fakeMailer
	revoked *mem.RevokedTokens
	tokens  *utils.TokenManager
	now     time.Time
	svc     AuthServiceInterface
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		store:   newMemStore(),
		mailer:  &fakeMailer{failTo: map[string]bool{}},
		revoked: mem.NewRevokedTokens(),
		tokens:  utils.NewTokenManager("test-secret", time.Hour),
		now:     time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	f.svc = f.withClock(f.now)
	return f
}

func (f *authFixture) withClock(now time.Time) AuthServiceInterface {
	return NewAuthService(
		fakeAccountRepo{f.store},
		fakeResetRepo{f.store},
		f.tokens,
		f.revoked,
		f.mailer,
		AuthSettings{AppBaseURL: "https://app.example.com/", ResetTokenTTL: time.Hour},
		utils.FixedClock(now, time.UTC),
		zap.NewNop(),
	)
}

func registerRequest(email, password string) request_models.RegisterRequest {
	return request_models.RegisterRequest{
		AccountProfile: request_models.AccountProfile{
			FirstName: "Ada",
			LastName:  "Martin",
			Email:     email,
		},
		Password:             password,
		PasswordConfirmation: password,
	}
}

func TestRegisterIssuesTokenAndRejectsDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	out, err := f.svc.Register(ctx, registerRequest(" Ada@Example.com ", "s3cretpass"))
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "Bearer", out.TokenType)
	assert.Equal(t, "ada@example.com", out.Account.Email)

	claims, err := f.tokens.ValidateToken(out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.Account.ID, claims.AccountID)
	assert.False(t, claims.Admin)

	_, err = f.svc.Register(ctx, registerRequest("ada@example.com", "another-pass"))
	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{i18n.KeyEmailTaken}, verr.Fields["email"])
}

func TestLoginDoesNotRevealWhichPartIsWrong(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	_, err := f.svc.Register(ctx, registerRequest("ada@example.com", "s3cretpass"))
	require.NoError(t, err)

	_, unknownErr := f.svc.Login(ctx, request_models.LoginRequest{Email: "nobody@example.com", Password: "s3cretpass"})
	_, wrongErr := f.svc.Login(ctx, request_models.LoginRequest{Email: "ada@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, unknownErr, utils.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, utils.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())

	out, err := f.svc.Login(ctx, request_models.LoginRequest{Email: "ADA@example.com", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
}

func TestLogoutRevokesOnlyThatToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	first, err := f.svc.Register(ctx, registerRequest("ada@example.com", "s3cretpass"))
	require.NoError(t, err)
	second, err := f.svc.Login(ctx, request_models.LoginRequest{Email: "ada@example.com", Password: "s3cretpass"})
	require.NoError(t, err)

	claims, err := f.tokens.ValidateToken(first.Token)
	require.NoError(t, err)
	require.NoError(t, f.svc.Logout(ctx, claims))

	revoked, err := f.revoked.IsRevoked(ctx, claims.ID)
	require.NoError(t, err)
	assert.True(t, revoked)

	other, err := f.tokens.ValidateToken(second.Token)
	require.NoError(t, err)
	revoked, err = f.revoked.IsRevoked(ctx, other.ID)
	require.NoError(t, err)
	assert.False(t, revoked)

	assert.ErrorIs(t, f.svc.Logout(ctx, nil), utils.ErrUnauthorized)
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	f := newAuthFixture(t)

	require.NoError(t, f.svc.ForgotPassword(context.Background(), "ghost@example.com"))
	assert.Empty(t, f.mailer.sent)
}

func TestForgotPasswordKeepsOnlyLatestToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := i18n.WithLocale(context.Background(), language.English)
	out, err := f.svc.Register(ctx, registerRequest("ada@example.com", "s3cretpass"))
	require.NoError(t, err)

	require.NoError(t, f.svc.ForgotPassword(ctx, "ada@example.com"))
	require.NoError(t, f.svc.ForgotPassword(ctx, "Ada@Example.com"))

	tokens := fakeResetRepo{f.store}.tokensFor(out.Account.ID)
	require.Len(t, tokens, 1)
	assert.Len(t, tokens[0].Token, 64)
	assert.True(t, f.now.Add(time.Hour).Equal(tokens[0].ExpiresAt))

	require.Len(t, f.mailer.sent, 2)
	link, err := url.Parse(f.mailer.sent[1].link)
	require.NoError(t, err)
	assert.Equal(t, "app.example.com", link.Host)
	assert.Equal(t, "/en/reset-password", link.Path)
	assert.Equal(t, tokens[0].Token, link.Query().Get("token"))
	assert.Equal(t, "ada@example.com", link.Query().Get("email"))

	// the first link no longer works
	first, err := url.Parse(f.mailer.sent[0].link)
	require.NoError(t, err)
	assert.ErrorIs(t, f.svc.VerifyResetToken(ctx, first.Query().Get("token")), utils.ErrInvalidResetToken)
}

func TestForgotPasswordSwallowsMailFailure(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	_, err := f.svc.Register(ctx, registerRequest("ada@example.com", "s3cretpass"))
	require.NoError(t, err)
	f.mailer.failTo["ada@example.com"] = true

	assert.NoError(t, f.svc.ForgotPassword(ctx, "ada@example.com"))
}

func TestResetPasswordConsumesToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	_, err := f.svc.Register(ctx, registerRequest("ada@example.com", "s3cretpass"))
	require.NoError(t, err)
	require.NoError(t, f.svc.ForgotPassword(ctx, "ada@example.com"))

	link, err := url.Parse(f.mailer.sent[0].link)
	require.NoError(t, err)
	token := link.Query().Get("token")
	require.NoError(t, f.svc.VerifyResetToken(ctx, token))

	err = f.svc.ResetPassword(ctx, request_models.ResetPasswordRequest{
		Token:                token,
		Password:             "brand-new-pass",
		PasswordConfirmation: "brand-new-pass",
	})
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, request_models.LoginRequest{Email: "ada@example.com", Password: "s3cretpass"})
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
	_, err = f.svc.Login(ctx, request_models.LoginRequest{Email: "ada@example.com", Password: "brand-new-pass"})
	assert.NoError(t, err)

	assert.ErrorIs(t, f.svc.VerifyResetToken(ctx, token), utils.ErrInvalidResetToken)
}

func TestExpiredResetTokenLooksUnknown(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	_, err := f.svc.Register(ctx, registerRequest("ada@example.com", "s3cretpass"))
	require.NoError(t, err)
	require.NoError(t, f.svc.ForgotPassword(ctx, "ada@example.com"))
	link, err := url.Parse(f.mailer.sent[0].link)
	require.NoError(t, err)
	token := link.Query().Get("token")

	later := f.withClock(f.now.Add(time.Hour + time.Second))
	expired := later.VerifyResetToken(ctx, token)
	unknown := later.VerifyResetToken(ctx, strings.Repeat("0", 64))
	assert.ErrorIs(t, expired, utils.ErrInvalidResetToken)
	assert.ErrorIs(t, unknown, utils.ErrInvalidResetToken)
	assert.ErrorIs(t, later.VerifyResetToken(ctx, ""), utils.ErrInvalidResetToken)
}

func TestEmailExistsAndMe(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	out, err := f.svc.Register(ctx, registerRequest("ada@example.com", "s3cretpass"))
	require.NoError(t, err)

	exists, err := f.svc.EmailExists(ctx, " ADA@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = f.svc.EmailExists(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	me, err := f.svc.Me(ctx, out.Account.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", me.Email)
	_, err = f.svc.Me(ctx, 999)
	assert.ErrorIs(t, err, utils.ErrUnauthorized)
}

// racingResetRepo lets another reset consume the token between validation
// and consumption.
type racingResetRepo struct {
	fakeResetRepo
}

func (r racingResetRepo) Consume(ctx context.Context, token *db_models.PasswordResetToken, hash string, now time.Time) error {
	if err := r.fakeResetRepo.Consume(ctx, token, "winner-hash", now); err != nil {
		return err
	}
	return r.fakeResetRepo.Consume(ctx, token, hash, now)
}

func TestResetPasswordLosesRaceForToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	_, err := f.svc.Register(ctx, registerRequest("ada@example.com", "s3cretpass"))
	require.NoError(t, err)
	require.NoError(t, f.svc.ForgotPassword(ctx, "ada@example.com"))

	link, err := url.Parse(f.mailer.sent[0].link)
	require.NoError(t, err)

	svc := NewAuthService(
		fakeAccountRepo{f.store},
		racingResetRepo{fakeResetRepo{f.store}},
		f.tokens,
		f.revoked,
		f.mailer,
		AuthSettings{AppBaseURL: "https://app.example.com/", ResetTokenTTL: time.Hour},
		utils.FixedClock(f.now, time.UTC),
		zap.NewNop(),
	)
	err = svc.ResetPassword(ctx, request_models.ResetPasswordRequest{
		Token:                link.Query().Get("token"),
		Password:             "loser-pass-1",
		PasswordConfirmation: "loser-pass-1",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidResetToken)

	account, err := fakeAccountRepo{f.store}.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "winner-hash", account.PasswordHash)
}
