package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-app/inkwell-api/pkg/apperr"
	"github.com/inkwell-app/inkwell-api/pkg/helpers"
)

type authFixture struct {
	svc     *AuthService
	users   *fakeUserRepo
	socials *fakeSocialRepo
	resets  *fakeResetRepo
	mail    *fakeMailer
	queue   *fakeQueue
	jwt     *helpers.JWTManager
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{
		users:   newFakeUserRepo(),
		socials: newFakeSocialRepo(),
		resets:  newFakeResetRepo(),
		mail:    &fakeMailer{},
		queue:   &fakeQueue{},
		jwt:     helpers.NewJWTManager("test-access", "test-refresh", time.Minute, time.Hour),
	}
	f.svc = NewAuthService(f.users, f.socials, f.resets, f.jwt, f.mail, f.queue, testConfig(), quietLogger())
	return f
}

func (f *authFixture) register(t *testing.T) string {
	t.Helper()
	u, err := f.svc.Register(context.Background(), RegisterInput{
		Email:       "ada@example.com",
		UserName:    "ada",
		DisplayName: "Ada Lovelace",
		Password:    "correct-horse",
	})
	require.NoError(t, err)
	return u.ID
}

func TestRegisterThenLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	id := f.register(t)

	u, pair, err := f.svc.Login(ctx, "ada@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := f.jwt.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)

	// the refresh token is persisted for later revocation checks
	stored, err := f.users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, pair.RefreshToken, stored.RefreshToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t)

	_, err := f.svc.Register(context.Background(), RegisterInput{
		Email:       "ada@example.com",
		UserName:    "ada2",
		DisplayName: "Another Ada",
		Password:    "whatever1",
	})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t)
	ctx := context.Background()

	_, _, errWrongPwd := f.svc.Login(ctx, "ada@example.com", "nope")
	_, _, errNoUser := f.svc.Login(ctx, "ghost@example.com", "nope")

	assert.Equal(t, apperr.KindAuthFailed, apperr.KindOf(errWrongPwd))
	assert.Equal(t, apperr.KindAuthFailed, apperr.KindOf(errNoUser))
	assert.Equal(t, apperr.MessageOf(errWrongPwd), apperr.MessageOf(errNoUser))
}

func TestSocialLoginCreatesAccountOnce(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	in := SocialLoginInput{
		Email:       "grace@example.com",
		Provider:    "google",
		SocialID:    "g-123",
		UserName:    "grace",
		DisplayName: "Grace Hopper",
	}

	u1, pair1, err := f.svc.SocialLogin(ctx, in)
	require.NoError(t, err)
	require.NotEmpty(t, pair1.AccessToken)

	u2, _, err := f.svc.SocialLogin(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, u1.ID, u2.ID, "second login must reuse the account")

	// a social-only account cannot log in with a password
	_, _, err = f.svc.Login(ctx, "grace@example.com", "")
	assert.Equal(t, apperr.KindAuthFailed, apperr.KindOf(err))
}

func TestSocialLoginLinksExistingAccount(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	id := f.register(t)

	u, _, err := f.svc.SocialLogin(ctx, SocialLoginInput{
		Email:       "ada@example.com",
		Provider:    "github",
		SocialID:    "gh-9",
		UserName:    "ada",
		DisplayName: "Ada Lovelace",
	})
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)

	link, err := f.socials.GetByEmailProvider(ctx, "ada@example.com", "github")
	require.NoError(t, err)
	assert.Equal(t, id, link.UserID)
}

func TestSocialLoginOrphanedLink(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	in := SocialLoginInput{
		Email:       "grace@example.com",
		Provider:    "google",
		SocialID:    "g-123",
		UserName:    "grace",
		DisplayName: "Grace Hopper",
	}
	u, _, err := f.svc.SocialLogin(ctx, in)
	require.NoError(t, err)

	// simulate a link whose user row disappeared
	f.users.delete(u.ID)

	_, _, err = f.svc.SocialLogin(ctx, in)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestRefreshRotatesToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.register(t)

	_, pair, err := f.svc.Login(ctx, "ada@example.com", "correct-horse")
	require.NoError(t, err)

	_, pair2, err := f.svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, pair2.RefreshToken)

	// old token is dead after rotation
	_, _, err = f.svc.Refresh(ctx, pair.RefreshToken)
	assert.Equal(t, apperr.KindAuthFailed, apperr.KindOf(err))

	// new token still works
	_, _, err = f.svc.Refresh(ctx, pair2.RefreshToken)
	assert.NoError(t, err)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	id := f.register(t)

	_, pair, err := f.svc.Login(ctx, "ada@example.com", "correct-horse")
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, id))

	_, _, err = f.svc.Refresh(ctx, pair.RefreshToken)
	assert.Equal(t, apperr.KindAuthFailed, apperr.KindOf(err))
}

func TestCurrentUserGoneAccount(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	id := f.register(t)

	u, err := f.svc.CurrentUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)

	f.users.delete(id)
	_, err = f.svc.CurrentUser(ctx, id)
	assert.Equal(t, apperr.KindAuthFailed, apperr.KindOf(err))
}

func TestRefreshRejectsGarbage(t *testing.T) {
	f := newAuthFixture(t)
	_, _, err := f.svc.Refresh(context.Background(), "not-a-token")
	assert.Equal(t, apperr.KindAuthFailed, apperr.KindOf(err))
}

func TestForgotAndResetPassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.register(t)

	require.NoError(t, f.svc.ForgotPassword(ctx, "ada@example.com"))
	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, "ada@example.com", f.mail.sent[0].To)

	stored, err := f.resets.GetByToken(ctx, tokenOf(t, f))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), stored.ExpiresAt, 5*time.Second)

	require.NoError(t, f.svc.ResetPassword(ctx, stored.Token, "brand-new-pwd"))

	// old password dead, new one works
	_, _, err = f.svc.Login(ctx, "ada@example.com", "correct-horse")
	assert.Equal(t, apperr.KindAuthFailed, apperr.KindOf(err))
	_, _, err = f.svc.Login(ctx, "ada@example.com", "brand-new-pwd")
	assert.NoError(t, err)

	// token is single use
	err = f.svc.ResetPassword(ctx, stored.Token, "another-pwd")
	assert.Equal(t, apperr.KindAuthFailed, apperr.KindOf(err))
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)
	err := f.svc.ForgotPassword(context.Background(), "ghost@example.com")
	assert.Equal(t, apperr.KindAuthFailed, apperr.KindOf(err))
}

func TestForgotPasswordTwiceKeepsOneLiveRequest(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.register(t)

	require.NoError(t, f.svc.ForgotPassword(ctx, "ada@example.com"))
	first := tokenOf(t, f)

	require.NoError(t, f.svc.ForgotPassword(ctx, "ada@example.com"))
	second := tokenOf(t, f) // fails unless exactly one row remains
	assert.NotEqual(t, first, second)

	// the superseded token is dead, the latest one works
	err := f.svc.ResetPassword(ctx, first, "brand-new-pwd")
	assert.Equal(t, apperr.KindAuthFailed, apperr.KindOf(err))
	assert.NoError(t, f.svc.ResetPassword(ctx, second, "brand-new-pwd"))
}

func TestForgotPasswordRollsBackWhenMailFails(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.register(t)

	f.mail.fail = assert.AnError
	err := f.svc.ForgotPassword(ctx, "ada@example.com")
	assert.Equal(t, apperr.KindUpstream, apperr.KindOf(err))
	assert.Zero(t, f.resets.count(), "undelivered reset token must not linger")
}

func TestResetPasswordExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.register(t)

	require.NoError(t, f.svc.ForgotPassword(ctx, "ada@example.com"))
	token := tokenOf(t, f)

	// age the token past its expiry
	f.resets.mu.Lock()
	f.resets.resets[0].ExpiresAt = time.Now().Add(-time.Minute)
	f.resets.mu.Unlock()

	err := f.svc.ResetPassword(ctx, token, "whatever1")
	assert.Equal(t, apperr.KindGone, apperr.KindOf(err))

	// the expired row is consumed too
	assert.Zero(t, f.resets.count())
}

func TestResetPasswordRevokesSessions(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.register(t)

	_, pair, err := f.svc.Login(ctx, "ada@example.com", "correct-horse")
	require.NoError(t, err)

	require.NoError(t, f.svc.ForgotPassword(ctx, "ada@example.com"))
	require.NoError(t, f.svc.ResetPassword(ctx, tokenOf(t, f), "brand-new-pwd"))

	_, _, err = f.svc.Refresh(ctx, pair.RefreshToken)
	assert.Equal(t, apperr.KindAuthFailed, apperr.KindOf(err))
}

// tokenOf returns the single outstanding reset token.
func tokenOf(t *testing.T, f *authFixture) string {
	t.Helper()
	f.resets.mu.Lock()
	defer f.resets.mu.Unlock()
	require.Len(t, f.resets.resets, 1)
	return f.resets.resets[0].Token
}
