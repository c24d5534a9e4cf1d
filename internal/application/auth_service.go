package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inkwell-app/inkwell-api/config"
	"github.com/inkwell-app/inkwell-api/internal/domain/entity"
	"github.com/inkwell-app/inkwell-api/internal/domain/repository"
	"github.com/inkwell-app/inkwell-api/pkg/apperr"
	"github.com/inkwell-app/inkwell-api/pkg/helpers"
	"github.com/inkwell-app/inkwell-api/pkg/mailer"
	mailtpl "github.com/inkwell-app/inkwell-api/pkg/mailer/templates"
)

// Mailer sends a single email synchronously. Satisfied by *mailer.Mailgun.
type Mailer interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Publisher enqueues a JSON job for background delivery. Satisfied by
// *helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// TokenPair is one access/refresh issuance.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// AuthService owns the credential and session lifecycle: registration,
// password and social login, token issuance and rotation, logout, and the
// password reset flow.
type AuthService struct {
	users   repository.UserRepository
	socials repository.SocialAccountRepository
	resets  repository.PasswordResetRepository
	jwt     *helpers.JWTManager
	mail    Mailer
	queue   Publisher
	cfg     *config.Config
	log     *logrus.Logger
}

func NewAuthService(
	users repository.UserRepository,
	socials repository.SocialAccountRepository,
	resets repository.PasswordResetRepository,
	jwt *helpers.JWTManager,
	mail Mailer,
	queue Publisher,
	cfg *config.Config,
	log *logrus.Logger,
) *AuthService {
	return &AuthService{
		users:   users,
		socials: socials,
		resets:  resets,
		jwt:     jwt,
		mail:    mail,
		queue:   queue,
		cfg:     cfg,
		log:     log,
	}
}

type RegisterInput struct {
	Email       string
	UserName    string
	DisplayName string
	Password    string
}

// Register creates a password-based account. No session is started; the
// client logs in afterwards.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	_, err := s.users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, apperr.New(apperr.KindConflict, "an account with this email already exists")
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperr.Wrap(apperr.KindInternal, "look up email", err)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "hash password", err)
	}

	u := &entity.User{
		Email:       in.Email,
		UserName:    in.UserName,
		DisplayName: in.DisplayName,
		Password:    hash,
		Role:        entity.RoleUser,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.New(apperr.KindConflict, "an account with this email or username already exists")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "create user", err)
	}

	s.enqueueEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     map[string]any{"Name": u.DisplayName, "FrontendURL": s.cfg.FrontendURL},
	})
	return u, nil
}

// Login verifies the password and starts a session. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, TokenPair{}, apperr.New(apperr.KindAuthFailed, "invalid email or password")
		}
		return nil, TokenPair{}, apperr.Wrap(apperr.KindInternal, "look up user", err)
	}
	if !helpers.CheckPassword(u.Password, password) {
		return nil, TokenPair{}, apperr.New(apperr.KindAuthFailed, "invalid email or password")
	}

	pair, err := s.issueTokens(ctx, u.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}

	s.enqueueEmail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.LoginNotification,
		Data:     map[string]any{"Name": u.DisplayName},
	})
	return u, pair, nil
}

type SocialLoginInput struct {
	Email       string
	Provider    string
	SocialID    string
	UserName    string
	DisplayName string
	AvatarURL   string
}

// SocialLogin signs a user in through an external provider. Three cases:
// the (email, provider) link already exists and resolves to its user; the
// email belongs to an existing account, which gains a new provider link; or
// nothing exists yet and both the account and the link are created. A link
// whose user row is gone is data corruption and surfaces as an internal
// error rather than silently recreating the account.
func (s *AuthService) SocialLogin(ctx context.Context, in SocialLoginInput) (*entity.User, TokenPair, error) {
	link, err := s.socials.GetByEmailProvider(ctx, in.Email, in.Provider)
	switch {
	case err == nil:
		u, err := s.users.GetByID(ctx, link.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				s.log.WithFields(logrus.Fields{
					"provider": in.Provider,
					"user_id":  link.UserID,
				}).Error("social link points at a missing user")
				return nil, TokenPair{}, apperr.New(apperr.KindInternal, "account data is inconsistent, please contact support")
			}
			return nil, TokenPair{}, apperr.Wrap(apperr.KindInternal, "load linked user", err)
		}
		return s.finishSocial(ctx, u)

	case errors.Is(err, repository.ErrNotFound):
		// fall through to account lookup
	default:
		return nil, TokenPair{}, apperr.Wrap(apperr.KindInternal, "look up social link", err)
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		if err := s.createLink(ctx, in, u.ID); err != nil {
			return nil, TokenPair{}, err
		}
		return s.finishSocial(ctx, u)

	case errors.Is(err, repository.ErrNotFound):
		u = &entity.User{
			Email:       in.Email,
			UserName:    in.UserName,
			DisplayName: in.DisplayName,
			AvatarURL:   in.AvatarURL,
			Role:        entity.RoleUser,
		}
		if err := s.users.Create(ctx, u); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, TokenPair{}, apperr.New(apperr.KindConflict, "an account with this username already exists")
			}
			return nil, TokenPair{}, apperr.Wrap(apperr.KindInternal, "create user", err)
		}
		if err := s.createLink(ctx, in, u.ID); err != nil {
			return nil, TokenPair{}, err
		}
		s.enqueueEmail(ctx, mailer.EmailJob{
			To:       u.Email,
			Template: mailtpl.Welcome,
			Data:     map[string]any{"Name": u.DisplayName, "FrontendURL": s.cfg.FrontendURL},
		})
		return s.finishSocial(ctx, u)

	default:
		return nil, TokenPair{}, apperr.Wrap(apperr.KindInternal, "look up user", err)
	}
}

func (s *AuthService) createLink(ctx context.Context, in SocialLoginInput, userID string) error {
	link := &entity.SocialAccount{
		Email:    in.Email,
		Provider: in.Provider,
		SocialID: in.SocialID,
		UserID:   userID,
	}
	if err := s.socials.Create(ctx, link); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return apperr.Wrap(apperr.KindInternal, "create social link", err)
	}
	return nil
}

func (s *AuthService) finishSocial(ctx context.Context, u *entity.User) (*entity.User, TokenPair, error) {
	pair, err := s.issueTokens(ctx, u.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// CurrentUser returns the profile for an authenticated session.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindAuthFailed, "account no longer exists")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "load user", err)
	}
	return u, nil
}

// Logout clears the stored refresh token, so outstanding refresh tokens die
// with the session instead of outliving it.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.users.UpdateRefreshToken(ctx, userID, ""); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return apperr.Wrap(apperr.KindInternal, "revoke refresh token", err)
	}
	return nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The presented
// token must equal the stored one; anything older, already rotated, or
// revoked by logout is rejected. Rotation persists the new refresh token so
// each token is good for exactly one exchange.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*entity.User, TokenPair, error) {
	claims, err := s.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		if errors.Is(err, helpers.ErrTokenExpired) {
			return nil, TokenPair{}, apperr.New(apperr.KindAuthFailed, "session expired, please login again")
		}
		return nil, TokenPair{}, apperr.New(apperr.KindAuthFailed, "invalid refresh token")
	}

	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, TokenPair{}, apperr.New(apperr.KindAuthFailed, "invalid refresh token")
		}
		return nil, TokenPair{}, apperr.Wrap(apperr.KindInternal, "load user", err)
	}
	if u.RefreshToken == "" || u.RefreshToken != refreshToken {
		return nil, TokenPair{}, apperr.New(apperr.KindAuthFailed, "refresh token has been revoked")
	}

	pair, err := s.issueTokens(ctx, u.ID)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// ForgotPassword issues a reset token and emails the reset link. The email
// is sent synchronously: if delivery fails the reset row is removed again,
// so a token the user never received cannot linger.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New(apperr.KindAuthFailed, "no account with this email")
		}
		return apperr.Wrap(apperr.KindInternal, "look up user", err)
	}

	// one live reset per user
	if err := s.resets.DeleteByUserID(ctx, u.ID); err != nil {
		return apperr.Wrap(apperr.KindInternal, "clear previous resets", err)
	}

	token, err := helpers.GenResetToken()
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "generate reset token", err)
	}
	pr := &entity.PasswordReset{
		UserID:    u.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.cfg.ResetTokenTTL),
	}
	if err := s.resets.Create(ctx, pr); err != nil {
		return apperr.Wrap(apperr.KindInternal, "store reset token", err)
	}

	resetURL := s.cfg.ResetPasswordURL + "/" + token
	subject, text, html, err := mailtpl.Render(mailtpl.ResetPassword, map[string]any{
		"Name":      u.DisplayName,
		"ResetURL":  resetURL,
		"ExpiresAt": pr.ExpiresAt,
	})
	if err != nil {
		_ = s.resets.DeleteByUserID(ctx, u.ID)
		return apperr.Wrap(apperr.KindInternal, "render reset email", err)
	}
	if err := s.sendMail(ctx, u.Email, subject, text, html); err != nil {
		_ = s.resets.DeleteByUserID(ctx, u.ID)
		return apperr.Wrap(apperr.KindUpstream, "could not send reset email, please try again", err)
	}
	return nil
}

// ResetPassword consumes a reset token and sets a new password. All sessions
// are revoked so anyone holding the old credentials is logged out.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	pr, err := s.resets.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New(apperr.KindAuthFailed, "invalid or already used reset token")
		}
		return apperr.Wrap(apperr.KindInternal, "look up reset token", err)
	}
	if pr.Expired(time.Now()) {
		_ = s.resets.DeleteByUserID(ctx, pr.UserID)
		return apperr.New(apperr.KindGone, "reset token has expired, please request a new one")
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "hash password", err)
	}
	if err := s.users.UpdatePassword(ctx, pr.UserID, hash); err != nil {
		return apperr.Wrap(apperr.KindInternal, "update password", err)
	}
	if err := s.resets.DeleteByUserID(ctx, pr.UserID); err != nil {
		return apperr.Wrap(apperr.KindInternal, "consume reset token", err)
	}
	if err := s.users.UpdateRefreshToken(ctx, pr.UserID, ""); err != nil {
		return apperr.Wrap(apperr.KindInternal, "revoke sessions", err)
	}
	return nil
}

// issueTokens mints an access/refresh pair and persists the refresh token so
// it can be checked and revoked later.
func (s *AuthService) issueTokens(ctx context.Context, userID string) (TokenPair, error) {
	access, aexp, err := s.jwt.GenerateAccessToken(userID)
	if err != nil {
		return TokenPair{}, apperr.Wrap(apperr.KindInternal, "sign access token", err)
	}
	refresh, rexp, err := s.jwt.GenerateRefreshToken(userID)
	if err != nil {
		return TokenPair{}, apperr.Wrap(apperr.KindInternal, "sign refresh token", err)
	}
	if err := s.users.UpdateRefreshToken(ctx, userID, refresh); err != nil {
		return TokenPair{}, apperr.Wrap(apperr.KindInternal, "store refresh token", err)
	}
	return TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  aexp,
		RefreshToken:     refresh,
		RefreshExpiresAt: rexp,
	}, nil
}

// sendMail delivers synchronously, honoring the send toggle for local runs.
func (s *AuthService) sendMail(ctx context.Context, to, subject, text, html string) error {
	if !s.cfg.MailSendEnabled {
		s.log.WithField("to", to).Info("mail sending disabled, skipping")
		return nil
	}
	if s.mail == nil {
		return errors.New("mailer not configured")
	}
	return s.mail.Send(ctx, to, subject, text, html)
}

// enqueueEmail publishes a background email job. Delivery problems are
// logged, never surfaced: notification email must not fail the request.
func (s *AuthService) enqueueEmail(ctx context.Context, job mailer.EmailJob) {
	if s.queue == nil || !s.cfg.MailSendEnabled {
		return
	}
	if err := s.queue.PublishJSON(ctx, job); err != nil {
		s.log.WithError(err).WithField("to", job.To).Warn("failed to enqueue email job")
	}
}
