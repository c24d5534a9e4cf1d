package application

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inkwell-app/inkwell-api/config"
	"github.com/inkwell-app/inkwell-api/internal/domain/entity"
	"github.com/inkwell-app/inkwell-api/internal/domain/repository"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*entity.User // by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.users {
		if ex.Email == u.Email || ex.UserName == u.UserName {
			return repository.ErrDuplicate
		}
	}
	f.seq++
	u.ID = fmt.Sprintf("user-%d", f.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ex, ok := f.users[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	ex.Email = u.Email
	ex.UserName = u.UserName
	ex.DisplayName = u.DisplayName
	ex.AvatarURL = u.AvatarURL
	ex.UpdatedAt = time.Now()
	return nil
}

func (f *fakeUserRepo) UpdateRefreshToken(_ context.Context, id, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.RefreshToken = token
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = hash
	return nil
}

func (f *fakeUserRepo) delete(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
}

type fakeSocialRepo struct {
	mu    sync.Mutex
	seq   int
	links []*entity.SocialAccount
}

func newFakeSocialRepo() *fakeSocialRepo { return &fakeSocialRepo{} }

func (f *fakeSocialRepo) GetByEmailProvider(_ context.Context, email, provider string) (*entity.SocialAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.links {
		if l.Email == email && l.Provider == provider {
			cp := *l
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeSocialRepo) Create(_ context.Context, a *entity.SocialAccount) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.links {
		if l.Email == a.Email && l.Provider == a.Provider {
			return repository.ErrDuplicate
		}
	}
	f.seq++
	a.ID = fmt.Sprintf("link-%d", f.seq)
	a.CreatedAt = time.Now()
	cp := *a
	f.links = append(f.links, &cp)
	return nil
}

type fakeResetRepo struct {
	mu     sync.Mutex
	seq    int
	resets []*entity.PasswordReset
}

func newFakeResetRepo() *fakeResetRepo { return &fakeResetRepo{} }

func (f *fakeResetRepo) Create(_ context.Context, r *entity.PasswordReset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	r.ID = fmt.Sprintf("reset-%d", f.seq)
	r.CreatedAt = time.Now()
	cp := *r
	f.resets = append(f.resets, &cp)
	return nil
}

func (f *fakeResetRepo) GetByToken(_ context.Context, token string) (*entity.PasswordReset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.resets {
		if r.Token == token {
			cp := *r
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeResetRepo) DeleteByUserID(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.resets[:0]
	for _, r := range f.resets {
		if r.UserID != userID {
			kept = append(kept, r)
		}
	}
	f.resets = kept
	return nil
}

func (f *fakeResetRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.resets)
}

type sentMail struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail error
}

func (f *fakeMailer) Send(_ context.Context, to, subject, text, html string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Text: text, HTML: html})
	return nil
}

type fakeQueue struct {
	mu   sync.Mutex
	jobs []any
}

func (f *fakeQueue) PublishJSON(_ context.Context, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, body)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		ResetTokenTTL:    15 * time.Minute,
		ResetPasswordURL: "https://app.inkwell.dev/reset-password",
		FrontendURL:      "https://app.inkwell.dev",
		MailSendEnabled:  true,
	}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
