package auth

import (
	"context"
	"testing"
	"time"

	"github.com/teamboard/backend/domain"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(f.users))
	for _, user := range f.users {
		out = append(out, *user)
	}
	return out, nil
}

func (f *fakeUserRepo) Upsert(_ context.Context, user *domain.User) error {
	if f.users == nil {
		f.users = make(map[string]*domain.User)
	}
	f.users[user.ID] = user
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*domain.Session
}

func (f *fakeSessionRepo) Get(_ context.Context, id string) (*domain.Session, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (f *fakeSessionRepo) Save(_ context.Context, session *domain.Session) error {
	if f.sessions == nil {
		f.sessions = make(map[string]*domain.Session)
	}
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, id string) error {
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionRepo) Extend(_ context.Context, id string, ttlSeconds int) error {
	session, ok := f.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.ExpiresAt = time.Now().Add(time.Duration(ttlSeconds) * time.Second)
	return nil
}

func newTestUseCase() (*UseCase, *fakeSessionRepo) {
	sessions := &fakeSessionRepo{}
	return New(&fakeUserRepo{}, sessions, "test-secret", time.Hour, nil), sessions
}

func TestLoginAndVerify(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	token, session, err := uc.Login(ctx, &domain.User{ID: "alice", Username: "alice"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" || session == nil || session.UserID != "alice" {
		t.Fatalf("unexpected login result: token=%q session=%+v", token, session)
	}

	userID, err := uc.Verify(ctx, token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if userID != "alice" {
		t.Errorf("Verify = %q, want alice", userID)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	uc, _ := newTestUseCase()
	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := uc.Verify(context.Background(), token); err != domain.ErrUnauthorized {
			t.Errorf("Verify(%q) = %v, want ErrUnauthorized", token, err)
		}
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	other := New(&fakeUserRepo{}, &fakeSessionRepo{}, "other-secret", time.Hour, nil)
	token, _, err := other.Login(context.Background(), &domain.User{ID: "alice"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	uc, _ := newTestUseCase()
	if _, err := uc.Verify(context.Background(), token); err != domain.ErrUnauthorized {
		t.Errorf("Verify = %v, want ErrUnauthorized", err)
	}
}

func TestVerifyAfterLogout(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	token, _, err := uc.Login(ctx, &domain.User{ID: "alice"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := uc.Logout(ctx, token); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	// The token itself is still within its expiry window; revoking the
	// session must be enough to reject it.
	if _, err := uc.Verify(ctx, token); err != domain.ErrUnauthorized {
		t.Errorf("Verify after logout = %v, want ErrUnauthorized", err)
	}

	// Logging out twice is a no-op.
	if err := uc.Logout(ctx, token); err != nil {
		t.Errorf("second Logout: %v", err)
	}
}

func TestRefresh(t *testing.T) {
	uc, sessions := newTestUseCase()
	ctx := context.Background()

	token, session, err := uc.Login(ctx, &domain.User{ID: "alice"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	before := sessions.sessions[session.ID].ExpiresAt

	reissued, refreshed, err := uc.Refresh(ctx, token)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if reissued == "" {
		t.Error("expected a reissued token")
	}
	if refreshed.ID != session.ID {
		t.Errorf("Refresh changed session id: %q -> %q", session.ID, refreshed.ID)
	}
	if refreshed.ExpiresAt.Before(before) {
		t.Errorf("Refresh did not extend expiry: %v -> %v", before, refreshed.ExpiresAt)
	}

	if _, err := uc.Verify(ctx, reissued); err != nil {
		t.Errorf("Verify reissued token: %v", err)
	}
}

func TestLoginRequiresUserID(t *testing.T) {
	uc, _ := newTestUseCase()
	if _, _, err := uc.Login(context.Background(), &domain.User{ID: "  "}); err != domain.ErrInvalidPayload {
		t.Errorf("Login = %v, want ErrInvalidPayload", err)
	}
	if _, _, err := uc.Login(context.Background(), nil); err != domain.ErrInvalidPayload {
		t.Errorf("Login(nil) = %v, want ErrInvalidPayload", err)
	}
}
