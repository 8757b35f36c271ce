package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/riskibarqy/tournament-league/internal/domain/user"
	"github.com/riskibarqy/tournament-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tournament-league/internal/platform/logging"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// tokenTable issues "token-<n>" strings and remembers the principal behind each.
type tokenTable map[string]user.Principal

func (t tokenTable) Issue(_ context.Context, principal user.Principal) (string, error) {
	token := fmt.Sprintf("token-%d", len(t)+1)
	t[token] = principal
	return token, nil
}

func (t tokenTable) Parse(_ context.Context, token string) (user.Principal, error) {
	principal, ok := t[token]
	if !ok {
		return user.Principal{}, errors.New("unknown token")
	}
	return principal, nil
}

func newAccountServices(t *testing.T) (*AuthService, *UserService) {
	t.Helper()

	users := memory.NewUserRepository(memory.NewStore(nil))
	return NewAuthService(users, plainHasher{}, tokenTable{}, logging.NewNop()), NewUserService(users, plainHasher{})
}

func TestAuthService_RegisterLoginVerify(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	auth, _ := newAccountServices(t)

	session, err := auth.Register(ctx, RegisterInput{Name: " Alice ", Email: "Alice@Example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if session.UserID <= 0 || session.Token == "" {
		t.Fatalf("unexpected session %+v", session)
	}

	if _, err := auth.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"}); KindOf(err) != KindConflict {
		t.Fatalf("expected Conflict for duplicate email, got %v", err)
	}
	if _, err := auth.Register(ctx, RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "123"}); KindOf(err) != KindValidation {
		t.Fatalf("expected ValidationError for short password, got %v", err)
	}

	login, err := auth.Login(ctx, "ALICE@example.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.UserID != session.UserID {
		t.Fatalf("login resolved another user: %+v", login)
	}
	for _, tc := range [][2]string{{"alice@example.com", "wrong"}, {"nobody@example.com", "secret1"}} {
		_, err := auth.Login(ctx, tc[0], tc[1])
		if KindOf(err) != KindUnauthorized || err.Error() != "unauthorized: invalid email or password" {
			t.Fatalf("login %v: unexpected error %v", tc, err)
		}
	}

	principal, err := auth.VerifyAccessToken(ctx, login.Token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if principal.UserID != session.UserID || principal.Role != user.RoleUser {
		t.Fatalf("unexpected principal %+v", principal)
	}
	if _, err := auth.VerifyAccessToken(ctx, "  "); KindOf(err) != KindUnauthorized {
		t.Fatalf("expected Unauthorized for empty token, got %v", err)
	}
	if _, err := auth.VerifyAccessToken(ctx, "forged"); KindOf(err) != KindUnauthorized {
		t.Fatalf("expected Unauthorized for unknown token, got %v", err)
	}
}

func TestAuthService_VerifyReflectsCurrentUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	auth, users := newAccountServices(t)

	session, err := auth.Register(ctx, RegisterInput{Name: "Mod", Email: "mod@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := users.Update(ctx, session.UserID, UpdateUserInput{Name: "Mod", Email: "mod@example.com", Role: user.RoleModerator}); err != nil {
		t.Fatalf("promote user: %v", err)
	}
	principal, err := auth.VerifyAccessToken(ctx, session.Token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if principal.Role != user.RoleModerator {
		t.Fatalf("expected promoted role, got %v", principal.Role)
	}

	if err := users.Delete(ctx, session.UserID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := auth.VerifyAccessToken(ctx, session.Token); KindOf(err) != KindUnauthorized {
		t.Fatalf("expected Unauthorized for deleted user, got %v", err)
	}
}

func TestAuthService_EnsureAdminIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	auth, _ := newAccountServices(t)
	input := RegisterInput{Name: "Admin", Email: "admin@example.com", Password: "admin-pass"}

	first, err := auth.EnsureAdmin(ctx, input)
	if err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	second, err := auth.EnsureAdmin(ctx, input)
	if err != nil {
		t.Fatalf("ensure admin again: %v", err)
	}
	if first.ID != second.ID || second.Role != user.RoleAdmin {
		t.Fatalf("unexpected admin accounts %+v %+v", first, second)
	}
}

func TestUserService_SelfService(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	auth, users := newAccountServices(t)

	alice, err := auth.Register(ctx, RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register alice: %v", err)
	}
	if _, err := auth.Register(ctx, RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("register bob: %v", err)
	}

	renamed, err := users.UpdateName(ctx, alice.UserID, "  Alice Liddell ")
	if err != nil || renamed.Name != "Alice Liddell" {
		t.Fatalf("update name: item=%+v err=%v", renamed, err)
	}
	if _, err := users.UpdateName(ctx, alice.UserID, " "); KindOf(err) != KindValidation {
		t.Fatalf("expected ValidationError for blank name, got %v", err)
	}

	_, err = users.UpdateEmail(ctx, alice.UserID, "alice@new.example.com", "wrong")
	if KindOf(err) != KindValidation || err.Error() != "invalid input: passwords do not match" {
		t.Fatalf("unexpected error for wrong password: %v", err)
	}
	if _, err := users.UpdateEmail(ctx, alice.UserID, "bob@example.com", "secret1"); KindOf(err) != KindConflict {
		t.Fatalf("expected Conflict for taken email, got %v", err)
	}
	moved, err := users.UpdateEmail(ctx, alice.UserID, "Alice@New.Example.com", "secret1")
	if err != nil || moved.Email != "alice@new.example.com" {
		t.Fatalf("update email: item=%+v err=%v", moved, err)
	}

	err = users.UpdatePassword(ctx, alice.UserID, "nope", "another1")
	if KindOf(err) != KindValidation || err.Error() != "invalid input: old password is not correct" {
		t.Fatalf("unexpected error for wrong old password: %v", err)
	}
	if err := users.UpdatePassword(ctx, alice.UserID, "secret1", "short"); KindOf(err) != KindValidation {
		t.Fatalf("expected ValidationError for short password, got %v", err)
	}
	if err := users.UpdatePassword(ctx, alice.UserID, "secret1", "another1"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	if _, err := auth.Login(ctx, "alice@new.example.com", "another1"); err != nil {
		t.Fatalf("login with new credentials: %v", err)
	}
}

func TestUserService_AdminOperations(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	auth, users := newAccountServices(t)

	session, err := auth.Register(ctx, RegisterInput{Name: "Carol", Email: "carol@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := users.Update(ctx, session.UserID, UpdateUserInput{Name: "Carol", Email: "carol@example.com", Role: user.Role(9)}); KindOf(err) != KindValidation {
		t.Fatalf("expected ValidationError for unknown role, got %v", err)
	}

	items, err := users.List(ctx, 0, 0)
	if err != nil || len(items) != 1 {
		t.Fatalf("list users: items=%+v err=%v", items, err)
	}

	if err := users.Delete(ctx, session.UserID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if err := users.Delete(ctx, session.UserID); KindOf(err) != KindNotFound {
		t.Fatalf("expected NotFound deleting twice, got %v", err)
	}
	if _, err := users.Get(ctx, session.UserID); KindOf(err) != KindNotFound {
		t.Fatalf("expected NotFound after delete, got %v", err)
	}
}
