package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kumawatvinit/ShopSpot/internal/domain/entity"
	"github.com/kumawatvinit/ShopSpot/internal/domain/repository"
	"github.com/kumawatvinit/ShopSpot/pkg/helpers"
)

// fakeUserRepo is an in-memory UserRepository keyed by id with a unique
// email constraint, mirroring the database behavior the service relies on.
type fakeUserRepo struct {
	byID map[string]*entity.User
	seq  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, e := range r.byID {
		if e.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("id-%d", r.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	c := *u
	r.byID[u.ID] = &c
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := r.byID[u.ID]; !ok {
		return repository.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	c := *u
	r.byID[u.ID] = &c
	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.byID))
	for _, u := range r.byID {
		c := *u
		out = append(out, &c)
	}
	return out, nil
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newTestAuthService(repo repository.UserRepository) *AuthService {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(repo, jwt, bcrypt.MinCost, nil)
}

func validRegister() RegisterInput {
	return RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Phone:    "555-0100",
		Address:  "1 Main St",
		Answer:   "Blue",
	}
}

func TestRegister_ValidationOrder(t *testing.T) {
	t.Parallel()
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	cases := []struct {
		mutate func(*RegisterInput)
		want   string
	}{
		{func(in *RegisterInput) { in.Name = "" }, "Name is required"},
		{func(in *RegisterInput) { in.Name = ""; in.Email = "" }, "Name is required"},
		{func(in *RegisterInput) { in.Email = "" }, "Email is required"},
		{func(in *RegisterInput) { in.Password = "" }, "Password is empty or less than 6 characters"},
		{func(in *RegisterInput) { in.Password = "abc" }, "Password is empty or less than 6 characters"},
		{func(in *RegisterInput) { in.Answer = "" }, "Answer is required"},
	}
	for _, tc := range cases {
		in := validRegister()
		tc.mutate(&in)
		_, err := svc.Register(ctx, in)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("Register error = %v, want validation failure", err)
		}
		if ve.Message != tc.want {
			t.Errorf("message = %q, want %q", ve.Message, tc.want)
		}
	}
}

func TestRegister_SixCharPasswordBoundary(t *testing.T) {
	t.Parallel()
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	in := validRegister()
	in.Password = "abcdef"
	if _, err := svc.Register(ctx, in); err != nil {
		t.Fatalf("Register with 6-char password: %v", err)
	}
}

func TestRegister_StripsCredentials(t *testing.T) {
	t.Parallel()
	repo := newFakeUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	u, err := svc.Register(ctx, validRegister())
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if u.Password != "" || u.Answer != "" {
		t.Fatalf("credential fields leaked: password=%q answer=%q", u.Password, u.Answer)
	}
	if u.Role != entity.RoleUser {
		t.Fatalf("role = %q, want %q", u.Role, entity.RoleUser)
	}

	stored, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if stored.Password == "secret123" || stored.Password == "" {
		t.Fatalf("stored password not hashed: %q", stored.Password)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegister()); err != nil {
		t.Fatalf("first Register error: %v", err)
	}
	if _, err := svc.Register(ctx, validRegister()); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("second Register error = %v, want ErrEmailTaken", err)
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegister()); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	u, token, err := svc.Login(ctx, "alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if u.Password != "" || u.Answer != "" {
		t.Fatal("login response leaks credential fields")
	}

	claims, err := svc.JWT.Parse(token)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if claims.UserID != u.ID {
		t.Fatalf("token subject = %q, want %q", claims.UserID, u.ID)
	}

	if _, _, err := svc.Login(ctx, "alice@example.com", "wrongpass"); !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("wrong password error = %v, want ErrWrongPassword", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "secret123"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown email error = %v, want ErrUserNotFound", err)
	}
	if _, _, err := svc.Login(ctx, "", ""); !IsValidation(err) {
		t.Fatalf("empty credentials error = %v, want validation failure", err)
	}
}

func TestForgotPassword(t *testing.T) {
	t.Parallel()
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegister()); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	// The answer comparison is exact; case differences are rejected.
	if err := svc.ForgotPassword(ctx, "alice@example.com", "newsecret", "blue"); !errors.Is(err, ErrWrongAnswer) {
		t.Fatalf("case-mismatched answer error = %v, want ErrWrongAnswer", err)
	}

	if err := svc.ForgotPassword(ctx, "alice@example.com", "newsecret", "Blue"); err != nil {
		t.Fatalf("ForgotPassword error: %v", err)
	}

	if _, _, err := svc.Login(ctx, "alice@example.com", "secret123"); !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("old password still accepted: %v", err)
	}
	if _, _, err := svc.Login(ctx, "alice@example.com", "newsecret"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}

	if err := svc.ForgotPassword(ctx, "nobody@example.com", "newsecret", "Blue"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown email error = %v, want ErrUserNotFound", err)
	}
	if err := svc.ForgotPassword(ctx, "alice@example.com", "abc", "Blue"); !IsValidation(err) {
		t.Fatalf("short password error = %v, want validation failure", err)
	}
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	t.Parallel()
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegister()); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	u, err := svc.UpdateProfile(ctx, UpdateProfileInput{Email: "alice@example.com", Address: "2 Oak Ave"})
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if u.Address != "2 Oak Ave" {
		t.Fatalf("address = %q, want %q", u.Address, "2 Oak Ave")
	}
	if u.Name != "Alice" || u.Phone != "555-0100" {
		t.Fatalf("omitted fields changed: name=%q phone=%q", u.Name, u.Phone)
	}

	if _, err := svc.UpdateProfile(ctx, UpdateProfileInput{Email: "alice@example.com", Password: "abc"}); !IsValidation(err) {
		t.Fatalf("short password error = %v, want validation failure", err)
	}
}

func TestUpdateProfile_TargetsBodyEmail(t *testing.T) {
	t.Parallel()
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegister()); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	bob := validRegister()
	bob.Name = "Bob"
	bob.Email = "bob@example.com"
	if _, err := svc.Register(ctx, bob); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	// The record is selected by the submitted email alone; the flow carries
	// no notion of which account the caller owns.
	u, err := svc.UpdateProfile(ctx, UpdateProfileInput{Email: "bob@example.com", Name: "Mallory"})
	if err != nil {
		t.Fatalf("UpdateProfile error: %v", err)
	}
	if u.Name != "Mallory" {
		t.Fatalf("name = %q, want %q", u.Name, "Mallory")
	}
}

func TestListUsers_StripsCredentials(t *testing.T) {
	t.Parallel()
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegister()); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	users, err := svc.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers error: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("len(users) = %d, want 1", len(users))
	}
	if users[0].Password != "" || users[0].Answer != "" {
		t.Fatal("listing leaks credential fields")
	}
}

func TestChangeRole(t *testing.T) {
	t.Parallel()
	svc := newTestAuthService(newFakeUserRepo())
	ctx := context.Background()

	u, err := svc.Register(ctx, validRegister())
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	out, err := svc.ChangeRole(ctx, u.ID, entity.RoleAdmin)
	if err != nil {
		t.Fatalf("ChangeRole error: %v", err)
	}
	if out.Role != entity.RoleAdmin {
		t.Fatalf("role = %q, want %q", out.Role, entity.RoleAdmin)
	}

	if _, err := svc.ChangeRole(ctx, u.ID, "superuser"); !IsValidation(err) {
		t.Fatalf("unknown role error = %v, want validation failure", err)
	}
	if _, err := svc.ChangeRole(ctx, "missing", entity.RoleUser); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown user error = %v, want ErrUserNotFound", err)
	}
}
