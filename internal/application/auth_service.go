package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/kumawatvinit/ShopSpot/internal/domain/entity"
	"github.com/kumawatvinit/ShopSpot/internal/domain/repository"
	"github.com/kumawatvinit/ShopSpot/pkg/helpers"
	"github.com/kumawatvinit/ShopSpot/pkg/mailer"
)

// AuthService implements the account flows: register, login, forgot
// password, profile update, and the admin-only user management operations.
type AuthService struct {
	Repo         repository.UserRepository
	JWT          *helpers.JWTManager
	BcryptCost   int
	Logger       *logrus.Logger
	Pub          *helpers.RabbitPublisher
	MailEnabled  bool
	ES           *elasticsearch.Client
	ESUsersIndex string
}

func NewAuthService(repo repository.UserRepository, jwt *helpers.JWTManager, bcryptCost int, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, BcryptCost: bcryptCost, Logger: logger}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	Answer   string
}

// checkcredentials validates the shared register/forgot-password fields in a
// fixed order: name, email, password, answer. First failure wins.
func checkCredentials(name, email, password, answer string) error {
	if name == "" {
		return invalid("Name is required")
	}
	if email == "" {
		return invalid("Email is required")
	}
	if len(password) < 6 {
		return invalid("Password is empty or less than 6 characters")
	}
	if answer == "" {
		return invalid("Answer is required")
	}
	return nil
}

// Register creates a new account with the ordinary role. The returned record
// has its credential fields zeroed; the hash is never handed back to callers.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if err := checkCredentials(in.Name, in.Email, in.Password, in.Answer); err != nil {
		return nil, err
	}

	if _, err := s.Repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Phone:    in.Phone,
		Address:  in.Address,
		Answer:   in.Answer,
		Role:     entity.RoleUser,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		// Unique-email enforcement is the database constraint; two
		// concurrent registrations race there, not here.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.indexUser(ctx, u)
	s.enqueueMail(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"Name": u.Name, "Email": u.Email},
	})

	out := *u
	out.Password = ""
	out.Answer = ""
	return &out, nil
}

// Login verifies credentials and issues a token embedding the user id.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	if email == "" || password == "" {
		return nil, "", invalid("Invalid email or password")
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}

	if !helpers.CheckPassword(u.Password, password) {
		return nil, "", ErrWrongPassword
	}

	token, _, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, "", err
	}

	out := *u
	out.Password = ""
	out.Answer = ""
	return &out, token, nil
}

// ForgotPassword resets the password when the security answer matches the
// stored one exactly. The comparison is case-sensitive plaintext equality
// against a plaintext answer; a known weakness kept for compatibility with
// existing records.
func (s *AuthService) ForgotPassword(ctx context.Context, email, newPassword, answer string) error {
	// Name is not part of this flow's input; the name check is skipped.
	if err := checkCredentials("-", email, newPassword, answer); err != nil {
		return err
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if answer != u.Answer {
		return ErrWrongAnswer
	}

	hash, err := helpers.HashPassword(newPassword, s.BcryptCost)
	if err != nil {
		return err
	}
	u.Password = hash
	return s.Repo.Update(ctx, u)
}

type UpdateProfileInput struct {
	Email    string
	Name     string
	Password string
	Phone    string
	Address  string
}

// UpdateProfile overwrites only the supplied fields; omitted fields keep
// their prior value. The record is located by the request-body email, not by
// the caller's own id — an authorization gap carried over from the source,
// flagged rather than silently fixed.
func (s *AuthService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*entity.User, error) {
	if in.Password != "" && len(in.Password) < 6 {
		return nil, invalid("Password is empty or less than 6 characters")
	}

	u, err := s.Repo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Password != "" {
		hash, err := helpers.HashPassword(in.Password, s.BcryptCost)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	if in.Phone != "" {
		u.Phone = in.Phone
	}
	if in.Address != "" {
		u.Address = in.Address
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}

	s.indexUser(ctx, u)

	out := *u
	out.Password = ""
	out.Answer = ""
	return &out, nil
}

// ListUsers returns every account with credential fields zeroed.
func (s *AuthService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.User, 0, len(users))
	for _, u := range users {
		c := *u
		c.Password = ""
		c.Answer = ""
		out = append(out, &c)
	}
	return out, nil
}

// ChangeRole sets the target user's role. The value must be a recognized
// role; anything else is rejected before touching the store.
func (s *AuthService) ChangeRole(ctx context.Context, id, role string) (*entity.User, error) {
	if !entity.ValidRole(role) {
		return nil, invalid("Role must be one of: user, admin")
	}

	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	u.Role = role
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}

	s.indexUser(ctx, u)

	out := *u
	out.Password = ""
	out.Answer = ""
	return &out, nil
}

func (s *AuthService) enqueueMail(ctx context.Context, job mailer.EmailJob) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("to", job.To).Warn("email enqueue failed")
	}
}

func (s *AuthService) indexUser(ctx context.Context, u *entity.User) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"role":       u.Role,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
}

// SearchUsers performs a simple multi_match search on email and name.
func (s *AuthService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESUsersIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
