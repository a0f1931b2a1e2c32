package service

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"storefront/pkg/domain/model"
)

type SessionService interface {
	Signup(name, phone, email, password string) (*model.User, error)
	Login(email, password string) (*model.User, error)
	Logout() error
	Current() (*model.User, bool)
	Users() []model.User
}

// SessionConfig controls the seeded session. The admin user is always
// present; StartAuthenticated additionally logs it in at construction, which
// mirrors the demo configuration and should stay off in production.
type SessionConfig struct {
	StartAuthenticated bool
}

func NewSessionService(cfg SessionConfig, tokens model.SlotStore, dispatcher EventDispatcher) SessionService {
	s := &sessionService{tokens: tokens, dispatcher: dispatcher}
	admin := seedAdmin()
	s.users = append(s.users, admin)
	if cfg.StartAuthenticated {
		s.current = admin
		s.authenticated = true
	}
	return s
}

type sessionService struct {
	mu            sync.Mutex
	users         []*model.User
	current       *model.User
	authenticated bool
	tokens        model.SlotStore
	dispatcher    EventDispatcher
}

func seedAdmin() *model.User {
	return &model.User{
		ID:        "1744885326220",
		Username:  "admin",
		Role:      model.RoleAdmin,
		FirstName: "Admin",
		LastName:  "User",
		Email:     "admin@mail.com",
		Phone:     "1234567890",
		Password:  "admin",
		Addresses: []model.Address{},
	}
}

func (s *sessionService) Signup(name, phone, email, password string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findByEmail(email) != nil {
		return nil, model.ErrEmailTaken
	}

	firstName := name
	lastName := ""
	if parts := strings.SplitN(name, " ", 2); len(parts) == 2 {
		firstName, lastName = parts[0], parts[1]
	}

	user := &model.User{
		ID:        uuid.NewString(),
		Username:  name,
		Role:      model.RoleUser,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
		Password:  password,
		Addresses: []model.Address{},
	}
	s.users = append(s.users, user)

	_ = s.dispatcher.Dispatch(model.UserRegistered{UserID: user.ID, Email: email})

	copied := *user
	return &copied, nil
}

func (s *sessionService) Login(email, password string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.findByEmail(email)
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	if user.Password != password {
		return nil, model.ErrInvalidPassword
	}

	// The token is written for the view layer to carry around; nothing
	// validates it. Written before the session fields so a failed save
	// leaves the session state unchanged.
	token := uuid.NewString()
	if err := s.tokens.Save(model.SlotToken, token); err != nil {
		return nil, err
	}

	s.current = user
	s.authenticated = true

	_ = s.dispatcher.Dispatch(model.UserLoggedIn{UserID: user.ID, Role: user.Role})

	copied := *user
	return &copied, nil
}

func (s *sessionService) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		_ = s.dispatcher.Dispatch(model.UserLoggedOut{UserID: s.current.ID})
	}
	s.current = nil
	s.authenticated = false

	return s.tokens.Delete(model.SlotToken)
}

func (s *sessionService) Current() (*model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.authenticated || s.current == nil {
		return nil, false
	}
	copied := *s.current
	return &copied, true
}

func (s *sessionService) Users() []model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]model.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, *user)
	}
	return users
}

// callers hold the lock.
func (s *sessionService) findByEmail(email string) *model.User {
	for _, user := range s.users {
		if user.Email == email {
			return user
		}
	}
	return nil
}
