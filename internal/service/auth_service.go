package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"fander/internal/domain"
	"fander/internal/repository"
)

// AuthService регистрация, вход и разрешение токена.
// Токен намеренно равен id пользователя: без подписи, без срока действия.
type AuthService struct {
	users repository.UserRepository
	tx    repository.TxManager
}

func NewAuthService(users repository.UserRepository, tx repository.TxManager) *AuthService {
	return &AuthService{users: users, tx: tx}
}

var (
	ErrUsernameTaken  = errors.New("username taken")
	ErrBadCredentials = errors.New("bad credentials")
)

// Credentials ответ register/login
type Credentials struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Profile публичная часть учётной записи
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Register создаёт пользователя с isAdmin=false. Имя уникально без учёта регистра.
func (s *AuthService) Register(ctx context.Context, username, password string) (*Credentials, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return nil, err
	}
	u := domain.User{Username: username, Password: string(hashed)}
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		_, lookupErr := s.users.GetUserByUsername(ctx, username)
		if lookupErr == nil {
			return ErrUsernameTaken
		}
		if !errors.Is(lookupErr, repository.ErrNotFound) {
			return lookupErr
		}
		return s.users.CreateUser(ctx, &u)
	})
	if err != nil {
		return nil, err
	}
	return &Credentials{Token: u.ID, Username: u.Username, IsAdmin: false}, nil
}

// Login проверяет пароль и возвращает токен (id пользователя)
func (s *AuthService) Login(ctx context.Context, username, password string) (*Credentials, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}
	u, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return &Credentials{Token: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}, nil
}

// ResolveToken возвращает пользователя по токену
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrInvalidInput
	}
	return s.users.GetUserByID(ctx, token)
}

// UpdateProfile частично обновляет имя и/или пароль.
// Пустое поле не трогается; новое имя проверяется на уникальность.
func (s *AuthService) UpdateProfile(ctx context.Context, userID, username, password string) (*Profile, error) {
	var updated *Profile
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		u, err := s.users.GetUserByID(ctx, userID)
		if err != nil {
			return err
		}
		if username != "" {
			other, lookupErr := s.users.GetUserByUsername(ctx, username)
			if lookupErr == nil && other.ID != u.ID {
				return ErrUsernameTaken
			}
			if lookupErr != nil && !errors.Is(lookupErr, repository.ErrNotFound) {
				return lookupErr
			}
			u.Username = username
		}
		if password != "" {
			hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
			if err != nil {
				return err
			}
			u.Password = string(hashed)
		}
		if err := s.users.UpdateUser(ctx, u); err != nil {
			return err
		}
		updated = &Profile{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
