package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/intraportal/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// UserService manages back-office accounts.
type UserService struct {
	db *gorm.DB
}

// UserInput describes a new account.
type UserInput struct {
	Email       string
	Name        string
	Password    string
	Role        string
	Permissions []string
}

// UserUpdate carries optional changes. Nil fields are left untouched.
type UserUpdate struct {
	Email       *string
	Name        *string
	Password    *string
	Role        *string
	Permissions *[]string
}

// NewUserService creates a UserService.
func NewUserService(gdb *gorm.DB) *UserService {
	return &UserService{db: gdb}
}

// List returns every account ordered by id.
func (s *UserService) List() ([]db.User, error) {
	var users []db.User
	if err := s.db.Order("id asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Get fetches an account by id.
func (s *UserService) Get(id uint) (*db.User, error) {
	var user db.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create registers a new account. Role defaults to editor.
func (s *UserService) Create(input UserInput) (*db.User, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	role := normalizeRole(input.Role)

	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, required("name")
	}
	if input.Password == "" {
		return nil, required("password")
	}
	if err := validateRole(role); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(email, 0); err != nil {
		return nil, err
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := db.User{
		Email:       email,
		Name:        name,
		Password:    hashed,
		Role:        role,
		Permissions: cleanPermissions(input.Permissions),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies the non-nil fields of input. A new password is rehashed.
func (s *UserService) Update(id uint, input UserUpdate) (*db.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		if err := s.ensureEmailFree(email, id); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, required("name")
		}
		user.Name = name
	}
	if input.Role != nil {
		role := normalizeRole(*input.Role)
		if err := validateRole(role); err != nil {
			return nil, err
		}
		user.Role = role
	}
	if input.Permissions != nil {
		user.Permissions = cleanPermissions(*input.Permissions)
	}
	if input.Password != nil {
		if *input.Password == "" {
			return nil, required("password")
		}
		hashed, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account.
func (s *UserService) Delete(id uint) error {
	result := s.db.Delete(&db.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// EnsureAdmin creates an admin account unless the email is already registered.
// The second return value reports whether a new account was created.
func (s *UserService) EnsureAdmin(email, password string) (*db.User, bool, error) {
	email = normalizeEmail(email)
	var existing db.User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	user, err := s.Create(UserInput{
		Email:    email,
		Name:     "Administrator",
		Password: password,
		Role:     db.RoleAdmin,
	})
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *UserService) ensureEmailFree(email string, exceptID uint) error {
	query := s.db.Model(&db.User{}).Where("email = ?", email)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return required("email")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		return invalid("email", "must be a valid address")
	}
	return nil
}

func normalizeRole(role string) string {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		return db.RoleEditor
	}
	return role
}

func validateRole(role string) error {
	if role != db.RoleAdmin && role != db.RoleEditor {
		return invalid("role", "must be admin or editor")
	}
	return nil
}

func cleanPermissions(perms []string) db.StringList {
	out := db.StringList{}
	seen := make(map[string]struct{}, len(perms))
	for _, p := range perms {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
