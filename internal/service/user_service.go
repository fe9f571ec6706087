package service

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/inkpress/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService owns accounts and public profiles. A fresh account starts in
// Verifying, becomes Verified once the emailed code comes back, and Active
// once the profile is created; only active accounts may write.
type UserService struct {
	db    *gorm.DB
	email EmailSender
}

// NewUserService creates a UserService instance.
func NewUserService(gdb *gorm.DB, email EmailSender) *UserService {
	return &UserService{db: gdb, email: email}
}

// GetByID fetches a user by id.
func (s *UserService) GetByID(id uint) (*db.User, error) {
	var user db.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername fetches a user by login name.
func (s *UserService) GetByUsername(username string) (*db.User, error) {
	var user db.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Register creates a Verifying account with a placeholder profile and sends
// the verification code. A taken username is a conflict.
func (s *UserService) Register(username, password string) (*db.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	shortID := uuid.NewString()[:8]
	user := &db.User{
		Username:    username,
		Password:    string(hashed),
		ProfileName: "user-" + shortID,
		DisplayName: "User " + shortID,
		VerifyCode:  uuid.NewString(),
		Status:      db.UserVerifying,
	}
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	if err := s.email.SendVerification(user.Username, user.VerifyCode); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate checks login credentials. Unknown usernames and wrong
// passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(username, password string) (*db.User, error) {
	user, err := s.GetByUsername(username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	return user, nil
}

// VerifyEmail redeems a verification code, moving the account from Verifying
// to Verified. Redeeming twice or with the wrong code fails.
func (s *UserService) VerifyEmail(user *db.User, code string) error {
	if user.Status != db.UserVerifying {
		return ErrBadVerifyCode
	}
	if user.VerifyCode == "" ||
		subtle.ConstantTimeCompare([]byte(user.VerifyCode), []byte(code)) != 1 {
		return ErrBadVerifyCode
	}

	if err := s.db.Model(&db.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{"status": db.UserVerified, "verify_code": ""}).Error; err != nil {
		return err
	}
	user.Status = db.UserVerified
	user.VerifyCode = ""
	return nil
}

// CreateProfile claims a public profile name for a verified account and
// activates it. A taken profile name is a conflict.
func (s *UserService) CreateProfile(user *db.User, profileName, displayName string) error {
	var existing db.User
	err := s.db.Where("profile_name = ? AND id <> ?", profileName, user.ID).First(&existing).Error
	if err == nil {
		return ErrProfileNameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	updates := map[string]interface{}{
		"profile_name": profileName,
		"display_name": strings.TrimSpace(displayName),
	}
	if user.Status == db.UserVerified {
		updates["status"] = db.UserActive
	}

	if err := s.db.Model(&db.User{}).
		Where("id = ?", user.ID).
		Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrProfileNameTaken
		}
		return err
	}

	user.ProfileName = profileName
	user.DisplayName = strings.TrimSpace(displayName)
	if user.Status == db.UserVerified {
		user.Status = db.UserActive
	}
	return nil
}

// GetProfile fetches a public profile by its name. Accounts still verifying
// have no public profile.
func (s *UserService) GetProfile(profileName string) (*db.User, error) {
	var user db.User
	if err := s.db.
		Where("profile_name = ? AND status <> ?", profileName, db.UserVerifying).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// EnsureRootAdmin creates the admin account from configuration if both
// values are set and the username is free. Used at startup.
func (s *UserService) EnsureRootAdmin(username, password string) error {
	trimmedUser := strings.TrimSpace(username)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedUser == "" || trimmedPassword == "" {
		return nil
	}

	if _, err := s.GetByUsername(trimmedUser); err == nil {
		return nil
	} else if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.db.Create(&db.User{
		Username:    trimmedUser,
		Password:    string(hashed),
		ProfileName: trimmedUser,
		DisplayName: trimmedUser,
		Status:      db.UserActive,
		Role:        db.RoleAdmin,
	}).Error
}
