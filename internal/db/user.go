package db

import "time"

// UserStatus tracks the account lifecycle: registered but unverified,
// email verified, profile created, or disabled by an admin.
type UserStatus uint8

const (
	UserVerifying UserStatus = 0
	UserVerified  UserStatus = 2
	UserActive    UserStatus = 3
	UserDisabled  UserStatus = 4
)

// UserRole separates regular users from admins.
type UserRole uint8

const (
	RoleUser  UserRole = 0
	RoleAdmin UserRole = 1
)

// User holds credentials and the public profile. ProfileName is the
// URL-facing unique handle; DisplayName is free-form.
type User struct {
	ID          uint   `gorm:"primaryKey"`
	Username    string `gorm:"size:64;uniqueIndex;not null"`
	Password    string `gorm:"not null"`
	ProfileName string `gorm:"size:64;uniqueIndex;not null"`
	DisplayName string `gorm:"size:64;not null"`
	VerifyCode  string `gorm:"size:64"`
	Status      UserStatus `gorm:"not null;default:0"`
	Role        UserRole   `gorm:"not null;default:0"`
	CreatedAt   time.Time
	LastChanged time.Time `gorm:"autoUpdateTime"`
	Articles    []Article `gorm:"foreignKey:AuthorID"`
}

// IsActive reports whether the account may act on the site: the profile has
// been created and the account is not disabled.
func (u *User) IsActive() bool {
	return u.Status == UserActive
}

// IsEmailVerified reports whether the account passed email verification.
func (u *User) IsEmailVerified() bool {
	return u.Status == UserVerified || u.Status == UserActive
}
