package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User represents a registered account. Local credentials and an external
// identity binding can coexist; after linking, the provider binding is the
// meaningful auth path and the local password stays as a random filler.
type User struct {
	ID                 uint      `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Username           string    `json:"username" db:"username" gorm:"size:80;not null;uniqueIndex"`
	Email              string    `json:"email" db:"email" gorm:"size:120;not null;uniqueIndex"`
	PasswordHash       string    `json:"-" db:"password_hash" gorm:"size:256;not null"`
	FirstName          string    `json:"firstName,omitempty" db:"first_name" gorm:"size:50"`
	LastName           string    `json:"lastName,omitempty" db:"last_name" gorm:"size:50"`
	Bio                string    `json:"bio,omitempty" db:"bio" gorm:"type:text"`
	ProfileImage       string    `json:"profileImage,omitempty" db:"profile_image" gorm:"size:200"`
	IsAdmin            bool      `json:"isAdmin" db:"is_admin" gorm:"not null;default:false"`
	EmailNotifications bool      `json:"emailNotifications" db:"email_notifications" gorm:"not null;default:true"`
	OAuthProvider      string    `json:"oauthProvider,omitempty" db:"oauth_provider" gorm:"size:50"`
	OAuthID            string    `json:"-" db:"oauth_id" gorm:"size:100"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// SetPassword hashes and stores the given plaintext password.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the plaintext password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// FullName returns "First Last" when both are set, falling back to the username.
func (u *User) FullName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}
