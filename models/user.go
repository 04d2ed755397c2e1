package models

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"time"

	"golang.org/x/crypto/pbkdf2"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer  UserRole = "customer"
	RoleDeliverer UserRole = "deliverer"
	RoleAdmin     UserRole = "admin"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleCustomer, RoleDeliverer, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:50;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Salt         string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"not null;default:'customer'"`
	Phone        string    `json:"phone" gorm:"not null"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// KDF parameters: sha512, 1000 rounds, 64-byte key, 16-byte salt.
const (
	kdfIterations = 1000
	kdfKeyLen     = 64
	kdfSaltLen    = 16
)

// SetPassword derives a fresh salt and stores the salted hash.
func (u *User) SetPassword(password string) error {
	salt := make([]byte, kdfSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return err
	}
	hash := pbkdf2.Key([]byte(password), salt, kdfIterations, kdfKeyLen, sha512.New)
	u.Salt = hex.EncodeToString(salt)
	u.PasswordHash = hex.EncodeToString(hash)
	return nil
}

// MatchPassword checks an entered password against the stored hash.
func (u *User) MatchPassword(password string) bool {
	salt, err := hex.DecodeString(u.Salt)
	if err != nil {
		return false
	}
	hash := pbkdf2.Key([]byte(password), salt, kdfIterations, kdfKeyLen, sha512.New)
	return subtle.ConstantTimeCompare([]byte(hex.EncodeToString(hash)), []byte(u.PasswordHash)) == 1
}
