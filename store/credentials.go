package store

import (
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/tableservice-client/models"
)

// Credential is the single persisted row of client state: the bearer tokens
// and the last-known role. It is written by login/logout only; every other
// caller reads through CredentialStore.
type Credential struct {
	ID           uint            `gorm:"primaryKey"`
	AccessToken  string          `gorm:"type:text;not null"`
	RefreshToken string          `gorm:"type:text;not null"`
	Role         models.UserRole `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

var ErrNotLoggedIn = errors.New("no stored credentials")

type CredentialStore struct {
	DB *gorm.DB
}

// Open opens (or creates) the local state database at path.
func Open(path string) (*CredentialStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Credential{}); err != nil {
		return nil, err
	}
	return &CredentialStore{DB: db}, nil
}

// Save replaces the stored credentials. Called from the login flow only,
// and only after a fully successful login response.
func (s *CredentialStore) Save(accessToken, refreshToken string, role models.UserRole) error {
	cred := Credential{
		ID:           1,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Role:         role,
		UpdatedAt:    time.Now(),
	}
	return s.DB.Save(&cred).Error
}

// Load returns the stored credentials or ErrNotLoggedIn.
func (s *CredentialStore) Load() (*Credential, error) {
	var cred Credential
	if err := s.DB.First(&cred, 1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}
	return &cred, nil
}

// AccessToken implements the token source read by every outgoing request.
// An empty string means not logged in.
func (s *CredentialStore) AccessToken() string {
	cred, err := s.Load()
	if err != nil {
		return ""
	}
	return cred.AccessToken
}

// Clear removes the stored credentials. Called from the logout flow.
func (s *CredentialStore) Clear() error {
	return s.DB.Delete(&Credential{}, 1).Error
}
