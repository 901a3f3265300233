package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"newsdesk/global"
	"newsdesk/models"
)

// SessionTTL is the absolute session lifetime. Sessions do not renew on
// activity.
const SessionTTL = 24 * time.Hour

var ErrSessionNotFound = errors.New("session not found or expired")

// CreateSession issues a random 128-bit session id for the user and
// persists it with an absolute expiry.
func CreateSession(userID uint) (*models.Session, error) {
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(SessionTTL),
	}
	if err := global.DB.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSession resolves a session id. Expired sessions are deleted on
// read; there is no background sweep.
func GetSession(id string) (*models.Session, error) {
	var session models.Session
	err := global.DB.First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	if !session.ExpiresAt.After(time.Now()) {
		global.DB.Delete(&models.Session{}, "id = ?", id)
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

// DeleteSession removes a session unconditionally. Deleting an unknown
// id is not an error.
func DeleteSession(id string) error {
	return global.DB.Delete(&models.Session{}, "id = ?", id).Error
}
