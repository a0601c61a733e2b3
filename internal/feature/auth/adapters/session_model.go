package adapters

import (
	"time"

	"mono_backend/internal/feature/auth/domain/entity"
)

// SessionModel is the GORM model for the sessions table.
// Used as the fallback store when Redis is unavailable.
type SessionModel struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    uint      `gorm:"index;not null"`
	UserAgent string    `gorm:"size:512"`
	IPAddress string    `gorm:"size:45"` // IPv6 max length
	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
}

// TableName returns the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}

// ToEntity converts the GORM model to a domain entity.
func (m *SessionModel) ToEntity() *entity.Session {
	return &entity.Session{
		ID:        m.ID,
		UserID:    m.UserID,
		UserAgent: m.UserAgent,
		IPAddress: m.IPAddress,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
	}
}

// SessionModelFromEntity converts a domain entity to a GORM model.
func SessionModelFromEntity(s *entity.Session) *SessionModel {
	return &SessionModel{
		ID:        s.ID,
		UserID:    s.UserID,
		UserAgent: s.UserAgent,
		IPAddress: s.IPAddress,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}
}

// FlashModel is the GORM model for one-shot flash messages.
// Rows are deleted as soon as they are consumed by a render.
type FlashModel struct {
	ID        uint   `gorm:"primaryKey"`
	SessionID string `gorm:"index;size:64;not null"`
	Message   string `gorm:"size:512"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM.
func (FlashModel) TableName() string {
	return "flashes"
}
