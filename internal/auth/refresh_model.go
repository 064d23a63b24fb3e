package auth

import "time"

// RefreshToken guarda apenas o hash do token; o valor cru vive no cookie.
type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	Email     string `gorm:"size:255"`
	FamilyID  string `gorm:"index"`
	Hash      string `gorm:"uniqueIndex"`
	IsAdmin   bool
	ExpiresAt time.Time `gorm:"index"`
	RevokedAt *time.Time
	CreatedAt time.Time
}
