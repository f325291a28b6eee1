package model

import (
	"time"

	"github.com/google/uuid"
)

// TurnAudit is an append-only record of handled turns, kept for offline
// debugging of classifier and retrieval behavior. Dialogue state itself lives
// in the session store, never here.
type TurnAudit struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId string    `gorm:"type:text;not null;index"`
	Utterance string    `gorm:"type:text;not null"`
	Intent    string    `gorm:"type:text;not null"`
	ResultIds string    `gorm:"type:text"` // comma-joined item ids, empty for non-search turns
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (TurnAudit) TableName() string {
	return "turn_audits"
}
