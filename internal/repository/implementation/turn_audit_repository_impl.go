package implementation

import (
	"context"

	"code-assistant-be/internal/model"
	"code-assistant-be/internal/repository/contract"

	"gorm.io/gorm"
)

type TurnAuditRepositoryImpl struct {
	db *gorm.DB
}

func NewTurnAuditRepository(db *gorm.DB) contract.TurnAuditRepository {
	return &TurnAuditRepositoryImpl{db: db}
}

func (r *TurnAuditRepositoryImpl) Create(ctx context.Context, audit *model.TurnAudit) error {
	return r.db.WithContext(ctx).Create(audit).Error
}

func (r *TurnAuditRepositoryImpl) FindBySessionId(ctx context.Context, sessionID string, limit int) ([]*model.TurnAudit, error) {
	var audits []*model.TurnAudit
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&audits).Error
	return audits, err
}
