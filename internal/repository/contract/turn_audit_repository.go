package contract

import (
	"context"

	"code-assistant-be/internal/model"
)

type TurnAuditRepository interface {
	Create(ctx context.Context, audit *model.TurnAudit) error
	FindBySessionId(ctx context.Context, sessionID string, limit int) ([]*model.TurnAudit, error)
}
