package auditlog

import (
	"go.uber.org/zap"

	"stockflow/pkg/models"
)

type LogPersister interface {
	PersistLog(auditLog models.AuditLog, data interface{}) error
}

type Auditlog struct {
	r   LogPersister
	log *zap.Logger
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

// Log appends an audit entry for item. Failures are logged and swallowed so
// auditing never fails the originating request.
func (a *Auditlog) Log(action string, data interface{}, item Auditable) {
	auditLog := item.CreateLogView()
	auditLog.Action = action

	if err := a.r.PersistLog(auditLog, data); err != nil {
		a.log.Warn("Unable to create audit log entry",
			zap.Int("resource_id", auditLog.ResourceID),
			zap.String("resource_type", auditLog.ResourceType),
			zap.Error(err),
		)
		return
	}

	a.log.Debug("Created audit log entry",
		zap.Int("resource_id", auditLog.ResourceID),
		zap.String("action", action),
	)
}

func NewAuditLog(r LogPersister, log *zap.Logger) *Auditlog {
	return &Auditlog{r: r, log: log}
}
