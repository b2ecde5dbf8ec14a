package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IslamGh2004/sawtlib/internal/entities"
)

// AuditController lists the audit trail for administrators.
type AuditController struct {
	auditor Auditor
}

func NewAuditController(auditor Auditor) *AuditController {
	return &AuditController{auditor: auditor}
}

// List returns audit events newest first, optionally filtered by
// event type, with limit/offset pagination.
func (controller *AuditController) List(c *gin.Context) {
	limit, offset := parseLimitOffset(c, 50)
	eventType := entities.AuditEventType(c.Query("type"))

	events, total, err := controller.auditor.GetEvents(eventType, limit, offset)
	if err != nil {
		respondInternalError(c, err, "list audit events")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}
