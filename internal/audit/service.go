// Package audit provides high-level audit logging for admin actions.
// Events go to the audit_events table and are pruned on a schedule.
package audit

import (
	"log"
	"time"

	"github.com/IslamGh2004/sawtlib/internal/database/audit"
	"github.com/IslamGh2004/sawtlib/internal/entities"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.repo.LogEvent(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// LogAdminAction records a mutation performed from the admin dashboard.
// action follows the "<entity>_<verb>" convention, e.g. "book_create".
func (s *Service) LogAdminAction(adminID uint, eventType entities.AuditEventType, action, description string, entityID uint, err error) {
	event := &entities.AuditEvent{
		UserID:      adminID,
		EventType:   eventType,
		Action:      action,
		Description: description,
		EntityType:  string(eventType),
		Status:      entities.AuditStatusSuccess,
	}
	if entityID != 0 {
		event.EntityID = &entityID
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogAuth records a sign-in or sign-out attempt.
func (s *Service) LogAuth(userID uint, action, description, ipAddress string, err error) {
	event := &entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventAuth,
		Action:      action,
		Description: description,
		IPAddress:   ipAddress,
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// LogExport records a CSV export.
func (s *Service) LogExport(adminID uint, resource string, rows int, err error) {
	event := &entities.AuditEvent{
		UserID:      adminID,
		EventType:   entities.AuditEventExport,
		Action:      resource + "_export",
		Description: "Exported " + resource + " to CSV",
		Status:      entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// GetEvents returns audit events for the admin log screen.
func (s *Service) GetEvents(eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(eventType, limit, offset)
}

// Prune deletes events older than the retention window.
func (s *Service) Prune(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	return s.repo.DeleteOlderThan(cutoff)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
