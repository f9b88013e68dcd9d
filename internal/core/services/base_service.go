package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/fbangoura/bakery_ledger_app/internal/core/domain"
	portssvc "github.com/fbangoura/bakery_ledger_app/internal/core/ports/services"
	"github.com/fbangoura/bakery_ledger_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Users portssvc.UserReaderSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		// Return a default logger if not found in context
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// newAuditFields stamps the creator on a new entity. The display name lookup
// is best effort; ledger rows still carry the user ID when it fails.
func (s *BaseService) newAuditFields(ctx context.Context, creatorUserID string, now time.Time) domain.AuditFields {
	fields := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}
	if s.Users != nil {
		if user, err := s.Users.GetUserByID(ctx, creatorUserID); err == nil {
			fields.CreatedByName = user.Name
		} else {
			s.LogDebug(ctx, "Could not resolve creator name for audit fields",
				slog.String("user_id", creatorUserID))
		}
	}
	return fields
}

// resolveUserName returns the display name for a user ID, or the ID itself
// when the lookup fails.
func (s *BaseService) resolveUserName(ctx context.Context, userID string) string {
	if s.Users == nil {
		return userID
	}
	user, err := s.Users.GetUserByID(ctx, userID)
	if err != nil {
		return userID
	}
	return user.Name
}
