package users

import (
	"context"
	"log/slog"

	"github.com/gatehouse-api/gatehouse/internal/auth"
	"github.com/gatehouse-api/gatehouse/internal/shared"
)

// Service handles profile mutations for an already-authenticated user.
type Service struct {
	repo   Repository
	audit  shared.Auditor
	logger *slog.Logger
}

// NewService builds a Service instance. audit may be nil.
func NewService(repo Repository, audit shared.Auditor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, audit: audit, logger: logger}
}

// ChangeEmail updates the user's email. On a uniqueness conflict the
// stored email is unchanged and shared.ErrEmailTaken is returned.
func (s *Service) ChangeEmail(ctx context.Context, user *shared.User, newEmail string) error {
	if err := s.repo.UpdateEmail(ctx, user.ID, newEmail); err != nil {
		return err
	}
	s.recordAudit(ctx, user.Email, "changed email", map[string]any{"email": newEmail})
	s.logger.Info("changed email", slog.String("actor", user.Email), slog.String("email", newEmail))
	return nil
}

// ChangePassword re-hashes and stores the new password. It always
// succeeds for an authenticated user and a non-empty password.
func (s *Service) ChangePassword(ctx context.Context, user *shared.User, newPassword string) error {
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return err
	}
	s.recordAudit(ctx, user.Email, "changed password", nil)
	s.logger.Info("changed password", slog.String("actor", user.Email))
	return nil
}

func (s *Service) recordAudit(ctx context.Context, actor, action string, meta map[string]any) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, shared.AuditRecord{Actor: actor, Action: action, Meta: meta}); err != nil {
		s.logger.Warn("audit record", slog.String("action", action), slog.Any("error", err))
	}
}
