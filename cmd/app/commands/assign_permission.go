package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/blogs/internal/app"
	"github.com/allisson/blogs/internal/config"
	identityDomain "github.com/allisson/blogs/internal/identity/domain"
)

// RunAssignPermission grants a capability to an existing user.
// The command runs with operator privileges, so the grant goes through the
// same use case an ADMIN would use over the API.
//
// Requirements: Database must be migrated and accessible.
func RunAssignPermission(ctx context.Context, userIDStr, capabilityStr string) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return fmt.Errorf("invalid user id: %s", userIDStr)
	}

	capability := identityDomain.Capability(strings.TrimSpace(capabilityStr))

	useCase, err := container.UserUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize user use case: %w", err)
	}

	// The CLI is a trusted operator surface, act as an administrator.
	operator := &identityDomain.Identity{Role: identityDomain.RoleAdmin}

	user, err := useCase.AssignPermission(ctx, operator, userID, capability)
	if err != nil {
		return fmt.Errorf("failed to assign permission: %w", err)
	}

	fmt.Printf("Permission granted:\n  User:        %s\n  Capability:  %s\n  Permissions: %v\n",
		user.ID, capability, user.Permissions)

	logger.Info("permission assigned",
		slog.String("user_id", user.ID.String()),
		slog.String("capability", string(capability)),
	)

	return nil
}
