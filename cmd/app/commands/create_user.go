package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/allisson/blogs/internal/app"
	"github.com/allisson/blogs/internal/config"
	identityDomain "github.com/allisson/blogs/internal/identity/domain"
	userUsecase "github.com/allisson/blogs/internal/user/usecase"
)

// RunCreateUser creates a new user account from the command line.
// Accounts are always created through the registration flow so the same
// validation and password policy applies, then the role is promoted when
// EDITOR or ADMIN is requested.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(ctx context.Context, name, email, password, roleStr string) error {
	cfg := config.Load()

	container := app.NewContainer(cfg)
	logger := container.Logger()

	defer closeContainer(container, logger)

	role, ok := identityDomain.ParseRole(roleStr)
	if !ok {
		return fmt.Errorf("invalid role: %s (valid options: USER, EDITOR, ADMIN)", roleStr)
	}

	useCase, err := container.UserUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize user use case: %w", err)
	}

	user, err := useCase.RegisterUser(ctx, userUsecase.RegisterUserInput{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if role != identityDomain.RoleUser {
		repo, err := container.UserRepository()
		if err != nil {
			return fmt.Errorf("failed to initialize user repository: %w", err)
		}

		if err := repo.UpdateRole(ctx, user.ID, role); err != nil {
			return fmt.Errorf("failed to promote user to %s: %w", role, err)
		}
	}

	fmt.Printf("User created:\n  ID:    %s\n  Email: %s\n  Role:  %s\n", user.ID, user.Email, role)

	logger.Info("user created",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(role)),
	)

	return nil
}
