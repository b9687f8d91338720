// Package usecase implements the user business logic and orchestrates user domain operations.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/allisson/blogs/internal/authz"
	"github.com/allisson/blogs/internal/database"
	identityDomain "github.com/allisson/blogs/internal/identity/domain"
	identityService "github.com/allisson/blogs/internal/identity/service"
	"github.com/allisson/blogs/internal/user/domain"
	appValidation "github.com/allisson/blogs/internal/validation"
)

// RegisterUserInput contains the input data for user registration
type RegisterUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UseCase defines the interface for user business logic operations
type UseCase interface {
	// RegisterUser creates a new account with the USER role and no capability
	// grants. Registration is open; elevated roles are assigned out of band.
	RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error)

	// ListUsers returns users newest first. Restricted to administrators
	// since the listing exposes email addresses.
	ListUsers(ctx context.Context, identity *identityDomain.Identity, offset, limit int) ([]*domain.User, error)

	// AssignPermission grants a capability to a user. Restricted to
	// administrators. Granting an already-held capability is a no-op that
	// still succeeds, so repeated grants converge on the same state.
	AssignPermission(
		ctx context.Context,
		identity *identityDomain.Identity,
		userID uuid.UUID,
		capability identityDomain.Capability,
	) (*domain.User, error)

	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// UserRepository interface defines user repository operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
	UpdatePermissions(ctx context.Context, id uuid.UUID, permissions []identityDomain.Capability) error
	UpdateRole(ctx context.Context, id uuid.UUID, role identityDomain.Role) error
}

// UserUseCase handles user-related business logic
type UserUseCase struct {
	txManager       database.TxManager
	userRepo        UserRepository
	passwordService identityService.PasswordService
}

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	passwordService identityService.PasswordService,
) UseCase {
	return &UserUseCase{
		txManager:       txManager,
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}

// validateRegisterUserInput validates the registration input using jellydator/validation
func (uc *UserUseCase) validateRegisterUserInput(input RegisterUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:     8,
				RequireUpper:  true,
				RequireLower:  true,
				RequireNumber: true,
			},
		),
	)
	return appValidation.WrapValidationError(err)
}

// RegisterUser registers a new user with the USER role
func (uc *UserUseCase) RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	// Validate input
	if err := uc.validateRegisterUserInput(input); err != nil {
		return nil, err
	}

	// Hash the password
	hashedPassword, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.TrimSpace(strings.ToLower(input.Email)),
		Password: hashedPassword,
		Role:     identityDomain.RoleUser,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ListUsers returns users newest first, restricted to administrators
func (uc *UserUseCase) ListUsers(
	ctx context.Context,
	identity *identityDomain.Identity,
	offset, limit int,
) ([]*domain.User, error) {
	if err := authz.RequireAdmin(identity); err != nil {
		return nil, err
	}
	return uc.userRepo.List(ctx, offset, limit)
}

// AssignPermission grants a capability to a user, restricted to administrators
func (uc *UserUseCase) AssignPermission(
	ctx context.Context,
	identity *identityDomain.Identity,
	userID uuid.UUID,
	capability identityDomain.Capability,
) (*domain.User, error) {
	if err := authz.RequireAdmin(identity); err != nil {
		return nil, err
	}

	if err := validation.Validate(string(capability),
		validation.Required.Error("capability is required"),
		appValidation.CapabilityName,
	); err != nil {
		return nil, appValidation.WrapValidationError(err)
	}

	var user *domain.User

	// Read and rewrite the grant list in one transaction so concurrent
	// assignments cannot drop each other's capabilities.
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		user, err = uc.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		// Already granted: succeed without a second row write
		if user.HasPermission(capability) {
			return nil
		}

		user.Permissions = append(user.Permissions, capability)
		return uc.userRepo.UpdatePermissions(ctx, userID, user.Permissions)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByID retrieves a user by ID
func (uc *UserUseCase) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}
