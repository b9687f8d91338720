// Package usecase implements authentication business logic.
package usecase

import (
	"context"

	validation "github.com/jellydator/validation"

	identityDomain "github.com/allisson/blogs/internal/identity/domain"
	identityService "github.com/allisson/blogs/internal/identity/service"
	userDomain "github.com/allisson/blogs/internal/user/domain"
	appValidation "github.com/allisson/blogs/internal/validation"
)

// LoginInput contains the credentials presented at login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginOutput carries the signed session token returned on successful login.
type LoginOutput struct {
	Token string `json:"token"`
}

// AuthUseCase defines the interface for authentication operations
type AuthUseCase interface {
	// Login verifies the credentials and issues a signed session token
	// embedding the user's authorization profile. Unknown emails and wrong
	// passwords return the same error so responses never reveal which
	// accounts exist.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
}

// UserFinder is the slice of the user repository needed for authentication.
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*userDomain.User, error)
}

// authUseCase handles credential verification and token issuance.
type authUseCase struct {
	userFinder      UserFinder
	passwordService identityService.PasswordService
	tokenService    identityService.TokenService
}

// NewAuthUseCase creates a new AuthUseCase
func NewAuthUseCase(
	userFinder UserFinder,
	passwordService identityService.PasswordService,
	tokenService identityService.TokenService,
) AuthUseCase {
	return &authUseCase{
		userFinder:      userFinder,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Login verifies the credentials and issues a session token
func (uc *authUseCase) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.Email,
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
		),
	)
	if err != nil {
		return nil, appValidation.WrapValidationError(err)
	}

	user, err := uc.userFinder.GetByEmail(ctx, input.Email)
	if err != nil {
		// Collapse unknown email into the generic credential error
		return nil, identityDomain.ErrInvalidCredentials
	}

	if !uc.passwordService.ComparePassword(input.Password, user.Password) {
		return nil, identityDomain.ErrInvalidCredentials
	}

	token, err := uc.tokenService.IssueToken(user.Identity())
	if err != nil {
		return nil, err
	}

	return &LoginOutput{Token: token}, nil
}
