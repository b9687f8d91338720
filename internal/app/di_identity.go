package app

import (
	"fmt"

	identityService "github.com/allisson/blogs/internal/identity/service"
	identityUsecase "github.com/allisson/blogs/internal/identity/usecase"
)

// PasswordService returns the password hashing service.
func (c *Container) PasswordService() identityService.PasswordService {
	c.passwordServiceInit.Do(func() {
		c.passwordService = identityService.NewPasswordService()
	})
	return c.passwordService
}

// TokenService returns the session token service.
// Requires AUTH_TOKEN_SECRET to be configured.
func (c *Container) TokenService() (identityService.TokenService, error) {
	c.tokenServiceInit.Do(func() {
		if c.config.AuthTokenSecret == "" {
			c.initErrors["tokenService"] = fmt.Errorf("AUTH_TOKEN_SECRET is not configured")
			return
		}
		c.tokenService = identityService.NewTokenService(
			c.config.AuthTokenSecret,
			c.config.AuthTokenExpiration,
		)
	})
	if storedErr, exists := c.initErrors["tokenService"]; exists {
		return nil, storedErr
	}
	return c.tokenService, nil
}

// AuthUseCase returns the authentication use case.
func (c *Container) AuthUseCase() (identityUsecase.AuthUseCase, error) {
	var err error
	c.authUseCaseInit.Do(func() {
		c.authUseCase, err = c.initAuthUseCase()
		if err != nil {
			c.initErrors["authUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authUseCase"]; exists {
		return nil, storedErr
	}
	return c.authUseCase, nil
}

// initAuthUseCase creates the authentication use case with all its dependencies.
func (c *Container) initAuthUseCase() (identityUsecase.AuthUseCase, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for auth use case: %w", err)
	}

	tokenService, err := c.TokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get token service for auth use case: %w", err)
	}

	return identityUsecase.NewAuthUseCase(userRepo, c.PasswordService(), tokenService), nil
}
