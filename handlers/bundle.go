package handlers

import (
	"marketplace/middleware"
)

// HandlerBundle groups every endpoint handler the router registers.
type HandlerBundle struct {
	Authenticator middleware.Authenticator

	Auth         *AuthHandler
	Catalog      *CatalogHandler
	Onboarding   *OnboardingHandler
	Professional *ProfessionalHandler
	Admin        *AdminHandler
}
