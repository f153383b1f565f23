package usecase

import (
	"go.uber.org/fx"

	"github.com/maisonforma/storefront/internal/config"
	"github.com/maisonforma/storefront/internal/pkg/auth"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewLedger,
	NewInventory,
	NewReconciler,
	newAdminAuth,
)

type adminAuthParams struct {
	fx.In

	Strategy auth.Strategy
	Hasher   auth.PasswordHasher
	Config   *config.Config
}

func newAdminAuth(p adminAuthParams) *AdminAuth {
	return NewAdminAuth(p.Strategy, p.Hasher, p.Config.AdminPasswordHash)
}
