package di

import (
	"go.uber.org/fx"

	"github.com/maisonforma/storefront/internal/adapter/mailer"
	"github.com/maisonforma/storefront/internal/app"
	"github.com/maisonforma/storefront/internal/config"
	"github.com/maisonforma/storefront/internal/logger"
	"github.com/maisonforma/storefront/internal/pkg/auth"
	"github.com/maisonforma/storefront/internal/pkg/signature"
	"github.com/maisonforma/storefront/internal/redisx"
	"github.com/maisonforma/storefront/internal/server/http/handlers"
	"github.com/maisonforma/storefront/internal/server/http/router"
	"github.com/maisonforma/storefront/internal/storage/postgres"
	"github.com/maisonforma/storefront/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		signature.Module,
		postgres.Module,
		redisx.Module,
		mailer.Module,
		usecase.Module,
		fx.Provide(
			func(s *postgres.Storage) app.HealthChecker { return s },
			func(f *app.StorefrontFacade) handlers.StorefrontFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
