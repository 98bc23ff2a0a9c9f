package di

import (
	"github.com/tabledash/tabledash/internal/adapter/catalog"
	"github.com/tabledash/tabledash/internal/app"
	"github.com/tabledash/tabledash/internal/config"
	"github.com/tabledash/tabledash/internal/logger"
	"github.com/tabledash/tabledash/internal/pkg/auth"
	"github.com/tabledash/tabledash/internal/server/http/handlers"
	"github.com/tabledash/tabledash/internal/server/http/router"
	"github.com/tabledash/tabledash/internal/storage/postgres"
	"github.com/tabledash/tabledash/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		catalog.Module,
		usecase.Module,
		fx.Provide(func(facade *app.TabledashFacade) handlers.TabledashFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
