//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"videomod/internal/biz"
	"videomod/internal/conf"
	"videomod/internal/data"
	"videomod/internal/server"
	"videomod/internal/service"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// wireApp init application.
func wireApp(*conf.Server, *conf.Data, *conf.Moderation, log.Logger) (*app, func(), error) {
	panic(wire.Build(
		data.ProviderSet,
		biz.ProviderSet,
		service.ProviderSet,
		server.ProviderSet,
		newApp,
	))
}
