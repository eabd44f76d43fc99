// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"nopea_backend/internal/app"
	"nopea_backend/internal/config"
	"nopea_backend/internal/jobs"
	"nopea_backend/internal/platform/crypto"
	"nopea_backend/internal/platform/database"
	"nopea_backend/internal/platform/logger"
	"nopea_backend/internal/user"

	"github.com/google/wire"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		crypto.NewBcryptHasher,
		wire.Bind(new(user.PasswordHasher), new(*crypto.BcryptHasher)),

		// User module
		user.NewGORMRepository,
		user.NewService,
		wire.Bind(new(user.Service), new(*user.ServiceImplementation)),
		user.NewHandler,

		// Jobs
		jobs.NewAccountSummaryJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}
