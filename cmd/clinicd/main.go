// Command clinicd runs the in-memory development server that backs the
// clinic client: JWT auth with refresh, patients, services, billing and
// reporting endpoints.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/guttosm/clinic-client/config"
	"github.com/guttosm/clinic-client/internal/app"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	router, err := app.InitializeApp(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application")
	}

	srv := app.NewServer(router, cfg.Stub.Port)
	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("server terminated")
	}
}
