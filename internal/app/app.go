// Package app provides initialization and wiring for the clinicd stub server.
package app

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/clinic-client/config"
	"github.com/guttosm/clinic-client/internal/logger"
	"github.com/guttosm/clinic-client/internal/stubserver"
)

// InitializeApp wires the stub server's dependencies and returns its router.
func InitializeApp(cfg *config.Config) (*gin.Engine, error) {
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)

	store, err := stubserver.NewStore(cfg.Stub.DemoPassword)
	if err != nil {
		return nil, fmt.Errorf("initialize store: %w", err)
	}

	srv := stubserver.New(store, cfg.Stub)
	return srv.Router(cfg.Stub), nil
}
