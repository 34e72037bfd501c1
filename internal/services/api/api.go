// Package api provides the HTTP API for the application
package api

import (
	"context"
	"net/http"

	"reportgate/internal/platform/config"
	"reportgate/internal/platform/logger"
	phttp "reportgate/internal/platform/net/http"
	"reportgate/internal/platform/store"

	"reportgate/internal/modkit"
	"reportgate/internal/modkit/httpkit"
	"reportgate/internal/modkit/module"

	metamod "reportgate/internal/services/api/meta/module"
	reportsmod "reportgate/internal/services/api/reports/module"
	authsvc "reportgate/internal/services/auth/service"
)

// TokenVerifier resolves a raw bearer token to a subject id
type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (string, error)
}

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger

	// Verifier overrides the config-built JWKS verifier when set
	Verifier TokenVerifier

	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	verifier := opt.Verifier
	if verifier == nil {
		ac := opt.Config.Prefix("AUTH_")
		verifier = authsvc.New(authsvc.Config{
			BaseURL: ac.MustString("BASE_URL"),
			JWKSTTL: ac.MayDuration("JWKS_TTL", 0),
		})
	}

	authMw := httpkit.Auth(httpkit.NewPortFunc(func(r *http.Request, token string) (string, error) {
		return verifier.Verify(r.Context(), token)
	}))

	mods := []module.Module{
		metamod.New(deps),
		reportsmod.New(deps, modkit.WithMiddlewares(authMw)),
	}

	for _, mw := range httpkit.CommonStack() {
		r.Use(mw)
	}

	// bare liveness check alongside the richer /meta endpoints
	phttp.GetJSON(r, "/health", func(*http.Request) (any, error) {
		return map[string]bool{"ok": true}, nil
	})

	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	for _, m := range mods {
		// register each module's ports under its own name (for cross-module lookups)
		module.Register(m.Name(), m.Ports())
		m.MountRoutes(r)
	}
}
