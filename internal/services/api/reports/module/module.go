// Package module wires reports into the API using modkit
package module

import (
	"context"
	"net/http"

	"reportgate/internal/adapters/storage"
	modkit "reportgate/internal/modkit"
	"reportgate/internal/modkit/httpkit"

	"reportgate/internal/services/api/reports/domain"
	rhttp "reportgate/internal/services/api/reports/http"
	rrepo "reportgate/internal/services/api/reports/repo"
	rsvc "reportgate/internal/services/api/reports/service"
)

// Module implements the reports API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc rsvc.Service
}

// Ports declares optional injected ports for this API module
type Ports struct {
	// Granter overrides the storage-backed grant issuer when set
	Granter domain.GrantPort
}

// Grant adapter over the storage client
type storageGranter struct{ c *storage.Client }

func (g storageGranter) CreateSignedUpload(ctx context.Context, bucket, objectPath string) (domain.Grant, error) {
	signed, err := g.c.CreateSignedUpload(ctx, bucket, objectPath)
	if err != nil {
		return domain.Grant{}, err
	}
	return domain.Grant{URL: signed.URL, Token: signed.Token, Path: signed.Path}, nil
}

// New constructs the reports module (config-driven, parity with other API modules)
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("reports"),
		modkit.WithPrefix("/reports"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}

	granter := injected.Granter
	if granter == nil {
		granter = storageGranter{c: storage.NewClient(storage.Options{
			BaseURL:    cfg.BaseURL,
			ServiceKey: cfg.ServiceKey,
			UserAgent:  cfg.UserAgent,
			Timeout:    cfg.Timeout,
		})}
	}

	svc := rsvc.New(deps.PG, rrepo.NewPG(), rsvc.Options{
		Granter:     granter,
		AudioBucket: cfg.AudioBucket,
		VideoBucket: cfg.VideoBucket,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Granter: granter}

	external := b.Register
	m.register = func(r httpkit.Router) {
		rhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Ports exposes the grant issuer for cross wiring
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }
