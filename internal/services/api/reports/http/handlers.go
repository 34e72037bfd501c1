// Package http provides http transport for reports
package http

import (
	stdhttp "net/http"

	"reportgate/internal/modkit/httpkit"
	"reportgate/internal/platform/net/http/bind"
	"reportgate/internal/services/api/reports/domain"
	svc "reportgate/internal/services/api/reports/service"
)

// Register mounts the router. Bodies are decoded leniently: unknown
// fields (including any client-supplied identity) are ignored, and an
// absent init body means audio only.
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	lenient := bind.JSONOptions{MaxBytes: 1 << 20, AllowEmptyBody: true}
	httpkit.PostJSON[domain.InitInput](r, "/init", h.init, lenient)
	httpkit.PostJSONCreated[domain.CompleteInput](r, "/complete", h.complete, lenient)
}

type handlers struct{ svc svc.Service }

func (h *handlers) init(r *stdhttp.Request, in domain.InitInput) (any, error) {
	subject, err := httpkit.Subject(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Initiate(r.Context(), subject, in)
}

func (h *handlers) complete(r *stdhttp.Request, in domain.CompleteInput) (any, error) {
	subject, err := httpkit.Subject(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Finalize(r.Context(), subject, in)
}
