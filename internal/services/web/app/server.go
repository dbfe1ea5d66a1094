package app

import (
	"net/http"

	module "github.com/louisbranch/pawprint/internal/services/web/module"
)

// BuildRootHandler composes a root mux using the configured module groups.
// Sign-in and admin gates read the viewer through the configured resolver.
func BuildRootHandler(cfg Config) (http.Handler, error) {
	resolve := cfg.Dependencies.ResolveViewer
	if resolve == nil {
		resolve = module.ViewerFromRequest
	}
	return Compose(ComposeInput{
		AuthRequired:        func(r *http.Request) bool { return resolve(r).SignedIn },
		AdminRequired:       func(r *http.Request) bool { return resolve(r).IsAdmin() },
		PublicModules:       cfg.PublicModules,
		ProtectedModules:    cfg.ProtectedModules,
		AdminModules:        cfg.AdminModules,
		RequestSchemePolicy: cfg.Dependencies.SchemePolicy,
	})
}
