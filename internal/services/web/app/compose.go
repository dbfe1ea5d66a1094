package app

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	module "github.com/louisbranch/pawprint/internal/services/web/module"
	"github.com/louisbranch/pawprint/internal/services/web/platform/httpx"
	"github.com/louisbranch/pawprint/internal/services/web/platform/requestmeta"
	"github.com/louisbranch/pawprint/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/pawprint/internal/services/web/routepath"
)

// ComposeInput lists the modules of each access group and the checks that
// guard them.
type ComposeInput struct {
	AuthRequired func(*http.Request) bool
	// AdminRequired reports whether the signed-in viewer holds the admin role.
	AdminRequired       func(*http.Request) bool
	PublicModules       []module.Module
	ProtectedModules    []module.Module
	AdminModules        []module.Module
	RequestSchemePolicy requestmeta.SchemePolicy
}

// group is one access tier. Every module in it mounts under a prefix that
// placement accepts and is served through guard.
type group struct {
	name      string
	modules   []module.Module
	placement func(prefix string) error
	guard     httpx.Middleware
}

// Compose mounts every module on one mux. Public modules only get the
// same-origin check; /app/ modules also require a signed-in viewer and
// /admin/ modules an admin.
func Compose(input ComposeInput) (http.Handler, error) {
	signedIn := orDeny(input.AuthRequired)
	isAdmin := orDeny(input.AdminRequired)
	sameOrigin := requireSameOrigin(input.RequestSchemePolicy)
	protected := func(next http.Handler) http.Handler {
		return requireSignIn(signedIn)(sameOrigin(next))
	}

	groups := []group{
		{
			name:    "public",
			modules: input.PublicModules,
			placement: func(prefix string) error {
				if underApp(prefix) {
					return fmt.Errorf("protected prefix %q in public group", prefix)
				}
				return nil
			},
			guard: sameOrigin,
		},
		{
			name:    "protected",
			modules: input.ProtectedModules,
			placement: func(prefix string) error {
				if !underApp(prefix) {
					return fmt.Errorf("must mount under %s, got %q", routepath.AppPrefix, prefix)
				}
				if underAdmin(prefix) {
					return fmt.Errorf("admin prefix %q in protected group", prefix)
				}
				return nil
			},
			guard: protected,
		},
		{
			name:    "admin",
			modules: input.AdminModules,
			placement: func(prefix string) error {
				if !underAdmin(prefix) {
					return fmt.Errorf("must mount under %s, got %q", routepath.AdminPrefix, prefix)
				}
				return nil
			},
			guard: func(next http.Handler) http.Handler {
				return protected(requireAdmin(isAdmin)(next))
			},
		},
	}

	root := http.NewServeMux()
	owners := make(map[string]string)
	for _, g := range groups {
		for _, feature := range g.modules {
			if feature == nil {
				return nil, fmt.Errorf("%s module is nil", g.name)
			}
			mount, err := mountOf(feature)
			if err != nil {
				return nil, err
			}
			if err := g.placement(mount.Prefix); err != nil {
				return nil, fmt.Errorf("module %q: %w", feature.ID(), err)
			}
			handler := g.guard(mount.Handler)
			// The slashless form is served directly so "/pets" does not
			// redirect to "/pets/".
			for _, pattern := range []string{mount.Prefix, strings.TrimSuffix(mount.Prefix, "/")} {
				if pattern == "" {
					continue
				}
				if owner, taken := owners[pattern]; taken {
					return nil, fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), pattern, owner)
				}
				owners[pattern] = feature.ID()
				root.Handle(pattern, handler)
			}
		}
	}
	return root, nil
}

func orDeny(check func(*http.Request) bool) func(*http.Request) bool {
	if check == nil {
		return func(*http.Request) bool { return false }
	}
	return check
}

func underApp(prefix string) bool   { return strings.HasPrefix(prefix, routepath.AppPrefix) }
func underAdmin(prefix string) bool { return strings.HasPrefix(prefix, routepath.AdminPrefix) }

// mountOf asks feature for its mount and checks the prefix has the
// "/name/" shape ServeMux subtree patterns need.
func mountOf(feature module.Module) (module.Mount, error) {
	mount, err := feature.Mount()
	if err != nil {
		return module.Mount{}, fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	prefix := mount.Prefix
	switch {
	case prefix == "":
		err = errors.New("prefix is required")
	case strings.TrimSpace(prefix) != prefix:
		err = errors.New("prefix must not include surrounding whitespace")
	case !strings.HasPrefix(prefix, "/"):
		err = errors.New("prefix must begin with /")
	case !strings.HasSuffix(prefix, "/"):
		err = errors.New("prefix must end with /")
	}
	if err != nil {
		return module.Mount{}, fmt.Errorf("mount module %q has invalid prefix %q: %w", feature.ID(), prefix, err)
	}
	if mount.Handler == nil {
		return module.Mount{}, fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return mount, nil
}

// loginTarget sends anonymous GETs back to where they were headed after
// signing in.
func loginTarget(r *http.Request) string {
	if r.URL == nil || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
		return routepath.Login
	}
	next := requestmeta.LocalRedirectPath(r.URL.RequestURI(), "")
	if next == "" {
		return routepath.Login
	}
	return routepath.Login + "?" + url.Values{"next": {next}}.Encode()
}

func requireSignIn(signedIn func(*http.Request) bool) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !signedIn(r) {
				httpx.WriteRedirect(w, r, loginTarget(r))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requireAdmin(isAdmin func(*http.Request) bool) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isAdmin(r) {
				httpx.WriteRedirect(w, r, routepath.AppDashboard)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requireSameOrigin rejects cross-site mutations that would ride on the
// session cookie. Requests without the cookie carry no ambient authority
// and pass through.
func requireSameOrigin(policy requestmeta.SchemePolicy) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if mutates(r.Method) {
				if _, hasSession := sessioncookie.Read(r); hasSession && !policy.SameOrigin(r) {
					http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func mutates(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
