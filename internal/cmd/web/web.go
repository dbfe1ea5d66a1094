// Package web wires configuration for the browser-facing web command.
package web

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/pawprint/internal/platform/cmd"
	"github.com/louisbranch/pawprint/internal/platform/otel"
	"github.com/louisbranch/pawprint/internal/services/web"
	"github.com/louisbranch/pawprint/internal/services/web/integration/identity"
	"github.com/louisbranch/pawprint/internal/services/web/integration/imagehost"
	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
	"github.com/louisbranch/pawprint/internal/services/web/modules"
	"github.com/louisbranch/pawprint/internal/services/web/modules/auth"
	"github.com/louisbranch/pawprint/internal/services/web/platform/imageform"
	"github.com/louisbranch/pawprint/internal/services/web/platform/requestmeta"
	websqlite "github.com/louisbranch/pawprint/internal/services/web/storage/sqlite"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr string `env:"PAWPRINT_WEB_HTTP_ADDR" envDefault:"localhost:8080"`

	APIBaseURL    string        `env:"PAWPRINT_API_BASE_URL" envDefault:"http://localhost:5000"`
	APITimeout    time.Duration `env:"PAWPRINT_API_TIMEOUT" envDefault:"10s"`
	APIRateLimit  float64       `env:"PAWPRINT_API_RATE_LIMIT" envDefault:"20"`
	APIBurst      int           `env:"PAWPRINT_API_BURST" envDefault:"40"`
	APIMaxRetries int           `env:"PAWPRINT_API_MAX_RETRIES" envDefault:"3"`

	IdentityIssuer   string `env:"PAWPRINT_IDENTITY_ISSUER"`
	IdentityAudience string `env:"PAWPRINT_IDENTITY_AUDIENCE"`
	IdentitySecret   string `env:"PAWPRINT_IDENTITY_SECRET"`
	// ProviderConfig is handed to the sign-in widget as is.
	ProviderConfig string `env:"PAWPRINT_IDENTITY_PROVIDER_CONFIG"`

	ImageUploadURL    string `env:"PAWPRINT_IMAGE_UPLOAD_URL"`
	ImageUploadPreset string `env:"PAWPRINT_IMAGE_UPLOAD_PRESET"`

	PaymentPublishableKey string `env:"PAWPRINT_PAYMENT_PUBLISHABLE_KEY"`

	SessionDBPath       string        `env:"PAWPRINT_WEB_SESSION_DB" envDefault:"data/web.db"`
	SessionSweep        time.Duration `env:"PAWPRINT_WEB_SESSION_SWEEP" envDefault:"15m"`
	TrustForwardedProto bool          `env:"PAWPRINT_WEB_TRUST_FORWARDED_PROTO"`

	PageSize     int           `env:"PAWPRINT_WEB_PAGE_SIZE"`
	ViewCapacity int           `env:"PAWPRINT_WEB_VIEW_CAPACITY" envDefault:"1024"`
	ViewTTL      time.Duration `env:"PAWPRINT_WEB_VIEW_TTL" envDefault:"30m"`

	Telemetry otel.Config
}

// ParseConfig loads defaults from environ and then applies flag overrides.
// A nil environ reads the process environment.
func ParseConfig(fs *flag.FlagSet, args []string, environ []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg, environ); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "Remote pet API base URL")
	fs.DurationVar(&cfg.APITimeout, "api-timeout", cfg.APITimeout, "Per-attempt remote API timeout")
	fs.StringVar(&cfg.SessionDBPath, "session-db", cfg.SessionDBPath, "Session SQLite database path")
	fs.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "Remote listing page size")
	fs.DurationVar(&cfg.ViewTTL, "view-ttl", cfg.ViewTTL, "Idle time before a mounted view is dropped")
	fs.IntVar(&cfg.ViewCapacity, "view-capacity", cfg.ViewCapacity, "Maximum mounted views per list screen")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Trust X-Forwarded-Proto for secure cookies")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the web server and blocks until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	service := entrypoint.Service{Name: entrypoint.ServiceWeb, Telemetry: cfg.Telemetry}
	return service.Run(ctx, func(ctx context.Context) error {
		return serve(ctx, cfg)
	})
}

func serve(ctx context.Context, cfg Config) error {
	serverCfg, err := buildServerConfig(ctx, cfg)
	if err != nil {
		return err
	}
	server, err := web.NewServer(ctx, serverCfg)
	if err != nil {
		_ = serverCfg.Sessions.Close()
		return fmt.Errorf("init web server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}

// buildServerConfig dials every collaborator. Sign-in and image uploads are
// optional: without their settings those screens report the service as
// unavailable.
func buildServerConfig(ctx context.Context, cfg Config) (web.Config, error) {
	client, err := petapi.New(petapi.Options{
		BaseURL:    cfg.APIBaseURL,
		Timeout:    cfg.APITimeout,
		RateLimit:  cfg.APIRateLimit,
		Burst:      cfg.APIBurst,
		MaxRetries: cfg.APIMaxRetries,
	})
	if err != nil {
		return web.Config{}, fmt.Errorf("init pet api client: %w", err)
	}

	var verifier auth.Verifier
	if strings.TrimSpace(cfg.IdentityIssuer) != "" {
		v, err := identity.NewVerifier(identity.Config{
			Issuer:   cfg.IdentityIssuer,
			Audience: cfg.IdentityAudience,
			Secret:   []byte(cfg.IdentitySecret),
		})
		if err != nil {
			return web.Config{}, fmt.Errorf("init identity verifier: %w", err)
		}
		verifier = v
	} else {
		log.Printf("identity issuer not configured; sign-in disabled")
	}

	var images imageform.Uploader
	if strings.TrimSpace(cfg.ImageUploadURL) != "" {
		uploader, err := imagehost.New(imagehost.Config{UploadURL: cfg.ImageUploadURL, UploadPreset: cfg.ImageUploadPreset})
		if err != nil {
			return web.Config{}, fmt.Errorf("init image host: %w", err)
		}
		images = uploader
	}

	sessions, err := openSessionStore(ctx, cfg.SessionDBPath)
	if err != nil {
		return web.Config{}, err
	}

	sweep := cfg.SessionSweep
	if sweep <= 0 {
		sweep = -1
	}
	return web.Config{
		HTTPAddr:       cfg.HTTPAddr,
		Backend:        client,
		Images:         images,
		Verifier:       verifier,
		Sessions:       sessions,
		ProviderConfig: cfg.ProviderConfig,
		PublishableKey: cfg.PaymentPublishableKey,
		Views: modules.ViewConfig{
			PageSize: cfg.PageSize,
			Capacity: cfg.ViewCapacity,
			TTL:      cfg.ViewTTL,
		},
		SchemePolicy: requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
		SessionSweep: sweep,
	}, nil
}

// openSessionStore opens the session database, creating its directory.
func openSessionStore(ctx context.Context, path string) (*websqlite.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("session db path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create session db dir: %w", err)
		}
	}
	store, err := websqlite.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open session sqlite store: %w", err)
	}
	return store, nil
}
