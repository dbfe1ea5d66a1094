// Package cmd holds the startup plumbing shared by pawprint commands.
package cmd

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/louisbranch/pawprint/internal/platform/config"
	"github.com/louisbranch/pawprint/internal/platform/otel"
)

// ServiceWeb names the browser-facing web service in telemetry.
const ServiceWeb = "pawprint-web"

const defaultFlushTimeout = 5 * time.Second

// ParseConfig fills cfg from env tags using the KEY=VALUE environ list, or the
// process environment when environ is nil. Flags parsed afterwards override
// what it loads.
func ParseConfig[T any](cfg *T, environ []string) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	if environ == nil {
		environ = os.Environ()
	}
	return config.ParseEnviron(cfg, environ)
}

// ParseArgs parses args into fs. Nil args parse as an empty list.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag set is required")
	}
	return fs.Parse(append([]string(nil), args...))
}

// Service is a long-running command with its tracing setup.
type Service struct {
	Name      string
	Telemetry otel.Config
	// FlushTimeout bounds how long pending spans may take to export on exit.
	FlushTimeout time.Duration
}

// Run installs tracing, calls run and flushes spans once run returns. Flush
// failures are logged; the error from run is what Run reports.
func (s Service) Run(ctx context.Context, run func(context.Context) error) error {
	name := strings.TrimSpace(s.Name)
	switch {
	case name == "":
		return errors.New("service name is required")
	case run == nil:
		return errors.New("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	shutdown, err := otel.Setup(ctx, name, s.Telemetry)
	if err != nil {
		return err
	}
	defer s.flush(name, shutdown)
	return run(ctx)
}

func (s Service) flush(name string, shutdown func(context.Context) error) {
	timeout := s.FlushTimeout
	if timeout <= 0 {
		timeout = defaultFlushTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Printf("telemetry flush failed service=%s err=%v", name, err)
	}
}
