// Command paperchat is a terminal client for chatting with PDF documents.
// It wires the driven adapters (backend, config store, PDF inspector) to the
// core services and hands them to the CLI.
package main

import (
	"fmt"
	"net/url"
	"os"

	"github.com/inkwell-labs/paperchat/internal/adapters/driven/backend/httpapi"
	"github.com/inkwell-labs/paperchat/internal/adapters/driven/backend/simulator"
	"github.com/inkwell-labs/paperchat/internal/adapters/driven/config/file"
	"github.com/inkwell-labs/paperchat/internal/adapters/driven/pdf"
	"github.com/inkwell-labs/paperchat/internal/adapters/driving/cli"
	"github.com/inkwell-labs/paperchat/internal/core/domain"
	"github.com/inkwell-labs/paperchat/internal/core/ports/driven"
	"github.com/inkwell-labs/paperchat/internal/core/ports/driving"
	"github.com/inkwell-labs/paperchat/internal/core/services"
	"github.com/inkwell-labs/paperchat/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	backend := selectBackend(settings)
	inspector := pdf.NewInspector()

	registryService := services.NewRegistry(backend, inspector, settingsService)
	chatService := services.NewSession(backend, registryService)

	// Apply the persisted method; an invalid stored value falls back silently.
	if settings.Method.IsValid() {
		if err := registryService.SetMethod(settings.Method); err != nil {
			logger.Warn("stored method %q unavailable, using %s", settings.Method, registryService.Method())
		}
	}

	cli.SetServices(&cli.Services{
		Registry: registryService,
		Chat:     chatService,
		Settings: settingsService,
	})

	return cli.Execute()
}

// selectBackend picks the transport for the configured mode. Auto mode uses
// the HTTP backend only for local endpoints, where a development server is
// plausibly running, and the simulator everywhere else.
func selectBackend(settings *driving.AppSettings) driven.Backend {
	switch settings.Mode {
	case driving.ModeHTTP:
		logger.Debug("backend: http (%s)", settings.Endpoint)
		return httpapi.NewClient(settings.Endpoint)

	case driving.ModeSimulator:
		logger.Debug("backend: simulator")
		return simulator.New(simulator.WithMethodFallback(domain.MethodSemantic))

	default: // driving.ModeAuto
		if isLocalEndpoint(settings.Endpoint) {
			logger.Debug("backend: http via auto (%s)", settings.Endpoint)
			return httpapi.NewClient(settings.Endpoint)
		}
		logger.Debug("backend: simulator via auto")
		return simulator.New(simulator.WithMethodFallback(domain.MethodSemantic))
	}
}

// isLocalEndpoint reports whether the endpoint points at this machine.
func isLocalEndpoint(endpoint string) bool {
	u, err := url.Parse(endpoint)
	if err != nil {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}
