package cli

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/themizzi/menucheck/internal/config"
	"github.com/themizzi/menucheck/internal/handlers"
)

// ServerDependencies holds everything the fixture menu server needs
type ServerDependencies struct {
	ServerConfig   config.ServerConfig
	Catalog        handlers.Catalog
	HomeHandler    http.Handler
	MenuHandler    http.Handler
	ItemHandler    http.Handler
	MenuAPIHandler http.Handler
	ImageHandler   http.Handler
}

// NewServerDependencies parses the page templates in cfg.TemplatesDir and
// builds the handlers for the catalog
func NewServerDependencies(cfg config.ServerConfig, catalog handlers.Catalog) (ServerDependencies, error) {
	home, err := handlers.NewHomeHandler(cfg.TemplatesDir, catalog)
	if err != nil {
		return ServerDependencies{}, fmt.Errorf("failed to create home handler: %w", err)
	}
	menu, err := handlers.NewMenuHandler(cfg.TemplatesDir, catalog)
	if err != nil {
		return ServerDependencies{}, fmt.Errorf("failed to create menu handler: %w", err)
	}
	item, err := handlers.NewItemHandler(cfg.TemplatesDir, catalog)
	if err != nil {
		return ServerDependencies{}, fmt.Errorf("failed to create item handler: %w", err)
	}

	return ServerDependencies{
		ServerConfig:   cfg,
		Catalog:        catalog,
		HomeHandler:    home,
		MenuHandler:    menu,
		ItemHandler:    item,
		MenuAPIHandler: handlers.NewMenuAPIHandler(catalog),
		ImageHandler:   handlers.NewImageHandler(catalog),
	}, nil
}

// Routes wires the fixture site's handlers into a mux
func Routes(deps ServerDependencies) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", deps.HomeHandler)
	mux.Handle("/menu", deps.MenuHandler)
	mux.Handle("/menu/", deps.ItemHandler)
	mux.Handle("/api/menu", deps.MenuAPIHandler)
	mux.Handle("/images/", deps.ImageHandler)
	return mux
}

// RunServe starts the fixture menu server and blocks until a shutdown signal
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil)
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{
		Handler:           Routes(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Menu fixture listening on %s (%d items)", listener.Addr().String(), len(deps.Catalog.Items))
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server.
// A nil shutdown channel is replaced by one registered with signal.Notify.
func WaitForShutdown(server *http.Server, shutdown chan os.Signal) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second)
}

// WaitForShutdownWithTimeout is WaitForShutdown with a custom grace period
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration) error {
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		defer signal.Stop(shutdown)
	}

	sig := <-shutdown
	log.Printf("Received signal: %v, shutting down server...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		// Shutdown timed out with requests still in flight
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	log.Println("Server stopped")
	return nil
}
