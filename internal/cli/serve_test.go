package cli

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/themizzi/menucheck/internal/config"
	"github.com/themizzi/menucheck/internal/handlers"
)

func mockHandler(response string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(response))
	})
}

// createTestDeps creates ServerDependencies with mock handlers
func createTestDeps(port string) ServerDependencies {
	return ServerDependencies{
		ServerConfig:   config.ServerConfig{Port: port},
		Catalog:        handlers.DefaultCatalog(),
		HomeHandler:    mockHandler("home"),
		MenuHandler:    mockHandler("menu"),
		ItemHandler:    mockHandler("item"),
		MenuAPIHandler: mockHandler("api"),
		ImageHandler:   mockHandler("image"),
	}
}

func startTestServer(t *testing.T, deps ServerDependencies) (net.Listener, *http.Server, int) {
	t.Helper()
	listener, server, err := StartServer(deps)
	if err != nil {
		t.Fatalf("Failed to start server: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	return listener, server, port
}

func httpGet(t *testing.T, url string) (string, int) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("Failed to make request to %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return string(body), resp.StatusCode
}

func TestStartServer_SuccessfulStartup(t *testing.T) {
	// GIVEN
	deps := createTestDeps("0")

	// WHEN
	listener, server, port := startTestServer(t, deps)
	defer listener.Close()
	defer server.Close()

	// THEN
	if port == 0 {
		t.Error("Expected non-zero port")
	}

	time.Sleep(50 * time.Millisecond)
	body, status := httpGet(t, fmt.Sprintf("http://localhost:%d/", port))
	if status != http.StatusOK {
		t.Errorf("Expected status 200, got %d", status)
	}
	if body != "home" {
		t.Errorf("Expected 'home', got '%s'", body)
	}
}

func TestStartServer_InvalidPort(t *testing.T) {
	deps := createTestDeps("99999")

	listener, server, err := StartServer(deps)
	if err == nil {
		listener.Close()
		server.Close()
		t.Error("Expected error for invalid port, got nil")
	}
}

func TestStartServer_PortAlreadyInUse(t *testing.T) {
	// GIVEN
	existing, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("Failed to create test listener: %v", err)
	}
	defer existing.Close()
	port := existing.Addr().(*net.TCPAddr).Port

	// WHEN
	listener, server, err := StartServer(createTestDeps(fmt.Sprintf("%d", port)))

	// THEN
	if err == nil {
		listener.Close()
		server.Close()
		t.Error("Expected error for port already in use, got nil")
	}
}

func TestRoutes(t *testing.T) {
	srv := httptest.NewServer(Routes(createTestDeps("0")))
	defer srv.Close()

	testCases := []struct {
		path     string
		expected string
	}{
		{"/", "home"},
		{"/menu", "menu"},
		{"/menu/bacon-breakfast-roll", "item"},
		{"/api/menu", "api"},
		{"/images/hash-brown.png", "image"},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			body, status := httpGet(t, srv.URL+tc.path)
			if status != http.StatusOK {
				t.Errorf("Expected status 200, got %d", status)
			}
			if body != tc.expected {
				t.Errorf("Expected '%s', got '%s'", tc.expected, body)
			}
		})
	}
}

func TestNewServerDependencies(t *testing.T) {
	// GIVEN
	cfg := config.ServerConfig{Port: "0", TemplatesDir: "../../templates"}

	// WHEN
	deps, err := NewServerDependencies(cfg, handlers.DefaultCatalog())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	srv := httptest.NewServer(Routes(deps))
	defer srv.Close()

	// THEN
	tests := []struct {
		path   string
		status int
		want   string
	}{
		{"/", http.StatusOK, "Bakehouse"},
		{"/menu?consent=none", http.StatusOK, "Our Menu"},
		{"/menu/egg-muffin", http.StatusOK, "Egg Muffin"},
		{"/menu/not-on-the-menu", http.StatusNotFound, ""},
		{"/api/menu?q=coffee", http.StatusOK, `"items"`},
		{"/nowhere", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			body, status := httpGet(t, srv.URL+tt.path)
			if status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, status)
			}
			if tt.want != "" && !strings.Contains(body, tt.want) {
				t.Errorf("Expected body to contain %q", tt.want)
			}
		})
	}
}

func TestNewServerDependencies_MissingTemplates(t *testing.T) {
	cfg := config.ServerConfig{Port: "0", TemplatesDir: t.TempDir()}

	if _, err := NewServerDependencies(cfg, handlers.DefaultCatalog()); err == nil {
		t.Error("Expected error for missing templates, got nil")
	}
}

func TestWaitForShutdown_Signals(t *testing.T) {
	for _, sig := range []os.Signal{syscall.SIGTERM, syscall.SIGINT} {
		t.Run(sig.String(), func(t *testing.T) {
			// GIVEN
			listener, server, _ := startTestServer(t, createTestDeps("0"))
			defer listener.Close()

			shutdown := make(chan os.Signal, 1)
			errCh := make(chan error, 1)

			// WHEN
			go func() {
				errCh <- WaitForShutdown(server, shutdown)
			}()
			time.Sleep(50 * time.Millisecond)
			shutdown <- sig

			// THEN
			select {
			case err := <-errCh:
				if err != nil {
					t.Errorf("Expected nil error, got: %v", err)
				}
			case <-time.After(5 * time.Second):
				t.Fatal("WaitForShutdown did not complete")
			}
		})
	}
}

func TestWaitForShutdown_WithActiveRequests(t *testing.T) {
	// GIVEN
	deps := createTestDeps("0")
	deps.MenuHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte("done"))
	})

	listener, server, port := startTestServer(t, deps)
	defer listener.Close()

	time.Sleep(50 * time.Millisecond)
	requestComplete := make(chan error, 1)
	go func() {
		resp, err := http.Get(fmt.Sprintf("http://localhost:%d/menu", port))
		if err == nil {
			resp.Body.Close()
		}
		requestComplete <- err
	}()
	time.Sleep(50 * time.Millisecond)

	// WHEN
	shutdown := make(chan os.Signal, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- WaitForShutdown(server, shutdown)
	}()
	shutdown <- syscall.SIGTERM

	// THEN
	select {
	case err := <-requestComplete:
		if err != nil {
			t.Errorf("Expected in-flight request to finish, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("Request did not complete in time")
	}

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Expected nil error, got: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("WaitForShutdown did not complete")
	}
}

func TestWaitForShutdownWithTimeout_ForcesClose(t *testing.T) {
	// GIVEN
	deps := createTestDeps("0")
	deps.MenuHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	})
	listener, server, port := startTestServer(t, deps)
	defer listener.Close()

	time.Sleep(50 * time.Millisecond)
	go http.Get(fmt.Sprintf("http://localhost:%d/menu", port))
	time.Sleep(100 * time.Millisecond)

	shutdown := make(chan os.Signal, 1)
	shutdown <- syscall.SIGTERM

	// WHEN
	err := WaitForShutdownWithTimeout(server, shutdown, time.Nanosecond)

	// THEN
	if err != nil {
		t.Errorf("Expected nil error after forced close, got %v", err)
	}
}

func TestRunServe_FullIntegration(t *testing.T) {
	// GIVEN
	deps := createTestDeps("0")

	// WHEN
	errCh := make(chan error, 1)
	go func() {
		errCh <- RunServe(deps)
	}()
	time.Sleep(100 * time.Millisecond)

	p, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatalf("Failed to get process: %v", err)
	}
	if err := p.Signal(syscall.SIGTERM); err != nil {
		t.Fatalf("Failed to send signal: %v", err)
	}

	// THEN
	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("Expected nil error, got: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Server did not shut down within timeout")
	}
}

func TestRunServe_StartupFailure(t *testing.T) {
	if err := RunServe(createTestDeps("99999")); err == nil {
		t.Error("Expected error for invalid port, got nil")
	}
}
