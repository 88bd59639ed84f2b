package health

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
)

// Checker is a dependency that can report whether it is reachable
type Checker interface {
	Ping(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Ping(ctx context.Context) error { return f(ctx) }

// BuildInfo contains information about the build
type BuildInfo struct {
	Version     string    `json:"version"`
	GitCommit   string    `json:"git_commit"`
	ServiceName string    `json:"service_name"`
	GoVersion   string    `json:"go_version"`
	Hostname    string    `json:"hostname"`
	ServerTime  time.Time `json:"server_time"`
}

// ReadinessReport is returned by /ready
type ReadinessReport struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
}

// NewPingHandler creates a handler for the ping endpoint
func NewPingHandler(serviceName, version string) echo.HandlerFunc {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	gitCommit := os.Getenv("GIT_COMMIT")
	if gitCommit == "" {
		gitCommit = "unknown"
	}
	if version == "" {
		version = "development"
	}

	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, BuildInfo{
			Version:     version,
			GitCommit:   gitCommit,
			ServiceName: serviceName,
			GoVersion:   runtime.Version(),
			Hostname:    hostname,
			ServerTime:  time.Now(),
		})
	}
}

// NewReadyHandler pings every dependency and answers 503 if any is down
func NewReadyHandler(checkers map[string]Checker, timeout time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		defer cancel()

		report := ReadinessReport{Status: "ready", Dependencies: make(map[string]string, len(checkers))}
		status := http.StatusOK
		for name, checker := range checkers {
			if err := checker.Ping(ctx); err != nil {
				report.Dependencies[name] = err.Error()
				report.Status = "not_ready"
				status = http.StatusServiceUnavailable
				continue
			}
			report.Dependencies[name] = "ok"
		}
		return c.JSON(status, report)
	}
}

// RegisterHealthEndpoints registers the health check endpoints
func RegisterHealthEndpoints(e *echo.Echo, serviceName, version string, checkers map[string]Checker) {
	e.GET("/ping", NewPingHandler(serviceName, version))

	ok := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}
	e.GET("/health", ok)
	e.GET("/healthz", ok)

	e.GET("/ready", NewReadyHandler(checkers, 3*time.Second))
}
