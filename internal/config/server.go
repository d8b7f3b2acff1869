package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	defaultGRPCAddr            = ":8080"
	defaultHTTPAddr            = ":8081"
	defaultAPIToken            = "dev-token"
	defaultMaxProjectionMonths = 1200
)

// Server holds the planner server settings, read from the environment.
type Server struct {
	GRPCAddr            string
	HTTPAddr            string // empty disables the HTTP API
	APIToken            string
	Production          bool
	MaxProjectionMonths int
	ScenarioFile        string // optional scenario seeded as a session at startup
}

// ServerFromEnv reads GRPC_ADDR, HTTP_ADDR, API_TOKEN, API_ENV, MAX_PROJECTION_MONTHS
// and SCENARIO_FILE.
func ServerFromEnv() (*Server, error) {
	s := &Server{
		GRPCAddr:            getenv("GRPC_ADDR", defaultGRPCAddr),
		HTTPAddr:            defaultHTTPAddr,
		APIToken:            getenv("API_TOKEN", defaultAPIToken),
		Production:          os.Getenv("API_ENV") == "production",
		MaxProjectionMonths: defaultMaxProjectionMonths,
		ScenarioFile:        os.Getenv("SCENARIO_FILE"),
	}
	// HTTP_ADDR set to "" explicitly turns the HTTP API off
	if v, ok := os.LookupEnv("HTTP_ADDR"); ok {
		s.HTTPAddr = v
	}
	if v := os.Getenv("MAX_PROJECTION_MONTHS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("MAX_PROJECTION_MONTHS must be a positive integer, got %q", v)
		}
		s.MaxProjectionMonths = n
	}
	return s, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
