package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpcadapter "github.com/simaogato/wealthflow-planner/internal/adapter/grpc"
	httpadapter "github.com/simaogato/wealthflow-planner/internal/adapter/http"
	"github.com/simaogato/wealthflow-planner/internal/adapter/repository/memory"
	"github.com/simaogato/wealthflow-planner/internal/config"
	"github.com/simaogato/wealthflow-planner/internal/usecase/dashboard"
	"github.com/simaogato/wealthflow-planner/internal/usecase/projection"
	"github.com/simaogato/wealthflow-planner/internal/usecase/scenario"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 1. Load configuration
	cfg, err := config.ServerFromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 2. Initialize Repositories (in memory, sessions end with the process)
	sessionRepo := memory.NewSessionRepository()

	// 3. Initialize Services (Use Cases)
	projectionService := projection.NewProjectionService(sessionRepo, cfg.MaxProjectionMonths)
	dashboardService := dashboard.NewDashboardService(sessionRepo)

	// Seed the configured scenario, if any
	if cfg.ScenarioFile != "" {
		s, err := config.Load(cfg.ScenarioFile)
		if err != nil {
			log.Fatalf("Failed to load scenario %s: %v", cfg.ScenarioFile, err)
		}
		session, err := scenario.NewBuilder(cfg.MaxProjectionMonths).Seed(context.Background(), sessionRepo, s)
		if err != nil {
			log.Fatalf("Failed to seed scenario %s: %v", cfg.ScenarioFile, err)
		}
		log.Printf("Seeded scenario %q as session %s", s.Name, session.ID)
	}

	// 4. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(log.Default()),
			grpcadapter.AuthInterceptor(cfg.APIToken),
		),
	)
	grpcadapter.RegisterPlannerServiceServer(grpcServer, grpcadapter.NewServer(projectionService, dashboardService))
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", cfg.GRPCAddr, err)
	}

	go func() {
		log.Printf("gRPC server listening on %s", cfg.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("Failed to serve gRPC server: %v", err)
		}
	}()

	// 5. Start HTTP Server (optional)
	var httpServer *http.Server
	if cfg.HTTPAddr != "" {
		handler := httpadapter.NewHandler(projectionService, dashboardService)
		httpServer = &http.Server{
			Addr: cfg.HTTPAddr,
			Handler: httpadapter.NewRouter(handler, httpadapter.RouterConfig{
				APIToken:   cfg.APIToken,
				Production: cfg.Production,
			}),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("Failed to serve HTTP server: %v", err)
			}
		}()
	}

	// Graceful shutdown
	waitForShutdown(grpcServer, httpServer)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the servers
func waitForShutdown(grpcServer *grpclib.Server, httpServer *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Printf("Received signal: %v. Shutting down gracefully...", sig)

	if httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Printf("HTTP server shutdown: %v", err)
		}
		log.Println("HTTP server stopped")
	}

	grpcServer.GracefulStop()
	log.Println("gRPC server stopped")
}
