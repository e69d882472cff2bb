// Command augvd runs the AGV fleet coordinator: it loads a warehouse floor
// plan, builds the grid and supervisor, starts the route/obstacle ingest
// listeners and the read-only telemetry server, and drives the lockstep
// tick loop on a fixed interval until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/edaniels/golog"

	"github.com/augv-fleet/coordinator/grid"
	"github.com/augv-fleet/coordinator/ingest"
	"github.com/augv-fleet/coordinator/mapdef"
	"github.com/augv-fleet/coordinator/supervisor"
	"github.com/augv-fleet/coordinator/telemetry"
	"github.com/augv-fleet/coordinator/vehicle"
)

var (
	mapPath       = flag.String("map", "", "path to an ASCII floor-plan file (required)")
	configPath    = flag.String("config", "", "optional YAML config overriding supervisor defaults")
	agentsFlag    = flag.String("agents", "", "comma-separated id:x:y starting positions, e.g. A:0:0,B:4:0")
	routeAddr     = flag.String("route-addr", "127.0.0.1:7001", "TCP address for the route ingest listener")
	obstacleAddr  = flag.String("obstacle-addr", "127.0.0.1:7002", "TCP address for the obstacle ingest listener")
	telemetryAddr = flag.String("telemetry-addr", "127.0.0.1:8080", "HTTP address for the telemetry server")
	tickInterval  = flag.Duration("tick-interval", 200*time.Millisecond, "lockstep tick period")
	stepDuration  = flag.Duration("step-duration", vehicle.DefaultStepDuration, "per-cell transit duration for every agent")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	logger := golog.Global()

	if *mapPath == "" {
		return fmt.Errorf("augvd: -map is required")
	}
	rows, err := readMapFile(*mapPath)
	if err != nil {
		return err
	}
	g, err := mapdef.FromASCII(rows)
	if err != nil {
		return fmt.Errorf("augvd: load floor plan: %w", err)
	}

	cfg := supervisor.DefaultConfig()
	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			return fmt.Errorf("augvd: read config: %w", err)
		}
		if cfg, err = supervisor.LoadConfig(data); err != nil {
			return fmt.Errorf("augvd: parse config: %w", err)
		}
	}

	sup := supervisor.New(g, cfg, logger)

	agents, err := parseAgents(*agentsFlag)
	if err != nil {
		return err
	}
	for _, a := range agents {
		handle := vehicle.NewKinematicAgent(a.id, *stepDuration, logger)
		if err := sup.RegisterAgent(a.id, a.start, handle); err != nil {
			return fmt.Errorf("augvd: register agent %s: %w", a.id, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	routeServer, err := ingest.NewRouteServer(*routeAddr, sup.RouteInbox, logger)
	if err != nil {
		return fmt.Errorf("augvd: start route server: %w", err)
	}
	defer routeServer.Close()

	obstacleServer, err := ingest.NewObstacleServer(*obstacleAddr, sup.ObstacleInbox, logger)
	if err != nil {
		return fmt.Errorf("augvd: start obstacle server: %w", err)
	}
	defer obstacleServer.Close()

	go func() {
		if err := routeServer.Serve(ctx); err != nil && !errors.Is(err, ingest.ErrServerClosed) {
			logger.Errorw("augvd: route server stopped", "error", err)
		}
	}()
	go func() {
		if err := obstacleServer.Serve(ctx); err != nil && !errors.Is(err, ingest.ErrServerClosed) {
			logger.Errorw("augvd: obstacle server stopped", "error", err)
		}
	}()

	telemetryServer := telemetry.NewServer(sup, telemetry.WithLogger(logger))
	httpServer := &http.Server{Addr: *telemetryAddr, Handler: telemetryServer.Router()}
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorw("augvd: telemetry server stopped", "error", err)
		}
	}()
	defer httpServer.Close()

	logger.Infow("augvd: fleet coordinator started",
		"route_addr", *routeAddr, "obstacle_addr", *obstacleAddr, "telemetry_addr", *telemetryAddr)

	return tickLoop(ctx, sup, logger)
}

func tickLoop(ctx context.Context, sup *supervisor.Supervisor, logger golog.Logger) error {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(*tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sig:
			logger.Infow("augvd: shutdown requested")
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := sup.Tick(ctx); err != nil {
				logger.Errorw("augvd: tick failed", "error", err)
			}
		}
	}
}

func readMapFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("augvd: read floor plan: %w", err)
	}
	rows := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	return rows, nil
}

type startingAgent struct {
	id    string
	start grid.Cell
}

func parseAgents(spec string) ([]startingAgent, error) {
	if spec == "" {
		return nil, nil
	}

	var out []startingAgent
	for _, entry := range strings.Split(spec, ",") {
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("augvd: malformed -agents entry %q, want id:x:y", entry)
		}
		x, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("augvd: malformed -agents entry %q: %w", entry, err)
		}
		y, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("augvd: malformed -agents entry %q: %w", entry, err)
		}
		out = append(out, startingAgent{id: parts[0], start: grid.Cell{X: x, Y: y}})
	}
	return out, nil
}
