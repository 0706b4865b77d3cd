package simulate

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/hashicorp/go-sockaddr"
	rungroup "github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	ringcastconfig "github.com/andydunstall/ringcast/pkg/config"
	"github.com/andydunstall/ringcast/pkg/log"
	"github.com/andydunstall/ringcast/pkg/medium"
	"github.com/andydunstall/ringcast/simulator"
	"github.com/andydunstall/ringcast/simulator/admin"
	"github.com/andydunstall/ringcast/simulator/config"
	"github.com/andydunstall/ringcast/simulator/status"
)

const (
	// storeLimit is the number of results kept for the status API.
	storeLimit = 100

	shutdownTimeout = time.Second * 10
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate [flags]",
		Short: "run a gossip simulation",
		Long: `Run a gossip simulation.

Starts the configured number of devices in a ring, where each device runs the
configured gossip strategy until every device knows every secret, then prints
the secrets known by each device.

Supports both YAML configuration and command line flags. Configure a YAML file
using '--config.path'. When enabling '--config.expand-env', ringcast will
expand environment variables in the loaded YAML configuration.

When '--admin.bind-addr' is set, the simulation results and metrics are
exposed on the admin server, and the process keeps running until it receives
a SIGINT or SIGTERM. Sending a SIGHUP reloads the configuration and runs
another simulation.

Examples:
  # Run the one-way strategy with 10 devices.
  ringcast simulate --strategy one-way --devices 10

  # Run the two-way strategy and print every message sent.
  ringcast simulate --strategy two-way --devices 4 --trace

  # Trace each peer and each round.
  ringcast simulate --log.subsystems gossip,medium

  # Run a simulation and serve the results on port 8001.
  ringcast simulate --admin.bind-addr :8001
`,
	}

	conf := config.Default()
	var loadConf ringcastconfig.Config

	// Register flags and set default values.
	conf.RegisterFlags(cmd.Flags())
	loadConf.RegisterFlags(cmd.Flags())

	var logger log.Logger

	loadConfig := func() error {
		if err := ringcastconfig.Load(conf, loadConf.Path, loadConf.ExpandEnv); err != nil {
			return fmt.Errorf("load: %w", err)
		}

		if err := conf.Validate(); err != nil {
			return fmt.Errorf("validate: %w", err)
		}

		return nil
	}

	cmd.PreRun = func(_ *cobra.Command, _ []string) {
		if err := loadConfig(); err != nil {
			fmt.Printf("config: %s\n", err.Error())
			os.Exit(1)
		}

		var err error
		logger, err = log.NewLogger(conf.Log.Level, conf.Log.Subsystems)
		if err != nil {
			fmt.Printf("failed to setup logger: %s\n", err.Error())
			os.Exit(1)
		}
	}

	cmd.Run = func(_ *cobra.Command, _ []string) {
		err := run(conf, loadConfig, logger)
		if err != nil {
			logger.Error("failed to run simulation", zap.Error(err))
		}
		// Ignore sync errors as stderr may not support syncing.
		_ = logger.Sync()
		if err != nil {
			os.Exit(1)
		}
	}

	return cmd
}

func run(
	conf *config.Config,
	loadConfig func() error,
	logger log.Logger,
) error {
	logger.Debug("ringcast config", zap.Any("config", conf))

	registry := prometheus.NewRegistry()
	metrics := medium.NewMetrics()
	metrics.Register(registry)

	store := simulator.NewStore(storeLimit)

	simulate := func(ctx context.Context) error {
		result, err := simulator.Run(
			ctx,
			conf,
			simulator.WithMetrics(metrics),
			simulator.WithLogger(logger),
		)
		if err != nil {
			return fmt.Errorf("simulate: %w", err)
		}
		store.Add(result)

		if err := simulator.Report(os.Stdout, result); err != nil {
			return fmt.Errorf("report: %w", err)
		}
		return nil
	}

	if conf.Admin.BindAddr == "" {
		return simulate(context.Background())
	}

	adminLn, err := net.Listen("tcp", conf.Admin.BindAddr)
	if err != nil {
		return fmt.Errorf("admin listen: %s: %w", conf.Admin.BindAddr, err)
	}

	advertiseAddr := conf.Admin.AdvertiseAddr
	if advertiseAddr == "" {
		advertiseAddr, err = advertiseAddrFromBindAddr(adminLn.Addr().String())
		if err != nil {
			logger.Warn("failed to resolve admin advertise addr", zap.Error(err))
			advertiseAddr = adminLn.Addr().String()
		}
	}

	adminServer := admin.NewServer(registry, logger)
	adminServer.AddStatus("/simulation", status.NewSimulationHandler(store))

	var group rungroup.Group

	// Simulations. Runs once on startup then again on each SIGHUP.
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	simulateCtx, simulateCancel := context.WithCancel(context.Background())
	group.Add(func() error {
		if err := simulate(simulateCtx); err != nil {
			return err
		}

		logger.Info(
			"simulation complete; serving results",
			zap.String("server-url", "http://"+advertiseAddr),
		)

		for {
			select {
			case <-hup:
				logger.Info("received hup signal")

				if err := loadConfig(); err != nil {
					logger.Error("failed to load config", zap.Error(err))
					continue
				}

				if err := simulate(simulateCtx); err != nil {
					logger.Error("failed to run simulation", zap.Error(err))
				}
			case <-simulateCtx.Done():
				return nil
			}
		}
	}, func(error) {
		simulateCancel()
	})

	// Termination handler.
	signalCtx, signalCancel := context.WithCancel(context.Background())
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signalCh)
	group.Add(func() error {
		select {
		case sig := <-signalCh:
			logger.Info(
				"received shutdown signal",
				zap.String("signal", sig.String()),
			)
			return nil
		case <-signalCtx.Done():
			return nil
		}
	}, func(error) {
		signalCancel()
	})

	// Admin server.
	group.Add(func() error {
		if err := adminServer.Serve(adminLn); err != nil {
			return fmt.Errorf("admin server serve: %w", err)
		}
		return nil
	}, func(error) {
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), shutdownTimeout,
		)
		defer cancel()

		if err := adminServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("failed to gracefully shutdown admin server", zap.Error(err))
		}

		logger.Info("admin server shut down")
	})

	if err := group.Run(); err != nil {
		return err
	}

	logger.Info("shutdown complete")

	return nil
}

func advertiseAddrFromBindAddr(bindAddr string) (string, error) {
	if strings.HasPrefix(bindAddr, ":") {
		bindAddr = "0.0.0.0" + bindAddr
	}

	host, port, err := net.SplitHostPort(bindAddr)
	if err != nil {
		return "", fmt.Errorf("invalid bind addr: %s: %w", bindAddr, err)
	}

	if host == "0.0.0.0" || host == "::" {
		ip, err := sockaddr.GetPrivateIP()
		if err != nil {
			return "", fmt.Errorf("get interface addr: %w", err)
		}
		if ip == "" {
			return "", fmt.Errorf("no private ip found")
		}
		return net.JoinHostPort(ip, port), nil
	}
	return bindAddr, nil
}
