// Command server runs the matching engine: `server <port> <nreaders>
// <nprocessors>`. This positional-argument contract is the only
// required configuration — the diagnostics HTTP API and Kafka
// trade-feed publisher are optional and configured entirely through
// environment variables, never through extra CLI arguments. See
// SPEC_FULL.md §6.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"matchsrv/api/diagnostics"
	"matchsrv/infra/logging"
	"matchsrv/infra/metrics"
	"matchsrv/infra/tradefeed"
	"matchsrv/internal/config"
	"matchsrv/internal/matchserver"
)

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintf(os.Stderr, "Usage: %s <server port> <# of reader threads> <# of processor threads>\n", os.Args[0])
		os.Exit(1)
	}
	port, err1 := strconv.Atoi(os.Args[1])
	nReaders, err2 := strconv.Atoi(os.Args[2])
	nProcessors, err3 := strconv.Atoi(os.Args[3])
	if err1 != nil || err2 != nil || err3 != nil || port <= 0 || nReaders <= 0 || nProcessors <= 0 {
		fmt.Fprintln(os.Stderr, "port, reader count, and processor count must all be positive integers")
		os.Exit(1)
	}

	log, err := logging.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	reg := prometheus.NewRegistry()
	met := metrics.New(reg)

	opts := []matchserver.Option{matchserver.WithMetrics(met)}

	sup := config.FromEnv()
	if len(sup.KafkaBrokers) > 0 {
		pub, err := tradefeed.New(sup.KafkaBrokers, sup.KafkaTopic, log)
		if err != nil {
			log.Warn("trade-feed publisher disabled", zap.Error(err))
		} else {
			pub.Start()
			defer pub.Close()
			opts = append(opts, matchserver.WithPublisher(pub))
		}
	}

	srv := matchserver.New(port, nReaders, nProcessors, log, opts...)

	if sup.DiagnosticsAddr != "" {
		diagSrv := diagnostics.New(srv.Book(), srv.Registry(), met, reg, log)
		go func() {
			if err := diagSrv.ListenAndServe(sup.DiagnosticsAddr); err != nil {
				log.Warn("diagnostics server stopped", zap.Error(err))
			}
		}()
		log.Info("diagnostics API listening", zap.String("addr", sup.DiagnosticsAddr))
	}

	log.Info("matching server starting",
		zap.Int("port", port), zap.Int("readers", nReaders), zap.Int("processors", nProcessors))

	if err := srv.Run(); err != nil {
		log.Fatal("matching server exited", zap.Error(err))
	}
}
