// Package config reads environment variables for the supplemental
// subsystems only (diagnostics HTTP address, Kafka trade feed). It
// never touches the mandatory `server <port> <nreaders> <nprocessors>`
// positional-argument contract — see SPEC_FULL.md §6.
package config

import (
	"os"
	"strings"
)

// Supplemental holds the optional, env-configured subsystems. Every
// field has a usable default or an explicit "disabled" zero value so
// the core matching server runs unmodified when none are set.
type Supplemental struct {
	// DiagnosticsAddr is where the diagnostics HTTP API listens.
	// Empty disables the diagnostics server entirely.
	DiagnosticsAddr string

	// KafkaBrokers and KafkaTopic configure the trade-feed publisher.
	// Empty KafkaBrokers disables the publisher entirely.
	KafkaBrokers []string
	KafkaTopic   string
}

const (
	envDiagnosticsAddr = "MATCHSRV_DIAGNOSTICS_ADDR"
	envKafkaBrokers    = "MATCHSRV_KAFKA_BROKERS"
	envKafkaTopic      = "MATCHSRV_KAFKA_TOPIC"

	defaultDiagnosticsAddr = ":8080"
	defaultKafkaTopic      = "matchsrv.fills"
)

// FromEnv reads the supplemental configuration from the process
// environment. DiagnosticsAddr defaults to ":8080" unless explicitly
// set to an empty string to disable it; Kafka publishing stays
// disabled unless MATCHSRV_KAFKA_BROKERS is set.
func FromEnv() Supplemental {
	cfg := Supplemental{
		DiagnosticsAddr: defaultDiagnosticsAddr,
		KafkaTopic:      defaultKafkaTopic,
	}
	if v, ok := os.LookupEnv(envDiagnosticsAddr); ok {
		cfg.DiagnosticsAddr = v
	}
	if v := os.Getenv(envKafkaBrokers); v != "" {
		cfg.KafkaBrokers = strings.Split(v, ",")
	}
	if v, ok := os.LookupEnv(envKafkaTopic); ok {
		cfg.KafkaTopic = v
	}
	return cfg
}
