// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zorachain/ledger/abci"
	"github.com/zorachain/ledger/config"
	"github.com/zorachain/ledger/crypto/secp256k1signer"
	"github.com/zorachain/ledger/ledger"
	"github.com/zorachain/ledger/metrics"
	"github.com/zorachain/ledger/submission"
)

// nodeVersion is this module's own release marker, independent of the
// teacher's network-protocol compatibility version scheme (out of scope:
// consensus engine networking owns that concern).
const nodeVersion = "zorachain-ledger/v0.1.0"

func newRootCommand() *cobra.Command {
	fs := config.BuildFlagSet()
	v := viper.New()

	cmd := &cobra.Command{
		Use:     "zoranode",
		Short:   "runs the ledger core, driven by an external consensus engine over the abci.Application callback surface",
		Version: nodeVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.BindViper(v, cmd.Flags()); err != nil {
				return err
			}
			return run(v)
		},
	}
	cmd.Flags().AddFlagSet(fs)
	return cmd
}

func run(v *viper.Viper) error {
	cfg, err := config.GetNodeConfig(v)
	if err != nil {
		return fmt.Errorf("couldn't load node config: %w", err)
	}

	log := config.NewLogger(cfg.Logging)
	mx, err := metrics.New(cfg.MetricsNamespace, prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("couldn't register metrics: %w", err)
	}

	oracle := secp256k1signer.Oracle{}
	ls := ledger.New(&oracle, log, mx)
	server := submission.New(ls, &oracle, log, cfg.Submission)
	_ = abci.NewDispatcher(server, ls, &oracle, log, cfg.ReplayWindow)

	log.Info("zorachain node ready")

	// The consensus engine drives every callback on abci.Application from
	// its own process; this process has nothing further to do on its own
	// thread beyond waiting for a shutdown signal (spec.md §1 non-goal: no
	// own networking, no own thread scheduling).
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info("zorachain node shutting down")
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
