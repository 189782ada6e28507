// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// BuildFlagSet declares every CLI flag GetNodeConfig reads back through
// viper, grounded on the teacher's convention of a single flag-set builder
// consumed by both the root cobra command and a bare pflag.FlagSet in
// tests.
func BuildFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("zorachain", pflag.ContinueOnError)

	fs.String(DataDirKey, "~/.zorachain", "directory for node data")
	fs.String(LogLevelKey, "info", "log level (debug|info|warn|error)")
	fs.String(LogDirKey, "", "directory for rotated log files; empty logs to stderr")
	fs.String(MetricsNamespaceKey, "zorachain", "prometheus metric namespace")
	fs.Int(BlockCapacityKey, 1000, "maximum pending transactions per block before auto-finalize")
	fs.String(DuplicatePolicyKey, "overwrite", "duplicate transaction handle policy (overwrite|reject)")
	fs.Int(ReplayWindowKey, 4096, "size of the in-memory transaction replay guard")

	return fs
}

// BindViper binds fs's flags into v, so GetNodeConfig's v.GetX calls see
// CLI-provided values with flag defaults as the fallback.
func BindViper(v *viper.Viper, fs *pflag.FlagSet) error {
	return v.BindPFlags(fs)
}

// BuildViper parses args against fs and returns a viper.Viper bound to it,
// for callers that parse flags without cobra (main.go lets cobra parse and
// calls BindViper instead), mirroring the teacher's BuildFlagSet+BuildViper
// split between flag declaration and parsing.
func BuildViper(fs *pflag.FlagSet, args []string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	v := viper.New()
	if err := BindViper(v, fs); err != nil {
		return nil, err
	}
	return v, nil
}
