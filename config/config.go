// Copyright (C) 2019-2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config assembles Config from a viper.Viper populated by
// pflag-bound CLI flags, following the teacher's getXConfig(v *viper.Viper)
// per-section pattern (config/config.go's getLoggingConfig, getHTTPConfig,
// and so on) scaled down to this module's much smaller surface.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/zorachain/ledger/logging"
	"github.com/zorachain/ledger/submission"
)

// Flag keys, bound to pflag in BuildFlagSet and read back out of viper in
// GetNodeConfig, mirroring the teacher's flat string-constant flag-key
// convention.
const (
	DataDirKey          = "data-dir"
	LogLevelKey         = "log-level"
	LogDirKey           = "log-dir"
	MetricsNamespaceKey = "metrics-namespace"
	BlockCapacityKey    = "block-capacity"
	DuplicatePolicyKey  = "duplicate-policy"
	ReplayWindowKey     = "replay-window"
)

// LoggingConfig mirrors the teacher's logging.Config shape, trimmed to
// what this module's logging package actually parameterizes.
type LoggingConfig struct {
	Level      string
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Config is the fully resolved node configuration, analogous to the
// teacher's node.Config but scoped to the ledger core's own concerns.
type Config struct {
	DataDir          string
	Logging          LoggingConfig
	MetricsNamespace string
	Submission       submission.Config
	ReplayWindow     int
}

func getLoggingConfig(v *viper.Viper) (LoggingConfig, error) {
	level := v.GetString(LogLevelKey)
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return LoggingConfig{}, fmt.Errorf("config: invalid %s %q", LogLevelKey, level)
	}
	return LoggingConfig{
		Level:      level,
		Dir:        v.GetString(LogDirKey),
		MaxSizeMB:  100,
		MaxBackups: 5,
		MaxAgeDays: 30,
	}, nil
}

func getSubmissionConfig(v *viper.Viper) (submission.Config, error) {
	capacity := v.GetInt(BlockCapacityKey)
	if capacity <= 0 {
		return submission.Config{}, fmt.Errorf("config: %s must be positive, got %d", BlockCapacityKey, capacity)
	}

	var policy submission.DuplicatePolicy
	switch v.GetString(DuplicatePolicyKey) {
	case "", "overwrite":
		policy = submission.DuplicateOverwrite
	case "reject":
		policy = submission.DuplicateReject
	default:
		return submission.Config{}, fmt.Errorf("config: invalid %s %q", DuplicatePolicyKey, v.GetString(DuplicatePolicyKey))
	}

	return submission.Config{BlockCapacity: capacity, DuplicatePolicy: policy}, nil
}

// GetNodeConfig resolves a fully populated Config from v, the way the
// teacher's GetNodeConfig assembles node.Config from its many getXConfig
// helpers.
func GetNodeConfig(v *viper.Viper) (Config, error) {
	logCfg, err := getLoggingConfig(v)
	if err != nil {
		return Config{}, err
	}
	subCfg, err := getSubmissionConfig(v)
	if err != nil {
		return Config{}, err
	}

	replayWindow := v.GetInt(ReplayWindowKey)
	if replayWindow <= 0 {
		replayWindow = 4096
	}

	return Config{
		DataDir:          v.GetString(DataDirKey),
		Logging:          logCfg,
		MetricsNamespace: v.GetString(MetricsNamespaceKey),
		Submission:       subCfg,
		ReplayWindow:     replayWindow,
	}, nil
}

// NewLogger builds the logging.Logger GetNodeConfig's LoggingConfig
// describes: a rotating file core when Dir is set, otherwise the console
// writer.
func NewLogger(cfg LoggingConfig) logging.Logger {
	if cfg.Dir == "" {
		return logging.New()
	}
	return logging.NewFileCore(cfg.Dir+"/zorachain.log", cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
}
