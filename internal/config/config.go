// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"log/slog"
)

// Config is the top-level configuration for ghcprof.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Tree      TreeConfig      `mapstructure:"tree"`
	View      ViewConfig      `mapstructure:"view"`
	Pprof     PprofConfig     `mapstructure:"pprof"`
	Collapsed CollapsedConfig `mapstructure:"collapsed"`
	Dump      DumpConfig      `mapstructure:"dump"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// TreeConfig controls how the call tree is rebuilt from indentation.
type TreeConfig struct {
	EqualDepthSiblings bool `mapstructure:"equal_depth_siblings"`
}

type ViewConfig struct {
	Color            bool    `mapstructure:"color"`
	MaxDepth         int     `mapstructure:"max_depth"`
	MinInheritedTime float32 `mapstructure:"min_inherited_time"`
}

type PprofConfig struct {
	ExcludeMain  bool `mapstructure:"exclude_main"`
	QualifyNames bool `mapstructure:"qualify_names"`
}

type CollapsedConfig struct {
	Metric string `mapstructure:"metric"`
}

type DumpConfig struct {
	Format string `mapstructure:"format"`
}

// Defaults.
const (
	DefaultLogLevel           = "info"
	DefaultEqualDepthSiblings = false
	DefaultViewColor          = true
	DefaultViewMaxDepth       = 0
	DefaultMinInheritedTime   = 0
	DefaultPprofExcludeMain   = false
	DefaultPprofQualifyNames  = false
	DefaultCollapsedMetric    = "time"
	DefaultDumpFormat         = "yaml"
)

var (
	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("log.level must be one of debug, info, warn, error")
	// ErrInvalidMaxDepth indicates a negative view depth.
	ErrInvalidMaxDepth = errors.New("view.max_depth must be non-negative")
	// ErrInvalidMinInheritedTime indicates a percentage outside 0..100.
	ErrInvalidMinInheritedTime = errors.New("view.min_inherited_time must be between 0 and 100")
	// ErrInvalidMetric indicates an unknown collapsed metric.
	ErrInvalidMetric = errors.New("collapsed.metric must be one of time, alloc, entries")
	// ErrInvalidDumpFormat indicates an unknown dump format.
	ErrInvalidDumpFormat = errors.New("dump.format must be yaml or json")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}

	if c.View.MaxDepth < 0 {
		return ErrInvalidMaxDepth
	}

	if c.View.MinInheritedTime < 0 || c.View.MinInheritedTime > 100 {
		return ErrInvalidMinInheritedTime
	}

	switch c.Collapsed.Metric {
	case "time", "alloc", "entries":
	default:
		return ErrInvalidMetric
	}

	switch c.Dump.Format {
	case "yaml", "json":
	default:
		return ErrInvalidDumpFormat
	}

	return nil
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	switch l.Level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, ErrInvalidLogLevel
}
