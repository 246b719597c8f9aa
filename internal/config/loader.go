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
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName      = ".ghcprof"
	configType      = "yaml"
	envPrefix       = "GHCPROF"
	envKeySeparator = "_"
)

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("tree.equal_depth_siblings", DefaultEqualDepthSiblings)
	v.SetDefault("view.color", DefaultViewColor)
	v.SetDefault("view.max_depth", DefaultViewMaxDepth)
	v.SetDefault("view.min_inherited_time", DefaultMinInheritedTime)
	v.SetDefault("pprof.exclude_main", DefaultPprofExcludeMain)
	v.SetDefault("pprof.qualify_names", DefaultPprofQualifyNames)
	v.SetDefault("collapsed.metric", DefaultCollapsedMetric)
	v.SetDefault("dump.format", DefaultDumpFormat)
}
