package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/themes/internal/paths"
	"github.com/mesh-intelligence/themes/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend         = "backend"
	cfgKeyThemeQuestionID = "query.theme_question_id"
	cfgKeyExcludeTypes    = "query.exclude_types"
	cfgKeyExcludeStates   = "query.exclude_states"
	cfgKeyOrder           = "allocation.order"
)

// loadConfig reads config.yaml from configDir with Viper and resolves the
// snapshot path. A missing config.yaml is not an error: the built-in
// defaults apply. A flag named "order" in flags overrides allocation.order
// when set.
func loadConfig(configDir, databaseFlag string, flags *pflag.FlagSet) (types.Config, error) {
	defaults := types.DefaultConfig()

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaults.Backend)
	v.SetDefault(cfgKeyThemeQuestionID, defaults.Query.ThemeQuestionID)
	v.SetDefault(cfgKeyExcludeTypes, defaults.Query.ExcludeTypes)
	v.SetDefault(cfgKeyExcludeStates, defaults.Query.ExcludeStates)
	v.SetDefault(cfgKeyOrder, defaults.Allocation.Order)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if flags != nil {
		if f := flags.Lookup("order"); f != nil {
			if err := v.BindPFlag(cfgKeyOrder, f); err != nil {
				return types.Config{}, fmt.Errorf("bind order flag: %w", err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if len(cfg.Catalog.Themes) == 0 {
		cfg.Catalog.Themes = defaults.Catalog.Themes
	}
	if len(cfg.Catalog.Types) == 0 {
		cfg.Catalog.Types = defaults.Catalog.Types
	}

	database, err := paths.ResolveDatabase(databaseFlag, cfg.Database)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve database: %w", err)
	}
	cfg.Database = database

	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// writeConfigIfMissing writes cfg as config.yaml in configDir unless the
// file already exists. It reports whether a file was written.
func writeConfigIfMissing(configDir string, cfg types.Config) (bool, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config directory: %w", err)
	}

	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	header := []byte("# themes configuration. The order of catalog.themes drives tie-breaking\n# and display numbering.\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}
