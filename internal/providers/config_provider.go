package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"hnblocks/internal/structures"
)

const AppName = "hnblocks"

func setDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 8080)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("logger.dir", "/tmp")
	v.SetDefault("upstream.baseURL", "https://hn.algolia.com")
	v.SetDefault("upstream.timeout", 10*time.Second)
	v.SetDefault("upstream.hitsPerPage", 100)
	v.SetDefault("upstream.refreshInterval", 5*time.Minute)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 64)
	v.SetDefault("cache.ttl", 30*time.Minute)
	v.SetDefault("cache.recentTTL", time.Minute)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	setDefaults(v)

	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	_ = v.BindEnv("logger.level", "HNB_LOG_LEVEL")
	_ = v.BindEnv("webServer.port", "HNB_PORT")
	_ = v.BindEnv("upstream.baseURL", "HNB_UPSTREAM_URL")
	_ = v.BindEnv("cache.enabled", "HNB_CACHE_ENABLED")
	_ = v.BindEnv("cache.size", "HNB_CACHE_SIZE")
	_ = v.BindEnv("settings.filePath", "HNB_SETTINGS_FILE")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	if conf.Settings.FilePath == "" {
		conf.Settings.FilePath, err = xdg.DataFile(filepath.Join(AppName, "settings.dat"))
		if err != nil {
			return nil, fmt.Errorf("resolve settings file: %w", err)
		}
	}

	conf.AppName = "HNTimeBlocks"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
