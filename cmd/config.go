package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gaphound/gaphound/internal/config"
	"github.com/gaphound/gaphound/internal/hygiene"
	"github.com/gaphound/gaphound/store"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// initConfig reads in the config file and environment variables if set.
func initConfig() {
	viper.SetDefault(config.KeyMaxGaps, hygiene.DefaultMaxGaps)
	viper.SetDefault(config.KeyMinScore, hygiene.DefaultMinScore)
	viper.SetDefault(config.KeySimilarityThreshold, hygiene.DefaultSimilarityThreshold)
	viper.SetDefault(config.KeyDisableDedupe, false)
	viper.SetDefault(config.KeyIncludeResolved, false)
	viper.SetDefault(config.KeyBlockingThreshold, hygiene.DefaultBlockingThreshold)
	viper.SetDefault(config.KeyImportantThreshold, hygiene.DefaultImportantThreshold)
	viper.SetDefault(config.KeyFutureThreshold, hygiene.DefaultFutureThreshold)
	viper.SetDefault(config.KeyStoreDir, config.DefaultStoreDir)
	viper.SetDefault(config.KeyStoreBackend, config.DefaultBackend)
	viper.SetDefault(config.KeyStoreFormat, config.DefaultFormat)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(config.DefaultStoreDir)
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("GAPHOUND")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	}

	level := slog.LevelWarn
	if verbose || viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// engineConfig builds the hygiene engine configuration from viper.
func engineConfig() hygiene.Config {
	return hygiene.Config{
		MaxGaps:             viper.GetInt(config.KeyMaxGaps),
		MinScore:            viper.GetInt(config.KeyMinScore),
		SimilarityThreshold: viper.GetFloat64(config.KeySimilarityThreshold),
		DisableDedupe:       viper.GetBool(config.KeyDisableDedupe),
		IncludeResolved:     viper.GetBool(config.KeyIncludeResolved),
		BlockingThreshold:   viper.GetInt(config.KeyBlockingThreshold),
		ImportantThreshold:  viper.GetInt(config.KeyImportantThreshold),
		FutureThreshold:     viper.GetInt(config.KeyFutureThreshold),
	}
}

// getStore initializes the configured result store.
func getStore() (store.ResultStore, error) {
	dir := viper.GetString(config.KeyStoreDir)
	switch backend := viper.GetString(config.KeyStoreBackend); backend {
	case config.BackendSQLite:
		return store.NewSQLiteResultStore(filepath.Join(dir, config.SQLiteFileName))
	case config.BackendFile:
		return store.NewFileResultStore(afero.NewOsFs(), dir, viper.GetString(config.KeyStoreFormat))
	default:
		return nil, fmt.Errorf("unknown store backend: %s (supported: %s, %s)", backend, config.BackendFile, config.BackendSQLite)
	}
}
