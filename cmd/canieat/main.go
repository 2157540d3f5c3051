package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/can-i-eat-this/internal/common"
	"github.com/Veraticus/can-i-eat-this/internal/config"
	"github.com/Veraticus/can-i-eat-this/internal/scanner"
	"github.com/Veraticus/can-i-eat-this/internal/source"
	"github.com/Veraticus/can-i-eat-this/internal/vision"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "canieat",
		Short: "🌱 Food label dietary scanner",
		Long: `can-i-eat-this: point it at a food label photo and it tells you whether
the product looks gluten-free, vegan, and vegetarian.

The verdict reports keyword evidence found on the label, not medical
advice: a clear result means nothing disqualifying was spotted in the
text the camera could read.`,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/canieat/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().StringSlice("lexicon", nil, "extra keyword pack file or directory (repeatable)")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))

	// Add commands
	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(galleryCmd())
	rootCmd.AddCommand(snapCmd())
	rootCmd.AddCommand(keywordsCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel() // Always cleanup

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(config.DefaultConfigDir())
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("CANIEAT")
	viper.AutomaticEnv()

	setDefaults()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	// Set up logging
	if err := setupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("ocr.language", "eng")
	viper.SetDefault("ocr.psm", 0)
	viper.SetDefault("ocr.dpi", 0)
	viper.SetDefault("preprocess.enabled", true)
	viper.SetDefault("preprocess.max_width", vision.DefaultMaxWidth)
	viper.SetDefault("preprocess.binarize", vision.BinarizeAuto.String())
	viper.SetDefault("scan.concurrency", scanner.DefaultConcurrency)
	viper.SetDefault("camera.timeout", source.DefaultCaptureTimeout)
}

func setupLogging() error {
	level := viper.GetString("logging.level")
	format := viper.GetString("logging.format")

	// Parse log level
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return fmt.Errorf("invalid log level: %s", level)
	}

	switch format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %s", format)
	}

	return common.SetupLogger(slogLevel, format)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			slog.Info("canieat version", "version", version, "ocr", ocrStatus())
		},
	}
}
