package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/iwvelando/mortgage-estimator/internal/config"
	"github.com/iwvelando/mortgage-estimator/internal/server"
	"github.com/iwvelando/mortgage-estimator/internal/worksheet"
	"github.com/iwvelando/mortgage-estimator/pkg/constants"
	"github.com/iwvelando/mortgage-estimator/pkg/output"
	"github.com/iwvelando/mortgage-estimator/pkg/validation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info"
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
	case "json":
		zapConfig = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)

	// Logs go to stderr unless a file is configured; stdout carries the worksheet
	zapConfig.OutputPaths = []string{"stderr"}
	if loggingConfig.OutputFile != "" {
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
			}
		}

		file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %w", loggingConfig.OutputFile, err)
		}
		_ = file.Close()

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

// loadConfiguration reads the rate configuration. A missing file at the
// default location falls back to the built-in defaults.
func loadConfiguration(path string, explicit bool) (*config.Configuration, error) {
	conf, err := config.LoadConfiguration(path)
	if err == nil {
		return conf, conf.Validate()
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return nil, err
}

// runWorksheet evaluates one worksheet file and renders the report to w.
func runWorksheet(conf *config.Configuration, logger *zap.Logger, path, format string, w io.Writer) error {
	doc, err := worksheet.Load(path)
	if err != nil {
		return err
	}

	report, err := worksheet.Run(conf, logger, doc)
	if err != nil {
		return err
	}

	if report.Purchase != nil {
		for _, warning := range report.Purchase.Warnings {
			logger.Warn("Purchase warning: "+warning, zap.String("op", "main.runWorksheet"))
		}
	}
	for _, row := range report.Comparison {
		for _, warning := range row.Warnings {
			logger.Warn("Comparison warning: "+warning,
				zap.String("op", "main.runWorksheet"),
				zap.String("scenario", row.Name),
			)
		}
	}

	return output.Write(w, format, report)
}

func serve(conf *config.Configuration, logger *zap.Logger, serverConfigPath string) error {
	serverConf, err := server.LoadConfig(serverConfigPath)
	if err != nil {
		return err
	}

	// The server's own logging block takes over when it names anything
	if serverConf.Logging != (config.LoggingConfig{}) {
		serverLogger, err := initializeLogger(serverConf.Logging, "")
		if err != nil {
			return err
		}
		defer func() {
			_ = serverLogger.Sync()
		}()
		logger = serverLogger
	}

	handler, err := server.NewHandler(logger, conf, serverConf.BodySizeBytes(), version)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              serverConf.Address,
		Handler:           handler,
		ReadHeaderTimeout: serverConf.ReadHeaderTimeoutDuration(),
	}

	logger.Info("starting estimate server",
		zap.String("op", "main.serve"),
		zap.String("address", serverConf.Address),
		zap.Int64("maxBodySize", serverConf.BodySizeBytes()),
		zap.String("version", version),
	)
	return srv.ListenAndServe()
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	worksheetLocation := flag.String("worksheet", "", "path to a YAML or JSON worksheet to evaluate")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	serveFlag := flag.Bool("serve", false, "run the HTTP API instead of evaluating a worksheet")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	flag.Parse()

	explicitConfig := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicitConfig = true
		}
	})

	conf, err := loadConfiguration(*configLocation, explicitConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": %q}\n", *configLocation, err.Error())
		os.Exit(1)
	}

	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": %q}\n", err.Error())
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if *serveFlag {
		if err := serve(conf, logger, *serverConfigLocation); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if *worksheetLocation == "" {
		logger.Fatal("no worksheet given; pass -worksheet or -serve",
			zap.String("op", "main"),
		)
	}

	if err := runWorksheet(conf, logger, *worksheetLocation, outputFormat, os.Stdout); err != nil {
		logger.Fatal("failed to evaluate worksheet",
			zap.String("op", "main"),
			zap.String("worksheet", *worksheetLocation),
			zap.Error(err),
		)
	}
}
