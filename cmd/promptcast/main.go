package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BaSui01/promptcast"
	"github.com/BaSui01/promptcast/config"
	"github.com/BaSui01/promptcast/internal/telemetry"
	"github.com/BaSui01/promptcast/types"
)

// Version information, injected at build time.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "cast":
		runCast(os.Args[2:])
	case "health":
		runHealth(os.Args[2:])
	case "version":
		printVersion()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runCast(args []string) {
	fs := flag.NewFlagSet("cast", flag.ExitOnError)
	op := fs.String("op", "text", "Operation: bool | categorize | list | cast | text")
	promptText := fs.String("prompt", "", "The prompt to cast")
	values := fs.String("values", "", "Comma-separated allowed values (categorize, list)")
	minValues := fs.Int("min", 1, "Minimum number of list values")
	maxValues := fs.Int("max", 5, "Maximum number of list values")
	high := fs.Bool("high", false, "Use the high-capability model")
	schemaJSON := fs.String("schema", "", "Descriptor JSON for -op cast")
	configPath := fs.String("config", "", "Path to configuration file (YAML)")
	fs.Parse(args)

	cfg := loadConfig(*configPath)
	logger := initLogger(cfg.Log)
	defer logger.Sync()

	otelProviders, err := telemetry.Init(cfg.Telemetry, logger)
	if err != nil {
		logger.Warn("failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if otelProviders == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelProviders.Shutdown(ctx); err != nil {
			logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}()

	caster, err := promptcast.NewFromConfig(cfg, logger)
	if err != nil {
		fatalf(logger, "create caster: %v", err)
	}

	var opts []promptcast.CallOption
	if *high {
		opts = append(opts, promptcast.WithHighCapability())
	}

	ctx := context.Background()
	var result any
	switch *op {
	case "bool":
		result, err = caster.Bool(ctx, *promptText, opts...)
	case "categorize":
		result, err = caster.Categorize(ctx, *promptText, splitValues(*values), opts...)
	case "list":
		opts = append(opts, promptcast.WithMinValues(*minValues), promptcast.WithMaxValues(*maxValues))
		result, err = caster.List(ctx, *promptText, splitValues(*values), opts...)
	case "cast":
		var d types.Descriptor
		if decodeErr := json.Unmarshal([]byte(*schemaJSON), &d); decodeErr != nil {
			fatalf(logger, "parse -schema: %v", decodeErr)
		}
		result, err = caster.Cast(ctx, *promptText, &d, opts...)
	case "text":
		result, err = caster.Text(ctx, *promptText, opts...)
	default:
		fatalf(logger, "unknown operation %q (want bool, categorize, list, cast, or text)", *op)
	}
	if err != nil {
		fatalf(logger, "cast failed: %v", err)
	}

	out, err := json.Marshal(result)
	if err != nil {
		fatalf(logger, "encode result: %v", err)
	}
	fmt.Println(string(out))
}

func runHealth(args []string) {
	fs := flag.NewFlagSet("health", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to configuration file (YAML)")
	fs.Parse(args)

	cfg := loadConfig(*configPath)
	logger := initLogger(cfg.Log)
	defer logger.Sync()

	caster, err := promptcast.NewFromConfig(cfg, logger)
	if err != nil {
		fatalf(logger, "create caster: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := caster.Provider().HealthCheck(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Health check failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("OK")
}

func loadConfig(path string) *config.Config {
	loader := config.NewLoader()
	if path != "" {
		loader = loader.WithConfigPath(path)
	}
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func splitValues(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func fatalf(logger *zap.Logger, format string, args ...any) {
	logger.Sync()
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func printVersion() {
	fmt.Printf("promptcast %s\n", Version)
	fmt.Printf("  Build Time: %s\n", BuildTime)
	fmt.Printf("  Git Commit: %s\n", GitCommit)
}

func printUsage() {
	fmt.Println(`promptcast - cast prompts into typed values

Usage:
  promptcast <command> [options]

Commands:
  cast      Run a cast operation and print the result as JSON
  health    Check that the configured provider is reachable
  version   Show version information
  help      Show this help message

Options for 'cast':
  -op <name>        bool | categorize | list | cast | text (default text)
  -prompt <text>    The prompt to cast
  -values <csv>     Comma-separated allowed values (categorize, list)
  -min <n>          Minimum number of list values (default 1)
  -max <n>          Maximum number of list values (default 5)
  -high             Use the high-capability model
  -schema <json>    Descriptor JSON for -op cast
  -config <path>    Path to configuration file (YAML)

Examples:
  promptcast cast -op bool -prompt "Is the Atlantic larger than the Baltic?"
  promptcast cast -op categorize -prompt "My favorite color is red" -values "red,blue,green"
  promptcast cast -op list -prompt "Name some rock bands" -max 3
  promptcast cast -op cast -prompt "What is 2+2?" -schema '{"kind":"number"}'
  promptcast health -config /etc/promptcast/config.yaml`)
}

// initLogger builds the zap logger from the log configuration.
func initLogger(cfg config.LogConfig) *zap.Logger {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var encoderConfig zapcore.EncoderConfig
	encoding := "json"
	if cfg.Format == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoding = "console"
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	outputPaths := cfg.OutputPaths
	if len(outputPaths) == 0 {
		outputPaths = []string{"stderr"}
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      cfg.Format == "console",
		Encoding:         encoding,
		EncoderConfig:    encoderConfig,
		OutputPaths:      outputPaths,
		ErrorOutputPaths: []string{"stderr"},
	}

	var opts []zap.Option
	if cfg.EnableCaller {
		opts = append(opts, zap.AddCaller())
	}
	if cfg.EnableStacktrace {
		opts = append(opts, zap.AddStacktrace(zapcore.ErrorLevel))
	}

	logger, err := zapConfig.Build(opts...)
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}
