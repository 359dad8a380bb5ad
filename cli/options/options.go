/*
Package options contains a set of common CLI options and helper functions to use them.
*/
package options

import (
	"fmt"

	"github.com/nspcc-dev/bytetree/pkg/config"
	"github.com/nspcc-dev/bytetree/pkg/io"
	"github.com/urfave/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ConfigFile is a flag for commands that use configuration file.
var ConfigFile = cli.StringFlag{
	Name:  "config-file",
	Usage: "path to the configuration file (defaults are used if not set)",
}

// Debug is a flag for commands that allow debug mode usage.
var Debug = cli.BoolFlag{
	Name:  "debug, d",
	Usage: "enable debug logging (LOTS of output, overrides configuration)",
}

// Tree is a set of flags overriding tree configuration.
var Tree = []cli.Flag{
	cli.StringFlag{
		Name:  "hash",
		Usage: "digest function name (sha256, sha3-256, blake2b), overrides configuration",
	},
	cli.IntFlag{
		Name:  "digest-size",
		Usage: "digest size in bytes, overrides configuration",
	},
}

// Format is a set of flags controlling tree file and text representation.
var Format = []cli.Flag{
	cli.StringFlag{
		Name:  "encoding, e",
		Usage: "text encoding of trees in arguments and output (hex, base64, base58), overrides configuration",
	},
	cli.BoolFlag{
		Name:  "compress, z",
		Usage: "use lz4-compressed tree files, overrides configuration",
	},
}

// GetConfigFromContext loads configuration file (if any) and applies
// command line overrides to it.
func GetConfigFromContext(ctx *cli.Context) (config.Config, error) {
	var (
		cfg = config.Default()
		err error
	)
	if configFile := ctx.String("config-file"); len(configFile) != 0 {
		cfg, err = config.LoadFile(configFile)
		if err != nil {
			return config.Config{}, err
		}
	}
	if h := ctx.String("hash"); len(h) != 0 {
		cfg.Tree.Hash = h
	}
	if ctx.IsSet("digest-size") {
		cfg.Tree.DigestSize = ctx.Int("digest-size")
	}
	if e := ctx.String("encoding"); len(e) != 0 {
		cfg.Application.Encoding = e
	}
	if ctx.Bool("compress") {
		cfg.Application.Compress = true
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// HandleLoggingParams reads logging parameters.
// If a user selected debug level -- function enables it.
// If logPath is configured -- function creates a dir and a file for logging.
func HandleLoggingParams(debug bool, cfg config.ApplicationConfiguration) (*zap.Logger, *zap.AtomicLevel, error) {
	var (
		level = zapcore.InfoLevel
		err   error
	)
	if len(cfg.LogLevel) > 0 {
		level, err = zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, nil, fmt.Errorf("log setting: %w", err)
		}
	}
	if debug {
		level = zapcore.DebugLevel
	}

	cc := zap.NewProductionConfig()
	cc.DisableCaller = true
	cc.DisableStacktrace = true
	cc.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	cc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cc.Encoding = "console"
	cc.Level = zap.NewAtomicLevelAt(level)
	cc.Sampling = nil

	if logPath := cfg.LogPath; logPath != "" {
		if err := io.MakeDirForFile(logPath, "logger"); err != nil {
			return nil, nil, err
		}
		cc.OutputPaths = []string{logPath}
	}

	log, err := cc.Build()
	return log, &cc.Level, err
}
