package options

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/bytetree/pkg/config"
	"github.com/nspcc-dev/bytetree/pkg/crypto/hash"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
	"go.uber.org/zap/zapcore"
)

func TestGetConfigFromContext(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		set := flag.NewFlagSet("flagSet", flag.ExitOnError)
		ctx := cli.NewContext(cli.NewApp(), set, nil)
		cfg, err := GetConfigFromContext(ctx)
		require.NoError(t, err)
		require.Equal(t, config.Default(), cfg)
	})

	t.Run("file with overrides", func(t *testing.T) {
		cfgPath := filepath.Join(t.TempDir(), "bst.yml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("Tree:\n  Hash: blake2b\n  DigestSize: 64\n"), 0644))

		set := flag.NewFlagSet("flagSet", flag.ExitOnError)
		set.String("config-file", cfgPath, "")
		set.Int("digest-size", 0, "")
		set.String("encoding", "base58", "")
		set.Bool("compress", true, "")
		require.NoError(t, set.Parse([]string{"--digest-size", "16"}))
		ctx := cli.NewContext(cli.NewApp(), set, nil)
		cfg, err := GetConfigFromContext(ctx)
		require.NoError(t, err)
		require.Equal(t, hash.Blake2b, cfg.Tree.Hash)
		require.Equal(t, 16, cfg.Tree.DigestSize)
		require.Equal(t, config.EncodingBase58, cfg.Application.Encoding)
		require.True(t, cfg.Application.Compress)
	})

	t.Run("invalid override", func(t *testing.T) {
		set := flag.NewFlagSet("flagSet", flag.ExitOnError)
		set.String("hash", "md5", "")
		ctx := cli.NewContext(cli.NewApp(), set, nil)
		_, err := GetConfigFromContext(ctx)
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		set := flag.NewFlagSet("flagSet", flag.ExitOnError)
		set.String("config-file", filepath.Join(t.TempDir(), "none.yml"), "")
		ctx := cli.NewContext(cli.NewApp(), set, nil)
		_, err := GetConfigFromContext(ctx)
		require.Error(t, err)
	})
}

func TestHandleLoggingParams(t *testing.T) {
	d := t.TempDir()

	t.Run("logdir is a file", func(t *testing.T) {
		logfile := filepath.Join(d, "logdir")
		require.NoError(t, os.WriteFile(logfile, []byte{1, 2, 3}, os.ModePerm))
		cfg := config.ApplicationConfiguration{
			LogPath: filepath.Join(logfile, "file.log"),
		}
		_, _, err := HandleLoggingParams(false, cfg)
		require.Error(t, err)
	})

	t.Run("default", func(t *testing.T) {
		logger, lvl, err := HandleLoggingParams(false, config.ApplicationConfiguration{})
		require.NoError(t, err)
		require.Equal(t, zapcore.InfoLevel, lvl.Level())
		require.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("level from config", func(t *testing.T) {
		_, lvl, err := HandleLoggingParams(false, config.ApplicationConfiguration{LogLevel: "warn"})
		require.NoError(t, err)
		require.Equal(t, zapcore.WarnLevel, lvl.Level())
	})

	t.Run("bad level", func(t *testing.T) {
		_, _, err := HandleLoggingParams(false, config.ApplicationConfiguration{LogLevel: "loud"})
		require.Error(t, err)
	})

	t.Run("debug to file", func(t *testing.T) {
		testLog := filepath.Join(d, "sub", "file.log")
		logger, lvl, err := HandleLoggingParams(true, config.ApplicationConfiguration{LogLevel: "error", LogPath: testLog})
		require.NoError(t, err)
		require.Equal(t, zapcore.DebugLevel, lvl.Level())
		logger.Debug("something")
		_ = logger.Sync()
		data, err := os.ReadFile(testLog)
		require.NoError(t, err)
		require.Contains(t, string(data), "something")
	})
}
