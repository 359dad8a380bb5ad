package config

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// Supported text encodings of serialized trees.
const (
	EncodingHex    = "hex"
	EncodingBase64 = "base64"
	EncodingBase58 = "base58"
)

// ApplicationConfiguration config specific to the command line tool.
type ApplicationConfiguration struct {
	LogLevel string `yaml:"LogLevel"`
	LogPath  string `yaml:"LogPath"`
	// Encoding is used for trees printed to the output or read from
	// the arguments.
	Encoding string `yaml:"Encoding"`
	// Compress enables lz4 compression of tree files.
	Compress bool `yaml:"Compress"`
}

// Validate checks ApplicationConfiguration for internal consistency.
func (a ApplicationConfiguration) Validate() error {
	if len(a.LogLevel) != 0 {
		if _, err := zapcore.ParseLevel(a.LogLevel); err != nil {
			return fmt.Errorf("invalid LogLevel: %w", err)
		}
	}
	switch a.Encoding {
	case EncodingHex, EncodingBase64, EncodingBase58:
	default:
		return fmt.Errorf("unknown Encoding %q", a.Encoding)
	}
	return nil
}
