package tree

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	gio "io"
	"os"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/bytetree/pkg/bst"
	"github.com/nspcc-dev/bytetree/pkg/config"
	"github.com/nspcc-dev/bytetree/pkg/io"
	"github.com/pierrec/lz4"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

var errNoInput = errors.New("no tree given, use '--in' or '--data' flag")

// encodeText converts serialized tree into its text representation.
func encodeText(encoding string, data []byte) (string, error) {
	switch encoding {
	case config.EncodingHex:
		return hex.EncodeToString(data), nil
	case config.EncodingBase64:
		return base64.StdEncoding.EncodeToString(data), nil
	case config.EncodingBase58:
		return base58.Encode(data), nil
	default:
		return "", fmt.Errorf("unknown encoding %q", encoding)
	}
}

// decodeText is the inverse of encodeText. An empty string is an empty tree
// in any encoding.
func decodeText(encoding string, s string) ([]byte, error) {
	if len(s) == 0 {
		return nil, nil
	}
	switch encoding {
	case config.EncodingHex:
		return hex.DecodeString(s)
	case config.EncodingBase64:
		return base64.StdEncoding.DecodeString(s)
	case config.EncodingBase58:
		return base58.Decode(s)
	default:
		return nil, fmt.Errorf("unknown encoding %q", encoding)
	}
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	return gio.ReadAll(lz4.NewReader(bytes.NewReader(data)))
}

// readTree decodes a tree from the file given with '--in' flag or from the
// text given with '--data' flag.
func readTree(ctx *cli.Context, cfg config.Config, log *zap.Logger) (*bst.Tree, error) {
	var (
		data []byte
		err  error
	)
	digest, err := cfg.Tree.DigestFunc()
	if err != nil {
		return nil, err
	}
	switch {
	case len(ctx.String("in")) != 0:
		in := ctx.String("in")
		data, err = os.ReadFile(in)
		if err != nil {
			return nil, fmt.Errorf("failed to read tree file: %w", err)
		}
		if cfg.Application.Compress {
			data, err = decompress(data)
			if err != nil {
				return nil, fmt.Errorf("failed to decompress %s: %w", in, err)
			}
		}
		log.Debug("tree file read", zap.String("file", in), zap.Int("bytes", len(data)))
	case ctx.IsSet("data"):
		data, err = decodeText(cfg.Application.Encoding, ctx.String("data"))
		if err != nil {
			return nil, fmt.Errorf("invalid %s data: %w", cfg.Application.Encoding, err)
		}
	default:
		return nil, errNoInput
	}
	t, err := bst.NewTreeFromBytes(digest, cfg.Tree.DigestSize, data)
	if err != nil {
		return nil, err
	}
	log.Debug("tree decoded",
		zap.Int("entries", t.Len()),
		zap.Int("height", t.Height()),
		zap.String("root", hex.EncodeToString(t.Root())))
	return t, nil
}

// writeTree saves a tree into the file given with '--out' flag or prints it
// in the configured text encoding.
func writeTree(ctx *cli.Context, cfg config.Config, log *zap.Logger, t *bst.Tree) error {
	data, err := t.Bytes()
	if err != nil {
		return err
	}
	out := ctx.String("out")
	if len(out) == 0 {
		s, err := encodeText(cfg.Application.Encoding, data)
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.App.Writer, s)
		return nil
	}
	if cfg.Application.Compress {
		data, err = compress(data)
		if err != nil {
			return fmt.Errorf("failed to compress tree: %w", err)
		}
	}
	if err := io.MakeDirForFile(out, "tree"); err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("failed to write tree file: %w", err)
	}
	log.Info("tree written",
		zap.String("file", out),
		zap.Int("bytes", len(data)),
		zap.Int("entries", t.Len()),
		zap.String("root", hex.EncodeToString(t.Root())))
	return nil
}
