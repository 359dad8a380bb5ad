package tree

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"github.com/nspcc-dev/bytetree/cli/options"
	"github.com/nspcc-dev/bytetree/pkg/bst"
	"github.com/nspcc-dev/bytetree/pkg/config"
	"github.com/urfave/cli"
	"github.com/xlab/treeprint"
	"go.uber.org/zap"
)

var (
	inFlag = cli.StringFlag{
		Name:  "in, i",
		Usage: "tree file to read",
	}
	dataFlag = cli.StringFlag{
		Name:  "data",
		Usage: "serialized tree text (in the selected encoding) to read if no '--in' is given",
	}
	outFlag = cli.StringFlag{
		Name:  "out, o",
		Usage: "tree file to write, the tree is printed if not set",
	}
	entryFlags = []cli.Flag{
		cli.StringFlag{
			Name:  "type, t",
			Value: bst.ByteArrayT.String(),
			Usage: "type of entries given as arguments (name or 0x-prefixed byte)",
		},
		cli.BoolFlag{
			Name:  "hex",
			Usage: "entries given as arguments are hex-encoded",
		},
	}
)

var errNoEntries = errors.New("no entries given")

// NewCommands returns tree commands.
func NewCommands() []cli.Command {
	common := append([]cli.Flag{options.ConfigFile, options.Debug}, options.Tree...)
	common = append(common, options.Format...)
	input := append([]cli.Flag{inFlag, dataFlag}, common...)

	buildFlags := append([]cli.Flag{outFlag}, common...)
	buildFlags = append(buildFlags, entryFlags...)
	modifyFlags := append([]cli.Flag{outFlag}, input...)
	modifyFlags = append(modifyFlags, entryFlags...)
	listFlags := append([]cli.Flag{cli.BoolFlag{
		Name:  "text",
		Usage: "print entry values as quoted strings instead of hex",
	}}, input...)

	return []cli.Command{
		{
			Name:      "build",
			Usage:     "Build a tree from the given entries",
			UsageText: "build [--out <file>] [--type <type>] [--hex] <entry>...",
			Description: `Inserts entries into an empty tree in the order they're given and
   writes the resulting tree. Insertion order determines tree shape and thus
   its root digest.
`,
			Action: build,
			Flags:  buildFlags,
		},
		{
			Name:      "add",
			Usage:     "Insert entries into the tree",
			UsageText: "add --in <file> | --data <tree> [--out <file>] [--type <type>] [--hex] <entry>...",
			Action:    add,
			Flags:     modifyFlags,
		},
		{
			Name:      "remove",
			Usage:     "Remove entries from the tree",
			UsageText: "remove --in <file> | --data <tree> [--out <file>] [--type <type>] [--hex] <entry>...",
			Action:    remove,
			Flags:     modifyFlags,
		},
		{
			Name:      "list",
			Usage:     "Print tree entries in order",
			UsageText: "list --in <file> | --data <tree> [--text]",
			Action:    list,
			Flags:     listFlags,
		},
		{
			Name:      "root",
			Usage:     "Print tree root digest",
			UsageText: "root --in <file> | --data <tree>",
			Action:    root,
			Flags:     input,
		},
		{
			Name:      "dump",
			Usage:     "Print tree structure",
			UsageText: "dump --in <file> | --data <tree>",
			Action:    dump,
			Flags:     input,
		},
		{
			Name:      "verify",
			Usage:     "Check tree entries order",
			UsageText: "verify --in <file> | --data <tree>",
			Action:    verify,
			Flags:     input,
		},
	}
}

// setup loads configuration and creates a logger for a command.
func setup(ctx *cli.Context) (config.Config, *zap.Logger, error) {
	cfg, err := options.GetConfigFromContext(ctx)
	if err != nil {
		return config.Config{}, nil, err
	}
	log, _, err := options.HandleLoggingParams(ctx.Bool("debug"), cfg.Application)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}

func parseEntries(ctx *cli.Context) ([]bst.Entry, error) {
	args := ctx.Args()
	if len(args) == 0 {
		return nil, errNoEntries
	}
	typ, err := bst.ParseType(ctx.String("type"))
	if err != nil {
		return nil, err
	}
	res := make([]bst.Entry, 0, len(args))
	for _, arg := range args {
		value := []byte(arg)
		if ctx.Bool("hex") {
			value, err = hex.DecodeString(arg)
			if err != nil {
				return nil, fmt.Errorf("invalid hex entry %q: %w", arg, err)
			}
		}
		res = append(res, bst.NewEntry(typ, value))
	}
	return res, nil
}

func build(ctx *cli.Context) error {
	cfg, log, err := setup(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer func() { _ = log.Sync() }()

	entries, err := parseEntries(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	digest, err := cfg.Tree.DigestFunc()
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	t := bst.NewTree(digest, cfg.Tree.DigestSize)
	insertAll(log, t, entries)
	if err := writeTree(ctx, cfg, log, t); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func add(ctx *cli.Context) error {
	return modify(ctx, insertAll)
}

func remove(ctx *cli.Context) error {
	return modify(ctx, removeAll)
}

func modify(ctx *cli.Context, f func(*zap.Logger, *bst.Tree, []bst.Entry)) error {
	cfg, log, err := setup(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer func() { _ = log.Sync() }()

	entries, err := parseEntries(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	t, err := readTree(ctx, cfg, log)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	f(log, t, entries)
	if err := writeTree(ctx, cfg, log, t); err != nil {
		return cli.NewExitError(err, 1)
	}
	return nil
}

func insertAll(log *zap.Logger, t *bst.Tree, entries []bst.Entry) {
	for _, e := range entries {
		if !t.Insert(e) {
			log.Debug("entry is already present", zap.Stringer("entry", e))
		}
	}
}

func removeAll(log *zap.Logger, t *bst.Tree, entries []bst.Entry) {
	for _, e := range entries {
		if !t.Remove(e) {
			log.Debug("entry is missing", zap.Stringer("entry", e))
		}
	}
}

func list(ctx *cli.Context) error {
	cfg, log, err := setup(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer func() { _ = log.Sync() }()

	t, err := readTree(ctx, cfg, log)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	for _, e := range t.Entries() {
		fmt.Fprintf(ctx.App.Writer, "%s\t%s\n", e.Type(), formatValue(ctx, e))
	}
	return nil
}

func formatValue(ctx *cli.Context, e bst.Entry) string {
	if ctx.Bool("text") {
		return strconv.Quote(string(e.Value()))
	}
	return hex.EncodeToString(e.Value())
}

func root(ctx *cli.Context) error {
	cfg, log, err := setup(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer func() { _ = log.Sync() }()

	t, err := readTree(ctx, cfg, log)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintln(ctx.App.Writer, hex.EncodeToString(t.Root()))
	return nil
}

func dump(ctx *cli.Context) error {
	cfg, log, err := setup(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer func() { _ = log.Sync() }()

	t, err := readTree(ctx, cfg, log)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprint(ctx.App.Writer, renderTree(t))
	return nil
}

// renderTree draws tree shape marking children with L and R.
func renderTree(t *bst.Tree) string {
	if t.IsEmpty() {
		return "<empty>\n"
	}
	var (
		out      treeprint.Tree
		branches []treeprint.Tree
	)
	t.Walk(func(e bst.Entry, depth int, pos bst.Position) bool {
		if depth == 0 {
			out = treeprint.NewWithRoot(e.String())
			branches = append(branches[:0], out)
			return true
		}
		label := "L " + e.String()
		if pos == bst.RightPos {
			label = "R " + e.String()
		}
		b := branches[depth-1].AddBranch(label)
		branches = append(branches[:depth], b)
		return true
	})
	return out.String()
}

func verify(ctx *cli.Context) error {
	cfg, log, err := setup(ctx)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer func() { _ = log.Sync() }()

	t, err := readTree(ctx, cfg, log)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if err := t.Verify(); err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintf(ctx.App.Writer, "OK: %d entries, height %d, root %s\n",
		t.Len(), t.Height(), hex.EncodeToString(t.Root()))
	return nil
}
