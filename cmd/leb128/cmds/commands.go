package cmds

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"

	"github.com/go-delve/leb128/cmd/leb128/cmds/helphelpers"
	"github.com/go-delve/leb128/pkg/config"
	"github.com/go-delve/leb128/pkg/leb128"
	"github.com/go-delve/leb128/pkg/logflags"
	"github.com/go-delve/leb128/pkg/version"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	// log is whether to log debug statements.
	log bool
	// logOutput is a comma separated list of components that should produce debug output.
	logOutput string
	// logDest is the file path or file descriptor where logs should go.
	logDest string
	// configPath overrides the default configuration file.
	configPath string
	// bigInts decodes with arbitrary precision.
	bigInts bool

	// raw makes encode write binary output.
	raw bool
	// all makes parse decode every value of its input.
	all bool

	// rootCommand is the root of the command tree.
	rootCommand *cobra.Command

	// stdout is the default output of the command tree.
	stdout io.Writer

	conf *config.Config
)

const leb128CommandLongDesc = `leb128 encodes and decodes unsigned Little Endian Base 128 integers.

Byte sequences are given in hexadecimal, either as one run of digits
("ac02"), as separate bytes ("ac 02", "ac,02") or with a prefix on each
byte ("0xac 0x02").

Integers may be written in decimal, or with a 0x, 0o or 0b prefix, and may
be of any magnitude.`

// New returns an initialized command tree.
func New() *cobra.Command {
	stdout = colorable.NewColorableStdout()

	// Main leb128 root command.
	rootCommand = &cobra.Command{
		Use:   "leb128",
		Short: "leb128 is a LEB128 varint encoder and decoder.",
		Long:  leb128CommandLongDesc,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logflags.Setup(log, logOutput, logDest); err != nil {
				return err
			}
			if err := loadConfig(); err != nil {
				return err
			}
			if logflags.CLI() {
				logflags.CLILogger().WithField("args", args).Debugf("running %s", cmd.CommandPath())
			}
			return nil
		},
		SilenceUsage: true,
	}
	rootCommand.SetOut(stdout)

	rootCommand.PersistentFlags().BoolVarP(&log, "log", "", false, "Enable logging.")
	rootCommand.PersistentFlags().StringVarP(&logOutput, "log-output", "", "", `Comma separated list of components that should produce debug output (see 'leb128 help log')`)
	rootCommand.PersistentFlags().StringVarP(&logDest, "log-dest", "", "", "Writes logs to the specified file or file descriptor (see 'leb128 help log').")
	rootCommand.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file to use instead of $HOME/.leb128/config.yml.")
	rootCommand.PersistentFlags().BoolVar(&bigInts, "big", false, "Decode with arbitrary precision instead of failing on values wider than 64 bits.")

	// 'encode' subcommand.
	encodeCommand := &cobra.Command{
		Use:   "encode <integer>...",
		Short: "Encode non-negative integers.",
		Long: `Encode non-negative integers.

Each integer is printed followed by its encoding. With --raw the
encodings are written back to back as binary data, suitable as input
for 'leb128 dump'.

Negative integers are accepted as arguments and rejected as invalid
input, the format only represents non-negative values.`,
		Args: cobra.MinimumNArgs(1),
		RunE: encodeCmd,
	}
	encodeCommand.Flags().BoolVar(&raw, "raw", false, "Write the encodings as binary data.")
	rootCommand.AddCommand(encodeCommand)

	// 'decode' subcommand.
	decodeCommand := &cobra.Command{
		Use:   "decode <bytes>",
		Short: "Decode a single value.",
		Long: `Decode a byte sequence holding exactly one value.

Bytes following the value are an error, use 'leb128 parse' to read a value
that is followed by other data.`,
		Args: cobra.MinimumNArgs(1),
		RunE: decodeCmd,
	}
	rootCommand.AddCommand(decodeCommand)

	// 'parse' subcommand.
	parseCommand := &cobra.Command{
		Use:   "parse <bytes>",
		Short: "Decode the first value and print the remaining bytes.",
		Long: `Decode the first value of a byte sequence and print it together with the
bytes that follow it.

With --all every value of a concatenation of encodings is decoded.`,
		Args: cobra.MinimumNArgs(1),
		RunE: parseCmd,
	}
	parseCommand.Flags().BoolVar(&all, "all", false, "Decode every value of the input.")
	rootCommand.AddCommand(parseCommand)

	// 'dump' subcommand.
	dumpCommand := &cobra.Command{
		Use:   "dump [file]",
		Short: "Print every value of a binary file.",
		Long: `Print the offset, encoding and value of every LEB128 value stored back to
back in a binary file. Standard input is read when no file is given.

Continuation bytes are highlighted when the output is a terminal (see the
color setting of the configuration file).`,
		Args: cobra.MaximumNArgs(1),
		RunE: dumpCmd,
	}
	rootCommand.AddCommand(dumpCommand)

	// 'version' subcommand.
	versionCommand := &cobra.Command{
		Use:   "version",
		Short: "Prints version.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "leb128\n%s\n", version.LEB128Version)
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", version.BuildInfo())
			}
		},
	}
	versionCommand.Flags().BoolP("verbose", "v", false, "print verbose version info")
	rootCommand.AddCommand(versionCommand)

	rootCommand.AddCommand(&cobra.Command{
		Use:   "log",
		Short: "Help about logging flags.",
		Long: `Logging can be enabled by specifying the --log flag and using the
--log-output flag to select which components should produce logs.

The argument of --log-output must be a comma separated list of component
names selected from this list:

	cli	Log command dispatch and configuration (default)
	codec	Log the inputs and results of every codec call

Additionally --log-dest can be used to specify where the logs should be
written.
If the argument is a number it will be interpreted as a file descriptor,
otherwise as a file path.`,
	})

	defaultHelp := rootCommand.HelpFunc()
	rootCommand.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helphelpers.Prepare(cmd)
		defaultHelp(cmd, args)
	})

	rootCommand.DisableAutoGenTag = true

	return rootCommand
}

func loadConfig() error {
	if configPath == "" {
		conf = config.LoadConfig()
		return nil
	}
	c, err := config.LoadConfigFrom(configPath)
	if err != nil {
		return err
	}
	conf = c
	return nil
}

func useBig() bool {
	return bigInts || conf.BigInts
}

func encodeCmd(cmd *cobra.Command, args []string) error {
	logger := logflags.CodecLogger()
	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()

	for _, arg := range args {
		if x, err := strconv.ParseUint(arg, 0, 64); err == nil {
			if logflags.Codec() {
				logger.WithField("value", x).Debugf("encode")
			}
			if raw {
				if err := leb128.EncodeUnsigned(out, x); err != nil {
					return err
				}
				continue
			}
			fmt.Fprintf(out, "%s\t%s\n", formatValue(x, conf.Format()), formatBytes(leb128.Encode(x), conf.Format(), conf.Separator(), false))
			continue
		}

		var (
			enc []byte
			err error
			v   interface{}
		)
		if x, perr := strconv.ParseInt(arg, 0, 64); perr == nil {
			v = x
			enc, err = leb128.EncodeInt(x)
		} else {
			x, ok := new(big.Int).SetString(arg, 0)
			if !ok {
				return fmt.Errorf("invalid integer %q", arg)
			}
			v = x
			enc, err = leb128.EncodeBig(x)
		}
		if err != nil {
			return err
		}
		if logflags.Codec() {
			logger.WithField("value", v).WithField("encoding", enc).Debugf("encode")
		}
		if raw {
			if _, err := out.Write(enc); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", formatValue(v, conf.Format()), formatBytes(enc, conf.Format(), conf.Separator(), false))
	}
	return out.Flush()
}

func decodeCmd(cmd *cobra.Command, args []string) error {
	buf, err := parseBytes(args)
	if err != nil {
		return err
	}
	logger := logflags.CodecLogger()

	var v interface{}
	if useBig() {
		v, err = leb128.DecodeBig(buf)
	} else {
		v, err = leb128.Decode(buf)
	}
	if err != nil {
		if logflags.Codec() {
			logger.WithField("input", buf).WithError(err).Debugf("decode failed")
		}
		if errors.Is(err, leb128.ErrOverflow) {
			return fmt.Errorf("%w (use --big for values wider than 64 bits)", err)
		}
		return err
	}
	if logflags.Codec() {
		logger.WithField("input", buf).Debugf("decoded %v", v)
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatValue(v, conf.Format()))
	return nil
}

func parseCmd(cmd *cobra.Command, args []string) error {
	buf, err := parseBytes(args)
	if err != nil {
		return err
	}
	logger := logflags.CodecLogger()
	w := cmd.OutOrStdout()

	if all && !useBig() {
		values, err := leb128.ParseAll(buf)
		for _, x := range values {
			fmt.Fprintln(w, formatValue(x, conf.Format()))
		}
		if logflags.Codec() {
			logger.WithField("input", buf).Debugf("parsed %d values", len(values))
		}
		return err
	}

	for {
		var v interface{}
		var rest []byte
		if useBig() {
			v, rest, err = leb128.ParseBig(buf)
		} else {
			v, rest, err = leb128.Parse(buf)
		}
		if err != nil {
			return err
		}
		if logflags.Codec() {
			logger.WithField("input", buf).WithField("remainder", rest).Debugf("parsed %v", v)
		}
		if !all {
			fmt.Fprintf(w, "%s\nremainder: [%s]\n", formatValue(v, conf.Format()), formatBytes(rest, conf.Format(), conf.Separator(), false))
			return nil
		}
		fmt.Fprintln(w, formatValue(v, conf.Format()))
		if len(rest) == 0 {
			return nil
		}
		buf = rest
	}
}

func dumpCmd(cmd *cobra.Command, args []string) error {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return err
	}

	logger := logflags.CodecLogger()
	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush()
	color := colorEnabled(cmd)

	emit := func(off int, enc []byte, v interface{}) {
		fmt.Fprintf(out, "%08x  %s  %s\n", off, formatBytes(enc, conf.Format(), conf.Separator(), color), formatValue(v, conf.Format()))
	}

	if useBig() {
		for off := 0; off < len(data); {
			n, err := leb128.Scan(data[off:])
			if err != nil {
				return fmt.Errorf("offset %#x: %w", off, err)
			}
			x, err := leb128.DecodeBig(data[off : off+n])
			if err != nil {
				return fmt.Errorf("offset %#x: %w", off, err)
			}
			emit(off, data[off:off+n], x)
			off += n
		}
		if logflags.Codec() {
			logger.Debugf("dumped %d bytes", len(data))
		}
		return out.Flush()
	}

	r := bytes.NewReader(data)
	for r.Len() > 0 {
		off := len(data) - r.Len()
		x, n, err := leb128.DecodeUnsigned(r)
		if err != nil {
			return fmt.Errorf("offset %#x: %w", off, err)
		}
		emit(off, data[off:off+int(n)], x)
	}
	if logflags.Codec() {
		logger.Debugf("dumped %d bytes", len(data))
	}
	return out.Flush()
}

func colorEnabled(cmd *cobra.Command) bool {
	switch conf.ColorMode() {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if cmd.OutOrStdout() != stdout {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
