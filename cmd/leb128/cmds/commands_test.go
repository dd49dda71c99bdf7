package cmds

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-delve/leb128/pkg/config"
	"github.com/go-delve/leb128/pkg/leb128"
	"github.com/go-delve/leb128/pkg/logflags"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

func run(t *testing.T, stdin []byte, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LEB128_CONFIG_DIR", t.TempDir())
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(bytes.NewReader(stdin))
	err := Execute(cmd, args)
	return out.String(), err
}

func TestEncodeCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"encode", "0", "1", "300"}, "0\t00\n1\t01\n300\tac 02\n"},
		{[]string{"encode", "0x3fff", "16384"}, "16383\tff 7f\n16384\t80 80 01\n"},
		{[]string{"encode", "18446744073709551616"}, "18446744073709551616\t80 80 80 80 80 80 80 80 80 02\n"},
		{[]string{"encode", "--raw", "300", "0"}, "\xac\x02\x00"},
	}
	for _, tc := range tests {
		got, err := run(t, nil, tc.args...)
		if err != nil {
			t.Fatalf("%v: %v", tc.args, err)
		}
		if got != tc.want {
			t.Errorf("%v: got %q, want %q", tc.args, got, tc.want)
		}
	}
}

func TestEncodeCommandErrors(t *testing.T) {
	for _, args := range [][]string{
		{"encode", "-1"},
		{"encode", "-100000000000000000000000"},
		{"encode", "5", "-0x10"},
		{"encode", "--raw", "-1"},
		{"encode", "--", "-1"},
	} {
		if _, err := run(t, nil, args...); !errors.Is(err, leb128.ErrInvalidInput) {
			t.Errorf("%v: expected ErrInvalidInput, got %v", args, err)
		}
	}
	if _, err := run(t, nil, "encode", "twelve"); err == nil {
		t.Error("encode of a non integer should fail")
	}
}

func TestDecodeCommand(t *testing.T) {
	got, err := run(t, nil, "decode", "ac", "02")
	if err != nil {
		t.Fatal(err)
	}
	if got != "300\n" {
		t.Fatalf("got %q", got)
	}

	if _, err := run(t, nil, "decode", "ac"); !errors.Is(err, leb128.ErrTruncatedInput) {
		t.Errorf("expected ErrTruncatedInput, got %v", err)
	}
	if _, err := run(t, nil, "decode", "ac0200"); !errors.Is(err, leb128.ErrTrailingData) {
		t.Errorf("expected ErrTrailingData, got %v", err)
	}

	wide := "80 80 80 80 80 80 80 80 80 02"
	_, err = run(t, nil, "decode", wide)
	if !errors.Is(err, leb128.ErrOverflow) {
		t.Errorf("expected ErrOverflow, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "--big") {
		t.Errorf("expected overflow hint, got %v", err)
	}
	got, err = run(t, nil, "--big", "decode", wide)
	if err != nil {
		t.Fatal(err)
	}
	if got != "18446744073709551616\n" {
		t.Fatalf("got %q", got)
	}
}

func TestParseCommand(t *testing.T) {
	got, err := run(t, nil, "parse", "0xac,0x02,0x00")
	if err != nil {
		t.Fatal(err)
	}
	if got != "300\nremainder: [00]\n" {
		t.Fatalf("got %q", got)
	}

	got, err = run(t, nil, "parse", "00")
	if err != nil {
		t.Fatal(err)
	}
	if got != "0\nremainder: []\n" {
		t.Fatalf("got %q", got)
	}

	for _, args := range [][]string{{"parse", "--all", "ac0200"}, {"--big", "parse", "--all", "ac0200"}} {
		got, err = run(t, nil, args...)
		if err != nil {
			t.Fatal(err)
		}
		if got != "300\n0\n" {
			t.Fatalf("%v: got %q", args, got)
		}
	}

	if _, err := run(t, nil, "parse", ""); !errors.Is(err, leb128.ErrTruncatedInput) {
		t.Errorf("expected ErrTruncatedInput, got %v", err)
	}
}

func TestDumpCommand(t *testing.T) {
	data := []byte{0xac, 0x02, 0x00, 0xe5, 0x8e, 0x26}
	want := "00000000  ac 02  300\n00000002  00  0\n00000003  e5 8e 26  624485\n"

	got, err := run(t, data, "dump")
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	path := filepath.Join(t.TempDir(), "values.bin")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}
	got, err = run(t, nil, "--big", "dump", path)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("--big: got %q, want %q", got, want)
	}

	if _, err := run(t, []byte{0xac, 0x02, 0x80}, "dump"); !errors.Is(err, leb128.ErrTruncatedInput) {
		t.Errorf("expected ErrTruncatedInput, got %v", err)
	}
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	conf := "output-format: hex\nbyte-separator: \":\"\ncolor: always\n"
	if err := os.WriteFile(path, []byte(conf), 0600); err != nil {
		t.Fatal(err)
	}

	got, err := run(t, nil, "--config", path, "encode", "300")
	if err != nil {
		t.Fatal(err)
	}
	if got != "0x12c\tac:02\n" {
		t.Fatalf("got %q", got)
	}

	got, err = run(t, []byte{0xac, 0x02}, "--config", path, "dump")
	if err != nil {
		t.Fatal(err)
	}
	want := "00000000  " + colorContinuation + "ac" + colorReset + ":" + colorTerminator + "02" + colorReset + "  0x12c\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}

	if _, err := run(t, nil, "--config", filepath.Join(t.TempDir(), "missing.yml"), "encode", "1"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLogOutputWithoutLog(t *testing.T) {
	if _, err := run(t, nil, "--log-output", "codec", "encode", "1"); err == nil {
		t.Fatal("expected error")
	}
}

func TestVersionCommand(t *testing.T) {
	got, err := run(t, nil, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "leb128\nVersion: 1.0.0") {
		t.Fatalf("got %q", got)
	}
}

func TestIntegersAfterDash(t *testing.T) {
	root := New()
	tests := []struct {
		in   []string
		want []string
	}{
		{[]string{"encode", "1", "2"}, []string{"encode", "--", "1", "2"}},
		{[]string{"encode", "-1", "--raw", "7"}, []string{"encode", "--raw", "--", "-1", "7"}},
		{[]string{"--config", "c.yml", "encode", "-5"}, []string{"--config", "c.yml", "encode", "--", "-5"}},
		{[]string{"--log", "--log-dest", "3", "encode", "300"}, []string{"--log", "--log-dest", "3", "encode", "--", "300"}},
		{[]string{"encode", "4", "--", "-2"}, []string{"encode", "--", "4", "-2"}},
		{[]string{"encode", "--raw"}, []string{"encode", "--raw"}},
	}
	for _, tc := range tests {
		cmd, _, err := root.Find(tc.in)
		if err != nil {
			t.Fatalf("%v: %v", tc.in, err)
		}
		got := integersAfterDash(cmd, tc.in)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%v mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}

type fileCapturingLogger struct {
	*logrus.Entry
}

func (l fileCapturingLogger) WithField(key string, value interface{}) logflags.Logger {
	return fileCapturingLogger{l.Entry.WithField(key, value)}
}

func (l fileCapturingLogger) WithFields(fields logflags.Fields) logflags.Logger {
	return fileCapturingLogger{l.Entry.WithFields(logrus.Fields(fields))}
}

func (l fileCapturingLogger) WithError(err error) logflags.Logger {
	return fileCapturingLogger{l.Entry.WithError(err)}
}

func TestLogDestClosedOnError(t *testing.T) {
	var dest io.Writer
	logflags.SetLoggerFactory(func(level logrus.Level, fields logflags.Fields, out io.Writer) logflags.Logger {
		if out != nil {
			dest = out
		}
		logger := logrus.New()
		logger.Out = io.Discard
		return fileCapturingLogger{logger.WithFields(logrus.Fields(fields))}
	})
	defer logflags.SetLoggerFactory(nil)

	path := filepath.Join(t.TempDir(), "leb128.log")
	if _, err := run(t, nil, "--log", "--log-output", "cli,codec", "--log-dest", path, "decode", "ac"); !errors.Is(err, leb128.ErrTruncatedInput) {
		t.Fatalf("expected ErrTruncatedInput, got %v", err)
	}
	f, ok := dest.(*os.File)
	if !ok {
		t.Fatalf("expected the log destination to be a file, got %T", dest)
	}
	if _, err := f.Write([]byte("x")); !errors.Is(err, os.ErrClosed) {
		t.Fatalf("expected log destination to be closed, write returned %v", err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("no space left on device") }

func TestWriteErrorsReported(t *testing.T) {
	for _, args := range [][]string{{"encode", "300"}, {"encode", "--raw", "300"}, {"dump"}} {
		t.Setenv("LEB128_CONFIG_DIR", t.TempDir())
		cmd := New()
		cmd.SetOut(failingWriter{})
		cmd.SetErr(io.Discard)
		cmd.SetIn(bytes.NewReader([]byte{0xac, 0x02}))
		if err := Execute(cmd, args); err == nil {
			t.Errorf("%v: expected write error", args)
		}
	}
}

func TestDumpColorAuto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("color: auto\n"), 0600); err != nil {
		t.Fatal(err)
	}
	got, err := run(t, []byte{0xac, 0x02}, "--config", path, "dump")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "\x1b[") {
		t.Fatalf("escape codes written to a non terminal: %q", got)
	}
	if got != "00000000  ac 02  300\n" {
		t.Fatalf("got %q", got)
	}

	conf = &config.Config{Color: config.ColorAuto}
	cmd := New()
	cmd.SetOut(&bytes.Buffer{})
	if colorEnabled(cmd) {
		t.Fatal("color enabled for output that is not stdout")
	}
}
