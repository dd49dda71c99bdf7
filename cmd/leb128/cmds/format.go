package cmds

import (
	"fmt"
	"strings"

	"github.com/go-delve/leb128/pkg/config"
)

const (
	colorContinuation = "\x1b[34m"
	colorTerminator   = "\x1b[32m"
	colorReset        = "\x1b[0m"
)

// formatBytes prints an encoding in the configured format. Bytes are
// hexadecimal unless the format is config.Bin, which prints the
// continuation bit apart from the seven payload bits.
func formatBytes(b []byte, format config.OutputFormat, sep string, color bool) string {
	parts := make([]string, len(b))
	for i, c := range b {
		var s string
		if format == config.Bin {
			s = fmt.Sprintf("%d|%07b", c>>7, c&0x7f)
		} else {
			s = fmt.Sprintf("%02x", c)
		}
		if color {
			if c&0x80 != 0 {
				s = colorContinuation + s + colorReset
			} else {
				s = colorTerminator + s + colorReset
			}
		}
		parts[i] = s
	}
	return strings.Join(parts, sep)
}

// formatValue prints a uint64 or *big.Int in the configured format.
func formatValue(v interface{}, format config.OutputFormat) string {
	switch format {
	case config.Hex:
		return fmt.Sprintf("%#x", v)
	case config.Bin:
		return fmt.Sprintf("%#b", v)
	}
	return fmt.Sprintf("%d", v)
}
