package cmds

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// parseBytes reads a byte sequence written in hexadecimal. Bytes may be
// written as one run of digits ("ac02"), separated by spaces or commas
// ("ac 02", "ac,02") or with a 0x prefix each ("0xac 0x02").
func parseBytes(args []string) ([]byte, error) {
	fields := strings.FieldsFunc(strings.Join(args, " "), func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	var out []byte
	for _, f := range fields {
		if strings.HasPrefix(f, "0x") || strings.HasPrefix(f, "0X") {
			f = f[2:]
			if len(f) == 0 || len(f) > 2 {
				return nil, fmt.Errorf("invalid byte %q: prefixed bytes take one or two digits", "0x"+f)
			}
		}
		if len(f)%2 == 1 {
			if len(f) != 1 {
				return nil, fmt.Errorf("odd number of hex digits in %q", f)
			}
			f = "0" + f
		}
		b, err := hex.DecodeString(f)
		if err != nil {
			return nil, fmt.Errorf("invalid hex bytes %q: %v", f, err)
		}
		out = append(out, b...)
	}
	return out, nil
}
