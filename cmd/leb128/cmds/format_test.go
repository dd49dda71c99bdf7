package cmds

import (
	"math/big"
	"testing"

	"github.com/go-delve/leb128/pkg/config"
)

func TestFormatBytes(t *testing.T) {
	enc := []byte{0xac, 0x02}
	tests := []struct {
		format config.OutputFormat
		sep    string
		color  bool
		want   string
	}{
		{config.Dec, " ", false, "ac 02"},
		{config.Hex, ":", false, "ac:02"},
		{config.Bin, " ", false, "1|0101100 0|0000010"},
		{config.Hex, "", true, colorContinuation + "ac" + colorReset + colorTerminator + "02" + colorReset},
	}
	for _, tc := range tests {
		if got := formatBytes(enc, tc.format, tc.sep, tc.color); got != tc.want {
			t.Errorf("formatBytes(%s, %q, %v) = %q, want %q", tc.format, tc.sep, tc.color, got, tc.want)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v      interface{}
		format config.OutputFormat
		want   string
	}{
		{uint64(300), config.Dec, "300"},
		{uint64(300), config.Hex, "0x12c"},
		{uint64(5), config.Bin, "0b101"},
		{new(big.Int).Lsh(big.NewInt(1), 64), config.Dec, "18446744073709551616"},
		{new(big.Int).Lsh(big.NewInt(1), 64), config.Hex, "0x10000000000000000"},
	}
	for _, tc := range tests {
		if got := formatValue(tc.v, tc.format); got != tc.want {
			t.Errorf("formatValue(%v, %s) = %q, want %q", tc.v, tc.format, got, tc.want)
		}
	}
}

func TestParseBytes(t *testing.T) {
	tests := []struct {
		args []string
		want []byte
	}{
		{[]string{"ac02"}, []byte{0xac, 0x02}},
		{[]string{"ac", "02"}, []byte{0xac, 0x02}},
		{[]string{"0xac,0x2"}, []byte{0xac, 0x02}},
		{[]string{"ac 02 0"}, []byte{0xac, 0x02, 0x00}},
		{nil, nil},
	}
	for _, tc := range tests {
		got, err := parseBytes(tc.args)
		if err != nil {
			t.Errorf("parseBytes(%q): %v", tc.args, err)
			continue
		}
		if string(got) != string(tc.want) {
			t.Errorf("parseBytes(%q) = %x, want %x", tc.args, got, tc.want)
		}
	}
	for _, bad := range []string{"zz", "abc", "0x", "0x123"} {
		if _, err := parseBytes([]string{bad}); err == nil {
			t.Errorf("parseBytes(%q) should fail", bad)
		}
	}
}
