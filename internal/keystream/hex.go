package keystream

import (
	"fmt"
	"strconv"
	"strings"
)

// EncodeHex renders bytes as two lowercase hex digits per byte,
// space-separated ("44 4e"). This is a display format for ciphertext
// on the CLI, not a storage format.
func EncodeHex(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, " ")
}

// DecodeHex parses the EncodeHex format back into bytes. Tokens are
// whitespace-separated hex values; each must fit in one byte. An empty
// or all-whitespace input decodes to an empty slice.
func DecodeHex(s string) ([]byte, error) {
	fields := strings.Fields(s)
	out := make([]byte, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseUint(f, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("keystream: invalid hex byte %q: %w", f, err)
		}
		out = append(out, byte(v))
	}
	return out, nil
}
