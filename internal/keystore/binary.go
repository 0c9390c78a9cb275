package keystore

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// elementWidth is the fixed on-disk width of one key element.
const elementWidth = 4

// MarshalKey encodes key elements as consecutive little-endian int32
// values. No framing, no length prefix: length is implicit in the byte
// count. Values must fit in an int32.
func MarshalKey(key []int) ([]byte, error) {
	buf := make([]byte, len(key)*elementWidth)
	for i, v := range key {
		if v < math.MinInt32 || v > math.MaxInt32 {
			return nil, fmt.Errorf("keystore: key element %d (%d) does not fit in int32", i, v)
		}
		binary.LittleEndian.PutUint32(buf[i*elementWidth:], uint32(int32(v)))
	}
	return buf, nil
}

// UnmarshalKey decodes the MarshalKey format. The input length must be
// a multiple of the element width.
func UnmarshalKey(data []byte) ([]int, error) {
	if len(data)%elementWidth != 0 {
		return nil, fmt.Errorf("keystore: key data is %d bytes, not a multiple of %d", len(data), elementWidth)
	}

	key := make([]int, len(data)/elementWidth)
	for i := range key {
		key[i] = int(int32(binary.LittleEndian.Uint32(data[i*elementWidth:])))
	}
	return key, nil
}

// ExportFile writes the key to path in the raw binary format.
// The round trip through ImportFile is exact.
func ExportFile(path string, key []int) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}

	data, err := MarshalKey(key)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("keystore: export %q: %w", path, err)
	}
	return nil
}

// ImportFile reads a key previously written by ExportFile (or by any
// producer of the same raw int32 dump).
func ImportFile(path string) ([]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("keystore: import %q: %w", path, err)
	}
	return UnmarshalKey(data)
}
