// Package keystream turns tour key material into a byte-wise XOR
// cipher. XOR is self-inverse, so the one transform implements both
// encryption and decryption with the same key.
package keystream

import "errors"

// ErrEmptyKey indicates an empty or absent key was supplied. Nothing
// can be encrypted, decrypted or extended without key material.
var ErrEmptyKey = errors.New("keystream: key must not be empty")

// Extend tiles key end-to-end until the result reaches or exceeds
// length, and returns the tiled copy. The source key is never
// truncated, only repeated: the result's length is the smallest
// multiple of len(key) that is >= length, and element i always equals
// key[i mod len(key)].
func Extend(key []int, length int) ([]int, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}

	extended := make([]int, 0, length+len(key))
	for len(extended) < length {
		extended = append(extended, key...)
	}
	return extended, nil
}

// XORTransform applies the keystream to data: out[i] = data[i] XOR
// (key[i mod len(key)] mod 256). Calling it twice with the same key is
// the identity, which is what makes decrypt the same operation as
// encrypt. The input is not modified.
func XORTransform(data []byte, key []int) ([]byte, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}

	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ byte(key[i%len(key)])
	}
	return out, nil
}
