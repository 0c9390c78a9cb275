// Package keystore persists derived tour keys.
//
// Two surfaces:
//
//   - A SQLite-backed named store. Each saved key carries the metadata
//     needed to audit where it came from (board size, start cell,
//     passphrase digest) plus a UUIDv7 id and creation timestamp. Names
//     are unique; saving under an existing name is rejected, never
//     silently overwritten.
//
//   - Raw binary files (Export/Import). The on-disk format is the key
//     elements as little-endian int32 values, back to back: no magic,
//     no framing, no length prefix. Length is implicit in the byte
//     count. This matches the historical key dump format, and a
//     round trip is exact: Import(Export(key)) == key.
//
// Storage failures propagate to the caller wrapped with context; the
// store never retries.
package keystore
