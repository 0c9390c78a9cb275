// Package board models the chessboard the key derivation walks over.
//
// A Board is an immutable N×N grid of cell values filled in row-major
// order (value = row*N + col). A VisitedGrid is the mutable scratch
// state owned by exactly one in-flight tour search; it tracks which
// cells the knight has already landed on.
//
// The knight adjacency relation lives here too. Offsets enumerates the
// eight knight moves in a FIXED order. That order is load-bearing: the
// search engine uses it as the tie-break order when two candidate moves
// have equal degree, so reordering it changes which tour (and therefore
// which key) a given passphrase produces.
package board
