// Package harness runs conformance scenarios for the key derivation
// pipeline end to end: seed a board from a passphrase, search for the
// tour, encrypt and decrypt sample messages, and snapshot every
// deterministic output.
//
// Scenarios are YAML files (testdata/scenarios). Expected outputs are
// golden files (testdata/golden), one per scenario, holding the JSON
// snapshot of the run. Because the whole pipeline is a pure function of
// (passphrase, board size), golden comparison pins the key derivation
// exactly: any drift in hashing, offset order, candidate sorting or the
// XOR transform shows up as a golden diff.
//
// To regenerate golden files after an intentional change:
//
//	go test ./internal/harness -update
package harness
