// Package tour implements the Knight's Tour search that turns a seeded
// board into key material.
//
// The search is heuristic-guided backtracking: from the current cell it
// enumerates the eight knight offsets in canonical order, keeps the
// legal destinations, and tries them in ascending order of onward
// degree (Warnsdorff's rule), with the canonical offset order breaking
// ties. The first complete tour found wins; the engine never looks for
// alternates, because downstream encryption depends on one specific
// deterministic key, not just some valid tour.
//
// Backtracking uses ordinary return values. A failed search fully
// unwinds its scratch state: the visited grid is all-false and the
// accumulated key empty by the time Search returns an error.
//
// Worst-case behavior is exponential. The degree heuristic makes full
// 8×8 boards resolve without backtracking in practice, but there is no
// completeness guarantee for arbitrary sizes: 3×3 and 4×4 boards have
// no tour at all, and the search proves that by exhaustion. Callers
// that need bounded latency should set WithMaxNodes; budget exhaustion
// surfaces as an ordinary search failure, never a hang.
package tour
