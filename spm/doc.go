// Package spm solves parity games with small progress measures.
//
// Every vertex carries one measure vector of length k = max(d_max+1, 2)
// holding two interleaved counters: player p owns the coordinates of
// parity p, and the value TOP (-1) stored at coordinate p means p's counter
// saturated, i.e. p wins the vertex. Solve raises measures (lifts) until no
// vertex can be raised, driven by a FIFO worklist of vertices whose
// successors changed.
//
// Two optimizations keep the fixpoint small:
//
//   - Shrinking bounds. counts[i] starts as the number of vertices with
//     priority i and is decremented whenever such a vertex is decided for
//     the player of parity i, tightening every later carry.
//   - Stabilization. After every StabilizeFactor·|V| lifts, each player's
//     measures are checked for vertices that can no longer change; those
//     are decided for the opponent at once.
//
// When the worklist drains, one sweep re-lifts every vertex against the
// final bounds, so the result is a fixpoint of the measures actually stored.
//
// Solve is single-threaded and allocates all of its state per call; an
// Arena may be shared by concurrent Solve calls.
//
// Complexity:
//
//	Time  O(E · Π(counts[i]+1)) in the worst case over the odd (or even)
//	      coordinates, typically far below that bound.
//	Space O(V·k + E).
package spm
