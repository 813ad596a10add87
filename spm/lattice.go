package spm

// top is the saturated counter value, stored at coordinate p of player p.
const top = -1

// lattice owns the measure arena and the shrinking bounds of one solve.
//
// The measure of vertex v is pm[v*k : (v+1)*k]. Coordinate i belongs to
// player i&1; counts[i] bounds it.
type lattice struct {
	k      int
	counts []int
	pm     []int
}

func newLattice(n, k int, priorities func(v int) int) *lattice {
	l := &lattice{
		k:      k,
		counts: make([]int, k),
		pm:     make([]int, n*k),
	}
	for v := 0; v < n; v++ {
		l.counts[priorities(v)]++
	}

	return l
}

// measure returns the k cells of v; writes go straight to the arena.
func (l *lattice) measure(v int) []int {
	return l.pm[v*l.k : (v+1)*l.k : (v+1)*l.k]
}

// less reports a < b for player p, comparing p's coordinates from the top
// down to d. TOP is above every finite value. Two values both above the
// current bound of the first differing coordinate compare equal.
func (l *lattice) less(a, b []int, d, p int) bool {
	if b[p] == top {
		return a[p] != top
	}
	if a[p] == top {
		return false
	}
	start := l.k - 1
	if start&1 != p {
		start--
	}
	for i := start; i >= d; i -= 2 {
		if a[i] == b[i] {
			continue
		}
		if a[i] > l.counts[i] && b[i] > l.counts[i] {
			return false
		}
		return a[i] < b[i]
	}

	return false
}

// prog writes into dst the player-p counter a predecessor of priority d
// obtains from a successor measured src. Only p's coordinates of dst are
// written.
//
//  1. TOP propagates.
//  2. Coordinates below d reset to 0.
//  3. From d upward src is copied as a mixed-radix counter, adding one when
//     d has parity p; a digit above its bound wraps to 0 and carries.
//  4. A carry out of the highest coordinate saturates to TOP.
func (l *lattice) prog(dst, src []int, d, p int) {
	if src[p] == top {
		dst[p] = top
		return
	}
	i := p
	for ; i < d; i += 2 {
		dst[i] = 0
	}
	carry := 0
	if d&1 == p {
		carry = 1
	}
	for ; i < l.k; i += 2 {
		v := src[i] + carry
		if v > l.counts[i] {
			dst[i] = 0
			carry = 1
		} else {
			dst[i] = v
			carry = 0
		}
	}
	if carry == 1 {
		dst[p] = top
	}
}

// copyCounter copies player p's coordinates of src into dst.
func (l *lattice) copyCounter(dst, src []int, p int) {
	for i := p; i < l.k; i += 2 {
		dst[i] = src[i]
	}
}

// shrink tightens the bound of priority d once a vertex of that priority is
// decided for the player of d's parity.
func (l *lattice) shrink(d int) { l.counts[d]-- }

// counter extracts player p's coordinates of m, lowest first.
func (l *lattice) counter(m []int, p int) []int {
	out := make([]int, 0, (l.k+1)/2)
	for i := p; i < l.k; i += 2 {
		out = append(out, m[i])
	}

	return out
}
