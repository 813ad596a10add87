package spm

// none marks an absent hint or strategy.
const none = -1

// lift tries to raise v's counters given that successor hint changed
// (hint == none reconsiders every successor).
//
//  1. Owner attempt: the owner maximizes its own counter over the hint edge,
//     or over all edges when no hint is given.
//  2. Opponent attempt, only when no hint is given or the hint is the
//     current strategy: the owner minimizes the opponent's counter over all
//     edges. The minimizing successor (first one on ties) becomes
//     strategy[v] even when the counter does not rise.
//  3. A counter that saturated here shrinks the bound of v's priority when
//     the parities match.
//
// It reports whether a counter rose.
func (s *solver) lift(v, hint int) (bool, error) {
	l := s.lat
	pm := l.measure(v)
	if pm[0] == top && pm[1] == top {
		return false, s.violation(v, "lift on a vertex decided for both players")
	}

	owner := int(s.arena.Owner(v))
	other := 1 - owner
	d := s.arena.Priority(v)
	var changed [2]bool

	if pm[owner] != top {
		if hint != none {
			l.prog(s.tmp, l.measure(hint), d, owner)
			if l.less(pm, s.tmp, d, owner) {
				l.copyCounter(pm, s.tmp, owner)
				changed[owner] = true
			}
		} else {
			for _, w := range s.arena.Successors(v) {
				l.prog(s.tmp, l.measure(w), d, owner)
				if l.less(pm, s.tmp, d, owner) {
					l.copyCounter(pm, s.tmp, owner)
					changed[owner] = true
				}
			}
		}
	}

	if pm[other] != top && (hint == none || hint == s.strategy[v]) {
		bestTo := none
		for _, w := range s.arena.Successors(v) {
			l.prog(s.tmp, l.measure(w), d, other)
			if bestTo == none || l.less(s.tmp, s.best, d, other) {
				l.copyCounter(s.best, s.tmp, other)
				bestTo = w
			}
		}
		s.strategy[v] = bestTo
		if l.less(pm, s.best, d, other) {
			l.copyCounter(pm, s.best, other)
			changed[other] = true
		}
	}

	for p := 0; p < 2; p++ {
		if changed[p] && pm[p] == top && d&1 == p {
			l.shrink(d)
		}
	}

	if !changed[0] && !changed[1] {
		s.stats.Attempts++
		return false, nil
	}
	s.stats.Lifts++
	if pm[0] == top && pm[1] == top {
		return true, s.violation(v, "both counters saturated")
	}

	return true, nil
}

// canLift is the check-only form of the player-p half of lift: whether p's
// counter at v is finite and below what v's successors justify.
func (s *solver) canLift(v, p int) bool {
	l := s.lat
	pm := l.measure(v)
	if pm[p] == top {
		return false
	}
	d := s.arena.Priority(v)

	if int(s.arena.Owner(v)) == p {
		for _, w := range s.arena.Successors(v) {
			l.prog(s.tmp, l.measure(w), d, p)
			if l.less(pm, s.tmp, d, p) {
				return true
			}
		}
		return false
	}

	bestTo := none
	for _, w := range s.arena.Successors(v) {
		l.prog(s.tmp, l.measure(w), d, p)
		if bestTo == none || l.less(s.tmp, s.best, d, p) {
			l.copyCounter(s.best, s.tmp, p)
			bestTo = w
		}
	}

	return l.less(pm, s.best, d, p)
}
