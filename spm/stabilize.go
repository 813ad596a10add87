package spm

// stabilize decides for 1-p every vertex whose player-p counter provably
// stays finite.
//
//  1. Seed: a vertex is unstable when its p-counter is TOP or can rise.
//  2. Propagate backward with a second worklist. A predecessor owned by p
//     becomes unstable with any unstable successor. A predecessor owned by
//     1-p becomes unstable when it has no stable successor, or when its
//     p-counter is below the least progression over stable successors.
//  3. The stable vertices carry a consistent finite p-measure under which
//     1-p can stay among them, so 1-p wins them. Those of priority parity
//     1-p are decided now (their 1-p counter saturates, shrinking the bound)
//     and queued so that predecessors see the change.
func (s *solver) stabilize(p int) {
	l := s.lat
	n := s.arena.Len()
	unstable := s.unstable
	work := s.work
	work.Clear()

	for v := 0; v < n; v++ {
		unstable[v] = l.measure(v)[p] == top || s.canLift(v, p)
		if unstable[v] {
			work.Enqueue(v)
		}
	}

	for !work.Empty() {
		x, _ := work.Dequeue()
		for _, m := range s.arena.Predecessors(x.(int)) {
			if unstable[m] {
				continue
			}
			if int(s.arena.Owner(m)) != p {
				d := s.arena.Priority(m)
				bestTo := none
				for _, w := range s.arena.Successors(m) {
					if unstable[w] {
						continue
					}
					l.prog(s.tmp, l.measure(w), d, p)
					if bestTo == none || l.less(s.tmp, s.best, d, p) {
						l.copyCounter(s.best, s.tmp, p)
						bestTo = w
					}
				}
				if bestTo != none && !l.less(l.measure(m), s.best, d, p) {
					continue
				}
			}
			unstable[m] = true
			work.Enqueue(m)
		}
	}

	q := 1 - p
	for v := 0; v < n; v++ {
		pm := l.measure(v)
		d := s.arena.Priority(v)
		if unstable[v] || pm[q] == top || d&1 != q {
			continue
		}
		pm[q] = top
		l.shrink(d)
		s.stats.Resolved++
		s.sched.pushIfAbsent(v)
	}
}
