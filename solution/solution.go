// Package solution holds the result of solving a parity game: the winning
// player of every vertex and a positional strategy for the vertices whose
// owner wins them. It renders results as JSON or plain text and checks
// them against the game they claim to solve.
package solution

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/katalvlaran/gamegraph/parity"
)

// Solution maps vertex IDs to winners and, for winning owners, to the chosen successor.
// A Solution is not safe for concurrent mutation.
type Solution struct {
	winner   map[string]parity.Player
	strategy map[string]string
}

// New returns an empty Solution sized for n vertices.
func New(n int) *Solution {
	return &Solution{
		winner:   make(map[string]parity.Player, n),
		strategy: make(map[string]string, n/2),
	}
}

// SetWinner records that p wins id.
func (s *Solution) SetWinner(id string, p parity.Player) { s.winner[id] = p }

// SetStrategy records the move id→to.
func (s *Solution) SetStrategy(id, to string) { s.strategy[id] = to }

// Winner returns the winner of id.
func (s *Solution) Winner(id string) (parity.Player, bool) {
	p, ok := s.winner[id]
	return p, ok
}

// Strategy returns the recorded move at id.
func (s *Solution) Strategy(id string) (string, bool) {
	to, ok := s.strategy[id]
	return to, ok
}

// Len returns the number of vertices with a recorded winner.
func (s *Solution) Len() int { return len(s.winner) }

// StrategyLen returns the number of recorded moves.
func (s *Solution) StrategyLen() int { return len(s.strategy) }

// Region returns the IDs won by p in ascending order.
func (s *Solution) Region(p parity.Player) []string {
	set := treeset.NewWithStringComparator()
	for id, w := range s.winner {
		if w == p {
			set.Add(id)
		}
	}

	return toStrings(set)
}

// IDs returns every vertex ID with a recorded winner in ascending order.
func (s *Solution) IDs() []string {
	set := treeset.NewWithStringComparator()
	for id := range s.winner {
		set.Add(id)
	}

	return toStrings(set)
}

func toStrings(set *treeset.Set) []string {
	out := make([]string, 0, set.Size())
	for _, v := range set.Values() {
		out = append(out, v.(string))
	}

	return out
}

// SameRegions reports whether s and o assign the same winner to every vertex.
// Strategies are ignored: distinct correct solvers may pick different moves.
func (s *Solution) SameRegions(o *Solution) bool {
	if len(s.winner) != len(o.winner) {
		return false
	}
	for id, w := range s.winner {
		if ow, ok := o.winner[id]; !ok || ow != w {
			return false
		}
	}

	return true
}

// Equal reports whether s and o agree on winners and strategies.
func (s *Solution) Equal(o *Solution) bool {
	if !s.SameRegions(o) || len(s.strategy) != len(o.strategy) {
		return false
	}
	for id, to := range s.strategy {
		if oto, ok := o.strategy[id]; !ok || oto != to {
			return false
		}
	}

	return true
}

// Diff lists the vertices whose winner differs between s and o, ascending.
func (s *Solution) Diff(o *Solution) []string {
	set := treeset.NewWithStringComparator()
	for id, w := range s.winner {
		if ow, ok := o.winner[id]; !ok || ow != w {
			set.Add(id)
		}
	}
	for id := range o.winner {
		if _, ok := s.winner[id]; !ok {
			set.Add(id)
		}
	}

	return toStrings(set)
}

// jsonSolution is the wire shape: {"winning_regions":{id:p},"strategy":{id:id}}.
type jsonSolution struct {
	WinningRegions map[string]int    `json:"winning_regions"`
	Strategy       map[string]string `json:"strategy"`
}

// MarshalJSON encodes the solution; object keys come out sorted.
func (s *Solution) MarshalJSON() ([]byte, error) {
	js := jsonSolution{
		WinningRegions: make(map[string]int, len(s.winner)),
		Strategy:       s.strategy,
	}
	for id, p := range s.winner {
		js.WinningRegions[id] = int(p)
	}
	if js.Strategy == nil {
		js.Strategy = map[string]string{}
	}

	return json.Marshal(js)
}

// UnmarshalJSON decodes the wire shape written by MarshalJSON.
func (s *Solution) UnmarshalJSON(data []byte) error {
	var js jsonSolution
	if err := json.Unmarshal(data, &js); err != nil {
		return fmt.Errorf("solution: UnmarshalJSON: %w", err)
	}
	*s = *New(len(js.WinningRegions))
	for id, p := range js.WinningRegions {
		if !parity.Player(p).Valid() {
			return fmt.Errorf("solution: UnmarshalJSON: vertex %q winner %d: %w", id, p, parity.ErrInvalidOwner)
		}
		s.winner[id] = parity.Player(p)
	}
	for id, to := range js.Strategy {
		s.strategy[id] = to
	}

	return nil
}

// WriteText writes the plain report:
//
//	Winning regions: {a:0,b:1}
//	Strategy: {a:a}
func (s *Solution) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("Winning regions: {")
	for i, id := range s.IDs() {
		if i > 0 {
			bw.WriteByte(',')
		}
		fmt.Fprintf(bw, "%s:%d", id, int(s.winner[id]))
	}
	bw.WriteString("}\nStrategy: {")
	keys := treeset.NewWithStringComparator()
	for id := range s.strategy {
		keys.Add(id)
	}
	for i, id := range toStrings(keys) {
		if i > 0 {
			bw.WriteByte(',')
		}
		fmt.Fprintf(bw, "%s:%s", id, s.strategy[id])
	}
	bw.WriteString("}\n")

	return bw.Flush()
}
