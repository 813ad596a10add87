package runner

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// PlainOptions selects what WritePlain prints for every solver result.
type PlainOptions struct {
	TimeOnly   bool // print timings without solutions
	SolverName bool // prefix each result with [name]
}

// WritePlain renders r as text.
func (r *Report) WritePlain(w io.Writer, o PlainOptions) error {
	bw := bufio.NewWriter(w)
	var solves, vertices int
	var total time.Duration
	for _, s := range r.Suites {
		fmt.Fprintf(bw, "Suite %s: %s games, solvers %s\n", s.Name, humanize.Comma(int64(len(s.Games))), strings.Join(s.Solvers, ", "))
		for _, g := range s.Games {
			fmt.Fprintf(bw, "Game %s #%d: seed %d, %s vertices, %s edges, %s components (%s bottom)\n",
				g.Family, g.Index, g.Seed, humanize.Comma(int64(g.Vertices)), humanize.Comma(int64(g.Edges)), humanize.Comma(int64(g.Components)), humanize.Comma(int64(g.Bottom)))
			for _, res := range g.Results {
				solves++
				vertices += g.Vertices
				total += res.Time
				if o.SolverName {
					fmt.Fprintf(bw, "[%s]\n", res.Solver)
				}
				if !o.TimeOnly {
					if err := res.Solution.WriteText(bw); err != nil {
						return err
					}
				}
				if res.Cached {
					bw.WriteString("Time: cached\n")
					continue
				}
				fmt.Fprintf(bw, "Time: %s\n", res.Time)
			}
		}
	}
	fmt.Fprintf(bw, "Total: %s solves over %s vertices in %s\n", humanize.Comma(int64(solves)), humanize.Comma(int64(vertices)), total)

	return bw.Flush()
}

// WriteJSON renders r as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(r)
}
