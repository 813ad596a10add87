// Package suite loads benchmark suites from HCL files.
//
// A suite names the solvers to compare and the random game families to
// compare them on:
//
//	suite "smoke" {
//	  solvers = ["spm", "recursive"]
//	  verify  = true
//
//	  family "sparse" {
//	    vertices       = var.n
//	    max_priority   = 6
//	    min_out_degree = 1
//	    max_out_degree = 3
//	    count          = 10
//	    seed           = 42
//	  }
//	}
//
// Values under var.* are supplied by the caller as strings; HCL converts
// them to the attribute type on decode.
package suite

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/katalvlaran/gamegraph/generator"
	"github.com/plan-systems/klog"
	"github.com/zclconf/go-cty/cty"
)

var (
	// ErrParse wraps HCL syntax and decode diagnostics.
	ErrParse = errors.New("suite: parse error")

	// ErrInvalid is returned for a well-formed file describing an unusable suite.
	ErrInvalid = errors.New("suite: invalid suite")
)

// DefaultSolvers is used when a suite omits the solvers attribute.
var DefaultSolvers = []string{"spm", "recursive"}

// Suite is one decoded and validated suite block.
type Suite struct {
	Name     string
	Solvers  []string
	Verify   bool
	Families []Family
}

// Family is a set of Count random games; game i uses seed
// generator.DeriveSeed(Game.Seed, i).
type Family struct {
	Name  string
	Game  generator.Config
	Count int
}

// Games returns the total number of games in s.
func (s *Suite) Games() int {
	n := 0
	for _, f := range s.Families {
		n += f.Count
	}

	return n
}

type fileRoot struct {
	Suites []*suiteBlock `hcl:"suite,block"`
}

type suiteBlock struct {
	Name     string         `hcl:"name,label"`
	Solvers  *[]string      `hcl:"solvers,optional"`
	Verify   *bool          `hcl:"verify,optional"`
	Families []*familyBlock `hcl:"family,block"`
}

type familyBlock struct {
	Name         string `hcl:"name,label"`
	Vertices     int    `hcl:"vertices"`
	MaxPriority  *int   `hcl:"max_priority,optional"`
	MinOutDegree *int   `hcl:"min_out_degree,optional"`
	MaxOutDegree *int   `hcl:"max_out_degree,optional"`
	Count        *int   `hcl:"count,optional"`
	Seed         *int64 `hcl:"seed,optional"`
}

// Load reads and decodes the suites of an HCL file.
func Load(path string, vars map[string]string) ([]*Suite, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, diags)
	}

	return decode(f, path, vars)
}

// Parse decodes the suites of src; filename is used in diagnostics only.
func Parse(src []byte, filename string, vars map[string]string) ([]*Suite, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, filename, diags)
	}

	return decode(f, filename, vars)
}

func evalContext(vars map[string]string) *hcl.EvalContext {
	vals := make(map[string]cty.Value, len(vars))
	for k, v := range vars {
		vals[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"var": cty.ObjectVal(vals)},
	}
}

func decode(f *hcl.File, filename string, vars map[string]string) ([]*Suite, error) {
	var root fileRoot
	if diags := gohcl.DecodeBody(f.Body, evalContext(vars), &root); diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, filename, diags)
	}
	if len(root.Suites) == 0 {
		return nil, fmt.Errorf("%w: %s: no suite blocks", ErrInvalid, filename)
	}

	seen := make(map[string]struct{}, len(root.Suites))
	out := make([]*Suite, 0, len(root.Suites))
	for _, b := range root.Suites {
		if _, dup := seen[b.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate suite %q", ErrInvalid, b.Name)
		}
		seen[b.Name] = struct{}{}
		s, err := b.translate()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	klog.V(2).Infof("suite: loaded %d suites from %s", len(out), filename)

	return out, nil
}

func (b *suiteBlock) translate() (*Suite, error) {
	s := &Suite{
		Name:    b.Name,
		Solvers: append([]string(nil), DefaultSolvers...),
		Verify:  true,
	}
	if b.Name == "" {
		return nil, fmt.Errorf("%w: empty suite name", ErrInvalid)
	}
	if b.Solvers != nil {
		s.Solvers = append([]string(nil), (*b.Solvers)...)
	}
	if b.Verify != nil {
		s.Verify = *b.Verify
	}
	if len(s.Solvers) == 0 {
		return nil, fmt.Errorf("%w: suite %q lists no solvers", ErrInvalid, b.Name)
	}
	names := make(map[string]struct{}, len(s.Solvers))
	for _, name := range s.Solvers {
		if name == "" {
			return nil, fmt.Errorf("%w: suite %q: empty solver name", ErrInvalid, b.Name)
		}
		if _, dup := names[name]; dup {
			return nil, fmt.Errorf("%w: suite %q: solver %q listed twice", ErrInvalid, b.Name, name)
		}
		names[name] = struct{}{}
	}
	if len(b.Families) == 0 {
		return nil, fmt.Errorf("%w: suite %q has no family blocks", ErrInvalid, b.Name)
	}

	fams := make(map[string]struct{}, len(b.Families))
	for _, fb := range b.Families {
		if _, dup := fams[fb.Name]; dup {
			return nil, fmt.Errorf("%w: suite %q: duplicate family %q", ErrInvalid, b.Name, fb.Name)
		}
		fams[fb.Name] = struct{}{}
		f, err := fb.translate()
		if err != nil {
			return nil, fmt.Errorf("suite %q: %w", b.Name, err)
		}
		s.Families = append(s.Families, f)
	}

	return s, nil
}

func (fb *familyBlock) translate() (Family, error) {
	f := Family{Name: fb.Name, Game: generator.DefaultConfig(), Count: 1}
	f.Game.Vertices = fb.Vertices
	if fb.MaxPriority != nil {
		f.Game.MaxPriority = *fb.MaxPriority
	}
	if fb.MinOutDegree != nil {
		f.Game.MinOutDegree = *fb.MinOutDegree
	}
	f.Game.MaxOutDegree = 0
	if fb.MaxOutDegree != nil {
		f.Game.MaxOutDegree = *fb.MaxOutDegree
	}
	if fb.Count != nil {
		f.Count = *fb.Count
	}
	if fb.Seed != nil {
		f.Game.Seed = *fb.Seed
	}

	if f.Count < 1 {
		return Family{}, fmt.Errorf("%w: family %q: count must be >= 1, got %d", ErrInvalid, fb.Name, f.Count)
	}
	if _, err := f.Game.Validate(); err != nil {
		return Family{}, fmt.Errorf("%w: family %q: %w", ErrInvalid, fb.Name, err)
	}

	return f, nil
}
