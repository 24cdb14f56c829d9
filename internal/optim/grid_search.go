// Package optim searches the option space for the configuration that
// minimizes an objective over its trajectory.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/cortexforge/internal/analysis"
	"github.com/san-kum/cortexforge/internal/config"
	"github.com/san-kum/cortexforge/internal/rcd"
)

var (
	ErrUnknownObjective = errors.New("optim: unknown objective")
	ErrEmptyGrid        = errors.New("optim: empty grid")
	ErrNoResult         = errors.New("optim: every run scored NaN")
)

// Objective scores a run; lower is better.
type Objective func(cfg rcd.Config, tr rcd.Trajectory) float64

var Objectives = map[string]Objective{
	"max-hope": func(_ rcd.Config, tr rcd.Trajectory) float64 { return -tr.Final().H },
	"min-hope": func(_ rcd.Config, tr rcd.Trajectory) float64 { return tr.Final().H },
	"min-memory": func(_ rcd.Config, tr rcd.Trajectory) float64 {
		return tr.Final().M
	},
	"min-reinforcement": func(_ rcd.Config, tr rcd.Trajectory) float64 {
		return tr.Final().R
	},
	"max-mean-hope": func(_ rcd.Config, tr rcd.Trajectory) float64 {
		h, _, _ := analysis.Describe(tr)
		return -h.Mean
	},
}

func LookupObjective(name string) (Objective, error) {
	obj, ok := Objectives[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownObjective, name, ObjectiveNames())
	}
	return obj, nil
}

func ObjectiveNames() []string {
	names := make([]string, 0, len(Objectives))
	for name := range Objectives {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Range returns from, from+by, ... up to and including to, rounded to
// 1e-9 so decimal steps land on their nominal values.
func Range(from, to, by float64) ([]float64, error) {
	if !(by > 0) {
		return nil, fmt.Errorf("increment must be positive, got %v", by)
	}
	if !(to >= from) {
		return nil, fmt.Errorf("range is empty: %v > %v", from, to)
	}
	n := int(math.Floor((to-from)/by+1e-9)) + 1
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = math.Round((from+float64(i)*by)*1e9) / 1e9
	}
	return vals, nil
}

// OptionGrid is the full slider grid of a named option.
func OptionGrid(name string) ([]float64, error) {
	opt, err := config.LookupOption(name)
	if err != nil {
		return nil, err
	}
	return Range(opt.Min, opt.Max, opt.Step)
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Size is the number of grid points.
func (g *GridSearch) Size() int {
	if len(g.paramNames) == 0 {
		return 0
	}
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

type Result struct {
	Params map[string]float64
	Config rcd.Config
	Score  float64
	Runs   int
}

func (r Result) String() string {
	parts := make([]string, 0, len(r.Params))
	for k, v := range r.Params {
		parts = append(parts, fmt.Sprintf("%s=%g", k, v))
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}

// Search evaluates every grid point on top of base and returns the one
// with the lowest score. Points that fail validation abort the search.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, obj Objective) (Result, error) {
	if len(g.paramNames) != len(g.ranges) {
		return Result{}, fmt.Errorf("optim: %d params but %d ranges", len(g.paramNames), len(g.ranges))
	}
	if g.Size() == 0 {
		return Result{}, ErrEmptyGrid
	}

	var points []map[string]float64
	g.collect(0, make(map[string]float64), &points)

	cfgs := make([]rcd.Config, len(points))
	for i, p := range points {
		c := base.Clone()
		for _, name := range g.paramNames {
			if err := c.Set(name, p[name]); err != nil {
				return Result{}, err
			}
		}
		var err error
		if cfgs[i], err = c.Engine(); err != nil {
			return Result{}, err
		}
	}

	trs, err := rcd.RunAll(ctx, cfgs)
	if err != nil {
		return Result{}, err
	}

	best := Result{Score: math.Inf(1), Runs: len(trs)}
	found := false
	for i, tr := range trs {
		val := obj(cfgs[i], tr)
		if math.IsNaN(val) {
			continue
		}
		if !found || val < best.Score {
			best.Score = val
			best.Params = points[i]
			best.Config = cfgs[i]
			found = true
		}
	}
	if !found {
		return Result{}, ErrNoResult
	}
	return best, nil
}

func (g *GridSearch) collect(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		*out = append(*out, current)
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.collect(depth+1, newParams, out)
	}
}
