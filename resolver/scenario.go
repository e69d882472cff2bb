package resolver

import (
	"sort"
	"strconv"
	"strings"

	"github.com/augv-fleet/coordinator/conflict"
	"github.com/augv-fleet/coordinator/grid"
	"github.com/augv-fleet/coordinator/planner"
)

// scenario is a partial reassignment of paths restricted to a conflict's
// involved agents.
type scenario map[string][]grid.Cell

// candidateScenarios builds every candidate scenario for c against the
// current pending assignments, per §4.4: all-avoid, one-allowed, then
// wait-permutations up to the scenario safety bound. budget is the number
// of scenarios still allowed before the bound is hit; it is decremented as
// scenarios are produced.
func candidateScenarios(g *grid.Grid, pending map[string][]grid.Cell, c conflict.Conflict, o Options, budget *int) []scenario {
	involved := append([]string(nil), c.Involved...)
	sort.Strings(involved)

	var out []scenario

	if s, ok := allAvoidScenario(g, pending, involved, c.Cell, o); ok {
		out = append(out, s)
		*budget--
	}

	for _, s := range oneAllowedScenarios(g, pending, involved, c.Cell, o) {
		out = append(out, s)
		*budget--
	}

	out = append(out, waitPermutationScenarios(pending, involved, c.Step, o, budget)...)

	return out
}

// allAvoidScenario plans every involved agent avoiding cell. Returns
// ok == false if any agent fails to find a path.
func allAvoidScenario(g *grid.Grid, pending map[string][]grid.Cell, involved []string, cell grid.Cell, o Options) (scenario, bool) {
	blocked := map[grid.Cell]struct{}{cell: {}}

	s := scenario{}
	for _, a := range involved {
		path, ok := planAgent(g, pending, a, blocked, o)
		if !ok {
			return nil, false
		}
		s[a] = path
	}
	return s, true
}

// oneAllowedScenarios returns, for each designated agent, a scenario where
// that agent plans without blocks and every other involved agent plans
// avoiding cell. A designation is only included if every agent gets a path.
func oneAllowedScenarios(g *grid.Grid, pending map[string][]grid.Cell, involved []string, cell grid.Cell, o Options) []scenario {
	blocked := map[grid.Cell]struct{}{cell: {}}

	var out []scenario
	for _, designated := range involved {
		s := scenario{}
		ok := true
		for _, a := range involved {
			var path []grid.Cell
			if a == designated {
				path, ok = planAgent(g, pending, a, nil, o)
			} else {
				path, ok = planAgent(g, pending, a, blocked, o)
			}
			if !ok {
				break
			}
			s[a] = path
		}
		if ok {
			out = append(out, s)
		}
	}
	return out
}

// waitPermutationScenarios enumerates, for every non-empty proper subset S
// of involved and every injective assignment of distinct wait counts from
// {1,...,k} to S, a scenario prefixing each a in S's path with w_a copies
// of its current start cell. Enumeration stops, subset size by subset size,
// as soon as budget is exhausted; already-built scenarios are kept.
func waitPermutationScenarios(pending map[string][]grid.Cell, involved []string, k int, o Options, budget *int) []scenario {
	n := len(involved)
	if k <= 0 || n < 2 {
		return nil
	}

	var out []scenario
	logged := false
	boundHit := func(m int) {
		if !logged {
			logScenarioBoundHit(o, m, n, k)
			logged = true
		}
	}

outer:
	for m := 1; m < n; m++ {
		if *budget <= 0 {
			boundHit(m)
			break
		}
		for _, subset := range combinations(involved, m) {
			if *budget <= 0 {
				boundHit(m)
				break outer
			}
			for _, waits := range permutationsUpTo(k, m, *budget) {
				if *budget <= 0 {
					boundHit(m)
					break outer
				}
				out = append(out, buildWaitScenario(pending, subset, waits))
				*budget--
			}
		}
	}
	return out
}

// buildWaitScenario prefixes each subset[i]'s path with waits[i] copies of
// its current start cell.
func buildWaitScenario(pending map[string][]grid.Cell, subset []string, waits []int) scenario {
	s := scenario{}
	for i, a := range subset {
		path := pending[a]
		if len(path) == 0 {
			s[a] = path
			continue
		}
		start := path[0]
		prefixed := make([]grid.Cell, 0, waits[i]+len(path))
		for w := 0; w < waits[i]; w++ {
			prefixed = append(prefixed, start)
		}
		prefixed = append(prefixed, path...)
		s[a] = prefixed
	}
	return s
}

// planAgent finds a path for agent a between its current start and goal
// (the first and last cell of its pending path), using blocked as an
// overlay.
func planAgent(g *grid.Grid, pending map[string][]grid.Cell, a string, blocked map[grid.Cell]struct{}, o Options) ([]grid.Cell, bool) {
	path := pending[a]
	if len(path) == 0 {
		return nil, false
	}
	start, goal := path[0], path[len(path)-1]

	result, err := planner.FindPath(g, start, goal, blocked, o.PlannerOptions...)
	if err != nil {
		return nil, false
	}
	return result, true
}

// combinations returns every m-element subset of items, preserving items'
// relative order within each subset.
func combinations(items []string, m int) [][]string {
	n := len(items)
	if m > n {
		return nil
	}

	var out [][]string
	idx := make([]int, m)
	for i := range idx {
		idx[i] = i
	}

	for {
		subset := make([]string, m)
		for i, ix := range idx {
			subset[i] = items[ix]
		}
		out = append(out, subset)

		i := m - 1
		for i >= 0 && idx[i] == n-m+i {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < m; j++ {
			idx[j] = idx[j-1] + 1
		}
	}

	return out
}

// permutationsUpTo returns the ordered m-permutations of {1,...,k} (P(k,m)
// distinct, order-sensitive wait-count assignments) in lexicographic order,
// stopping after the first limit of them.
func permutationsUpTo(k, m, limit int) [][]int {
	// The first limit permutations in lexicographic order never use a value
	// above limit+m, so larger values (e.g. WarehouseStep) are not built.
	if k > limit+m {
		k = limit + m
	}
	values := make([]int, k)
	for i := range values {
		values[i] = i + 1
	}

	var out [][]int
	used := make([]bool, k)
	current := make([]int, 0, m)

	var rec func()
	rec = func() {
		if len(out) >= limit {
			return
		}
		if len(current) == m {
			out = append(out, append([]int(nil), current...))
			return
		}
		for i, v := range values {
			if used[i] {
				continue
			}
			used[i] = true
			current = append(current, v)
			rec()
			current = current[:len(current)-1]
			used[i] = false
		}
	}
	rec()

	return out
}

// serialize renders s as a deterministic string for lexicographic
// tie-breaking: sorted (agentID, path) pairs joined by "|".
func (s scenario) serialize() string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	for _, id := range ids {
		b.WriteString(id)
		b.WriteByte(':')
		for _, c := range s[id] {
			b.WriteString(strconv.Itoa(c.X))
			b.WriteByte(',')
			b.WriteString(strconv.Itoa(c.Y))
			b.WriteByte(';')
		}
		b.WriteByte('|')
	}
	return b.String()
}

func logScenarioBoundHit(o Options, subsetSize, n, step int) {
	if o.Logger == nil {
		return
	}
	o.Logger.Warnw("resolver: scenario safety bound reached, stopping enumeration for this conflict",
		"subsetSize", subsetSize, "involvedCount", n, "step", step)
}
