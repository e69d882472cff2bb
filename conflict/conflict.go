package conflict

import (
	"sort"

	"github.com/augv-fleet/coordinator/grid"
)

// occupant pairs an agent ID with its path index, used to find duplicate
// occupants of a (cell, step) pair.
type occupant struct {
	agentID string
	step    int
}

// Detect returns every collision among assignments' committed paths on g:
// vertex collisions (two agents in the same cell at the same step), swap
// collisions (two agents exchanging cells across one step), and warehouse
// exclusion violations (a path crossing another agent's docking zone).
//
// assignments and g are read only; Detect never mutates either. Output is
// sorted by (Step, Cell.X, Cell.Y, Kind) ascending, so repeated calls with
// identical inputs return identical conflict lists.
func Detect(assignments map[string][]grid.Cell, g *grid.Grid) []Conflict {
	agentIDs := sortedKeys(assignments)

	var conflicts []Conflict
	conflicts = append(conflicts, detectVertex(assignments, agentIDs)...)
	conflicts = append(conflicts, detectSwap(assignments, agentIDs)...)
	conflicts = append(conflicts, detectWarehouseExclusion(assignments, agentIDs, g)...)

	sort.Slice(conflicts, func(i, j int) bool {
		a, b := conflicts[i], conflicts[j]
		if a.Step != b.Step {
			return a.Step < b.Step
		}
		if a.Cell.X != b.Cell.X {
			return a.Cell.X < b.Cell.X
		}
		if a.Cell.Y != b.Cell.Y {
			return a.Cell.Y < b.Cell.Y
		}
		return a.Kind < b.Kind
	})

	return conflicts
}

func detectVertex(assignments map[string][]grid.Cell, agentIDs []string) []Conflict {
	type key struct {
		cell grid.Cell
		step int
	}
	occupants := map[key][]string{}

	for _, id := range agentIDs {
		for step, c := range assignments[id] {
			k := key{cell: c, step: step}
			occupants[k] = append(occupants[k], id)
		}
	}

	var out []Conflict
	for k, ids := range occupants {
		if len(ids) < 2 {
			continue
		}
		sort.Strings(ids)
		out = append(out, Conflict{Cell: k.cell, Step: k.step, Involved: ids, Kind: Vertex})
	}
	return out
}

func detectSwap(assignments map[string][]grid.Cell, agentIDs []string) []Conflict {
	var out []Conflict

	for i := 0; i < len(agentIDs); i++ {
		for j := i + 1; j < len(agentIDs); j++ {
			a, b := agentIDs[i], agentIDs[j]
			pathA, pathB := assignments[a], assignments[b]

			steps := len(pathA)
			if len(pathB) < steps {
				steps = len(pathB)
			}

			for k := 1; k < steps; k++ {
				if pathA[k-1] == pathB[k] && pathB[k-1] == pathA[k] {
					involved := sortedPair(a, b)
					out = append(out,
						Conflict{Cell: pathA[k-1], Step: k, Involved: involved, Kind: Swap},
						Conflict{Cell: pathB[k-1], Step: k, Involved: involved, Kind: Swap},
					)
				}
			}
		}
	}

	return out
}

func detectWarehouseExclusion(assignments map[string][]grid.Cell, agentIDs []string, g *grid.Grid) []Conflict {
	var out []Conflict

	for _, dockingID := range agentIDs {
		path := assignments[dockingID]
		if len(path) == 0 {
			continue
		}
		finalCell := path[len(path)-1]
		if !g.IsWarehouseAnchor(finalCell) {
			continue
		}
		// The zone is reserved only while the docking agent (path[0] is its
		// current cell) is within Chebyshev distance 1 of the anchor.
		if path[0].ChebyshevDistance(finalCell) > 1 {
			continue
		}

		box := make(map[grid.Cell]struct{}, 9)
		for _, c := range g.WarehouseBox(finalCell) {
			box[c] = struct{}{}
		}

		for _, otherID := range agentIDs {
			if otherID == dockingID {
				continue
			}
			for _, c := range assignments[otherID] {
				if _, crosses := box[c]; crosses {
					out = append(out, Conflict{
						Cell:     c,
						Step:     WarehouseStep,
						Involved: sortedPair(dockingID, otherID),
						Kind:     WarehouseExclusion,
					})
					// One conflict per crossing agent, at its first cell in the zone.
					break
				}
			}
		}
	}

	return out
}

func sortedKeys(m map[string][]grid.Cell) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedPair(a, b string) []string {
	pair := []string{a, b}
	sort.Strings(pair)
	return pair
}
