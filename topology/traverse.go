// SPDX-License-Identifier: MIT
// File: traverse.go
// Role: stack-based traversals: SpanningTree, Loop, FundamentalLoops, Connected.
// Determinism:
//   - Every step scans edges in ascending column order.

package topology

// loopDeadEnd marks edges of a vertex the loop walk backed out of.
const loopDeadEnd = 2

// SpanningTree grows a depth-first tree from root and returns it as a new
// Topology with the same dimensions: tree edges keep their column index and
// orientation, every other column stays zero.
//
// Implementation:
//   - Stage 1: push root; mark the top of the stack visited.
//   - Stage 2: take the lowest incident edge leading to an unvisited vertex,
//     copy it into the tree and push that vertex; pop when none is left.
//
// Only vertices reachable from root are spanned.
//
// Errors: ErrOutOfRange for an invalid root.
// Complexity: O(V·E) time, O(V) stack.
func (t *Topology) SpanningTree(root int) (*Topology, error) {
	if !t.validVertex(root) {
		return nil, vertexErrorf("SpanningTree", root, ErrOutOfRange)
	}
	tree := NewSized(len(t.inc), t.edges)
	visited := make([]bool, len(t.inc))
	stack := []int{root}
	var v, e, w int
	var advanced bool
	for len(stack) > 0 {
		v = stack[len(stack)-1]
		visited[v] = true
		advanced = false
		for e = 0; e < t.edges; e++ {
			if t.inc[v][e] == 0 {
				continue
			}
			if w = t.opposite(v, e); visited[w] {
				continue
			}
			tree.copyColumn(t, e)
			stack = append(stack, w)
			advanced = true
			break
		}
		if !advanced {
			stack = stack[:len(stack)-1]
		}
	}

	return tree, nil
}

// copyColumn copies column e of src into t. Both share the vertex count.
func (t *Topology) copyColumn(src *Topology, e int) {
	for i := range t.inc {
		t.inc[i][e] = src.inc[i][e]
	}
}

// Loop walks from v along unused edges until it steps back onto v and
// returns the cycle as a signed edge vector: +1 where the walk followed an
// edge's orientation, −1 where it went against it, 0 elsewhere.
//
// The walk is meant for a tree plus one chord through v, which has exactly
// one simple cycle. Branches that dead-end are backed out and cleared.
// If v lies on no cycle the result is all zero.
//
// Errors: ErrOutOfRange.
// Complexity: O(V·E).
func (t *Topology) Loop(v int) ([]int, error) {
	if !t.validVertex(v) {
		return nil, vertexErrorf("Loop", v, ErrOutOfRange)
	}
	mark := make([]int, t.edges)
	stack := []int{v}
	found := false
	var top, e, w int
	var advanced bool
	for len(stack) > 0 && !found {
		top = stack[len(stack)-1]
		advanced = false
		for e = 0; e < t.edges; e++ {
			if t.inc[top][e] == 0 || mark[e] != 0 {
				continue
			}
			w = t.opposite(top, e)
			mark[e] = int(t.inc[top][e])
			stack = append(stack, w)
			found = w == v
			advanced = true
			break
		}
		if !advanced {
			for e = 0; e < t.edges; e++ {
				if t.inc[top][e] != 0 {
					mark[e] = loopDeadEnd
				}
			}
			stack = stack[:len(stack)-1]
		}
	}
	for e = range mark {
		if mark[e] == loopDeadEnd {
			mark[e] = 0
		}
	}

	return mark, nil
}

// FundamentalLoops builds the spanning tree rooted at root and, for every
// edge missing from it (a chord), extracts the loop that the chord closes.
// chords[i] is the column index of the chord behind loops[i]. Detached
// columns (self-loops) are neither tree edges nor chords.
//
// Errors: ErrOutOfRange for an invalid root.
// Complexity: O(C·V·E) for C chords.
func (t *Topology) FundamentalLoops(root int) (chords []int, loops [][]int, err error) {
	tree, err := t.SpanningTree(root)
	if err != nil {
		return nil, nil, err
	}
	var from, to int
	var loop []int
	for e := 0; e < t.edges; e++ {
		if tree.HasEdge(e) || !t.HasEdge(e) {
			continue
		}
		if from, to, err = t.Endpoints(e); err != nil {
			return nil, nil, err
		}
		withChord := tree.Clone()
		if err = withChord.Connect(from, to, e); err != nil {
			return nil, nil, err
		}
		if loop, err = withChord.Loop(from); err != nil {
			return nil, nil, err
		}
		chords = append(chords, e)
		loops = append(loops, loop)
	}

	return chords, loops, nil
}

// Connected reports whether every vertex is reachable from vertex 0.
// A graph with no vertices is connected.
func (t *Topology) Connected() bool {
	if len(t.inc) == 0 {
		return true
	}
	seen := make([]bool, len(t.inc))
	seen[0] = true
	stack := []int{0}
	count := 1
	var v, w int
	for len(stack) > 0 {
		v = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for e, x := range t.inc[v] {
			if x == 0 {
				continue
			}
			if w = t.opposite(v, e); !seen[w] {
				seen[w] = true
				count++
				stack = append(stack, w)
			}
		}
	}

	return count == len(t.inc)
}
