package keel

import (
	"container/heap"
	"fmt"
)

// schedNode is one child of the group being sorted. seq is its insertion
// position and the deterministic tiebreak; bias pulls "first" systems ahead
// of unconstrained ones and "last" systems behind them.
type schedNode struct {
	seq  int
	bias int
	succ []int
	deps int
}

// readyQueue orders ready nodes by (bias, insertion order).
type readyQueue struct {
	nodes []schedNode
	items []int
}

func (q *readyQueue) Len() int { return len(q.items) }

func (q *readyQueue) Less(i, j int) bool {
	a, b := q.nodes[q.items[i]], q.nodes[q.items[j]]
	if a.bias != b.bias {
		return a.bias < b.bias
	}
	return a.seq < b.seq
}

func (q *readyQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

func (q *readyQueue) Push(x any) { q.items = append(q.items, x.(int)) }

func (q *readyQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}

// sortGroup rebuilds the execution order for g's children from their
// declared constraints. Constraints naming a system outside the group are
// dropped with a warning; the sort fails only on malformed constraints or a
// dependency cycle, leaving g.ordered untouched.
func sortGroup(w *World, g *SystemGroup) error {
	n := len(g.children)
	nodes := make([]schedNode, n)
	names := make([]string, n)
	indexByName := make(map[string]int, n)

	for i, sys := range g.children {
		name := systemName(sys)
		names[i] = name
		if _, dup := indexByName[name]; dup {
			w.log.Warn().Str("system", name).Str("group", g.info.Name).Msg("duplicate system name in group")
			continue
		}
		indexByName[name] = i
	}

	var edgeList [][2]int
	edgeSet := make(map[[2]int]struct{})
	addEdge := func(from, to int) {
		e := [2]int{from, to}
		if _, seen := edgeSet[e]; seen {
			return
		}
		edgeSet[e] = struct{}{}
		edgeList = append(edgeList, e)
	}

	for i, sys := range g.children {
		nodes[i].seq = i
		cs, err := parseConstraints(names[i], sys.Info().Order)
		if err != nil {
			return err
		}
		for _, c := range cs {
			switch c.kind {
			case constraintFirst:
				nodes[i].bias = -1
			case constraintLast:
				nodes[i].bias = 1
			case constraintBefore, constraintAfter:
				j, ok := indexByName[c.target]
				if !ok {
					w.log.Warn().
						Str("system", names[i]).
						Str("target", c.target).
						Str("group", g.info.Name).
						Msg("ordering constraint targets a system outside the group, ignoring")
					continue
				}
				if c.kind == constraintBefore {
					addEdge(i, j)
				} else {
					addEdge(j, i)
				}
			}
		}
	}

	for _, e := range edgeList {
		nodes[e[0]].succ = append(nodes[e[0]].succ, e[1])
		nodes[e[1]].deps++
	}

	q := &readyQueue{nodes: nodes}
	for i := range nodes {
		if nodes[i].deps == 0 {
			q.items = append(q.items, i)
		}
	}
	heap.Init(q)

	order := make([]System, 0, n)
	placed := make([]bool, n)
	for q.Len() > 0 {
		i := heap.Pop(q).(int)
		placed[i] = true
		order = append(order, g.children[i])
		for _, j := range nodes[i].succ {
			nodes[j].deps--
			if nodes[j].deps == 0 {
				heap.Push(q, j)
			}
		}
	}

	if len(order) != n {
		var edges []string
		for _, e := range edgeList {
			if !placed[e[0]] && !placed[e[1]] {
				edges = append(edges, fmt.Sprintf("%s -> %s", names[e[0]], names[e[1]]))
			}
		}
		return CycleError{Group: g.info.Name, Edges: edges}
	}

	g.ordered = order
	return nil
}

// sortTree re-sorts g and every descendant group.
func sortTree(w *World, g *SystemGroup) error {
	if err := sortGroup(w, g); err != nil {
		return err
	}
	for _, child := range g.children {
		if sub, ok := child.(*SystemGroup); ok {
			if err := sortTree(w, sub); err != nil {
				return err
			}
		}
	}
	return nil
}
