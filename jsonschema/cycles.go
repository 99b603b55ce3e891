package jsonschema

import (
	"slices"

	"github.com/speakeasy-api/datamapper/sequencedmap"
)

type color int

const (
	white color = iota
	gray
	black
)

// detectCycles runs a three-color depth first search over the graph in node order. Every back edge to a node on the
// current path yields one chain, from that node to the closing edge.
func detectCycles(nodes *sequencedmap.Map[string, *DependencyNode]) []CircularChain {
	colors := make(map[string]color, nodes.Len())
	chains := []CircularChain{}
	path := []string{}

	var visit func(id string)
	visit = func(id string) {
		colors[id] = gray
		path = append(path, id)

		node, _ := nodes.Get(id)
		for _, next := range node.Dependencies() {
			switch colors[next] {
			case gray:
				start := slices.Index(path, next)
				chain := append(CircularChain{}, path[start:]...)
				chains = append(chains, append(chain, next))
			case white:
				if nodes.Has(next) {
					visit(next)
				}
			}
		}

		path = path[:len(path)-1]
		colors[id] = black
	}

	for id := range nodes.Keys() {
		if colors[id] == white {
			visit(id)
		}
	}

	return chains
}

// computeLoadOrder orders nodes so every dependency comes before its dependents, using Kahn's algorithm. When only
// cycles remain, the first unplaced node of the first chain that has one is released, so every node is placed.
func computeLoadOrder(nodes *sequencedmap.Map[string, *DependencyNode], chains []CircularChain) []string {
	remaining := make(map[string]int, nodes.Len())
	for id, node := range nodes.All() {
		remaining[id] = len(node.Dependencies())
	}

	order := make([]string, 0, nodes.Len())
	placed := make(map[string]bool, nodes.Len())
	queue := []string{}
	for id := range nodes.Keys() {
		if remaining[id] == 0 {
			queue = append(queue, id)
		}
	}

	enqueued := make(map[string]bool, nodes.Len())
	for _, id := range queue {
		enqueued[id] = true
	}

	for len(order) < nodes.Len() {
		if len(queue) == 0 {
			next := breakDeadlock(nodes, chains, enqueued)
			if next == "" {
				break
			}
			queue = append(queue, next)
			enqueued[next] = true
		}

		id := queue[0]
		queue = queue[1:]
		if placed[id] {
			continue
		}
		placed[id] = true
		order = append(order, id)

		node, _ := nodes.Get(id)
		for _, dependent := range node.Dependents() {
			if enqueued[dependent] {
				continue
			}
			remaining[dependent]--
			if remaining[dependent] <= 0 {
				queue = append(queue, dependent)
				enqueued[dependent] = true
			}
		}
	}

	return order
}

func breakDeadlock(nodes *sequencedmap.Map[string, *DependencyNode], chains []CircularChain, enqueued map[string]bool) string {
	for _, chain := range chains {
		for _, id := range chain {
			if !enqueued[id] && nodes.Has(id) {
				return id
			}
		}
	}
	for id := range nodes.Keys() {
		if !enqueued[id] {
			return id
		}
	}
	return ""
}
