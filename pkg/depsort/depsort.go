// Package depsort produces the deterministic linear service order that
// pkg/compose emits from: Kahn's algorithm, ties broken by ascending
// original source line, so output order is stable across runs for
// identical input.
package depsort

import (
	"container/heap"

	"athena/pkg/diag"
	"athena/pkg/model"
)

// Sort assumes pkg/validate has already rejected cycles. As a defensive
// guard against a future caller that skips validation, a cycle discovered
// here is reported as a single diag.KindInternal diagnostic (never a panic)
// and the unsortable remainder is appended in original declaration order.
func Sort(services []*model.Service, coll *diag.Collector) []*model.Service {
	indegree := make(map[string]int, len(services))
	dependents := make(map[string][]string, len(services))
	byName := make(map[string]*model.Service, len(services))
	line := make(map[string]int, len(services))

	for _, s := range services {
		indegree[s.Name] = 0
		byName[s.Name] = s
		line[s.Name] = s.Span().StartLine
	}
	for _, s := range services {
		for _, dep := range s.DependsOn() {
			if _, ok := byName[dep.ServiceName]; !ok {
				continue // unresolved reference; validate already reports it
			}
			indegree[s.Name]++
			dependents[dep.ServiceName] = append(dependents[dep.ServiceName], s.Name)
		}
	}

	pq := &nameHeap{}
	heap.Init(pq)
	for _, s := range services {
		if indegree[s.Name] == 0 {
			heap.Push(pq, item{s.Name, line[s.Name]})
		}
	}

	var ordered []*model.Service
	visited := make(map[string]bool, len(services))

	for pq.Len() > 0 {
		it := heap.Pop(pq).(item)
		ordered = append(ordered, byName[it.name])
		visited[it.name] = true

		for _, dependent := range dependents[it.name] {
			indegree[dependent]--
			if indegree[dependent] == 0 {
				heap.Push(pq, item{dependent, line[dependent]})
			}
		}
	}

	if len(ordered) == len(services) {
		return ordered
	}

	coll.Internal("dependency sorter found a cycle that validation should have rejected")
	for _, s := range services {
		if !visited[s.Name] {
			ordered = append(ordered, s)
		}
	}
	return ordered
}

type item struct {
	name string
	line int
}

// nameHeap is a min-heap ordered by source line, giving Kahn's algorithm its
// ascending-source-line tie-break among equal-depth services.
type nameHeap []item

func (h nameHeap) Len() int            { return len(h) }
func (h nameHeap) Less(i, j int) bool  { return h[i].line < h[j].line }
func (h nameHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nameHeap) Push(x interface{}) { *h = append(*h, x.(item)) }
func (h *nameHeap) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}
