//  Copyright (c) 2026 Ulyzses
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// 		http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package search

import (
	"container/heap"
	"math"

	"github.com/Ulyzses/spherical-polyanya/sphere"
)

// queue is a binary min-heap of search nodes ordered by f = g + h, with
// ties (within Epsilon) broken in favour of the larger g so that nodes
// closer to the goal surface first.
type queue struct {
	h nodeHeap
}

func (q *queue) push(n *Node) {
	heap.Push(&q.h, n)
}

// pop removes and returns the least node. Popping an empty queue is a
// programming error.
func (q *queue) pop() *Node {
	if len(q.h) == 0 {
		panic("search: pop from empty queue")
	}
	return heap.Pop(&q.h).(*Node)
}

// peek returns the least node without removing it.
func (q *queue) peek() *Node {
	if len(q.h) == 0 {
		panic("search: peek at empty queue")
	}
	return q.h[0]
}

func (q *queue) len() int    { return len(q.h) }
func (q *queue) empty() bool { return len(q.h) == 0 }

type nodeHeap []*Node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	fi, fj := h[i].F(), h[j].F()
	if math.Abs(fi-fj) <= sphere.Epsilon {
		return h[i].g > h[j].g
	}
	return fi < fj
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(*Node)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}
