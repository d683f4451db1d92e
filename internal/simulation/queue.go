package simulation

import (
	"container/heap"
	"time"
)

type stage int

const (
	stageRelease stage = iota
	stageComplete
)

type event struct {
	at    time.Time
	index int
	stage stage
	proc  *process
}

// eventQueue orders events by simulated instant, then by input index.
type eventQueue []*event

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if !q[i].at.Equal(q[j].at) {
		return q[i].at.Before(q[j].at)
	}
	return q[i].index < q[j].index
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x any) { *q = append(*q, x.(*event)) }

func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	ev := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return ev
}

func (q *eventQueue) schedule(ev *event) { heap.Push(q, ev) }

func (q *eventQueue) next() *event { return heap.Pop(q).(*event) }
