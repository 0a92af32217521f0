package kernel

import "container/heap"

// eventQueue holds pending timed events, earliest first. Events due at the
// same time come out in ascending EventID, which is scheduling order.
type eventQueue []Event

func (q eventQueue) Len() int { return len(q) }

func (q eventQueue) Less(i, j int) bool {
	if ti, tj := q[i].Timestamp(), q[j].Timestamp(); ti != tj {
		return ti < tj
	}
	return q[i].EventID() < q[j].EventID()
}

func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *eventQueue) Push(x any) { *q = append(*q, x.(Event)) }

func (q *eventQueue) Pop() any {
	old := *q
	last := len(old) - 1
	ev := old[last]
	old[last] = nil
	*q = old[:last]
	return ev
}

func (q *eventQueue) schedule(ev Event) { heap.Push(q, ev) }

// due returns the time of the earliest event if it falls before end.
func (q eventQueue) due(end Time) (Time, bool) {
	if len(q) == 0 || q[0].Timestamp() >= end {
		return 0, false
	}
	return q[0].Timestamp(), true
}

// popAt removes the earliest event if it is scheduled exactly at t.
func (q *eventQueue) popAt(t Time) Event {
	if len(*q) == 0 || (*q)[0].Timestamp() != t {
		return nil
	}
	return heap.Pop(q).(Event)
}
