// Implements the WaitQueue, which holds all jobs waiting for a server.
// Jobs are enqueued on arrival and served strictly in arrival order.

package sim

import (
	"fmt"
	"strings"
)

// WaitQueue represents a FIFO queue of jobs waiting to be dispatched.
type WaitQueue struct {
	queue []*Job // FIFO queue of jobs
}

// Enqueue adds a job to the back of the wait queue.
func (wq *WaitQueue) Enqueue(j *Job) {
	if j == nil {
		panic("Enqueue: job must not be nil")
	}
	wq.queue = append(wq.queue, j)
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range wq.queue {
		sb.WriteString(fmt.Sprint(val.ID))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of jobs in the queue.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Peek returns the job that the next idle server will take, or nil when no
// job is waiting.
func (wq *WaitQueue) Peek() *Job {
	if len(wq.queue) == 0 {
		return nil
	}
	return wq.queue[0]
}

// Items returns the waiting jobs, head first. The slice aliases the queue's
// storage; Queue.Waiting hands out a copy instead.
func (wq *WaitQueue) Items() []*Job {
	return wq.queue
}

// Dequeue removes and returns the head job for dispatch, or nil when no job
// is waiting.
func (wq *WaitQueue) Dequeue() *Job {
	if len(wq.queue) == 0 {
		return nil
	}
	head := wq.queue[0]
	wq.queue[0] = nil
	wq.queue = wq.queue[1:]
	return head
}
