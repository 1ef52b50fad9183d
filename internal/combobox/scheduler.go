package combobox

// Scheduler runs follow-up work after the current event handler returns and
// before the next event is dispatched.
type Scheduler interface {
	Defer(fn func())
}

// Queue is a FIFO Scheduler the host drains between events.
type Queue struct {
	pending []func()
}

func (q *Queue) Defer(fn func()) {
	if fn == nil {
		return
	}
	q.pending = append(q.pending, fn)
}

// Flush runs queued work in order, including work deferred while flushing.
// Reports whether anything ran.
func (q *Queue) Flush() bool {
	ran := false
	for len(q.pending) > 0 {
		fn := q.pending[0]
		q.pending = q.pending[1:]
		fn()
		ran = true
	}
	return ran
}

func (q *Queue) Pending() int { return len(q.pending) }
