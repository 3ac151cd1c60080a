package mbmgr

// laneGroup buffers up to capacity jobs for one OOO-style primitive engine
// and releases completed jobs one at a time, oldest first, once a round
// has run. This models the reference manager's struct-of-arrays lane
// occupancy (hold N jobs, advance them together, drain in submission
// order) without its per-round byte-stepping: crypto/cipher's primitives
// process a whole buffer in one call, so a "round" here is simply running
// every buffered job's transform once capacity lanes have filled.
//
// unusedLanes isn't modeled as the packed-nibble stack the reference
// manager uses (DESIGN NOTES, "packed-lane-stack") because Go has no
// register-width pressure motivating it; lanes here are just a slice, and
// the corresponding simplification is recorded in DESIGN.md.
type laneGroup struct {
	capacity int
	lanes    []*Job
	ready    []*Job
	run      func(jobs []*Job)
}

func newLaneGroup(capacity int, run func([]*Job)) *laneGroup {
	return &laneGroup{capacity: capacity, run: run}
}

// submit enqueues j into the next free lane. If lanes are now full, the
// whole batch runs and the oldest completed job is returned; otherwise j
// is parked and nil is returned, signaling "still in flight". If another
// batch had already completed and not yet drained, its oldest member is
// returned instead (j is still enqueued and will be returned later) —
// callers must never assume the returned pointer is the job just passed
// in.
func (g *laneGroup) submit(j *Job) *Job {
	g.lanes = append(g.lanes, j)
	if len(g.ready) > 0 {
		return g.pop()
	}
	if len(g.lanes) < g.capacity {
		return nil
	}
	g.runBatch()
	return g.pop()
}

// flush forces whatever lanes are currently buffered (even a partial
// batch) to run now, draining the ready queue first if one exists.
func (g *laneGroup) flush() *Job {
	if len(g.ready) > 0 {
		return g.pop()
	}
	if len(g.lanes) == 0 {
		return nil
	}
	g.runBatch()
	return g.pop()
}

// pending reports whether this engine currently holds any job, buffered
// or completed-but-undrained.
func (g *laneGroup) pending() bool {
	return len(g.lanes) > 0 || len(g.ready) > 0
}

func (g *laneGroup) runBatch() {
	g.run(g.lanes)
	g.ready = append(g.ready, g.lanes...)
	g.lanes = g.lanes[:0]
}

func (g *laneGroup) pop() *Job {
	j := g.ready[0]
	g.ready = g.ready[1:]
	return j
}
