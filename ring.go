package mbmgr

// GetNextJob returns a pointer to the next free ring slot for the caller
// to populate. The returned Job is reused across calls (its storage lives
// inside the Manager's ring array), so callers must finish populating it
// and call SubmitJob/SubmitJobNoCheck before calling GetNextJob again.
func (m *Manager) GetNextJob() *Job {
	return &m.jobs[m.next]
}

// SubmitJob validates the job currently sitting in the slot GetNextJob
// last returned, then drives it through the chain orchestrator. It
// returns the oldest in-flight job whose processing has now finished (not
// necessarily the job just submitted — see lanes.go), or nil if none has
// finished yet.
func (m *Manager) SubmitJob() *Job {
	return m.submit(true)
}

// SubmitJobNoCheck behaves like SubmitJob but skips the job validator.
// Callers that have already validated a job out-of-band (or are
// intentionally exercising engine behavior on a malformed job) use this to
// bypass the constraint-table cost.
func (m *Manager) SubmitJobNoCheck() *Job {
	return m.submit(false)
}

func (m *Manager) submit(check bool) *Job {
	var forced *Job
	if m.count == MaxJobs {
		// Ring is full: the slot GetNextJob would hand out still holds a
		// live job. Force its engine(s) to completion before reusing it.
		forced = m.flushOne()
	}

	idx := m.next
	j := &m.jobs[idx]
	j.Status = StatusBeingProcessed
	m.done[idx] = false

	if check {
		if err := validateJob(j); err != nil {
			j.Status = StatusInvalidArgs
		}
	}

	if j.Status&StatusInvalidArgs == 0 {
		m.submitNewJob(j)
	} else {
		m.finish(j)
	}

	if m.earliest == -1 {
		m.earliest = idx
	}
	m.next = (m.next + 1) % MaxJobs
	m.count++

	if forced != nil {
		return forced
	}
	return m.reap()
}

// FlushJob forces the oldest in-flight job's engine(s) to completion
// (draining any partially-filled lane batch it is waiting in) and returns
// it, or nil if the ring is empty.
func (m *Manager) FlushJob() *Job {
	return m.flushOne()
}

// flushOne drains the ring's oldest job to completion. A single flushChain
// call only advances one stage of a chained job (cipher or hash); a job
// that is lane-buffered on both sides needs its cipher stage flushed, then
// its hash stage flushed in turn, so this loops until the oldest job's
// status reaches COMPLETED, per spec's "alternate between flushing the
// cipher side and the hash side" drain loop.
func (m *Manager) flushOne() *Job {
	if m.earliest == -1 {
		return nil
	}
	for !m.done[m.earliest] {
		m.flushChain(&m.jobs[m.earliest])
	}
	return m.reap()
}

// reap returns the earliest in-flight job if it has finished, advancing
// the ring's earliest cursor; otherwise it returns nil, even if some
// later-submitted job has already finished internally — FIFO return order
// is the scheduler's core invariant.
func (m *Manager) reap() *Job {
	if m.earliest == -1 || !m.done[m.earliest] {
		return nil
	}
	idx := m.earliest
	j := &m.jobs[idx]
	m.count--
	if m.count == 0 {
		m.earliest = -1
	} else {
		m.earliest = (m.earliest + 1) % MaxJobs
	}
	return j
}

// finish marks a job's ring slot as resolved once its full chain
// (cipher and hash stages, per its chain order) has completed.
func (m *Manager) finish(j *Job) *Job {
	m.done[j.slot] = true
	return j
}
