package mbmgr

// submitNewJob drives a freshly-validated job through its chain order's
// first stage. The returned job (if any) has finished its *current*
// stage; onCipherDone/onHashDone decide whether that means the whole
// chain is done or whether the other stage still needs to run — and
// crucially, they operate on whatever job the stage dispatch handed back,
// which is frequently not j itself once lane engines are buffering
// several jobs at once.
func (m *Manager) submitNewJob(j *Job) *Job {
	switch j.ChainOrder {
	case CipherHash:
		return m.onCipherDone(m.submitCipher(j))
	case HashCipher:
		return m.onHashDone(m.submitHash(j))
	default:
		j.Status |= StatusInvalidArgs
		return m.finish(j)
	}
}

// flushChain forces whichever stage j is currently waiting on to run now,
// used when the ring is full or FlushJob is called explicitly.
func (m *Manager) flushChain(j *Job) *Job {
	switch j.ChainOrder {
	case CipherHash:
		if j.Status&StatusCompletedCipher == 0 {
			return m.onCipherDone(m.flushCipher(j))
		}
		return m.onHashDone(m.flushHash(j))
	case HashCipher:
		if j.Status&StatusCompletedHash == 0 {
			return m.onHashDone(m.flushHash(j))
		}
		return m.onCipherDone(m.flushCipher(j))
	default:
		return m.finish(j)
	}
}

// onCipherDone is called once some job's cipher stage has just completed.
// If that job's chain runs cipher-then-hash, the hash stage still needs to
// run; if it runs hash-then-cipher, the cipher stage was the last one and
// the job is now fully resolved.
func (m *Manager) onCipherDone(done *Job) *Job {
	if done == nil {
		return nil
	}
	done.Status |= StatusCompletedCipher
	if done.ChainOrder == CipherHash {
		return m.onHashDone(m.submitHash(done))
	}
	return m.finish(done)
}

// onHashDone is the mirror image of onCipherDone for the hash stage.
func (m *Manager) onHashDone(done *Job) *Job {
	if done == nil {
		return nil
	}
	done.Status |= StatusCompletedHash
	if done.ChainOrder == HashCipher {
		return m.onCipherDone(m.submitCipher(done))
	}
	return m.finish(done)
}
