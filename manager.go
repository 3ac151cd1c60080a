package mbmgr

import "github.com/cryptomb/mbmgr/internal/engine"

// MaxJobs is the ring scheduler's slot count — the number of jobs that may
// be in flight (submitted but not yet returned) at once. Must be a power
// of two to match the reference manager's wraparound arithmetic.
const MaxJobs = 64

// AESCCMMaxLanes is the CCM authentication engine's lane capacity. The
// reference manager ties this to the SIMD width available (4 lanes on
// SSE/AVX, 8 on AVX2/AVX512); this Go build has no such tier to select
// between, so it takes the wider figure (DESIGN.md, "capacity constants").
const AESCCMMaxLanes = 8

// laneCapacity is the batching width for the remaining OOO-style engines
// (AES-CBC, DES-CBC, HMAC, AES-XCBC). Chosen to match AES-NI's 4-way
// parallel block pipeline in the reference manager's SSE/AVX tier.
const laneCapacity = 4

// Manager schedules cryptography jobs through the multi-buffer pipeline:
// a ring of in-flight jobs plus one lane group per OOO-capable primitive
// engine. A Manager is not safe for concurrent use — see spec.md's
// Concurrency & Resource Model; callers run one Manager per goroutine.
type Manager struct {
	jobs     [MaxJobs]Job
	done     [MaxJobs]bool
	next     int
	earliest int
	count    int

	cbc128 *laneGroup
	cbc192 *laneGroup
	cbc256 *laneGroup
	des    *laneGroup

	hmacSHA1   *laneGroup
	hmacSHA224 *laneGroup
	hmacSHA256 *laneGroup
	hmacSHA384 *laneGroup
	hmacSHA512 *laneGroup
	hmacMD5    *laneGroup
	xcbc       *laneGroup

	ccm *ccmEngine
}

// NewManager constructs an empty Manager ready to accept jobs.
func NewManager() *Manager {
	m := &Manager{earliest: -1}
	for i := range m.jobs {
		m.jobs[i].slot = i
	}

	m.cbc128 = newLaneGroup(laneCapacity, runCBCBatch)
	m.cbc192 = newLaneGroup(laneCapacity, runCBCBatch)
	m.cbc256 = newLaneGroup(laneCapacity, runCBCBatch)
	m.des = newLaneGroup(laneCapacity, runDESBatch)

	m.hmacSHA1 = newLaneGroup(laneCapacity, runHMACBatch(engine.NewSHA1))
	m.hmacSHA224 = newLaneGroup(laneCapacity, runHMACBatch(engine.NewSHA224))
	m.hmacSHA256 = newLaneGroup(laneCapacity, runHMACBatch(engine.NewSHA256))
	m.hmacSHA384 = newLaneGroup(laneCapacity, runHMACBatch(engine.NewSHA384))
	m.hmacSHA512 = newLaneGroup(laneCapacity, runHMACBatch(engine.NewSHA512))
	m.hmacMD5 = newLaneGroup(laneCapacity, runHMACBatch(engine.NewMD5))
	m.xcbc = newLaneGroup(laneCapacity, runXCBCBatch)

	m.ccm = newCCMEngine(AESCCMMaxLanes)

	return m
}

// QueueSize reports how many jobs are currently in flight in the ring
// (submitted but not yet returned to the caller).
func (m *Manager) QueueSize() uint32 {
	return uint32(m.count)
}
