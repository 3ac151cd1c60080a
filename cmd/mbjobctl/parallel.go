package main

import (
	"fmt"
	"runtime"
	"sync"
)

// parallelConfig controls sharded workload execution across goroutines.
// Each shard gets its own mbmgr.Manager, since a Manager is not safe for
// concurrent use; parallelism here comes from running independent
// managers side by side, not from sharing one.
type parallelConfig struct {
	enabled  bool
	workers  int // 0 means runtime.NumCPU()
	minShard int // below this many entries, run sequentially instead
}

func defaultParallelConfig() parallelConfig {
	return parallelConfig{enabled: true, workers: runtime.NumCPU(), minShard: 4}
}

// runWorkloadSharded splits entries into up to cfg.workers shards and runs
// each shard's jobs through its own passphrase-keyed Manager concurrently.
// Below cfg.minShard total entries, or when cfg.enabled is false, it falls
// back to the sequential runWorkload path.
func runWorkloadSharded(entries []workloadEntry, passphrase string, cfg parallelConfig) error {
	if !cfg.enabled || len(entries) < cfg.minShard {
		return runWorkload(entries, passphrase)
	}

	numWorkers := cfg.workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(entries) {
		numWorkers = len(entries)
	}

	shards := make([][]workloadEntry, numWorkers)
	for i, e := range entries {
		shards[i%numWorkers] = append(shards[i%numWorkers], e)
	}

	var wg sync.WaitGroup
	errChan := make(chan error, numWorkers)

	for _, shard := range shards {
		if len(shard) == 0 {
			continue
		}
		shard := shard
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					select {
					case errChan <- fmt.Errorf("panic in workload shard: %v", r):
					default:
					}
				}
			}()
			if err := runWorkload(shard, passphrase); err != nil {
				select {
				case errChan <- err:
				default:
				}
			}
		}()
	}

	wg.Wait()
	close(errChan)

	select {
	case err := <-errChan:
		return err
	default:
		return nil
	}
}
