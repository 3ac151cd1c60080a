// Command mbjobctl is a small demonstration CLI for the mbmgr scheduler.
// It loads a JSON workload file — an array of job descriptors — through
// an absfs.FileSystem (github.com/absfs/memfs by default, so the demo has
// no real disk dependency), derives a key from a passphrase via
// internal/keying, and pumps every job through a mbmgr.Manager, logging a
// github.com/google/uuid correlation ID per job.
//
// Workload JSON shape:
//
//	[
//	  {"cipher_mode":"AES_CBC_128","direction":"ENCRYPT","hash_alg":"NULL_HASH","chain_order":"CIPHER_HASH","plaintext_hex":"..."}
//	]
//
// This format is internal to the CLI; it is not part of the scheduler's
// public API.
package main
