package engine

import "errors"

// ErrAuthFailed is returned by AEADEngine.Open (and the SIV engine) when
// the authentication tag does not match. It deliberately carries no detail
// about which check failed, to avoid leaking an oracle to a caller probing
// ciphertext validity.
var ErrAuthFailed = errors.New("engine: authentication failed: tag mismatch")
