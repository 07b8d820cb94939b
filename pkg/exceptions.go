package pkg

import "errors"

var (
	// ErrVerificationFailed is returned by VerificationReport.Err when any
	// record is unreadable or carries a stale checksum.
	ErrVerificationFailed = errors.New("❌ archive verification failed")
)
