// Package msbuild loads a project's build description from its .csproj file
// and owns the build-system side of the two-phase startup: Initialize must
// run before any analysis-provider handle is opened, because the two
// external subsystems conflict when brought up out of order.
package msbuild

import "sync"

var (
	initOnce    sync.Once
	initialized bool
)

// Initialize performs build-system startup. Idempotent within a process.
// Callers must invoke it before opening an analysis-provider handle; the
// provider constructor fails fast otherwise.
func Initialize() {
	initOnce.Do(func() {
		// The real registration work (locating the toolchain, pinning the
		// environment) happens here. Nothing downstream may observe the
		// environment until this has run.
		initialized = true
	})
}

// Initialized reports whether Initialize has run.
func Initialized() bool {
	return initialized
}
