// Package denormal documents and probes the flush-to-zero situation
// the core lives with: Go exposes no portable way to set a CPU's
// FTZ/DAZ control bits without cgo or assembly, both of which the core
// forbids, so recirculating feedback loops (fundsp.Feedback) instead
// rely on a small fixed offset injected into their own state every
// sample.
package denormal

import "golang.org/x/sys/cpu"

// Guard reports whether the running architecture plausibly has
// hardware flush-to-zero support that a cgo or assembly build could
// enable (amd64/SSE2, or arm64). It never changes FPU state itself —
// it exists so diagnostics and tests can record which fallback path a
// given run is exercising.
func Guard() bool {
	return cpu.X86.HasSSE2 || cpu.ARM64.HasFP
}
