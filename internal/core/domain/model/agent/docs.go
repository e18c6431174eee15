// Package agent models delivery riders and their append-only position reports.
//
// The package includes:
//   - Agent: the aggregate holding availability (AVAILABLE, BUSY, OFFLINE) as a versioned record
//   - Status: the closed availability enum
//   - LocationSample: an immutable position report; the latest one is the last known position
package agent
