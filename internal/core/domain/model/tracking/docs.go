// Package tracking models the append-only audit log of order lifecycle changes.
package tracking
