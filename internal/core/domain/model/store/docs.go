// Package store models fulfillment locations.
package store
