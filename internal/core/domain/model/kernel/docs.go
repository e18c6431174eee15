// Package kernel holds the value objects shared by every aggregate of the fulfillment domain:
// UUID identifiers and geographic Locations with haversine distance.
//
// Both types are immutable and safe for concurrent use. Their zero values are invalid and
// fail Validate, so aggregates can detect values that bypassed the constructors.
package kernel
