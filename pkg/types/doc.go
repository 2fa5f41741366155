// Package types defines the Store interface, record snapshots, configuration,
// and standard error values for the satchel learning-records store.
package types
