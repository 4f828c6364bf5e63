// Package syncs provides synchronization primitives.
package syncs
