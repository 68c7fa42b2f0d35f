// Package filesystem provides the OS-backed implementation of types.FS.
//
// The engine never calls the os package directly; everything goes through
// this layer so tests can substitute instrumented filesystems.
package filesystem
