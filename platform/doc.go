// Package platform holds the host specific bits: where Steam lives and how
// child processes are spawned.
package platform
