//go:build linux

package userevents

import "golang.org/x/sys/unix"

// tracefs mounts where the user_events registration node may live.
var dataPaths = []string{
	"/sys/kernel/tracing/user_events_data",
	"/sys/kernel/debug/tracing/user_events_data",
}

// Available reports whether the kernel exposes a writable user_events
// registration node.
func Available() bool {
	for _, p := range dataPaths {
		if unix.Access(p, unix.R_OK|unix.W_OK) == nil {
			return true
		}
	}
	return false
}
