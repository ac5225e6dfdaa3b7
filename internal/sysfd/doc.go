// Package sysfd
// Author: momentics <momentics@gmail.com>
//
// Thin wrappers over the kernel descriptor primitives backing the wait set:
// eventfd wakeups, timerfd interval and deadline timers, and pipes.
// Platform-specific implementations live in separate files guarded by build tags.
package sysfd
