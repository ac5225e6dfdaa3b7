// File: api/waitable.go
// Author: momentics <momentics@gmail.com>
//
// Boundary contract for event sources that expose an OS readiness descriptor.

package api

// Waitable is implemented by event sources that can be multiplexed through
// OS-level readiness notification, such as IPC listeners or sockets.
type Waitable interface {
	// FileDescriptor returns the descriptor watched for readability.
	// The descriptor must stay open and stable while the source is attached.
	FileDescriptor() int
}
