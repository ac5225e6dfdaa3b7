// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package waitset implements a single-process event multiplexer: many
// heterogeneous sources (readiness descriptors, interval timers, deadline
// watched descriptors) attach to one set and are dispatched through one
// blocking wait call. Attachments live as long as their guards; stop and
// termination requests unblock waits without tearing the set down.
package waitset
