// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor provides the poll-mode readiness demultiplexer abstraction
// behind the wait set and its Linux epoll implementation.
package reactor
