package mcp

import (
	"context"
	"os"
	"time"

	"sirocco/internal/logging"
)

// WatchParent monitors for parent process death in a background goroutine.
// When the parent PID changes (the agent frontend disconnected or restarted),
// it calls cancel to trigger graceful shutdown. This prevents zombie MCP
// server processes from accumulating.
//
// IMPORTANT: This must NOT read from stdin. The MCP SDK's StdioTransport
// owns stdin exclusively; reading from it here would steal bytes and corrupt
// the JSON-RPC protocol.
//
// The goroutine exits when ctx is canceled or parent death is detected.
func WatchParent(ctx context.Context, cancel context.CancelFunc) {
	ppid := os.Getppid()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(2 * time.Second):
				if os.Getppid() != ppid {
					logging.New("mcp").Warn("parent process died, initiating shutdown",
						"was_pid", ppid)
					cancel()
					return
				}
			}
		}
	}()
}
