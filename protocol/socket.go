package protocol

import (
	"fmt"
	"net"
	"os"
)

// BindListener binds a Unix domain socket at path, removing any stale
// socket file left over from a previous run first, per spec §7.
func BindListener(path string) (net.Listener, error) {
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("protocol: removing stale socket: %w", err)
		}
	}
	l, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("protocol: binding unix socket: %w", err)
	}
	return l, nil
}

// RemoveSocket removes the socket file at path, ignoring a not-exist error.
// Call on clean shutdown, per spec §7.
func RemoveSocket(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("protocol: removing socket: %w", err)
	}
	return nil
}
