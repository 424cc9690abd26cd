// Package env resolves the PipeWire server socket path from the process
// environment. This is a collaborator interface only: the core
// connection never reads the environment itself, it is handed a
// resolved path by the caller.
package env

import (
	"errors"
	"os"
	"path/filepath"
)

// socketName is the fixed relative path every PipeWire server listens on
// under its runtime directory.
const socketName = "pipewire-0"

// ErrNoRuntimeDir is returned when none of the three environment
// variables that could name a runtime directory are set.
var ErrNoRuntimeDir = errors.New("env: none of PIPEWIRE_RUNTIME_DIR, XDG_RUNTIME_DIR, USERPROFILE are set")

// SocketPath resolves the local socket path the client should connect
// to, trying PIPEWIRE_RUNTIME_DIR, then XDG_RUNTIME_DIR, then
// USERPROFILE, in that order.
func SocketPath() (string, error) {
	for _, key := range []string{"PIPEWIRE_RUNTIME_DIR", "XDG_RUNTIME_DIR", "USERPROFILE"} {
		if dir := os.Getenv(key); dir != "" {
			return filepath.Join(dir, socketName), nil
		}
	}
	return "", ErrNoRuntimeDir
}
