// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package backend

import "sync"

// Credential is the single bearer token slot shared between the session
// store (which writes it on login/logout) and the Client (which reads it
// on every outgoing request). Safe for concurrent use.
type Credential struct {
	mu    sync.RWMutex
	token string
}

// Set installs the bearer token used by subsequent requests.
func (c *Credential) Set(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Clear removes the bearer token. Subsequent requests go out anonymous.
func (c *Credential) Clear() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// Get returns the current token, or "" when no credential is held.
func (c *Credential) Get() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}
