package models

import "sync"

type CustomerInfo struct {
	Name  string
	Email string
}

// CustomerIntake holds the two form fields of a visit. Values are stored
// verbatim.
type CustomerIntake struct {
	mu    sync.RWMutex
	name  string
	email string
}

func NewCustomerIntake() *CustomerIntake {
	return &CustomerIntake{}
}

func (c *CustomerIntake) SetName(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.name = v
}

func (c *CustomerIntake) SetEmail(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.email = v
}

// Snapshot returns both fields as of this call.
func (c *CustomerIntake) Snapshot() CustomerInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CustomerInfo{Name: c.name, Email: c.email}
}
