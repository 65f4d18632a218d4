// Package actor supplies the current principal and timestamp for audit
// fields, keeping services independent of where either comes from.
package actor

import (
	"time"

	"github.com/google/uuid"
)

// Provider supplies the acting principal and the current instant.
type Provider interface {
	Actor() uuid.UUID
	Now() time.Time
}

// SystemProvider is the stand-in used until a real authenticated-principal
// source is wired in: zero-UUID actor, wall-clock time.
type SystemProvider struct{}

func (SystemProvider) Actor() uuid.UUID {
	return uuid.Nil
}

func (SystemProvider) Now() time.Time {
	return time.Now()
}

// Fixed returns a provider pinned to one actor and one instant, mainly
// for deterministic audit fields in tests and the seeder.
func Fixed(id uuid.UUID, at time.Time) Provider {
	return fixedProvider{id: id, at: at}
}

type fixedProvider struct {
	id uuid.UUID
	at time.Time
}

func (p fixedProvider) Actor() uuid.UUID { return p.id }
func (p fixedProvider) Now() time.Time   { return p.at }
