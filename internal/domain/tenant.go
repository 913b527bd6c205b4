package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tenant represents an isolated customer organization. Branding attributes are
// opaque to the core logic; only identity matters for scoping.
type Tenant struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Logo           string    `json:"logo,omitempty"`
	PrimaryColor   string    `json:"primary_color,omitempty"`
	SecondaryColor string    `json:"secondary_color,omitempty"`
	Address        string    `json:"address,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TenantRepository defines the interface for tenant persistence.
type TenantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	Store(ctx context.Context, t *Tenant) error
}
