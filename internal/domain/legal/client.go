// Package legal holds the law-office aggregates: clients, cases, procedural
// deadlines and documents. Every aggregate is owned by exactly one user.
package legal

import (
	"strings"

	"github.com/lawai/backend/internal/domain/shared"
)

// Client is a person or company represented by the office
type Client struct {
	shared.Timestamps
	shared.OwnedEntity
	ID       int64
	Name     string
	Email    string
	Phone    string
	Document string // CPF/CNPJ
	Address  string
	Notes    string
}

// NewClient creates a client owned by ownerID
func NewClient(ownerID, name string) (*Client, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, shared.NewValidationError("Owner is required")
	}
	c := &Client{
		Timestamps:  shared.NewTimestamps(),
		OwnedEntity: shared.OwnedEntity{UserID: ownerID},
	}
	if err := c.SetName(name); err != nil {
		return nil, err
	}
	return c, nil
}

// SetName sets the client name, which cannot be blank
func (c *Client) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewValidationError("Nome do cliente é obrigatório")
	}
	if len(name) > 255 {
		return shared.NewValidationError("Client name cannot exceed 255 characters")
	}
	c.Name = name
	c.Touch()
	return nil
}

// SetContact sets email, phone and address
func (c *Client) SetContact(email, phone, address string) {
	c.Email = strings.TrimSpace(email)
	c.Phone = strings.TrimSpace(phone)
	c.Address = strings.TrimSpace(address)
	c.Touch()
}

// ClientPatch lists the updatable client fields. Nil means "not supplied".
type ClientPatch struct {
	Name     *string
	Email    *string
	Phone    *string
	Document *string
	Address  *string
	Notes    *string
}

// Apply applies the supplied fields only
func (c *Client) Apply(p ClientPatch) error {
	if p.Name != nil {
		if err := c.SetName(*p.Name); err != nil {
			return err
		}
	}
	if p.Email != nil {
		c.Email = strings.TrimSpace(*p.Email)
	}
	if p.Phone != nil {
		c.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Document != nil {
		c.Document = strings.TrimSpace(*p.Document)
	}
	if p.Address != nil {
		c.Address = strings.TrimSpace(*p.Address)
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	c.Touch()
	return nil
}
