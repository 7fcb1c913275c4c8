package contract

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PayloadSchemaVersion is written into every new payload so future readers
// can migrate older document shapes.
const PayloadSchemaVersion = 1

// Payload is the versioned document body: parties, clauses, payment terms
// and whatever else the editor produces. The server treats Data as opaque.
type Payload struct {
	SchemaVersion int             `json:"schema_version"`
	Data          json.RawMessage `json:"data"`
}

// Contract is the root aggregate: a document owned by a user, moving through
// the signature lifecycle with a single counterparty.
type Contract interface {
	ID() uuid.UUID
	OwnerID() uuid.UUID
	Title() string
	Status() Status
	ClientName() string
	ClientEmail() string
	ClientPhone() string
	Payload() Payload
	SecretKey() string
	SignedAt() *time.Time
	CreatedAt() time.Time
	UpdatedAt() time.Time

	SetTitle(title string) Contract
	SetClient(name, email, phone string) Contract
	SetPayload(payload Payload) Contract
	SetStatus(status Status) Contract
	SetSecretKey(key string) Contract
	SetSignedAt(at time.Time) Contract
}

func New(ownerID uuid.UUID, title string, opts ...Option) Contract {
	now := time.Now()
	c := &contract{
		id:        uuid.New(),
		ownerID:   ownerID,
		title:     title,
		status:    StatusDraft,
		payload:   Payload{SchemaVersion: PayloadSchemaVersion, Data: json.RawMessage("{}")},
		createdAt: now,
		updatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type Option func(*contract)

func WithID(id uuid.UUID) Option {
	return func(c *contract) {
		if id != uuid.Nil {
			c.id = id
		}
	}
}

func WithStatus(status Status) Option {
	return func(c *contract) {
		if status.IsValid() {
			c.status = status
		}
	}
}

func WithClient(name, email, phone string) Option {
	return func(c *contract) {
		c.clientName = name
		c.clientEmail = email
		c.clientPhone = phone
	}
}

func WithPayload(payload Payload) Option {
	return func(c *contract) {
		if payload.SchemaVersion > 0 {
			c.payload = payload
		}
	}
}

func WithSecretKey(key string) Option {
	return func(c *contract) {
		c.secretKey = key
	}
}

func WithSignedAt(at *time.Time) Option {
	return func(c *contract) {
		c.signedAt = at
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(c *contract) {
		if !createdAt.IsZero() {
			c.createdAt = createdAt
		}
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(c *contract) {
		if !updatedAt.IsZero() {
			c.updatedAt = updatedAt
		}
	}
}

type contract struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	title       string
	status      Status
	clientName  string
	clientEmail string
	clientPhone string
	payload     Payload
	secretKey   string
	signedAt    *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

func (c *contract) ID() uuid.UUID        { return c.id }
func (c *contract) OwnerID() uuid.UUID   { return c.ownerID }
func (c *contract) Title() string        { return c.title }
func (c *contract) Status() Status       { return c.status }
func (c *contract) ClientName() string   { return c.clientName }
func (c *contract) ClientEmail() string  { return c.clientEmail }
func (c *contract) ClientPhone() string  { return c.clientPhone }
func (c *contract) Payload() Payload     { return c.payload }
func (c *contract) SecretKey() string    { return c.secretKey }
func (c *contract) SignedAt() *time.Time { return c.signedAt }
func (c *contract) CreatedAt() time.Time { return c.createdAt }
func (c *contract) UpdatedAt() time.Time { return c.updatedAt }

func (c *contract) SetTitle(title string) Contract {
	res := *c
	res.title = title
	res.updatedAt = time.Now()
	return &res
}

func (c *contract) SetClient(name, email, phone string) Contract {
	res := *c
	res.clientName = name
	res.clientEmail = email
	res.clientPhone = phone
	res.updatedAt = time.Now()
	return &res
}

func (c *contract) SetPayload(payload Payload) Contract {
	res := *c
	res.payload = payload
	res.updatedAt = time.Now()
	return &res
}

func (c *contract) SetStatus(status Status) Contract {
	res := *c
	res.status = status
	res.updatedAt = time.Now()
	return &res
}

func (c *contract) SetSecretKey(key string) Contract {
	res := *c
	res.secretKey = key
	res.updatedAt = time.Now()
	return &res
}

func (c *contract) SetSignedAt(at time.Time) Contract {
	res := *c
	res.signedAt = &at
	res.updatedAt = time.Now()
	return &res
}
