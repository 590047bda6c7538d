package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"
)

// Product field limits
const (
	ProductNameMaxLength        = 255
	ProductDescriptionMaxLength = 5000

	// price is stored as NUMERIC(12, 2)
	ProductPriceDecimals = 2
	ProductPriceMax      = 9999999999.99
)

// DateFormat is the DD/MM/YYYY layout used in product representations
const DateFormat = "02/01/2006"

// Product is a catalogue entry owned by exactly one user
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"` // owner, immutable after creation
	OwnerName   string    `json:"-" db:"-"`             // joined from users
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ProductResource is the public representation of a product
type ProductResource struct {
	ID          uuid.UUID `json:"id"`
	User        string    `json:"user"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

// ToResource converts a Product to its public representation
func (p *Product) ToResource() ProductResource {
	return ProductResource{
		ID:          p.ID,
		User:        p.OwnerName,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt.UTC().Format(DateFormat),
		UpdatedAt:   p.UpdatedAt.UTC().Format(DateFormat),
	}
}

// ToResources converts a list of products, never returning nil
func ToResources(products []Product) []ProductResource {
	resources := make([]ProductResource, 0, len(products))
	for i := range products {
		resources = append(resources, products[i].ToResource())
	}
	return resources
}

// ProductRequest is the create/update payload. Fields are decoded loosely so
// type mismatches surface as field errors; any owner field sent by the client is ignored.
type ProductRequest struct {
	Name        interface{} `json:"name"`
	Description interface{} `json:"description"`
	Price       interface{} `json:"price"`
}

// ProductFields holds the typed values of a validated ProductRequest.
// Nil means the field was not supplied.
type ProductFields struct {
	Name        *string
	Description *string
	Price       *float64
}

// ValidateCreate requires every field
func (r ProductRequest) ValidateCreate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, nameRules()...),
		validation.Field(&r.Description, descriptionRules()...),
		validation.Field(&r.Price, priceRules()...),
	)
}

// ValidateUpdate validates only the fields that were supplied
func (r ProductRequest) ValidateUpdate() error {
	var fields []*validation.FieldRules
	if r.Name != nil {
		fields = append(fields, validation.Field(&r.Name, nameRules()...))
	}
	if r.Description != nil {
		fields = append(fields, validation.Field(&r.Description, descriptionRules()...))
	}
	if r.Price != nil {
		fields = append(fields, validation.Field(&r.Price, priceRules()...))
	}
	return validation.ValidateStruct(&r, fields...)
}

// Fields returns the typed values of a validated request
func (r ProductRequest) Fields() ProductFields {
	var f ProductFields
	if s, ok := r.Name.(string); ok {
		f.Name = &s
	}
	if s, ok := r.Description.(string); ok {
		f.Description = &s
	}
	if r.Price != nil {
		if p, err := ToFloat(r.Price); err == nil {
			f.Price = &p
		}
	}
	return f
}

// Apply copies supplied fields onto the product
func (f ProductFields) Apply(p *Product) {
	if f.Name != nil {
		p.Name = *f.Name
	}
	if f.Description != nil {
		p.Description = *f.Description
	}
	if f.Price != nil {
		p.Price = *f.Price
	}
}

func nameRules() []validation.Rule {
	return []validation.Rule{Present("name"), IsString("name"), MaxChars("name", ProductNameMaxLength)}
}

func descriptionRules() []validation.Rule {
	return []validation.Rule{Present("description"), IsString("description"), MaxChars("description", ProductDescriptionMaxLength)}
}

func priceRules() []validation.Rule {
	return []validation.Rule{Present("price"), IsNumber("price"), GreaterThanZero("price"),
		MaxDecimals("price", ProductPriceDecimals), MaxNumber("price", ProductPriceMax)}
}
