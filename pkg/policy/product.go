package policy

import (
	"fmt"

	"product-api/pkg/model"
)

// ResourceProduct is the registry key for products
const ResourceProduct = "product"

// ProductPolicy lets any authenticated user list, view and create products
// and restricts update and delete to the owner.
type ProductPolicy struct{}

func (ProductPolicy) Authorize(actor *model.User, action Action, resource any) Decision {
	switch action {
	case ActionViewAny, ActionView, ActionCreate:
		return Allow()
	case ActionUpdate, ActionDelete:
		product, ok := resource.(*model.Product)
		if !ok || product == nil {
			return Deny(fmt.Sprintf("%s requires a product", action))
		}
		if product.UserID != actor.ID {
			return Deny(fmt.Sprintf("user %s does not own product %s", actor.ID, product.ID))
		}
		return Allow()
	default:
		return Deny(fmt.Sprintf("action %q is not permitted on products", action))
	}
}

// NewDefaultRegistry returns a registry with every resource policy of the API
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(ResourceProduct, ProductPolicy{})
	return r
}
