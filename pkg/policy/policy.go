// Package policy answers whether an actor may perform an action on a resource.
//
// Policies are plain values registered per resource type in a Registry;
// controllers and services ask the registry and never resolve policies by
// reflection.
package policy

import (
	"errors"
	"fmt"

	"product-api/pkg/model"
)

// Action names an operation on a resource
type Action string

const (
	ActionViewAny     Action = "view_any"
	ActionView        Action = "view"
	ActionCreate      Action = "create"
	ActionUpdate      Action = "update"
	ActionDelete      Action = "delete"
	ActionRestore     Action = "restore"
	ActionForceDelete Action = "force_delete"
)

// ErrForbidden is returned when a policy denies an action
var ErrForbidden = errors.New("this action is unauthorized")

// Decision is the outcome of an authorization check
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow grants an action
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny refuses an action with a reason meant for logs
func Deny(reason string) Decision {
	return Decision{Reason: reason}
}

// Err converts a denial into an error wrapping ErrForbidden
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrForbidden, d.Reason)
}

// Policy decides actions for one resource type. resource is nil for
// actions that do not target an existing instance (view_any, create).
type Policy interface {
	Authorize(actor *model.User, action Action, resource any) Decision
}

// Registry is the lookup table from resource type to Policy
type Registry struct {
	policies map[string]Policy
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{policies: make(map[string]Policy)}
}

// Register binds a policy to a resource type, replacing any previous one
func (r *Registry) Register(resourceType string, p Policy) {
	r.policies[resourceType] = p
}

// Authorize evaluates the policy registered for resourceType.
// Unknown resource types and anonymous actors are denied.
func (r *Registry) Authorize(actor *model.User, action Action, resourceType string, resource any) Decision {
	if actor == nil {
		return Deny("no authenticated actor")
	}
	p, ok := r.policies[resourceType]
	if !ok {
		return Deny(fmt.Sprintf("no policy registered for %q", resourceType))
	}
	return p.Authorize(actor, action, resource)
}
