package auth

import (
	"fmt"

	apperrors "github.com/Molmash/molmash/pkg/errors"

	"github.com/Molmash/molmash/internal/domain"
)

// Gate decides allow/deny for each incoming operation. It is a pure
// function over (identity, action, resource): no storage access, so it
// can be tested without a database.
type Gate struct{}

// NewGate creates a permission gate.
func NewGate() *Gate {
	return &Gate{}
}

// Check evaluates the decision rule for the targeted action on the
// resource type. A nil identity means the request is anonymous.
//
// Blog and project entries are public-read: list and retrieve pass in
// the anonymous state, writes require an authenticated identity whose
// permission snapshot holds the model-level codename. Subscription is
// write-only and open to anonymous creation.
func (g *Gate) Check(identity *domain.Identity, action domain.Action, resource domain.Resource) error {
	switch resource {
	case domain.ResourceBlog, domain.ResourceProject:
		if action == domain.ActionList || action == domain.ActionRetrieve {
			return nil
		}

		codename, err := domain.RequiredPermission(action, resource)
		if err != nil {
			return fmt.Errorf("permission lookup: %w", err)
		}

		if identity == nil {
			return apperrors.Unauthenticated("Учетные данные не были предоставлены.")
		}
		if !identity.HasPermission(codename) {
			return apperrors.PermissionDenied("У вас недостаточно прав для выполнения данного действия.")
		}
		return nil

	case domain.ResourceSubscription:
		if action == domain.ActionCreate {
			return nil
		}
		if identity == nil {
			return apperrors.Unauthenticated("Учетные данные не были предоставлены.")
		}
		return apperrors.PermissionDenied("У вас недостаточно прав для выполнения данного действия.")

	default:
		return fmt.Errorf("unknown resource %q", resource)
	}
}
