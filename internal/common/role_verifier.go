package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/docthru/backend/internal/entity"
	"github.com/docthru/backend/internal/repository"
	"github.com/docthru/backend/pkg/enum"
	"github.com/docthru/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

type GlobalRoleVerifier struct {
	userRepo repository.UserRepository
}

func NewGlobalRoleVerifier(userRepo repository.UserRepository) *GlobalRoleVerifier {
	return &GlobalRoleVerifier{userRepo: userRepo}
}

// Verify succeeds if the requester holds one of requiredRoles. The role
// resolved from the access token is trusted; the user table is only consulted
// when the token did not carry one.
func (verifier *GlobalRoleVerifier) Verify(ctx context.Context, requiredRoles ...entity.GlobalRole) error {
	userID := xcontext.RequestUserID(ctx)
	if userID == 0 {
		return errors.New("user is anonymous")
	}

	role, err := enum.ToEnum[entity.GlobalRole](xcontext.RequestUserRole(ctx))
	if err != nil {
		u, err := verifier.userRepo.GetByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("user is not valid")
		}

		role = u.Role
	}

	if !slices.Contains(requiredRoles, role) {
		return errors.New("user role does not have permission")
	}

	return nil
}

// IsAuthorOrAdmin reports whether the requester may mutate a resource owned by
// authorID.
func (verifier *GlobalRoleVerifier) IsAuthorOrAdmin(ctx context.Context, authorID int64) bool {
	if userID := xcontext.RequestUserID(ctx); userID != 0 && userID == authorID {
		return true
	}

	return verifier.Verify(ctx, entity.GlobalAdminRoles...) == nil
}
