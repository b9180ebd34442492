package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bhargav3929/myacademydask-sub000/internal/api/metrics"
	"github.com/bhargav3929/myacademydask-sub000/internal/core/domain"
	"github.com/bhargav3929/myacademydask-sub000/internal/core/ports"
)

// RoleReconciler keeps the claims attached to a user's credentials equal to
// the authorization fields of their profile.
type RoleReconciler struct {
	claims   ports.ClaimsStore
	profiles ports.ProfileRepository
	log      zerolog.Logger
}

func NewRoleReconciler(claims ports.ClaimsStore, profiles ports.ProfileRepository, log zerolog.Logger) *RoleReconciler {
	return &RoleReconciler{claims: claims, profiles: profiles, log: log}
}

// Reconcile compares the current claims of uid with the claims its profile
// should produce and replaces them when they differ.
//
// A missing profile returns domain.ErrProfileNotFound and leaves the claims
// untouched, so an account whose profile write has not landed yet keeps its
// access. A profile without a role produces empty claims and therefore clears
// any existing ones.
func (r *RoleReconciler) Reconcile(ctx context.Context, uid string) (ports.ReconcileResult, error) {
	current, err := r.claims.Get(ctx, uid)
	if err != nil {
		metrics.ReconciliationsTotal.WithLabelValues("error").Inc()
		return ports.ReconcileResult{}, fmt.Errorf("reconcile: read claims: %w", err)
	}

	profile, err := r.profiles.Get(ctx, uid)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			metrics.ReconciliationsTotal.WithLabelValues("not_found").Inc()
			r.log.Warn().Str("uid", uid).Msg("reconcile skipped: no profile, claims kept")
			return ports.ReconcileResult{Role: current.Role, OrganizationID: current.OrganizationID}, err
		}
		metrics.ReconciliationsTotal.WithLabelValues("error").Inc()
		return ports.ReconcileResult{}, fmt.Errorf("reconcile: read profile: %w", err)
	}

	desired := domain.ClaimsFor(profile)
	if desired.Equal(current) {
		metrics.ReconciliationsTotal.WithLabelValues("unchanged").Inc()
		return ports.ReconcileResult{Role: current.Role, OrganizationID: current.OrganizationID}, nil
	}

	if err := r.claims.Set(ctx, uid, desired); err != nil {
		metrics.ReconciliationsTotal.WithLabelValues("error").Inc()
		return ports.ReconcileResult{}, fmt.Errorf("reconcile: write claims: %w", err)
	}

	metrics.ReconciliationsTotal.WithLabelValues("changed").Inc()
	r.log.Info().
		Str("uid", uid).
		Str("from_role", string(current.Role)).
		Str("to_role", string(desired.Role)).
		Msg("claims reconciled")

	return ports.ReconcileResult{Role: desired.Role, OrganizationID: desired.OrganizationID, Changed: true}, nil
}
