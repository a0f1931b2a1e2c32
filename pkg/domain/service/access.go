package service

import (
	"strings"

	"storefront/pkg/domain/model"
)

const (
	FallbackPath     = "/"
	AdminPathPrefix  = "/admin"
	AdminLandingPath = "/admin/dashboard"
)

// Decision is the outcome of the access gate: either render the requested
// content or redirect elsewhere.
type Decision struct {
	Render     bool   `json:"render"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

// Decide gates a navigation. It is a pure function of the current role, the
// route's allowed roles and the requested path, and is evaluated on every
// navigation since the path changes independent of session state.
func Decide(role model.Role, allowedRoles []model.Role, path string) Decision {
	allowed := false
	for _, candidate := range allowedRoles {
		if candidate == role {
			allowed = true
			break
		}
	}
	if !allowed {
		return Decision{RedirectTo: FallbackPath}
	}

	// Admins live under the admin prefix; a storefront path bounces them to
	// their landing page.
	if role == model.RoleAdmin && !strings.HasPrefix(path, AdminPathPrefix) {
		return Decision{RedirectTo: AdminLandingPath}
	}

	return Decision{Render: true}
}

// LandingPath is the post-login routing decision. It is re-derivable from
// (role, requested path) alone so both the login form and a passive
// page-load redirect produce the same answer.
func LandingPath(role model.Role, requested string) string {
	if role == model.RoleAdmin {
		return AdminLandingPath
	}
	if requested == "" {
		return FallbackPath
	}
	return requested
}
