package api

import (
	"net/url"
	"strings"
)

// Endpoint paths consumed by the typed services. Paths with an {id}
// segment are built with the Join helper.
const (
	EndpointLogin          = "/api/auth/login"
	EndpointRefreshToken   = "/api/auth/refresh-token"
	EndpointLogout         = "/api/auth/logout"
	EndpointProfile        = "/api/auth/profile"
	EndpointChangePassword = "/api/auth/change-password"

	EndpointAdminUsers         = "/api/admin/users"
	EndpointAdminSites         = "/api/admin/sites"
	EndpointAdminVerifications = "/api/admin/verification-requests"
	EndpointManagerSites       = "/api/manager/sites"
	EndpointManagerLocalGuides = "/api/manager/local-guides"
	EndpointManagerShiftSubs   = "/api/manager/local-guides/shift-submissions"
)

// Join appends path segments to an endpoint.
func Join(endpoint string, segments ...string) string {
	var b strings.Builder
	b.WriteString(endpoint)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(s)
	}
	return b.String()
}

// WithQuery appends a non-empty query string to an endpoint path.
func WithQuery(endpoint string, v url.Values) string {
	if len(v) == 0 {
		return endpoint
	}
	return endpoint + "?" + v.Encode()
}

// isAuthEndpoint reports whether path is the login or refresh endpoint.
// A 401 from either must never trigger the refresh protocol, otherwise
// the gateway would recurse on its own recovery mechanism.
func isAuthEndpoint(path string) bool {
	return strings.Contains(path, "/auth/login") || strings.Contains(path, "/auth/refresh")
}
