// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Any signed-in staff member
	SecurityAdmin                       // Admin or super admin role required
)

// EndpointSecurityConfig maps "METHOD /route/template" (HTTP) and full gRPC
// method names to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Ops
	"GET /healthz":                 SecurityPublic,
	"/grpc.health.v1.Health/Check": SecurityPublic,
	"/grpc.health.v1.Health/Watch": SecurityPublic,
	"/grpc.health.v1.Health/List":  SecurityPublic,
	"GET /files/":                  SecurityPublic,

	"/grpc.reflection.v1.ServerReflection/ServerReflectionInfo":      SecurityAdmin,
	"/grpc.reflection.v1alpha.ServerReflection/ServerReflectionInfo": SecurityAdmin,

	// Public order form flow (guarded by the form access code instead)
	"GET /api/public/forms/{id}":         SecurityPublic,
	"POST /api/public/forms/{id}/quote":  SecurityPublic,
	"POST /api/public/forms/{id}/orders": SecurityPublic,

	// Dashboard
	"GET /api/counts": SecurityAccess,

	// Catalog
	"GET /api/categories":           SecurityAccess,
	"POST /api/categories":          SecurityAccess,
	"GET /api/categories/{id}":      SecurityAccess,
	"PUT /api/categories/{id}":      SecurityAccess,
	"DELETE /api/categories/{id}":   SecurityAccess,
	"GET /api/products":             SecurityAccess,
	"POST /api/products":            SecurityAccess,
	"GET /api/products/{id}":        SecurityAccess,
	"PUT /api/products/{id}":        SecurityAccess,
	"DELETE /api/products/{id}":     SecurityAccess,
	"POST /api/products/{id}/image": SecurityAccess,

	// Order forms
	"GET /api/forms":                   SecurityAccess,
	"POST /api/forms":                  SecurityAccess,
	"GET /api/forms/{id}":              SecurityAccess,
	"PUT /api/forms/{id}":              SecurityAccess,
	"DELETE /api/forms/{id}":           SecurityAccess,
	"POST /api/forms/{id}/duplicate":   SecurityAccess,
	"POST /api/forms/{id}/access-code": SecurityAccess,
	"POST /api/forms/{id}/quote":       SecurityAccess,

	// Orders
	"GET /api/orders":               SecurityAccess,
	"GET /api/orders/{id}":          SecurityAccess,
	"GET /api/orders/{id}/invoice":  SecurityAccess,
	"POST /api/orders/{id}/refunds": SecurityAdmin,
	"DELETE /api/orders/{id}":       SecurityAdmin,

	// Settings
	"GET /api/settings":       SecurityAccess,
	"PUT /api/settings":       SecurityAdmin,
	"POST /api/settings/logo": SecurityAdmin,

	// Users
	"GET /api/users":         SecurityAdmin,
	"POST /api/users":        SecurityAdmin,
	"GET /api/users/{id}":    SecurityAdmin,
	"PUT /api/users/{id}":    SecurityAdmin,
	"DELETE /api/users/{id}": SecurityAdmin,
	"GET /api/me":            SecurityAccess,
}

// GetSecurityLevel returns the security level for a given route or method
func GetSecurityLevel(key string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[key]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAdmin
}
