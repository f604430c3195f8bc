package domain

type Role string

const (
	// User can browse listings and manage their own profile.
	RoleUser Role = "user"
	// Publisher can create one bootcamp and its courses.
	RolePublisher Role = "publisher"
	// Admin can manage any listing and publish without limits.
	RoleAdmin Role = "admin"
)

func IsValidRole(r string) bool {
	return r == string(RoleUser) || r == string(RolePublisher) || r == string(RoleAdmin)
}

// IsSelfAssignable reports whether a role may be chosen at registration.
func IsSelfAssignable(r string) bool {
	return r == string(RoleUser) || r == string(RolePublisher)
}

// IsElevated reports whether the role bypasses ownership checks.
func IsElevated(r string) bool {
	return r == string(RoleAdmin)
}
