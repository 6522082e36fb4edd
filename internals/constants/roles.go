package constants

import "fmt"

const (
	RoleUser  = "user"
	RoleGuide = "guide"
	RoleAdmin = "admin"
	RoleOwner = "owner"
)

// Role error message templates
const (
	ErrOnlyGuidesCanAccess = "Only guide, admin, or owner may access %s."
	ErrOnlyAdminsCanAccess = "Only admin or owner may access %s."
	ErrOnlyOwnersCanAccess = "Only owner may access %s."
)

func RoleErrorGuide(feature string) string {
	return fmt.Sprintf(ErrOnlyGuidesCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorOwner(feature string) string {
	return fmt.Sprintf(ErrOnlyOwnersCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleUser,
		RoleGuide,
		RoleAdmin,
		RoleOwner,
	}

	GuideAndAbove = []string{
		RoleGuide,
		RoleAdmin,
		RoleOwner,
	}

	AdminAndAbove = []string{
		RoleAdmin,
		RoleOwner,
	}

	OwnerOnly = []string{
		RoleOwner,
	}
)
