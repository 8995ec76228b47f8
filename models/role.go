package models

import "strings"

type Role int

const (
	NO_ROLE Role = iota
	CUSTOMER
	VENDOR
	ADMIN
)

func (r Role) String() string {
	switch r {
	case CUSTOMER:
		return "customer"
	case VENDOR:
		return "vendor"
	case ADMIN:
		return "admin"
	default:
		return "unknown"
	}
}

func RoleFromString(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "customer":
		return CUSTOMER
	case "vendor":
		return VENDOR
	case "admin":
		return ADMIN
	}
	return NO_ROLE
}

// CanSell is true for the roles allowed to publish products
func (r Role) CanSell() bool {
	return r == VENDOR || r == ADMIN
}
