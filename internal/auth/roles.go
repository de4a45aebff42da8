// Package auth provides workspace roles and the permissions that gate what
// each role sees. Roles are a display filter applied server-side; there is no
// authentication behind them.
package auth

import (
	"fmt"
	"strings"
)

// Role represents a workspace viewer role.
type Role string

const (
	RoleDoctor Role = "Doctor"
	RoleNurse  Role = "Nurse"
	RoleAdmin  Role = "Admin"
)

// DefaultRole is used when a request names no role.
const DefaultRole = RoleDoctor

// Roles lists the selectable roles in display order.
var Roles = []Role{RoleDoctor, RoleNurse, RoleAdmin}

// Permission represents a specific view on workspace data.
type Permission string

const (
	PermInsightRead     Permission = "insight.read"
	PermInsightRaw      Permission = "insight.raw_outputs"
	PermInsightEvidence Permission = "insight.evidence"
	PermSummaryRead     Permission = "summary.read"
	PermDocumentRead    Permission = "document.read"
	PermAuditRead       Permission = "audit.read"
)

// RolePermissions maps roles to their permissions.
var RolePermissions = map[Role][]Permission{
	RoleDoctor: {
		PermInsightRead, PermInsightRaw, PermInsightEvidence,
		PermSummaryRead, PermDocumentRead,
	},
	RoleNurse: {
		PermInsightRead, PermSummaryRead, PermDocumentRead,
	},
	RoleAdmin: {
		PermInsightRead, PermInsightRaw, PermInsightEvidence,
		PermSummaryRead, PermDocumentRead, PermAuditRead,
	},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role Role, perm Permission) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == perm {
			return true
		}
	}
	return false
}

// CanViewRaw reports whether raw model outputs and evidence are visible.
func CanViewRaw(role Role) bool {
	return HasPermission(role, PermInsightRaw) && HasPermission(role, PermInsightEvidence)
}

// CanViewAudit reports whether the activity log is visible.
func CanViewAudit(role Role) bool {
	return HasPermission(role, PermAuditRead)
}

// ParseRole resolves a role name case-insensitively. Empty input yields
// DefaultRole.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultRole, nil
	}
	for _, r := range Roles {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}
