// Copyright (c) 2026 Alexander G.
// Author: Alexander G. (Samsonix)
// License: MIT
// Project: BTS & MSISDN Admin Server

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// KeyStatus - API key state. Revoked is terminal.
type KeyStatus string

const (
	KeyStatusActive  KeyStatus = "active"
	KeyStatusRevoked KeyStatus = "revoked"
)

// DefaultUsageLimit is applied when a key is created without a limit.
const DefaultUsageLimit = 1000

// ═══════════════════════════════════════════════════════════
// PERMISSIONS
// ═══════════════════════════════════════════════════════════

// Permission is a single capability flag.
type Permission uint8

const (
	PermRead Permission = 1 << iota
	PermWrite
	PermAdmin
)

var permissionNames = []struct {
	perm Permission
	name string
}{
	{PermRead, "read"},
	{PermWrite, "write"},
	{PermAdmin, "admin"},
}

// PermissionSet is a bit set of Permission flags. It is stored as an
// integer column and serialised to JSON as a list of names.
type PermissionSet uint8

func NewPermissionSet(perms ...Permission) PermissionSet {
	var s PermissionSet
	for _, p := range perms {
		s |= PermissionSet(p)
	}
	return s
}

// ParsePermissions converts names like "read" into a set.
func ParsePermissions(names []string) (PermissionSet, error) {
	var s PermissionSet
	for _, name := range names {
		p, ok := permissionByName(name)
		if !ok {
			return 0, fmt.Errorf("unknown permission %q", name)
		}
		s |= PermissionSet(p)
	}
	return s, nil
}

func permissionByName(name string) (Permission, bool) {
	for _, pn := range permissionNames {
		if pn.name == name {
			return pn.perm, true
		}
	}
	return 0, false
}

func (s PermissionSet) Has(p Permission) bool {
	return s&PermissionSet(p) != 0
}

func (s PermissionSet) Names() []string {
	names := make([]string, 0, len(permissionNames))
	for _, pn := range permissionNames {
		if s.Has(pn.perm) {
			names = append(names, pn.name)
		}
	}
	return names
}

func (s PermissionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

func (s *PermissionSet) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	parsed, err := ParsePermissions(names)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s PermissionSet) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PermissionSet) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = 0
	case int64:
		*s = PermissionSet(v)
	case int32:
		*s = PermissionSet(v)
	case []byte:
		var n int64
		if _, err := fmt.Sscan(string(v), &n); err != nil {
			return fmt.Errorf("scan permission set: %w", err)
		}
		*s = PermissionSet(n)
	default:
		return fmt.Errorf("scan permission set: unsupported type %T", value)
	}
	return nil
}

// ═══════════════════════════════════════════════════════════
// API KEY MODEL
// ═══════════════════════════════════════════════════════════

// APIKey grants header-based access to the lookup endpoint.
// UsageLimit is informational; it does not gate authorisation.
type APIKey struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Key         string        `gorm:"uniqueIndex;not null;size:128" json:"key"`
	Owner       string        `gorm:"not null" json:"owner"`
	CreatedAt   time.Time     `gorm:"index" json:"createdAt"`
	ExpiresAt   *time.Time    `json:"expiresAt"`
	Status      KeyStatus     `gorm:"index;size:16;not null;default:'active'" json:"status"`
	UsageLimit  int           `gorm:"not null;default:1000" json:"usageLimit"`
	UsageCount  int64         `gorm:"not null;default:0" json:"usageCount"`
	Permissions PermissionSet `gorm:"not null;default:1" json:"permissions"`
}

func (APIKey) TableName() string {
	return "api_keys"
}

// IsActive reports whether the key may authorise a request.
func (k *APIKey) IsActive() bool {
	return k.Status == KeyStatusActive
}
