// Copyright (c) 2026 Alexander G.
// Author: Alexander G. (Samsonix)
// License: MIT
// Project: BTS & MSISDN Admin Server

package models

import (
	"time"

	"gorm.io/gorm"
)

// ═══════════════════════════════════════════════════════════
// AUDIT CONSTANTS
// ═══════════════════════════════════════════════════════════

// EntityType - kind of record an audit entry refers to
type EntityType string

const (
	EntityAPIKey   EntityType = "api_key"
	EntityTower    EntityType = "bts_tower"
	EntityMSISDN   EntityType = "msisdn"
	EntityRegion   EntityType = "region"
	EntitySession  EntityType = "session"
	EntitySystem   EntityType = "system"
	EntityOperator EntityType = "operator"
)

// AuditAction - what happened
type AuditAction string

const (
	ActionCreate      AuditAction = "CREATE"
	ActionUpdate      AuditAction = "UPDATE"
	ActionDelete      AuditAction = "DELETE"
	ActionRevoke      AuditAction = "REVOKE"
	ActionLookup      AuditAction = "LOOKUP"
	ActionLogin       AuditAction = "LOGIN"
	ActionLogout      AuditAction = "LOGOUT"
	ActionLoginFailed AuditAction = "LOGIN_FAILED"
	ActionSeed        AuditAction = "SEED"
)

// AuditSource - how the action reached us
type AuditSource string

const (
	SourceWeb    AuditSource = "WEB"    // session holder
	SourceAPI    AuditSource = "API"    // x-api-key caller
	SourceSystem AuditSource = "SYSTEM" // startup, seeding
)

// AuditStatus - outcome of the action
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "SUCCESS"
	AuditStatusFailed  AuditStatus = "FAILED"
)

// ═══════════════════════════════════════════════════════════
// AUDIT LOG MODEL
// ═══════════════════════════════════════════════════════════

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	// ─── WHO ───────────────────────────────────────────────
	OperatorID *uint  `gorm:"index" json:"operatorId"`
	APIKeyID   *uint  `gorm:"index" json:"apiKeyId,omitempty"`
	Username   string `gorm:"index;size:100" json:"username"`
	IPAddress  string `gorm:"size:45" json:"ipAddress"`
	UserAgent  string `gorm:"size:500" json:"userAgent"`

	// ─── WHAT ──────────────────────────────────────────────
	EntityType EntityType  `gorm:"index;size:30" json:"entityType"`
	EntityID   string      `gorm:"index;size:50" json:"entityId"`
	Action     AuditAction `gorm:"index;size:30" json:"action"`

	// ─── CHANGE ────────────────────────────────────────────
	Field    string `gorm:"size:50" json:"field,omitempty"`
	OldValue string `gorm:"type:text" json:"oldValue,omitempty"`
	NewValue string `gorm:"type:text" json:"newValue,omitempty"`

	// ─── CONTEXT ───────────────────────────────────────────
	Source      AuditSource `gorm:"index;size:20" json:"source"`
	RequestID   string      `gorm:"size:64" json:"requestId,omitempty"`
	RequestPath string      `gorm:"size:200" json:"requestPath,omitempty"`

	// ─── RESULT ────────────────────────────────────────────
	Status       AuditStatus `gorm:"index;size:20" json:"status"`
	ErrorMessage string      `gorm:"type:text" json:"errorMessage,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	return nil
}
