// Copyright (c) 2026 Alexander G.
// Author: Alexander G. (Samsonix)
// License: MIT
// Project: BTS & MSISDN Admin Server

// Package storage is the query layer: the only reader and writer of the
// relational store.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/RaX911/API-Key-Project/internal/models"
)

// ErrNotFound is returned when the referenced id, token or msisdn does not exist.
var ErrNotFound = errors.New("record not found")

// ValidationError reports input the store refuses to persist.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Page is one slice of a filtered listing. Total counts every row matching
// the filter, not just the returned items.
type Page[T any] struct {
	Items []T
	Total int64
}

type TowerFilter struct {
	Search   string // case-insensitive substring of address
	Operator string // exact match
	Limit    int
	Offset   int
}

type MSISDNFilter struct {
	Search string // substring of msisdn
	Limit  int
	Offset int
}

type AuditFilter struct {
	EntityType string
	EntityID   string
	Action     string
	Limit      int
	Offset     int
}

// TowerPatch carries the fields of a partial tower update. Nil means
// "leave unchanged"; the Clear flags set the nullable columns back to NULL.
type TowerPatch struct {
	CellID         *string
	Lac            *string
	Mcc            *string
	Mnc            *string
	Lat            *float64
	Long           *float64
	Address        *string
	VillageID      *uint
	Operator       *string
	NetworkType    *models.NetworkType
	Height         *int
	CoverageRadius *int

	ClearAddress bool
	ClearVillage bool
}

// KeyStorage stores API keys and meters their usage.
type KeyStorage interface {
	// ListAPIKeys returns every key, newest first.
	ListAPIKeys(ctx context.Context) ([]models.APIKey, error)

	// CreateAPIKey inserts a key, filling status, usage and permission
	// defaults. A missing owner or key, or a duplicate key, is a ValidationError.
	CreateAPIKey(ctx context.Context, key *models.APIKey) error

	// RevokeAPIKey marks the key revoked and returns it. changed is false
	// when the key was already revoked.
	RevokeAPIKey(ctx context.Context, id uint) (key *models.APIKey, changed bool, err error)

	// GetAPIKeyByToken looks a key up by its token.
	GetAPIKeyByToken(ctx context.Context, token string) (*models.APIKey, error)

	// IncrementAPIKeyUsage adds one to the usage counter of an active key
	// in a single statement.
	IncrementAPIKeyUsage(ctx context.Context, id uint) error
}

// TowerStorage stores BTS towers.
type TowerStorage interface {
	ListTowers(ctx context.Context, filter TowerFilter) (Page[models.BtsTower], error)
	GetTower(ctx context.Context, id uint) (*models.BtsTower, error)
	CreateTower(ctx context.Context, tower *models.BtsTower) error

	// UpdateTower applies the non-nil fields of patch and refreshes updatedAt.
	UpdateTower(ctx context.Context, id uint, patch TowerPatch) (*models.BtsTower, error)

	// DeleteTower removes the tower. Deleting an unknown id is not an error.
	DeleteTower(ctx context.Context, id uint) error
}

// SubscriberStorage stores MSISDN records.
type SubscriberStorage interface {
	GetMSISDN(ctx context.Context, msisdn string) (*models.MsisdnRecord, error)

	// LookupMSISDNDetails joins the subscriber to its last tower and the
	// tower's village, district, regency and province. Every join is optional.
	LookupMSISDNDetails(ctx context.Context, msisdn string) (*models.MsisdnLookup, error)

	ListMSISDNs(ctx context.Context, filter MSISDNFilter) (Page[models.MsisdnRecord], error)
	CreateMSISDN(ctx context.Context, record *models.MsisdnRecord) error
}

// RegionStorage stores the island → village hierarchy.
type RegionStorage interface {
	ListIslands(ctx context.Context) ([]models.Island, error)
	CreateIsland(ctx context.Context, island *models.Island) error
	ListProvinces(ctx context.Context, islandID *uint) ([]models.Province, error)
	CreateProvince(ctx context.Context, province *models.Province) error
	CreateRegency(ctx context.Context, regency *models.Regency) error
	CreateDistrict(ctx context.Context, district *models.District) error
	ListVillages(ctx context.Context, districtID *uint) ([]models.Village, error)
	CreateVillage(ctx context.Context, village *models.Village) error
}

// OperatorStorage stores the people who can hold a session.
type OperatorStorage interface {
	GetOperator(ctx context.Context, id uint) (*models.Operator, error)
	GetOperatorByUsername(ctx context.Context, username string) (*models.Operator, error)
	CreateOperator(ctx context.Context, op *models.Operator) error
	CountOperators(ctx context.Context) (int64, error)

	// UpsertGoogleOperator finds the operator by Google id, then by email,
	// and creates one with passwordHash when neither matches.
	UpsertGoogleOperator(ctx context.Context, info models.GoogleUserInfo, passwordHash string) (*models.Operator, error)

	// SetOperatorPassword replaces the stored bcrypt hash.
	SetOperatorPassword(ctx context.Context, id uint, passwordHash string) error

	// TouchOperator records a sign-in.
	TouchOperator(ctx context.Context, id uint) error
}

// AuditStorage stores audit entries.
type AuditStorage interface {
	CreateAuditLog(ctx context.Context, entry *models.AuditLog) error
	ListAuditLogs(ctx context.Context, filter AuditFilter) (Page[models.AuditLog], error)
}

// Store is the full query layer handed to the HTTP handlers.
type Store interface {
	KeyStorage
	TowerStorage
	SubscriberStorage
	RegionStorage
	OperatorStorage
	AuditStorage

	// GetStats returns the dashboard counters.
	GetStats(ctx context.Context) (*models.DashboardStats, error)

	// Ping checks the database connection.
	Ping(ctx context.Context) error
}
