// Copyright (c) 2026 Alexander G.
// Author: Alexander G. (Samsonix)
// License: MIT
// Project: BTS & MSISDN Admin Server

package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/RaX911/API-Key-Project/internal/models"
	"github.com/RaX911/API-Key-Project/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// Keys under which the auth middleware stores the caller in fiber locals.
const (
	LocalOperatorID = "operator_id"
	LocalUsername   = "username"
	LocalSessionID  = "session_id"
	LocalAPIKeyID   = "api_key_id"
)

// saveTimeout bounds a detached audit write.
const saveTimeout = 5 * time.Second

// ═══════════════════════════════════════════════════════════
// AUDIT SERVICE
// ═══════════════════════════════════════════════════════════

// AuditService records who did what through the REST surface.
type AuditService struct {
	store   storage.AuditStorage
	pending sync.WaitGroup
}

func NewAuditService(store storage.AuditStorage) *AuditService {
	return &AuditService{store: store}
}

// Wait blocks until every SaveAsync issued so far has finished.
func (s *AuditService) Wait() {
	s.pending.Wait()
}

// ─── CALLER CONTEXT ────────────────────────────────────────

// Caller - who issued the current request
type Caller struct {
	OperatorID *uint
	APIKeyID   *uint
	Username   string
	IPAddress  string
	UserAgent  string
}

// CallerFrom reads the caller placed in locals by the auth middleware.
// The returned strings are copies and outlive the request.
func CallerFrom(c *fiber.Ctx) Caller {
	caller := Caller{
		IPAddress: utils.CopyString(c.IP()),
		UserAgent: utils.CopyString(c.Get(fiber.HeaderUserAgent)),
	}
	if id, ok := c.Locals(LocalOperatorID).(uint); ok {
		caller.OperatorID = &id
	}
	if id, ok := c.Locals(LocalAPIKeyID).(uint); ok {
		caller.APIKeyID = &id
	}
	if username, ok := c.Locals(LocalUsername).(string); ok {
		caller.Username = utils.CopyString(username)
	}
	return caller
}

// ─── LOG BUILDER ───────────────────────────────────────────

// LogBuilder assembles one audit entry.
type LogBuilder struct {
	svc *AuditService
	log *models.AuditLog
}

// NewLog starts an entry carrying the caller and request details of c.
// Callers authenticated by API key are recorded with source API.
func (s *AuditService) NewLog(c *fiber.Ctx) *LogBuilder {
	caller := CallerFrom(c)

	source := models.SourceWeb
	if caller.APIKeyID != nil && caller.OperatorID == nil {
		source = models.SourceAPI
	}
	return &LogBuilder{
		svc: s,
		log: &models.AuditLog{
			OperatorID:  caller.OperatorID,
			APIKeyID:    caller.APIKeyID,
			Username:    caller.Username,
			IPAddress:   caller.IPAddress,
			UserAgent:   caller.UserAgent,
			RequestID:   utils.CopyString(c.GetRespHeader(fiber.HeaderXRequestID)),
			RequestPath: utils.CopyString(c.Path()),
			Source:      source,
			Status:      models.AuditStatusSuccess,
			CreatedAt:   time.Now(),
		},
	}
}

// NewSystemLog starts an entry for work not tied to a request.
func (s *AuditService) NewSystemLog() *LogBuilder {
	return &LogBuilder{
		svc: s,
		log: &models.AuditLog{
			Username:  "system",
			Source:    models.SourceSystem,
			Status:    models.AuditStatusSuccess,
			CreatedAt: time.Now(),
		},
	}
}

func (b *LogBuilder) Entity(entityType models.EntityType, entityID string) *LogBuilder {
	b.log.EntityType = entityType
	b.log.EntityID = entityID
	return b
}

func (b *LogBuilder) Action(action models.AuditAction) *LogBuilder {
	b.log.Action = action
	return b
}

func (b *LogBuilder) Change(field, oldValue, newValue string) *LogBuilder {
	b.log.Field = field
	b.log.OldValue = oldValue
	b.log.NewValue = newValue
	return b
}

// Failed marks the entry as failed with err as the reason.
func (b *LogBuilder) Failed(err error) *LogBuilder {
	b.log.Status = models.AuditStatusFailed
	if err != nil {
		b.log.ErrorMessage = err.Error()
	}
	return b
}

// Entry exposes the entry being built.
func (b *LogBuilder) Entry() *models.AuditLog {
	return b.log
}

// Save writes the entry synchronously.
func (b *LogBuilder) Save(ctx context.Context) error {
	return b.svc.store.CreateAuditLog(ctx, b.log)
}

// SaveAsync writes the entry in the background (fire-and-forget). The
// request context is not used since it ends with the response, and the
// entry is detached from fiber's request buffers before the goroutine starts.
func (b *LogBuilder) SaveAsync() {
	b.detach()
	b.svc.pending.Add(1)
	go func() {
		defer b.svc.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := b.Save(ctx); err != nil {
			log.Printf("[Audit] Failed to save log: %v", err)
		}
	}()
}

// detach copies every string of the entry. Values read from a fiber.Ctx
// point into buffers that are reused once the handler returns.
func (b *LogBuilder) detach() {
	l := b.log
	l.Username = utils.CopyString(l.Username)
	l.IPAddress = utils.CopyString(l.IPAddress)
	l.UserAgent = utils.CopyString(l.UserAgent)
	l.EntityID = utils.CopyString(l.EntityID)
	l.Field = utils.CopyString(l.Field)
	l.OldValue = utils.CopyString(l.OldValue)
	l.NewValue = utils.CopyString(l.NewValue)
	l.RequestID = utils.CopyString(l.RequestID)
	l.RequestPath = utils.CopyString(l.RequestPath)
	l.ErrorMessage = utils.CopyString(l.ErrorMessage)
}

// ─── SHORTCUTS ─────────────────────────────────────────────

func (s *AuditService) LogKeyCreate(c *fiber.Ctx, key *models.APIKey) {
	s.NewLog(c).
		Entity(models.EntityAPIKey, fmt.Sprintf("%d", key.ID)).
		Action(models.ActionCreate).
		Change("owner", "", key.Owner).
		SaveAsync()
}

func (s *AuditService) LogKeyRevoke(c *fiber.Ctx, key *models.APIKey) {
	s.NewLog(c).
		Entity(models.EntityAPIKey, fmt.Sprintf("%d", key.ID)).
		Action(models.ActionRevoke).
		Change("status", string(models.KeyStatusActive), string(key.Status)).
		SaveAsync()
}

func (s *AuditService) LogTowerCreate(c *fiber.Ctx, tower *models.BtsTower) {
	s.NewLog(c).
		Entity(models.EntityTower, fmt.Sprintf("%d", tower.ID)).
		Action(models.ActionCreate).
		Change("cellId", "", tower.CellID).
		SaveAsync()
}

// LogTowerUpdate records the operator change, or else the network type change.
func (s *AuditService) LogTowerUpdate(c *fiber.Ctx, before, after *models.BtsTower) {
	b := s.NewLog(c).
		Entity(models.EntityTower, fmt.Sprintf("%d", after.ID)).
		Action(models.ActionUpdate)
	switch {
	case before.Operator != after.Operator:
		b.Change("operator", before.Operator, after.Operator)
	case before.NetworkType != after.NetworkType:
		b.Change("networkType", string(before.NetworkType), string(after.NetworkType))
	}
	b.SaveAsync()
}

func (s *AuditService) LogTowerDelete(c *fiber.Ctx, id uint) {
	s.NewLog(c).
		Entity(models.EntityTower, fmt.Sprintf("%d", id)).
		Action(models.ActionDelete).
		SaveAsync()
}

func (s *AuditService) LogMSISDNCreate(c *fiber.Ctx, record *models.MsisdnRecord) {
	s.NewLog(c).
		Entity(models.EntityMSISDN, record.Msisdn).
		Action(models.ActionCreate).
		SaveAsync()
}

// LogLookup records an MSISDN lookup. Misses are recorded as failed.
func (s *AuditService) LogLookup(c *fiber.Ctx, msisdn string, err error) {
	b := s.NewLog(c).
		Entity(models.EntityMSISDN, msisdn).
		Action(models.ActionLookup)
	if err != nil {
		b.Failed(err)
	}
	b.SaveAsync()
}

func (s *AuditService) LogRegionCreate(c *fiber.Ctx, kind string, id uint, name string) {
	s.NewLog(c).
		Entity(models.EntityRegion, fmt.Sprintf("%s:%d", kind, id)).
		Action(models.ActionCreate).
		Change("name", "", name).
		SaveAsync()
}

// LogLogin records a sign-in attempt. The session locals are not set yet,
// so the operator is passed in.
func (s *AuditService) LogLogin(c *fiber.Ctx, operatorID *uint, username string, failure string) {
	b := s.NewLog(c).
		Entity(models.EntitySession, username).
		Action(models.ActionLogin)
	b.log.OperatorID = operatorID
	b.log.Username = username
	if failure != "" {
		b.Action(models.ActionLoginFailed).Failed(errors.New(failure))
	}
	b.SaveAsync()
}

func (s *AuditService) LogLogout(c *fiber.Ctx) {
	caller := CallerFrom(c)
	s.NewLog(c).
		Entity(models.EntitySession, caller.Username).
		Action(models.ActionLogout).
		SaveAsync()
}

func (s *AuditService) LogPasswordChange(c *fiber.Ctx, operatorID uint) {
	s.NewLog(c).
		Entity(models.EntityOperator, fmt.Sprintf("%d", operatorID)).
		Action(models.ActionUpdate).
		Change("password", "", "********").
		SaveAsync()
}
