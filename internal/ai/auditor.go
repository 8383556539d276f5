package ai

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"wastex-backend/internal/listings"
)

const auditTimeout = 60 * time.Second

// Auditor runs the accuracy audit for a new listing and applies the verdict.
// It satisfies listings.Auditor; every failure is logged and swallowed so the
// creating request is never affected.
type Auditor struct {
	Assistant Assistant
	Listings  *listings.Service
}

func (a *Auditor) AuditListing(ctx context.Context, listingID uint, req listings.AuditRequest) {
	if a.Assistant == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, auditTimeout)
	defer cancel()

	verdict, err := a.Assistant.AuditListing(ctx, AuditInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Quality:     req.Quality,
		ImageData:   req.ImageData,
	})
	if err != nil {
		log.Error().Err(err).Uint("listing_id", listingID).Msg("AI audit failed")
		return
	}

	raw, _ := json.Marshal(verdict)
	if err := a.Listings.ApplyAuditResult(ctx, listingID, listings.AuditOutcome{
		IsVerified: verdict.IsVerified,
		Notes:      verdict.Notes,
		Confidence: verdict.Confidence,
		Raw:        raw,
	}); err != nil {
		log.Error().Err(err).Uint("listing_id", listingID).Msg("Failed to apply audit result")
	}
}
