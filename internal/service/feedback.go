package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/tastypick/recipe-recommender/internal/domain"
)

// RecordInteraction validates and upserts a direct user interaction. Rating
// writes invalidate the popularity cache so phase-2 scores pick them up.
func (s *Service) RecordInteraction(ctx context.Context, in domain.Interaction) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if err := s.interactions.Record(ctx, in); err != nil {
		return fmt.Errorf("record interaction: %w", err)
	}
	s.invalidateOnRating(ctx, in.Kind)
	return nil
}

// MarkInteracted is the feedback path for an issued recommendation: it flips
// the record's interacted flag and forwards the reaction to the interaction
// store, closing the loop into future similarity and popularity signals.
// Returns domain.ErrRecommendationNotFound when the id is unknown or belongs
// to another user.
func (s *Service) MarkInteracted(ctx context.Context, userID int64, recID uuid.UUID,
	kind domain.InteractionKind, rating int) error {
	rec, err := s.recs.GetForUser(ctx, recID, userID)
	if err != nil {
		return err
	}

	in := domain.Interaction{
		UserID: userID,
		ItemID: rec.ItemID,
		Kind:   kind,
		Rating: rating,
	}
	if err := in.Validate(); err != nil {
		return err
	}

	if err := s.recs.SetInteracted(ctx, recID, userID); err != nil {
		return fmt.Errorf("mark recommendation %s: %w", recID, err)
	}
	if err := s.interactions.Record(ctx, in); err != nil {
		return fmt.Errorf("forward interaction: %w", err)
	}
	s.invalidateOnRating(ctx, kind)
	return nil
}

func (s *Service) invalidateOnRating(ctx context.Context, kind domain.InteractionKind) {
	if kind != domain.InteractionRate || s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePopularity(ctx); err != nil {
		log.Printf("[service] popularity cache invalidation error: %v", err)
	}
}

// ListInteractions returns a user's interaction history, optionally narrowed
// by kind and minimum rating.
func (s *Service) ListInteractions(ctx context.Context, userID int64, q domain.InteractionQuery) ([]domain.Interaction, error) {
	return s.interactions.Query(ctx, userID, q)
}

// RecommendationHistory lists a user's issued recommendations, newest first.
func (s *Service) RecommendationHistory(ctx context.Context, userID int64, limit int) ([]domain.RecommendationRecord, error) {
	if limit <= 0 {
		limit = defaultMaxResults
	}
	return s.recs.ListByUser(ctx, userID, limit)
}
