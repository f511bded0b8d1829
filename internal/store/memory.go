// Package store provides storage backends for AuraCore.
//
// This file implements an in-memory store used by tests and ephemeral sessions.
package store

import (
	"sync"
	"time"

	"github.com/aurra-labs/AuraCore/internal/models"
)

// InMemoryStore is a thread-safe in-memory Store implementation.
type InMemoryStore struct {
	mu           sync.RWMutex
	engagements  map[string]models.UserEngagement
	interactions []models.InteractionRecord
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		engagements: make(map[string]models.UserEngagement),
	}
}

// GetEngagement fetches one engagement row, or (nil, nil) when absent.
func (s *InMemoryStore) GetEngagement(userID string) (*models.UserEngagement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.engagements[userID]
	if !ok {
		return nil, nil
	}
	// Copy so callers cannot mutate stored state through the pointer.
	out := e
	if e.UpgradePromptedAt != nil {
		t := *e.UpgradePromptedAt
		out.UpgradePromptedAt = &t
	}
	return &out, nil
}

// CreateEngagement inserts a new engagement row.
func (s *InMemoryStore) CreateEngagement(e models.UserEngagement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engagements[e.UserID] = e
	return nil
}

// UpdateEngagement applies a partial update to an engagement row.
func (s *InMemoryStore) UpdateEngagement(userID string, u models.EngagementUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.engagements[userID]
	if !ok {
		return nil
	}
	if u.LastInteractionAt != nil {
		e.LastInteractionAt = *u.LastInteractionAt
	}
	if u.TotalMessages != nil {
		e.TotalMessages = *u.TotalMessages
	}
	if u.TotalDaysActive != nil {
		e.TotalDaysActive = *u.TotalDaysActive
	}
	if u.MoodShares != nil {
		e.MoodShares = *u.MoodShares
	}
	if u.SkillSessions != nil {
		e.SkillSessions = *u.SkillSessions
	}
	if u.RoutinesCreated != nil {
		e.RoutinesCreated = *u.RoutinesCreated
	}
	if u.EmotionalConversations != nil {
		e.EmotionalConversations = *u.EmotionalConversations
	}
	if u.RelationshipPhase != nil {
		e.RelationshipPhase = *u.RelationshipPhase
	}
	if u.SubscriptionTier != nil {
		e.SubscriptionTier = *u.SubscriptionTier
	}
	if u.UpgradePromptedAt != nil {
		t := *u.UpgradePromptedAt
		e.UpgradePromptedAt = &t
	}
	e.UpdatedAt = time.Now()
	s.engagements[userID] = e
	return nil
}

// ListEngagements returns all engagement rows.
func (s *InMemoryStore) ListEngagements() ([]models.UserEngagement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.UserEngagement, 0, len(s.engagements))
	for _, e := range s.engagements {
		out = append(out, e)
	}
	return out, nil
}

// AddInteraction appends one interaction audit row.
func (s *InMemoryStore) AddInteraction(rec models.InteractionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interactions = append(s.interactions, rec)
	return nil
}

// GetInteractions returns the interaction audit trail for a user, oldest first.
func (s *InMemoryStore) GetInteractions(userID string) ([]models.InteractionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.InteractionRecord
	for _, rec := range s.interactions {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}
