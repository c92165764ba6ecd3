package ai_test

import (
	"context"
	"sync"

	"github.com/disgoorg/snowflake/v2"
	"github.com/guildforge/ledgerbot/ledgerbot/database/models"
)

// memoryStore is an in-memory UsageStore.
type memoryStore struct {
	mu        sync.Mutex
	rows      []models.AIUsage
	countErr  error
	recordErr error
}

func (s *memoryStore) CountByUser(_ context.Context, userID snowflake.ID, date string) (int, error) {
	return s.count(func(u models.AIUsage) bool { return u.UserID == int64(userID) && u.DateOnly == date })
}

func (s *memoryStore) CountByGuild(_ context.Context, guildID snowflake.ID, date string) (int, error) {
	return s.count(func(u models.AIUsage) bool { return u.GuildID == int64(guildID) && u.DateOnly == date })
}

func (s *memoryStore) count(match func(models.AIUsage) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.countErr != nil {
		return 0, s.countErr
	}
	n := 0
	for _, u := range s.rows {
		if match(u) {
			n++
		}
	}
	return n, nil
}

func (s *memoryStore) Record(_ context.Context, usage *models.AIUsage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recordErr != nil {
		return s.recordErr
	}
	s.rows = append(s.rows, *usage)
	return nil
}

func (s *memoryStore) add(guildID, userID snowflake.ID, date string, n int) {
	for i := 0; i < n; i++ {
		s.rows = append(s.rows, models.AIUsage{GuildID: int64(guildID), UserID: int64(userID), DateOnly: date})
	}
}
