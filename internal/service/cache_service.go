package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// CacheService — процессный кэш с TTL для дорогих чтений:
// агрегатов аналитики и сборки публичного портфолио.
type CacheService struct {
	mu    sync.RWMutex
	cache map[string]*cacheEntry
}

type cacheEntry struct {
	data      interface{}
	expiresAt time.Time
}

// NewCacheService создаёт кэш и запускает фоновую очистку.
func NewCacheService() *CacheService {
	cs := &CacheService{
		cache: make(map[string]*cacheEntry),
	}

	go cs.cleanup()

	return cs
}

// Get возвращает значение из кэша.
func (cs *CacheService) Get(key string) (interface{}, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	entry, exists := cs.cache[key]
	if !exists {
		return nil, false
	}

	if time.Now().After(entry.expiresAt) {
		// Просроченные записи убирает фоновая очистка.
		return nil, false
	}

	return entry.data, true
}

// Set сохраняет значение с TTL.
func (cs *CacheService) Set(key string, value interface{}, ttl time.Duration) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.cache[key] = &cacheEntry{
		data:      value,
		expiresAt: time.Now().Add(ttl),
	}
}

// Delete удаляет ключ.
func (cs *CacheService) Delete(key string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	delete(cs.cache, key)
}

// InvalidateByPrefix удаляет все ключи с данным префиксом.
func (cs *CacheService) InvalidateByPrefix(prefix string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	for key := range cs.cache {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(cs.cache, key)
		}
	}
}

// InvalidatePortfolio сбрасывает кэш публичного портфолио пользователя.
// Вызывается при изменении проектов, профиля или настроек.
func (cs *CacheService) InvalidatePortfolio(username string) {
	cs.InvalidateByPrefix("portfolio:" + username)
}

// cleanup периодически убирает просроченные записи.
func (cs *CacheService) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cs.mu.Lock()
		now := time.Now()
		for key, entry := range cs.cache {
			if now.After(entry.expiresAt) {
				delete(cs.cache, key)
			}
		}
		cs.mu.Unlock()
	}
}

// AnalyticsSummaryCacheKey — ключ агрегатов дашборда пользователя.
func AnalyticsSummaryCacheKey(userID uuid.UUID) string {
	return "analytics:" + userID.String() + ":summary"
}

// PortfolioCacheKey — ключ собранного публичного портфолио.
func PortfolioCacheKey(username string) string {
	return "portfolio:" + username
}
