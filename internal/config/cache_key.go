package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// HighScoreKey returns the cache key for a player's stored high score.
// The player identity is first name plus normalized teacher key, which is
// as much identity as the game collects.
func (r *CacheKeyStruct) HighScoreKey(firstName, normalizedTeacher string) string {
	return fmt.Sprintf("highscore:%s:%s", firstName, normalizedTeacher)
}

// BriefingKey returns the cache key for a level's mission briefing text.
func (r *CacheKeyStruct) BriefingKey(level int) string {
	return fmt.Sprintf("briefing:level:%d", level)
}

var CacheKey = NewCacheKeyStruct()
