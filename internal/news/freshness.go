package news

import (
	"encoding/hex"

	sha256 "github.com/minio/sha256-simd"

	"github.com/farfania/oblivion-launcher/internal/model"
)

// ContentHash returns the hex digest identifying an article's content
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// IsNew decides whether the newest article should raise the news alert.
//
// An empty cache, or a cached date older than the article, means new. When
// the cached date is not older, a different hash means new, and an equal
// hash stays new until the alert was dismissed.
func IsNew(cache model.NewsCache, newest *model.Article, hash string) bool {
	if cache.IsEmpty() {
		return true
	}
	if cache.DateTime().Before(newest.Date) {
		return true
	}
	if *cache.Content != hash {
		return true
	}
	return !cache.Dismissed
}
