package service

import (
	"strconv"
	"strings"

	"roastgram/internal/domain"
)

const maxLatestPosts = 5

// NormalizeProfile convierte el registro crudo del scraper en un Profile
// canónico. Los actores de Apify cambian los nombres de campo entre
// versiones, así que cada campo se resuelve probando alias en orden.
// Falla solo cuando no hay ningún dato usable (registro vacío y username
// pedido vacío).
func NormalizeProfile(raw domain.RawScrapeRecord, requestedUsername string) (domain.Profile, error) {
	username := stringField(raw, "username")
	if username == "" {
		username = strings.TrimSpace(requestedUsername)
	}
	if username == "" {
		return domain.Profile{}, ErrNotFound
	}

	posts := latestPosts(raw)

	profile := domain.Profile{
		Username:          username,
		FullName:          stringField(raw, "fullName", "name"),
		Biography:         stringField(raw, "biography", "bio"),
		FollowersCount:    intField(raw, "followersCount", "followers"),
		FollowingCount:    intField(raw, "followsCount", "following"),
		PostsCount:        intField(raw, "postsCount"),
		ProfilePictureURL: stringField(raw, "profilePicUrl", "profilePicUrlHD", "profileImageUrl"),
		LatestPosts:       posts,
		IsVerified:        boolField(raw, "isVerified"),
	}

	// Sin postsCount explícito, el largo de la lista de posts es la mejor
	// aproximación disponible.
	if profile.PostsCount == 0 {
		if items, ok := raw["posts"].([]any); ok {
			profile.PostsCount = len(items)
		}
	}

	return profile, nil
}

// latestPosts prefiere latestPosts sobre posts y recorta a maxLatestPosts
// conservando el orden original.
func latestPosts(raw domain.RawScrapeRecord) []domain.Post {
	items, ok := raw["latestPosts"].([]any)
	if !ok {
		items, ok = raw["posts"].([]any)
	}
	if !ok {
		return []domain.Post{}
	}

	posts := make([]domain.Post, 0, maxLatestPosts)
	for _, item := range items {
		if len(posts) == maxLatestPosts {
			break
		}
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		posts = append(posts, normalizePost(entry))
	}
	return posts
}

func normalizePost(entry map[string]any) domain.Post {
	caption := stringValue(entry["caption"])
	if caption == "" {
		caption = stringValue(entry["text"])
	}
	if caption == "" {
		caption = "No caption"
	}
	return domain.Post{CaptionText: caption}
}

// stringField devuelve el primer alias presente y no vacío, o "".
func stringField(raw domain.RawScrapeRecord, keys ...string) string {
	for _, key := range keys {
		if s := stringValue(raw[key]); s != "" {
			return s
		}
	}
	return ""
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// intField devuelve el primer alias con valor numérico no negativo, o 0.
func intField(raw domain.RawScrapeRecord, keys ...string) int {
	for _, key := range keys {
		if n, ok := intValue(raw[key]); ok {
			return n
		}
	}
	return 0
}

// intValue tolera los tipos numéricos que produce json.Unmarshal más
// strings numéricos; cualquier otra cosa, o un negativo, no cuenta.
func intValue(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0, false
		}
		return int(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return n, true
	case int64:
		if n < 0 {
			return 0, false
		}
		return int(n), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil || parsed < 0 {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func boolField(raw domain.RawScrapeRecord, key string) bool {
	b, _ := raw[key].(bool)
	return b
}
