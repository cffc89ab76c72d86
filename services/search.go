package services

import (
	"strings"
	"unicode/utf8"

	"github.com/yeremiapane/restaurant-kitchen/models"
	"gorm.io/gorm"
)

// Search input longer than this makes the search form invalid and the list unfiltered.
const searchMaxLength = 255

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// SearchQuery normalizes raw search input. ok is false when no filter should apply.
func SearchQuery(raw string) (query string, ok bool) {
	query = strings.TrimSpace(raw)
	if query == "" || utf8.RuneCountInString(query) > searchMaxLength {
		return "", false
	}
	return query, true
}

// ContainsFold keeps rows whose column contains raw as a case-insensitive substring.
// column must be a trusted identifier, never user input.
func ContainsFold(column, raw string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		query, ok := SearchQuery(raw)
		if !ok {
			return db
		}
		pattern := "%" + likeEscaper.Replace(query) + "%"
		return db.Where("LOWER("+column+") LIKE LOWER(?) ESCAPE '!'", pattern)
	}
}

// UsernameContains filters cooks by their account's username.
func UsernameContains(raw string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if _, ok := SearchQuery(raw); !ok {
			return db
		}
		accounts := db.Session(&gorm.Session{NewDB: true}).
			Model(&models.User{}).
			Select("id").
			Scopes(ContainsFold("username", raw))
		return db.Where("cooks.user_id IN (?)", accounts)
	}
}
