package helper

import (
	"regexp"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// GenerateSlug lowercases, strips non-alphanumerics and joins with dashes.
func GenerateSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// EnsureUniqueSlug appends -2, -3, ... until no live row in table has the slug.
func EnsureUniqueSlug(db *gorm.DB, table, column, base string) (string, error) {
	slug := base
	for i := 2; ; i++ {
		var count int64
		if err := db.Table(table).
			Where(column+" = ?", slug).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = base + "-" + strconv.Itoa(i)
	}
}
