package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// parseLimitOffset reads ?limit and ?offset. Oversized limits are clamped to
// maxPageSize; malformed or negative values fall back to the defaults.
func parseLimitOffset(c *fiber.Ctx) (limit, offset int) {
	limit = defaultPageSize
	if n, ok := queryInt(c, "limit"); ok && n > 0 {
		limit = min(n, maxPageSize)
	}
	if n, ok := queryInt(c, "offset"); ok && n >= 0 {
		offset = n
	}
	return limit, offset
}

func queryInt(c *fiber.Ctx, key string) (int, bool) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}
