package listing

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// ParseQuery builds Criteria from URL query parameters
// (q, minPrice, maxPrice, location, type, minBeds, minBaths, sort).
// Missing parameters keep their DefaultCriteria value. The second return
// maps each malformed parameter to a message.
func ParseQuery(q url.Values) (Criteria, map[string]string) {
	c := DefaultCriteria()
	errs := make(map[string]string)

	c.SearchText = strings.TrimSpace(q.Get("q"))
	if v := strings.TrimSpace(q.Get("location")); v != "" {
		c.Location = v
	}
	if v := strings.TrimSpace(q.Get("type")); v != "" {
		c.PropertyType = v
	}

	if v, ok := parseAmount(q, "minPrice", errs); ok {
		c.PriceRange.Min = v
	}
	if v, ok := parseAmount(q, "maxPrice", errs); ok {
		c.PriceRange.Max = v
	}
	if v, ok := parseCount(q, "minBeds", errs); ok {
		c.MinBeds = v
	}
	if v, ok := parseCount(q, "minBaths", errs); ok {
		c.MinBaths = v
	}

	sortKey, err := ParseSortKey(q.Get("sort"))
	if err != nil {
		errs["sort"] = "Sort must be one of newest, price-asc, price-desc"
	} else {
		c.Sort = sortKey
	}

	return c, errs
}

func parseAmount(q url.Values, key string, errs map[string]string) (float64, bool) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		errs[key] = key + " must be a non-negative number"
		return 0, false
	}
	return v, true
}

func parseCount(q url.Values, key string, errs map[string]string) (int, bool) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		errs[key] = key + " must be a non-negative integer"
		return 0, false
	}
	return v, true
}
