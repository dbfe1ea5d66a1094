// Package pagination normalizes page-number pagination inputs.
package pagination

import (
	"fmt"
	"strconv"
	"strings"
)

// PageSizeConfig configures page size normalization.
type PageSizeConfig struct {
	Default int
	Max     int
}

// ClampPageSize applies defaults and limits for page sizes.
func ClampPageSize(value int, cfg PageSizeConfig) int {
	pageSize := value
	if pageSize <= 0 {
		pageSize = cfg.Default
	}
	if cfg.Max > 0 && pageSize > cfg.Max {
		pageSize = cfg.Max
	}
	if pageSize <= 0 {
		pageSize = 1
	}
	return pageSize
}

// ParsePage decodes a page-number continuation marker. The empty marker is
// page 1.
func ParsePage(marker string) (int, error) {
	marker = strings.TrimSpace(marker)
	if marker == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(marker)
	if err != nil || page < 1 {
		return 0, fmt.Errorf("invalid page marker: %q", marker)
	}
	return page, nil
}

// FormatPage encodes page as a continuation marker.
func FormatPage(page int) string {
	if page <= 1 {
		return ""
	}
	return strconv.Itoa(page)
}

// HasMoreByTotal reports whether items beyond page remain when the remote
// reports a total count.
func HasMoreByTotal(page, limit, total int) bool {
	if page < 1 || limit < 1 {
		return false
	}
	return page*limit < total
}

// HasMoreByFill reports whether a page without a total or flag may have a
// successor: only a full page can.
func HasMoreByFill(received, limit int) bool {
	return limit > 0 && received >= limit
}
