package handlers

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func parsePageSize(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultPageSize, nil
	}

	size, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || size < 1 {
		return 0, fmt.Errorf("pageSize must be a positive integer")
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return size, nil
}
