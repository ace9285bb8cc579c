package util

import "strconv"

const DefaultPageSize = 20

func ParamDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
