package handler

import "strconv"

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// queryInt parses an optional integer query parameter, returning 0 when the
// parameter is absent or malformed; the service applies defaults.
func queryInt(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
