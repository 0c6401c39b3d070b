package server

import "net/http"

// ANSI escapes for the DEV route listing
const (
	colorGet    = "\033[32m"
	colorPost   = "\033[34m"
	colorPut    = "\033[36m"
	colorDelete = "\033[33m"
	colorOther  = "\033[90m"
	colorReset  = "\033[0m"
)

var methodColors = map[string]string{
	http.MethodGet:    colorGet,
	http.MethodPost:   colorPost,
	http.MethodPut:    colorPut,
	http.MethodDelete: colorDelete,
}

func methodColor(method string) string {
	if c, ok := methodColors[method]; ok {
		return c
	}
	return colorOther
}
