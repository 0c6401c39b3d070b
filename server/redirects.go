package server

import (
	"net/http"
	"net/url"
)

// redirectSuccess helper for htmx-aware success redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent) // 204 - no content, just redirect instruction
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// redirectWithNotice carries a flash notice to the next page in the query string
func redirectWithNotice(w http.ResponseWriter, r *http.Request, path string, extra url.Values, notice, level string) {
	q := url.Values{}
	for k, v := range extra {
		if len(v) > 0 && v[0] != "" {
			q[k] = v
		}
	}
	if notice != "" {
		q.Set("notice", notice)
		q.Set("level", level)
	}
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}
	redirectSuccess(w, r, path)
}

// redirectWithError helper for htmx-aware error redirects
func redirectWithError(w http.ResponseWriter, r *http.Request, path string, extra url.Values, errorMsg string) {
	redirectWithNotice(w, r, path, extra, errorMsg, "error")
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
