// Package respond writes the results API's HTTP responses. Snapshot bodies
// are pre-encoded and tagged with the load that produced them; everything
// else is encoded on the spot and never cached.
package respond

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NotReadyRetry is the Retry-After hint, in seconds, sent while no load has
// been published yet.
const NotReadyRetry = 5

// WriteSnapshot sends an encoded view of load loadID. Results move every
// poll, so clients must revalidate each time; a matching If-None-Match gets
// WriteNotModified instead.
func WriteSnapshot(w http.ResponseWriter, data []byte, etag string, loadID uint64, cacheHit bool) {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("ETag", etag)
	h.Set("Vary", "Accept-Encoding")
	h.Set("Cache-Control", "no-cache")
	h.Set("X-Load-ID", strconv.FormatUint(loadID, 10))
	if cacheHit {
		h.Set("X-Cache", "HIT")
	} else {
		h.Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// WriteNotModified confirms the client's copy of load loadID is current.
func WriteNotModified(w http.ResponseWriter, etag string, loadID uint64) {
	w.Header().Set("ETag", etag)
	w.Header().Set("X-Load-ID", strconv.FormatUint(loadID, 10))
	w.WriteHeader(http.StatusNotModified)
}

// WriteNotReady answers a results request made before the first publish.
func WriteNotReady(w http.ResponseWriter) {
	w.Header().Set("Retry-After", strconv.Itoa(NotReadyRetry))
	WriteError(w, http.StatusServiceUnavailable, "NOT_READY", "Results have not been loaded yet")
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// WriteStatus encodes v uncached. Root, health and refresh replies go
// through here since they describe the process rather than a load.
func WriteStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
