package http

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/hr-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

const maxBodyBytes = 1 << 20

// decodeJSON writes a 400 and returns false when the body is not valid JSON.
// An empty body is accepted only when optional is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, optional bool) bool {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return true
	}
	response.Fail(w, http.StatusBadRequest, "Invalid request format", nil)
	return false
}

// pathUUID reads a UUID path parameter, writing a 400 when it is malformed.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := chi.URLParam(r, name)
	if !validator.IsValidUUID(id) {
		response.Fail(w, http.StatusBadRequest, "Invalid "+name, map[string]string{name: name + " must be a valid UUID"})
		return "", false
	}
	return strings.ToLower(id), true
}

// clientIP is the host part of RemoteAddr, already rewritten by middleware.RealIP
// when the request came through a proxy. Nil when unknown.
func clientIP(r *http.Request) *string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	if addr == "" {
		return nil
	}
	return &addr
}
