package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"fsanano/catalog-api/internal/common"
	"fsanano/catalog-api/internal/logging"
)

type errorResponse struct {
	Error string `json:"error"`
}

type resultResponse struct {
	Success bool   `json:"success"`
	Name    string `json:"name,omitempty"`
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
	Errors  string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps service errors onto status codes. Unexpected errors are
// logged and hidden behind a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, log logging.Logger, err error) {
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrInvalidSlot):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, common.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	default:
		log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}
}

func writeBadBody(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
}

// decodeBody reads a JSON or urlencoded form body into dst. Form values are
// routed through encoding/json so the same struct tags apply. An empty body
// leaves dst untouched.
func decodeBody(r *http.Request, dst any) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return err
		}
		values := make(map[string]string, len(r.PostForm))
		for k := range r.PostForm {
			values[k] = r.PostForm.Get(k)
		}
		data, err := json.Marshal(values)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, dst)
	}

	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// flexInt accepts 5, 5.0 or "5".
type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	f, err := parseNumber(b)
	if err != nil {
		return err
	}
	if f != math.Trunc(f) {
		return fmt.Errorf("not an integer: %s", b)
	}
	*n = flexInt(f)
	return nil
}

// flexFloat accepts 9.5 or "9.5".
type flexFloat float64

func (n *flexFloat) UnmarshalJSON(b []byte) error {
	f, err := parseNumber(b)
	if err != nil {
		return err
	}
	*n = flexFloat(f)
	return nil
}

func parseNumber(b []byte) (float64, error) {
	s := strings.TrimSpace(strings.Trim(string(b), `"`))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a number: %s", b)
	}
	return f, nil
}
