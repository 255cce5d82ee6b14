package common

import (
	"encoding/json"
	"log"
	"net/http"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse is the standard envelope for successful reads.
type DataResponse struct {
	Data interface{} `json:"data"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Error: message})
}

// RespondWithDomainError maps a service error to its HTTP status. Internal
// failures keep their full detail in the server log only; the caller gets a
// fixed opaque body.
func RespondWithDomainError(w http.ResponseWriter, err error) {
	code := HTTPStatusFromError(err)
	if code == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		RespondWithError(w, code, "server error")
		return
	}
	RespondWithError(w, code, err.Error())
}

func RespondWithData(w http.ResponseWriter, code int, data interface{}) {
	RespondWithJSON(w, code, DataResponse{Data: data})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
