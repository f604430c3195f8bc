package response

import (
	"encoding/json"
	"net/http"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/query"
)

// Envelope is the success body. Only Success is always present.
type Envelope struct {
	Success    bool              `json:"success"`
	Count      *int              `json:"count,omitempty"`
	Total      *int              `json:"total,omitempty"`
	Pagination *query.Pagination `json:"pagination,omitempty"`
	Token      string            `json:"token,omitempty"`
	Message    string            `json:"message,omitempty"`
	Data       any               `json:"data,omitempty"`
}

// WriteJSON writes v as JSON with the given status code.
// It sets Content-Type to application/json; charset=utf-8 if not already set.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a 200 response with {"success":true,"data":...}.
func OK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 response with {"success":true,"data":...}.
func Created(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data})
}

// Empty writes {"success":true,"data":{}}.
func Empty(w http.ResponseWriter) {
	OK(w, struct{}{})
}

// Message writes {"success":true,"data":msg}.
func Message(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: msg})
}

// Token writes {"success":true,"token":...}.
func Token(w http.ResponseWriter, status int, token string) {
	WriteJSON(w, status, Envelope{Success: true, Token: token})
}

// List writes one page of documents with its count, total and neighbour pages.
func List(w http.ResponseWriter, items []query.Document, total int, p query.Pagination) {
	count := len(items)
	WriteJSON(w, http.StatusOK, Envelope{
		Success:    true,
		Count:      &count,
		Total:      &total,
		Pagination: &p,
		Data:       items,
	})
}
