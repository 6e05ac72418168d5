package model

import "time"

// ApiResponse is the envelope around every response body.
type ApiResponse struct {
	Data          interface{} `json:"data"`
	StatusMessage string      `json:"statusMessage"`
	Timestamp     time.Time   `json:"timestamp"`
}

type ErrorResponse struct {
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}
