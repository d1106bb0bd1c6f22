package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the body of every API response. Data is set on success, Error on failure.
type Envelope struct {
	Status  int    `json:"status"`
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   any    `json:"error,omitempty"`
}

func JSONCreatedResponse(w http.ResponseWriter, data any, message string) error {
	return writeEnvelope(w, &Envelope{
		Status:  http.StatusCreated,
		Success: true,
		Message: orDefault(message, "Request successful"),
		Data:    data,
	}, nil)
}

func JSONOkResponse(w http.ResponseWriter, data any, message string, headers http.Header) error {
	return writeEnvelope(w, &Envelope{
		Status:  http.StatusOK,
		Success: true,
		Message: orDefault(message, "Request successful"),
		Data:    data,
	}, headers)
}

// JSONErrorResponse writes a failed envelope. A zero status is sent as 500.
func JSONErrorResponse(w http.ResponseWriter, err any, message string, status int, headers http.Header) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}

	return writeEnvelope(w, &Envelope{
		Status:  status,
		Success: false,
		Message: orDefault(message, "Request failed"),
		Error:   err,
	}, headers)
}

func writeEnvelope(w http.ResponseWriter, envelope *Envelope, headers http.Header) error {
	js, err := json.MarshalIndent(envelope, "", "\t")
	if err != nil {
		return err
	}

	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(envelope.Status)

	_, err = w.Write(js)
	return err
}

func orDefault(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}
