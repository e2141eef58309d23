package httputil

import (
	"encoding/json"
	"fmt"
)

// Response wraps all API responses
type Response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error represents API error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ErrorMessage returns the backend text for a failed response, if any.
func (r *Response) ErrorMessage() string {
	if r.Message != "" {
		return r.Message
	}
	if r.Error != nil {
		return r.Error.Message
	}
	return ""
}

// Decode parses an envelope from body.
func Decode(body []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return &resp, nil
}

// DecodeData unmarshals the envelope data into out. A missing data member
// leaves out untouched.
func DecodeData(data json.RawMessage, out interface{}) error {
	if out == nil || len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// Success builds a success envelope. Used by test backends.
func Success(data interface{}) map[string]interface{} {
	return map[string]interface{}{"success": true, "data": data}
}

// Failure builds a failure envelope. Used by test backends.
func Failure(message string) map[string]interface{} {
	out := map[string]interface{}{"success": false}
	if message != "" {
		out["message"] = message
	}
	return out
}
