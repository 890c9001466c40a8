package collection

import (
	"bytes"
	"encoding/json"
	"fmt"

	"admingrid/internal/domain/grid"
)

// listEnvelope covers the wrapped list shapes the backends return.
type listEnvelope struct {
	Total   int        `json:"total"`
	Items   []grid.Row `json:"items"`
	Rows    []grid.Row `json:"rows"`
	Records []grid.Row `json:"records"`
	Data    []grid.Row `json:"data"`
}

// DecodeList decodes a collection listing. Backends disagree on the shape:
// some return a bare JSON array, others wrap it as {"total": n, "items":
// [...]} or a similar envelope. All observed variants decode here.
func DecodeList(data []byte) ([]grid.Row, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("decode list: empty response body")
	}

	if trimmed[0] == '[' {
		var rows []grid.Row
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return rows, nil
	}

	var env listEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decode list envelope: %w", err)
	}
	for _, rows := range [][]grid.Row{env.Items, env.Rows, env.Records, env.Data} {
		if rows != nil {
			return rows, nil
		}
	}
	return nil, fmt.Errorf("decode list: unrecognized envelope")
}

// errorBody is the JSON error shape the backends return on non-2xx.
type errorBody struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

// ErrorMessage extracts a human-readable message from a non-2xx response
// body: the JSON "detail" (or "error") field when present, otherwise the
// plain-text body itself.
func ErrorMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}
	var eb errorBody
	if err := json.Unmarshal(trimmed, &eb); err == nil {
		if eb.Detail != "" {
			return eb.Detail
		}
		if eb.Error != "" {
			return eb.Error
		}
	}
	return string(trimmed)
}
