package creator

import (
	"encoding/json"
	"io"
	"net/http"
)

// CodeSuccess is the only response code treated as success.
const CodeSuccess = 3000

// CodeNoRecords is returned by report queries that match nothing.
const CodeNoRecords = 3100

type Query struct {
	Report     string
	Criteria   Criteria
	SortField  string
	Descending bool
	MaxRecords int
}

type CustomAPIRequest struct {
	APIName string
	Method  string // defaults to POST
	Payload map[string]any
}

type CustomAPIResponse struct {
	Code   int             `json:"code"`
	Result json.RawMessage `json:"result,omitempty"`
}

// Decode unmarshals the result object into v.
func (r *CustomAPIResponse) Decode(v any) error {
	if len(r.Result) == 0 {
		return nil
	}
	return json.Unmarshal(r.Result, v)
}

type FileUpload struct {
	Report   string
	ID       string
	Field    string
	FileName string
	Content  io.Reader
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
}

type addedRecord struct {
	ID string `json:"ID"`
}

type addResult struct {
	Code int         `json:"code"`
	Data addedRecord `json:"data"`
}

func methodOrPost(m string) string {
	if m == "" {
		return http.MethodPost
	}
	return m
}
