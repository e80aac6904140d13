package creator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

type Config struct {
	BaseURL   string // e.g. https://creator.zoho.com
	Owner     string
	App       string
	PublicKey string // custom API key
	Timeout   time.Duration
}

// Client talks to the platform's hosted data API. Every method returns an
// *APIError unless the platform answered with code 3000.
type Client struct {
	cfg    Config
	http   *http.Client
	tokens oauth2.TokenSource
	logger *zap.Logger

	// OnError, when set, is called once per failed call.
	OnError func(operation string, code int)
}

func NewClient(cfg Config, tokens oauth2.TokenSource, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		tokens: tokens,
		logger: logger,
	}
}

func (c *Client) reportURL(report string, parts ...string) string {
	segs := []string{c.cfg.BaseURL, "api/v2.1", url.PathEscape(c.cfg.Owner), url.PathEscape(c.cfg.App), "report", url.PathEscape(report)}
	for _, p := range parts {
		segs = append(segs, url.PathEscape(p))
	}
	return strings.Join(segs, "/")
}

func (c *Client) formURL(form string) string {
	return strings.Join([]string{c.cfg.BaseURL, "api/v2.1", url.PathEscape(c.cfg.Owner), url.PathEscape(c.cfg.App), "form", url.PathEscape(form)}, "/")
}

// GetRecords runs a report query. A query matching nothing fails with code
// 3100; use IsNoRecords to treat it as empty.
func (c *Client) GetRecords(ctx context.Context, q Query) ([]Record, error) {
	params := url.Values{}
	if q.Criteria != "" {
		params.Set("criteria", q.Criteria.String())
	}
	if q.MaxRecords > 0 {
		params.Set("max_records", strconv.Itoa(q.MaxRecords))
	}
	if q.SortField != "" {
		order := "asc"
		if q.Descending {
			order = "desc"
		}
		params.Set("sort_by", q.SortField+":"+order)
	}
	endpoint := c.reportURL(q.Report)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	env, err := c.do(ctx, "getRecords", http.MethodGet, endpoint, nil, "")
	if err != nil {
		return nil, err
	}

	var records []Record
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &records); err != nil {
			return nil, c.fail(&APIError{Operation: "getRecords", Code: env.Code, Message: "decode records: " + err.Error()})
		}
	}
	return records, nil
}

// AddRecords submits one record to a form and returns its new ID.
func (c *Client) AddRecords(ctx context.Context, form string, fields Fields) (string, error) {
	body, err := json.Marshal(map[string]any{"data": fields})
	if err != nil {
		return "", fmt.Errorf("marshal %s payload: %w", form, err)
	}

	env, err := c.do(ctx, "addRecords", http.MethodPost, c.formURL(form), bytes.NewReader(body), "application/json")
	if err != nil {
		return "", err
	}

	var added addedRecord
	if len(env.Data) > 0 {
		_ = json.Unmarshal(env.Data, &added)
	}
	if added.ID == "" && len(env.Result) > 0 {
		var results []addResult
		if err := json.Unmarshal(env.Result, &results); err == nil && len(results) > 0 {
			if results[0].Code != CodeSuccess {
				return "", c.fail(&APIError{Operation: "addRecords", Code: results[0].Code, Message: form + " rejected"})
			}
			added = results[0].Data
		}
	}
	if added.ID == "" {
		return "", c.fail(&APIError{Operation: "addRecords", Code: env.Code, Message: "response carried no record ID"})
	}
	return added.ID, nil
}

func (c *Client) UpdateRecordByID(ctx context.Context, report, id string, fields Fields) error {
	body, err := json.Marshal(map[string]any{"data": fields})
	if err != nil {
		return fmt.Errorf("marshal %s update: %w", report, err)
	}
	_, err = c.do(ctx, "updateRecordById", http.MethodPatch, c.reportURL(report, id), bytes.NewReader(body), "application/json")
	return err
}

func (c *Client) DeleteRecordByID(ctx context.Context, report, id string) error {
	_, err := c.do(ctx, "deleteRecordById", http.MethodDelete, c.reportURL(report, id), nil, "")
	return err
}

// InvokeCustomAPI calls a published custom endpoint. GET requests carry
// the payload as query parameters, everything else as a JSON body.
func (c *Client) InvokeCustomAPI(ctx context.Context, req CustomAPIRequest) (*CustomAPIResponse, error) {
	method := methodOrPost(req.Method)
	params := url.Values{}
	params.Set("publickey", c.cfg.PublicKey)

	var body io.Reader
	contentType := ""
	if method == http.MethodGet {
		for k, v := range req.Payload {
			params.Set(k, fmt.Sprint(v))
		}
	} else {
		raw, err := json.Marshal(req.Payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", req.APIName, err)
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}

	endpoint := strings.Join([]string{c.cfg.BaseURL, "creator/custom", url.PathEscape(c.cfg.Owner), url.PathEscape(req.APIName)}, "/") + "?" + params.Encode()
	env, err := c.do(ctx, "invokeCustomApi", method, endpoint, body, contentType)
	if err != nil {
		return nil, err
	}
	return &CustomAPIResponse{Code: env.Code, Result: env.Result}, nil
}

// UploadFile attaches a file to a file-upload field of an existing record.
func (c *Client) UploadFile(ctx context.Context, up FileUpload) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", up.FileName)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, up.Content); err != nil {
		return fmt.Errorf("copy upload content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart: %w", err)
	}

	_, err = c.do(ctx, "uploadFile", http.MethodPost, c.reportURL(up.Report, up.ID, up.Field, "upload"), &buf, mw.FormDataContentType())
	return err
}

func (c *Client) do(ctx context.Context, op, method, endpoint string, body io.Reader, contentType string) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", op, err)
	}
	if err := c.setHeaders(req, contentType); err != nil {
		return nil, c.fail(&APIError{Operation: op, Message: "auth: " + err.Error()})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.fail(&APIError{Operation: op, Message: err.Error()})
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(&APIError{Operation: op, HTTPStatus: resp.StatusCode, Message: "read body: " + err.Error()})
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, c.fail(&APIError{Operation: op, HTTPStatus: resp.StatusCode, Message: "invalid response body"})
	}
	if env.Code != CodeSuccess {
		msg := env.Message
		if msg == "" && len(env.Error) > 0 {
			msg = string(env.Error)
		}
		return nil, c.fail(&APIError{Operation: op, Code: env.Code, HTTPStatus: resp.StatusCode, Message: msg})
	}

	c.logger.Debug("creator call ok", zap.String("op", op), zap.String("method", method))
	return &env, nil
}

func (c *Client) fail(e *APIError) error {
	if e.Code != CodeNoRecords {
		c.logger.Warn("❌ creator call failed",
			zap.String("op", e.Operation),
			zap.Int("code", e.Code),
			zap.Int("http_status", e.HTTPStatus),
			zap.String("message", e.Message),
		)
		if c.OnError != nil {
			c.OnError(e.Operation, e.Code)
		}
	}
	return e
}

// setHeaders centralises the auth and content headers.
func (c *Client) setHeaders(req *http.Request, contentType string) error {
	if c.tokens != nil {
		tok, err := c.tokens.Token()
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Zoho-oauthtoken "+tok.AccessToken)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "LigueLeads/1.0")
	return nil
}
