// Package client is a Go consumer of the vector-hub proxy: it drives the
// login gate, fetches normalized account status, and submits vectorize
// jobs, decoding the wire result back into raw bytes.
package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	jsoniter "github.com/json-iterator/go"
	"github.com/reusedev/vector-hub/internal/consts"
	"github.com/reusedev/vector-hub/tools"
)

type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: http.DefaultClient,
	}
}

// AuthRequired asks the proxy whether a login is needed.
func (c *Client) AuthRequired(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tools.FullURL(c.BaseURL, "api/auth/config"), nil)
	if err != nil {
		return false, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}
	var cfg authConfig
	if err := jsoniter.Unmarshal(body, &cfg); err != nil {
		return false, err
	}
	return cfg.AuthRequired, nil
}

// Login obtains a session token and stores it on the client for
// subsequent protected calls.
func (c *Client) Login(ctx context.Context, username, password string) error {
	payload, err := jsoniter.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tools.FullURL(c.BaseURL, "api/auth/login"), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var result loginResult
	if err := jsoniter.Unmarshal(body, &result); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK || !result.Success {
		if result.Error != "" {
			return fmt.Errorf("%s", result.Error)
		}
		return fmt.Errorf("Error %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	c.Token = result.Token
	return nil
}

func (c *Client) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tools.FullURL(c.BaseURL, "api/auth/logout"), nil)
	if err != nil {
		return err
	}
	c.setToken(req)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	c.Token = ""
	return nil
}

// GetAccountStatus returns nil when the status is unavailable for any
// reason. Callers treat nil as "status unknown", not as an error.
func (c *Client) GetAccountStatus(ctx context.Context) *AccountStatus {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tools.FullURL(c.BaseURL, "api/account"), nil)
	if err != nil {
		return nil
	}
	c.setToken(req)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}
	return normalizeAccount(body)
}

// VectorizeFile submits image bytes under the given filename.
func (c *Client) VectorizeFile(ctx context.Context, fileName string, data []byte, options VectorizeOptions) (*Artifact, error) {
	payload := &bytes.Buffer{}
	writer := multipart.NewWriter(payload)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Type", http.DetectContentType(data))
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, fileName))
	filePart, err := writer.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := filePart.Write(data); err != nil {
		return nil, err
	}
	return c.vectorize(ctx, payload, writer, options)
}

// VectorizeURL submits a remote image address instead of bytes.
func (c *Client) VectorizeURL(ctx context.Context, imageURL string, options VectorizeOptions) (*Artifact, error) {
	payload := &bytes.Buffer{}
	writer := multipart.NewWriter(payload)
	if err := writer.WriteField("image.url", imageURL); err != nil {
		return nil, err
	}
	return c.vectorize(ctx, payload, writer, options)
}

func (c *Client) vectorize(ctx context.Context, payload *bytes.Buffer, writer *multipart.Writer, options VectorizeOptions) (*Artifact, error) {
	_ = writer.WriteField("mode", options.Mode.String())
	_ = writer.WriteField("output.file_format", options.OutputFormat.String())
	if err := writer.Close(); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tools.FullURL(c.BaseURL, "api/vectorize"), payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.setToken(req)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s", errorMessage(resp.StatusCode, body))
	}
	var result wireResult
	if err := jsoniter.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	data := []byte(result.Content)
	if result.IsBase64 {
		data, err = base64.StdEncoding.DecodeString(result.Content)
		if err != nil {
			return nil, err
		}
	}
	return &Artifact{
		Data:              data,
		ContentType:       result.ContentType,
		CreditsCharged:    result.CreditsCharged,
		CreditsCalculated: result.CreditsCalculated,
	}, nil
}

func (c *Client) setToken(req *http.Request) {
	if c.Token != "" {
		req.Header.Set(consts.SessionTokenHeader, c.Token)
	}
}

// errorMessage digs the upstream error message out of a failure payload:
// the nested error.message object form, then the flat error string form,
// then a generic status line.
func errorMessage(status int, body []byte) string {
	if message := jsoniter.Get(body, "error", "message").ToString(); message != "" {
		return message
	}
	if message := jsoniter.Get(body, "error").ToString(); message != "" && jsoniter.Get(body, "error").ValueType() == jsoniter.StringValue {
		return message
	}
	return fmt.Sprintf("Error %d: %s", status, http.StatusText(status))
}

// normalizeAccount maps missing or malformed fields to safe defaults.
func normalizeAccount(body []byte) *AccountStatus {
	status := &AccountStatus{
		SubscriptionPlan:  jsoniter.Get(body, "subscriptionPlan").ToString(),
		SubscriptionState: jsoniter.Get(body, "subscriptionState").ToString(),
		Credits:           jsoniter.Get(body, "credits").ToFloat64(),
	}
	if status.SubscriptionPlan == "" {
		status.SubscriptionPlan = "none"
	}
	if status.SubscriptionState == "" {
		status.SubscriptionState = "ended"
	}
	return status
}
