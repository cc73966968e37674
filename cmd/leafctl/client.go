package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type HealthResponse struct {
	Status       string          `json:"status"`
	ModelsLoaded map[string]bool `json:"models_loaded"`
}

// PredictResponse covers both the classification and segmentation shapes.
type PredictResponse struct {
	Model             string `json:"model"`
	Type              string `json:"type"`
	Class             string `json:"class"`
	Confidence        string `json:"confidence"`
	Suggestion        string `json:"suggestion"`
	MaskImage         string `json:"mask_image"`
	DiseasePercentage string `json:"disease_percentage"`
}

// APIError is a non-2xx reply from the server.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Detail)
}

func (c *Client) Health() (*HealthResponse, error) {
	resp, err := c.httpClient.Get(c.baseURL + "/health")
	if err != nil {
		return nil, fmt.Errorf("could not connect to %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	var health HealthResponse
	if err := decode(resp, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

func (c *Client) Predict(imagePath, modelName string) (*PredictResponse, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, fmt.Errorf("image file not found: %w", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("model_name", modelName); err != nil {
		return nil, err
	}

	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(imagePath)))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(imagePath)))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(c.baseURL+"/predict", mw.FormDataContentType(), &body)
	if err != nil {
		return nil, fmt.Errorf("could not connect to %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	var result PredictResponse
	if err := decode(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func decode(resp *http.Response, v interface{}) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(raw, &e) != nil || e.Detail == "" {
			e.Detail = strings.TrimSpace(string(raw))
		}
		return &APIError{StatusCode: resp.StatusCode, Detail: e.Detail}
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("invalid response: %w", err)
	}
	return nil
}
