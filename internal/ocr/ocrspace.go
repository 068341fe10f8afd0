package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultOCRSpaceEndpoint is the ocr.space parse endpoint.
	DefaultOCRSpaceEndpoint = "https://api.ocr.space/parse/image"

	// DefaultOCRSpaceTimeout bounds a single recognition call. Generous
	// enough for larger page images.
	DefaultOCRSpaceTimeout = 30 * time.Second
)

// OCRSpaceEngine recognizes text through the ocr.space HTTP API.
type OCRSpaceEngine struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// ocrSpaceResponse mirrors the subset of the ocr.space response the engine
// consumes.
type ocrSpaceResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool            `json:"IsErroredOnProcessing"`
	ErrorMessage          ocrSpaceMessage `json:"ErrorMessage"`
}

// ocrSpaceMessage accepts both shapes the service uses for error messages:
// a plain string or an array of strings.
type ocrSpaceMessage []string

func (m *ocrSpaceMessage) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*m = ocrSpaceMessage{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*m = ocrSpaceMessage(many)
	return nil
}

func (m ocrSpaceMessage) String() string {
	if len(m) == 0 {
		return "unknown error"
	}
	return strings.Join(m, "; ")
}

// NewOCRSpaceEngine creates an ocr.space engine. An empty endpoint or a
// non-positive timeout select the defaults.
func NewOCRSpaceEngine(apiKey, endpoint string, timeout time.Duration) (*OCRSpaceEngine, error) {
	const op = "NewOCRSpaceEngine"

	if apiKey == "" {
		return nil, NewOCRError(op, ErrMissingAPIKey, "")
	}
	if endpoint == "" {
		endpoint = DefaultOCRSpaceEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultOCRSpaceTimeout
	}
	return &OCRSpaceEngine{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

// Recognize submits one image file and returns the parsed text. A
// service-reported processing error and a transport failure are both
// returned as errors so the retrying Client treats them alike.
func (e *OCRSpaceEngine) Recognize(ctx context.Context, imagePath, language string) (string, error) {
	const op = "Recognize"

	body, contentType, err := e.buildRequestBody(imagePath, language)
	if err != nil {
		return "", WrapOCRError(op, err, "failed to build multipart request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, body)
	if err != nil {
		return "", WrapOCRError(op, err, "failed to create request")
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", WrapOCRError(op, err, "request to ocr.space failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", NewOCRError(op, ErrProcessingFailed, fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	var parsed ocrSpaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", WrapOCRError(op, err, "failed to decode ocr.space response")
	}

	if parsed.IsErroredOnProcessing {
		return "", NewOCRError(op, ErrProcessingFailed, parsed.ErrorMessage.String())
	}
	if len(parsed.ParsedResults) == 0 {
		return "", NewOCRError(op, ErrNoParsedResults, "")
	}

	return parsed.ParsedResults[0].ParsedText, nil
}

// buildRequestBody assembles the multipart form: the image file plus the
// apikey, language, and overlay fields the service expects.
func (e *OCRSpaceEngine) buildRequestBody(imagePath, language string) (io.Reader, string, error) {
	f, err := os.Open(imagePath)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filepath.Base(imagePath))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", err
	}

	fields := map[string]string{
		"apikey":            e.apiKey,
		"language":          language,
		"isOverlayRequired": "false",
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}
