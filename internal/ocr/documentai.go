package ocr

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"
)

// DocumentAIEngine recognizes text through a Google Document AI OCR
// processor. Unlike the Vision engine it runs a full layout-aware parse,
// which handles dense scanned pages better at the cost of latency.
type DocumentAIEngine struct {
	client *documentai.DocumentProcessorClient
	cfg    EngineConfig
}

// NewDocumentAIEngine creates a Document AI engine. Requires ProjectID and
// ProcessorID in cfg; Location defaults to "us". Credentials follow the same
// environment chain as the Vision engine.
func NewDocumentAIEngine(ctx context.Context, cfg EngineConfig) (*DocumentAIEngine, error) {
	const op = "NewDocumentAIEngine"

	if cfg.ProjectID == "" {
		return nil, NewOCRError(op, ErrInvalidConfiguration, "GOOGLE_CLOUD_PROJECT is required")
	}
	if cfg.ProcessorID == "" {
		return nil, NewOCRError(op, ErrInvalidConfiguration, "DOCUMENT_AI_PROCESSOR_ID is required")
	}
	if cfg.Location == "" {
		cfg.Location = "us"
	}

	var clientOptions []option.ClientOption

	// Regional endpoints are required outside the default "us" location.
	if cfg.Location != "us" {
		endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", cfg.Location)
		clientOptions = append(clientOptions, option.WithEndpoint(endpoint))
	}

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		clientOptions = append(clientOptions, option.WithCredentialsJSON([]byte(credJSON)))
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		clientOptions = append(clientOptions, option.WithCredentialsFile(credFile))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, clientOptions...)
	if err != nil {
		if len(clientOptions) == 0 {
			return nil, WrapOCRError(op, ErrMissingCredentials, "no credentials found in environment")
		}
		return nil, WrapOCRError(op, err, fmt.Sprintf("failed to create Document AI client for location: %s", cfg.Location))
	}

	return &DocumentAIEngine{client: client, cfg: cfg}, nil
}

// NewDocumentAIEngineWithClient creates an engine with an explicit client (for testing).
func NewDocumentAIEngineWithClient(client *documentai.DocumentProcessorClient, cfg EngineConfig) *DocumentAIEngine {
	return &DocumentAIEngine{client: client, cfg: cfg}
}

// Recognize submits the image as a raw document and returns the extracted
// text of the processed document. The language hint is unused: Document AI
// processors detect language themselves.
func (e *DocumentAIEngine) Recognize(ctx context.Context, imagePath, _ string) (string, error) {
	const op = "Recognize"

	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", WrapOCRError(op, err, "failed to read image")
	}

	mimeType := mime.TypeByExtension(filepath.Ext(imagePath))
	if mimeType == "" {
		mimeType = "image/png"
	}

	req := &documentaipb.ProcessRequest{
		Name: e.processorName(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  data,
				MimeType: mimeType,
			},
		},
	}

	resp, err := e.client.ProcessDocument(ctx, req)
	if err != nil {
		return "", WrapOCRError(op, ErrProcessingFailed, err.Error())
	}
	if resp.Document == nil {
		return "", NewOCRError(op, ErrNoParsedResults, "no document in response")
	}

	return resp.Document.Text, nil
}

// processorName constructs the full processor resource name.
func (e *DocumentAIEngine) processorName() string {
	if e.cfg.ProcessorVersion != "" {
		return fmt.Sprintf("projects/%s/locations/%s/processors/%s/processorVersions/%s",
			e.cfg.ProjectID, e.cfg.Location, e.cfg.ProcessorID, e.cfg.ProcessorVersion)
	}
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s",
		e.cfg.ProjectID, e.cfg.Location, e.cfg.ProcessorID)
}

// Close closes the underlying Document AI client.
func (e *DocumentAIEngine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}
