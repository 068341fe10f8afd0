package ocr

import (
	"context"
	"os"

	vision "cloud.google.com/go/vision/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// VisionEngine recognizes text using Google Cloud Vision document text
// detection on a single page image.
type VisionEngine struct {
	client *vision.ImageAnnotatorClient
}

// NewVisionEngine creates a Vision engine with credentials from environment.
// It expects either GOOGLE_APPLICATION_CREDENTIALS path or GOOGLE_CREDENTIALS
// JSON in env, falling back to application default credentials.
func NewVisionEngine(ctx context.Context) (*VisionEngine, error) {
	const op = "NewVisionEngine"

	var client *vision.ImageAnnotatorClient
	var err error

	// Check for inline credentials first
	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, WrapOCRError(op, err, "failed to create client with GOOGLE_CREDENTIALS")
		}
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
		if err != nil {
			return nil, WrapOCRError(op, err, "failed to create client with GOOGLE_APPLICATION_CREDENTIALS")
		}
	} else {
		// Try default credentials as fallback
		client, err = vision.NewImageAnnotatorClient(ctx)
		if err != nil {
			return nil, WrapOCRError(op, ErrMissingCredentials, "no credentials found in environment")
		}
	}

	return &VisionEngine{client: client}, nil
}

// NewVisionEngineWithClient creates a Vision engine with an explicit client (for testing).
func NewVisionEngineWithClient(client *vision.ImageAnnotatorClient) *VisionEngine {
	return &VisionEngine{client: client}
}

// Recognize runs document text detection over the image at imagePath.
func (e *VisionEngine) Recognize(ctx context.Context, imagePath, language string) (string, error) {
	const op = "Recognize"

	f, err := os.Open(imagePath)
	if err != nil {
		return "", WrapOCRError(op, err, "failed to open image")
	}
	defer f.Close()

	img, err := vision.NewImageFromReader(f)
	if err != nil {
		return "", WrapOCRError(op, err, "failed to read image data")
	}

	var ictx *visionpb.ImageContext
	if hint := visionLanguageHint(language); hint != "" {
		ictx = &visionpb.ImageContext{LanguageHints: []string{hint}}
	}

	annotation, err := e.client.DetectDocumentText(ctx, img, ictx)
	if err != nil {
		return "", WrapOCRError(op, ErrProcessingFailed, err.Error())
	}
	if annotation == nil {
		return "", NewOCRError(op, ErrNoParsedResults, "no text annotation in response")
	}

	return annotation.Text, nil
}

// visionLanguageHint maps the ocr.space style language codes used across the
// pipeline to the BCP-47 hints Vision expects.
func visionLanguageHint(language string) string {
	switch language {
	case "eng":
		return "en"
	case "ara":
		return "ar"
	case "":
		return ""
	default:
		return language
	}
}

// Close closes the underlying Vision client.
func (e *VisionEngine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}
