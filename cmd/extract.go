package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"slidegen/internal/logger"
)

var extractCmd = &cobra.Command{
	Use:   "extract [document]",
	Short: "Extract text from a .txt or .pdf document",
	Long: `Read a document and print its text content.

Plain text files are returned byte for byte. PDF files are first read with
the native text layer; scanned PDFs without a text layer are rasterized and
sent page by page to the configured OCR provider, with page markers between
pages.`,
	Example: `  # Extract text from a PDF to stdout
  slidegen extract report.pdf

  # Save extracted text to a file, forcing Arabic OCR
  slidegen extract scan.pdf --language ara -o extracted.txt

  # Output as JSON including whether OCR was used
  slidegen extract scan.pdf --json`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().StringP("language", "l", "", "OCR language code (default from OCR_LANGUAGE)")
	extractCmd.Flags().Bool("json", false, "Output as JSON")
	extractCmd.Flags().Int("timeout", 300, "Processing timeout in seconds")
}

func runExtract(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("extract")

	outputPath, _ := cmd.Flags().GetString("output")
	language, _ := cmd.Flags().GetString("language")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	docPath := args[0]

	log.Info().
		Str("file", docPath).
		Str("output", outputPath).
		Bool("json", jsonOutput).
		Msg("Starting text extraction")

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	extractor, err := createExtractor(ctx, cfg, language, log)
	if err != nil {
		return err
	}

	result, err := extractor.Load(ctx, docPath)
	if err != nil {
		log.Error().
			Err(err).
			Str("file", docPath).
			Msg("Extraction failed")
		return fmt.Errorf("extraction failed: %w", err)
	}

	log.Info().
		Int("characters", len(result.Text)).
		Bool("used_ocr", result.UsedOCR).
		Msg("Extraction completed")

	var output []byte
	if jsonOutput {
		output, err = json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		output = append(output, '\n')
	} else {
		output = []byte(result.Text)
	}

	return writeOutput(outputPath, output, log)
}

// writeOutput writes data to the given path, or stdout when path is empty.
func writeOutput(path string, data []byte, log zerolog.Logger) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Error().
			Err(err).
			Str("output", path).
			Msg("Failed to write output file")
		return fmt.Errorf("failed to write output file: %w", err)
	}

	log.Info().
		Str("output", path).
		Int("bytes", len(data)).
		Msg("Output written")
	return nil
}
