package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"slidegen/internal/logger"
	"slidegen/internal/slides"
	"slidegen/pkg/models"
)

var structureCmd = &cobra.Command{
	Use:   "structure [text-file]",
	Short: "Structure extracted text into presentation slides",
	Long: `Send text to the configured language model and print the resulting
slides as JSON.

The model is asked for a fixed JSON shape of titles and bullet points.
Malformed slides in the response are dropped; if the response cannot be
used at all, a single diagnostic slide titled "Error" is returned so the
pipeline still produces a deck.`,
	Example: `  # Structure a text file into at most 10 slides
  slidegen structure extracted.txt --max-slides 10

  # Read from stdin and write the slides JSON to a file
  slidegen extract report.pdf | slidegen structure - -o slides.json

  # Ask for Arabic slide content
  slidegen structure extracted.txt --content-language arabic`,
	Args: cobra.ExactArgs(1),
	RunE: runStructure,
}

func init() {
	rootCmd.AddCommand(structureCmd)

	structureCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	structureCmd.Flags().String("content-language", models.LanguageEnglish, "Language the slides should be written in")
	structureCmd.Flags().Int("max-slides", slides.DefaultMaxSlides, "Maximum number of slides to produce")
	structureCmd.Flags().Bool("from-extraction", false, "Treat input as extraction JSON produced by 'extract --json'")
	structureCmd.Flags().Int("timeout", 300, "Processing timeout in seconds")
}

func runStructure(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("structure")

	outputPath, _ := cmd.Flags().GetString("output")
	language, _ := cmd.Flags().GetString("content-language")
	maxSlides, _ := cmd.Flags().GetInt("max-slides")
	fromExtraction, _ := cmd.Flags().GetBool("from-extraction")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	text, err := readInput(args[0])
	if err != nil {
		log.Error().
			Err(err).
			Str("file", args[0]).
			Msg("Failed to read input text")
		return fmt.Errorf("failed to read input text: %w", err)
	}

	if fromExtraction {
		var extraction models.ExtractionResult
		if err := json.Unmarshal([]byte(text), &extraction); err != nil {
			log.Error().
				Err(err).
				Str("file", args[0]).
				Msg("Failed to parse extraction JSON")
			return fmt.Errorf("failed to parse extraction JSON: %w", err)
		}
		text = extraction.Text
	}

	log.Info().
		Int("characters", len(text)).
		Str("language", language).
		Int("max_slides", maxSlides).
		Msg("Starting slide structuring")

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	structurer, err := createStructurer(ctx, cfg, log)
	if err != nil {
		return err
	}

	result := structurer.Structure(ctx, text, language, maxSlides)

	log.Info().
		Int("slides", len(result)).
		Msg("Structuring completed")

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal slides: %w", err)
	}
	output = append(output, '\n')

	return writeOutput(outputPath, output, log)
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
