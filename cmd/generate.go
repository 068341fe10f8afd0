package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"slidegen/internal/deck"
	"slidegen/internal/logger"
	"slidegen/internal/slides"
	"slidegen/pkg/models"
)

var generateCmd = &cobra.Command{
	Use:   "generate [document]",
	Short: "Run the full pipeline from document to deck",
	Long: `Extract text from a document, structure it into slides with the
configured language model, and render the slides into a PowerPoint deck
based on a template.

A previously saved slide list can be rendered directly with --slides-json,
skipping extraction and structuring.`,
	Example: `  # Generate a deck from a PDF using the default template
  slidegen generate report.pdf -o report.pptx

  # Arabic deck with a named template and custom colors
  slidegen generate scan.pdf --language arabic --template corporate \
    --title-color "#1F3864" --bullet-color "#333333" -o deck.pptx

  # Render previously structured slides, also exporting a PDF twin
  slidegen generate slides.json --slides-json --pdf -o deck.pptx`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("output", "o", "", "Output deck path (default: input name with .pptx)")
	generateCmd.Flags().StringP("template", "t", "", "Template name from the template directory (default: first template)")
	generateCmd.Flags().String("language", models.LanguageEnglish, "Language the slides should be written in (english or arabic)")
	generateCmd.Flags().String("ocr-language", "", "OCR language code (default derived from --language)")
	generateCmd.Flags().Int("max-slides", slides.DefaultMaxSlides, "Maximum number of slides to produce")
	generateCmd.Flags().Int("max-bullets", deck.DefaultMaxBullets, "Maximum bullets rendered per slide")
	generateCmd.Flags().String("title-color", "", "Title color as #RRGGBB")
	generateCmd.Flags().String("bullet-color", "", "Bullet color as #RRGGBB")
	generateCmd.Flags().Int("title-size", 0, "Title font size in points")
	generateCmd.Flags().Int("bullet-size", 0, "Bullet font size in points")
	generateCmd.Flags().StringArray("font", nil, "Font override as language=Family (repeatable)")
	generateCmd.Flags().Bool("slides-json", false, "Treat input as a slide list saved by 'structure'")
	generateCmd.Flags().Bool("pdf", false, "Also export a PDF twin next to the deck")
	generateCmd.Flags().Int("timeout", 600, "Processing timeout in seconds")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("generate")

	outputPath, _ := cmd.Flags().GetString("output")
	templateName, _ := cmd.Flags().GetString("template")
	language, _ := cmd.Flags().GetString("language")
	ocrLanguage, _ := cmd.Flags().GetString("ocr-language")
	maxSlides, _ := cmd.Flags().GetInt("max-slides")
	maxBullets, _ := cmd.Flags().GetInt("max-bullets")
	slidesJSON, _ := cmd.Flags().GetBool("slides-json")
	pdfTwin, _ := cmd.Flags().GetBool("pdf")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	docPath := args[0]
	if outputPath == "" {
		outputPath = strings.TrimSuffix(docPath, filepath.Ext(docPath)) + ".pptx"
	}

	theme, err := themeFromFlags(cmd)
	if err != nil {
		return err
	}

	log.Info().
		Str("file", docPath).
		Str("output", outputPath).
		Str("template", templateName).
		Str("language", language).
		Int("max_slides", maxSlides).
		Msg("Starting deck generation")

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	var slideList []models.Slide
	if slidesJSON {
		data, err := os.ReadFile(docPath)
		if err != nil {
			return fmt.Errorf("failed to read slides file: %w", err)
		}
		if err := json.Unmarshal(data, &slideList); err != nil {
			log.Error().
				Err(err).
				Str("file", docPath).
				Msg("Failed to parse slides JSON")
			return fmt.Errorf("failed to parse slides JSON: %w", err)
		}
	} else {
		if ocrLanguage == "" {
			if language == models.LanguageArabic {
				ocrLanguage = "ara"
			} else {
				ocrLanguage = cfg.OCRLanguage
			}
		}

		extractor, err := createExtractor(ctx, cfg, ocrLanguage, log)
		if err != nil {
			return err
		}

		startTime := time.Now()
		extraction, err := extractor.Load(ctx, docPath)
		if err != nil {
			log.Error().
				Err(err).
				Str("file", docPath).
				Msg("Extraction failed")
			return fmt.Errorf("extraction failed: %w", err)
		}

		log.Info().
			Int("characters", len(extraction.Text)).
			Bool("used_ocr", extraction.UsedOCR).
			Dur("duration", time.Since(startTime)).
			Msg("Extraction completed")

		structurer, err := createStructurer(ctx, cfg, log)
		if err != nil {
			return err
		}

		slideList = structurer.Structure(ctx, extraction.Text, language, maxSlides)

		log.Info().
			Int("slides", len(slideList)).
			Msg("Structuring completed")
	}

	store, err := deck.NewTemplateStore(cfg.TemplateDir)
	if err != nil {
		log.Error().
			Err(err).
			Str("dir", cfg.TemplateDir).
			Msg("Failed to load template store")
		return fmt.Errorf("failed to load template store: %w", err)
	}

	if templateName == "" {
		names := store.Names()
		if len(names) == 0 {
			return fmt.Errorf("no templates found in %s", cfg.TemplateDir)
		}
		templateName = names[0]
	}

	renderer := deck.NewRenderer(store)
	req := models.DeckRequest{
		Slides:     slideList,
		Language:   language,
		Template:   templateName,
		Theme:      theme,
		MaxBullets: maxBullets,
	}

	output, err := renderer.Render(req)
	if err != nil {
		log.Error().
			Err(err).
			Str("template", templateName).
			Msg("Deck rendering failed")
		return fmt.Errorf("deck rendering failed: %w", err)
	}

	if err := writeOutput(outputPath, output, log); err != nil {
		return err
	}

	if pdfTwin {
		pdfBytes, err := renderer.RenderPDF(req)
		if err != nil {
			log.Error().
				Err(err).
				Msg("PDF rendering failed")
			return fmt.Errorf("pdf rendering failed: %w", err)
		}
		pdfPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".pdf"
		if err := writeOutput(pdfPath, pdfBytes, log); err != nil {
			return err
		}
	}

	log.Info().
		Int("slides", len(slideList)).
		Str("output", outputPath).
		Msg("Deck generation completed")
	return nil
}

// themeFromFlags builds a theme from the optional styling flags. Unset
// fields stay zero and fall back to the renderer defaults.
func themeFromFlags(cmd *cobra.Command) (models.Theme, error) {
	var theme models.Theme
	theme.TitleColor, _ = cmd.Flags().GetString("title-color")
	theme.BulletColor, _ = cmd.Flags().GetString("bullet-color")
	theme.TitleFontSize, _ = cmd.Flags().GetInt("title-size")
	theme.BulletFontSize, _ = cmd.Flags().GetInt("bullet-size")

	fonts, _ := cmd.Flags().GetStringArray("font")
	for _, entry := range fonts {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return theme, fmt.Errorf("invalid --font value %q, expected language=Family", entry)
		}
		if theme.FontOverrides == nil {
			theme.FontOverrides = make(map[string]string)
		}
		theme.FontOverrides[strings.ToLower(parts[0])] = parts[1]
	}

	return theme, nil
}
