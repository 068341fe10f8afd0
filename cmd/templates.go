package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"slidegen/internal/deck"
	"slidegen/internal/logger"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available deck templates",
	Long: `List the .pptx templates found in the template directory.

Template names are matched case-insensitively by the generate command.`,
	Args: cobra.NoArgs,
	RunE: runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("templates")

	// Listing templates needs no provider keys, so skip full config
	// validation and read the directory setting directly.
	dir := os.Getenv("TEMPLATE_DIR")
	if dir == "" {
		dir = "templates"
	}

	store, err := deck.NewTemplateStore(dir)
	if err != nil {
		log.Error().
			Err(err).
			Str("dir", dir).
			Msg("Failed to load template store")
		return fmt.Errorf("failed to load template store: %w", err)
	}

	names := store.Names()
	if len(names) == 0 {
		fmt.Printf("No templates found in %s\n", dir)
		return nil
	}

	fmt.Printf("Templates in %s:\n", dir)
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}
	return nil
}
