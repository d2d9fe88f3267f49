package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Roshen-Perera/whatsapp-bot-test/internal/models"
	"github.com/Roshen-Perera/whatsapp-bot-test/internal/services"
)

var catalogCategory string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Validate and print the product catalog",
	Long: `Loads the catalog the bot would serve (CATALOG_FILE, config.yaml or the
built-in list), validates it and prints it the way customers see it.`,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVar(&catalogCategory, "category", "", "only print one category (cement, paint, tools, plumbing, electrical)")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	catalog, err := newCatalog(cfg)
	if err != nil {
		return err
	}
	format := services.NewFormatter(cfg.Currency)
	out := cmd.OutOrStdout()

	if catalogCategory != "" {
		category, ok := models.ParseCategory(catalogCategory)
		if !ok {
			return fmt.Errorf("unknown category %q", catalogCategory)
		}
		fmt.Fprintln(out, format.ProductList(catalog.ListByCategory(category), services.CategoryLabel(category)))
		return nil
	}

	fmt.Fprintf(out, "✅ %d products loaded\n\n", len(catalog.Products()))
	for _, category := range models.AllCategories {
		items := catalog.ListByCategory(category)
		if len(items) == 0 {
			continue
		}
		fmt.Fprintln(out, format.ProductList(items, services.CategoryLabel(category)))
		fmt.Fprintln(out)
	}
	return nil
}
