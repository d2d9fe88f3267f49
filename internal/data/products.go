package data

import "github.com/Roshen-Perera/whatsapp-bot-test/internal/models"

// DefaultProducts returns the built-in catalog used when no catalog file is configured.
// A fresh slice is returned on every call.
func DefaultProducts() []models.Product {
	return []models.Product{
		{
			ID:          "CEM-TS-50",
			Name:        "Tokyo Super Cement 50kg",
			UnitPrice:   2200,
			Description: "High-strength Portland cement",
			Category:    models.CategoryCement,
			Available:   true,
			Unit:        "bag",
		},
		{
			ID:          "CEM-HOL-50",
			Name:        "Holcim Cement 50kg",
			UnitPrice:   2150,
			Description: "General purpose cement",
			Category:    models.CategoryCement,
			Available:   true,
			Unit:        "bag",
		},
		{
			ID:          "PAI-NIP-4L",
			Name:        "Nippon Weatherbond 4L",
			UnitPrice:   6500,
			Description: "Exterior emulsion paint",
			Category:    models.CategoryPaint,
			Available:   true,
			Unit:        "L",
		},
		{
			ID:          "TOO-BOS-DRL",
			Name:        "Bosch Impact Drill 13mm",
			UnitPrice:   18990,
			Description: "650W impact drill with case",
			Category:    models.CategoryTools,
			Available:   true,
			Unit:        "pcs",
		},
		{
			ID:          "PLU-PVC-1",
			Name:        `PVC Pipe 1" (10ft)`,
			UnitPrice:   1150,
			Description: "Class M PVC pipe",
			Category:    models.CategoryPlumbing,
			Available:   true,
			Unit:        "pcs",
		},
		{
			ID:          "ELE-LED-12W",
			Name:        "LED Bulb 12W",
			UnitPrice:   520,
			Description: "Cool white, E27",
			Category:    models.CategoryElectrical,
			Available:   true,
			Unit:        "pcs",
		},
	}
}
