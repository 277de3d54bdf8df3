package handlers

import "lifesource-backend/internal/models"

// sampleCatalogMessage labels the degraded payload so the frontend can show
// a "sample data" banner instead of passing the items off as live.
const sampleCatalogMessage = "live catalog unavailable, showing sample items"

var sampleProducts = []models.Product{
	{
		ID:          "sample-pcr-kit",
		Title:       "Advanced PCR Kit (sample)",
		Description: "Sample catalog entry shown while the live catalog is unavailable.",
		Slug:        "advanced-pcr-kit-sample",
		Category:    "molecular-biology",
		Features:    []string{"96-well format", "hot-start polymerase"},
		Images:      []string{},
		Specifications: map[string]string{
			"reactions": "200",
		},
		IsActive: true,
	},
	{
		ID:             "sample-centrifuge",
		Title:          "Benchtop Centrifuge (sample)",
		Description:    "Sample catalog entry shown while the live catalog is unavailable.",
		Slug:           "benchtop-centrifuge-sample",
		Category:       "lab-equipment",
		Features:       []string{"15,000 rpm", "24-place rotor"},
		Images:         []string{},
		Specifications: map[string]string{},
		IsActive:       true,
	},
}

var sampleServices = []models.Service{
	{
		ID:          "sample-calibration",
		Title:       "Instrument Calibration (sample)",
		Description: "Sample catalog entry shown while the live catalog is unavailable.",
		Slug:        "instrument-calibration-sample",
		Category:    "calibration",
		Features:    []string{"on-site", "certificate included"},
		IsActive:    true,
	},
}
