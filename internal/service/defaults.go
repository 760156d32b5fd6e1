package service

import "github.com/Skotchmaster/storefront/internal/models"

var defaultProducts = []models.Product{
	{ID: 1, Title: "Engineering Mathematics (Semester Book)", Category: "Academic Book", Price: 450},
	{ID: 2, Title: "Objective Quantitative Aptitude", Category: "Competitive Exam", Price: 380},
	{ID: 3, Title: "A4 Spiral Notebook (200 Pages)", Category: "Stationery", Price: 120},
	{ID: 4, Title: "Premium Ball Pen (Pack of 5)", Category: "Stationery", Price: 90},
	{ID: 5, Title: "Hardbound Journal Diary", Category: "Journals", Price: 260},
	{ID: 6, Title: "Study Table Lamp (LED)", Category: "Accessories", Price: 799},
}

// DefaultProducts returns a fresh copy of the seed catalog.
func DefaultProducts() []models.Product {
	out := make([]models.Product, len(defaultProducts))
	copy(out, defaultProducts)
	return out
}
