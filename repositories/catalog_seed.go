package repositories

import (
	"lumina-store/models"

	"github.com/shopspring/decimal"
)

func price(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func pricePtr(v string) *decimal.Decimal {
	d := price(v)
	return &d
}

var seedCategories = []models.Category{
	{ID: "electronics", Name: "Electronics", Icon: "Cpu"},
	{ID: "fashion", Name: "Fashion", Icon: "Shirt"},
	{ID: "home", Name: "Home & Living", Icon: "Home"},
	{ID: "beauty", Name: "Beauty", Icon: "Sparkles"},
	{ID: "sports", Name: "Sports", Icon: "Activity"},
	{ID: "accessories", Name: "Accessories", Icon: "Watch"},
}

var seedProducts = []models.Product{
	{
		ID:            1,
		Name:          "Lumina X1 Noise-Canceling Headphones",
		Category:      "Electronics",
		Price:         price("299.00"),
		OriginalPrice: pricePtr("349.00"),
		Rating:        4.8,
		Reviews:       124,
		Image:         "https://picsum.photos/id/1/800/800",
		Images:        []string{"https://picsum.photos/id/1/800/800", "https://picsum.photos/id/2/800/800", "https://picsum.photos/id/3/800/800"},
		Description:   "Experience silence like never before with the Lumina X1. Featuring industry-leading active noise cancellation and 30-hour battery life.",
		Features:      []string{"Active Noise Cancellation", "30-hour battery", "Premium leather earcups", "USB-C Fast Charging"},
		Colors:        []string{"#000000", "#E5E7EB", "#1F2937"},
		IsNew:         true,
	},
	{
		ID:          2,
		Name:        "Minimalist Chronograph Watch",
		Category:    "Accessories",
		Price:       price("189.00"),
		Rating:      4.9,
		Reviews:     89,
		Image:       "https://picsum.photos/id/175/800/800",
		Images:      []string{"https://picsum.photos/id/175/800/800", "https://picsum.photos/id/176/800/800"},
		Description: "A timeless piece for the modern individual. Sapphire crystal glass and genuine Italian leather strap.",
		Features:    []string{"Sapphire Crystal", "5ATM Water Resistance", "Italian Leather", "Swiss Movement"},
		Colors:      []string{"#374151", "#92400E"},
	},
	{
		ID:            3,
		Name:          "Designer Denim Jacket",
		Category:      "Fashion",
		Price:         price("129.00"),
		OriginalPrice: pricePtr("159.00"),
		Rating:        4.5,
		Reviews:       215,
		Image:         "https://picsum.photos/id/338/800/800",
		Images:        []string{"https://picsum.photos/id/338/800/800", "https://picsum.photos/id/339/800/800"},
		Description:   "Vintage inspired, modern fit. Hand-distressed denim that gets better with age.",
		Features:      []string{"100% Cotton", "Hand-distressed", "Custom hardware", "Slim fit"},
		Colors:        []string{"#1E3A8A", "#000000"},
		Sizes:         []string{"S", "M", "L", "XL"},
		IsSale:        true,
	},
	{
		ID:          4,
		Name:        "Smart Home Assistant Hub",
		Category:    "Electronics",
		Price:       price("89.00"),
		Rating:      4.2,
		Reviews:     540,
		Image:       "https://picsum.photos/id/366/800/800",
		Images:      []string{"https://picsum.photos/id/366/800/800"},
		Description: "Control your entire home with your voice. The new Hub connects seamlessly to all your smart devices.",
		Features:    []string{"Voice Control", "Touch Screen", "Zigbee Hub", "High-fidelity Speaker"},
		Colors:      []string{"#FFFFFF", "#1F2937"},
		IsNew:       true,
	},
	{
		ID:          5,
		Name:        "Organic Bamboo Bedding Set",
		Category:    "Home & Living",
		Price:       price("149.00"),
		Rating:      4.7,
		Reviews:     320,
		Image:       "https://picsum.photos/id/449/800/800",
		Images:      []string{"https://picsum.photos/id/449/800/800", "https://picsum.photos/id/450/800/800"},
		Description: "Sleep in luxury with our 100% organic bamboo sheets. Naturally cooling and hypoallergenic.",
		Features:    []string{"100% Organic Bamboo", "300 Thread Count", "Cooling Technology", "Eco-friendly"},
		Colors:      []string{"#F3F4F6", "#D1D5DB", "#A7F3D0"},
		Sizes:       []string{"Queen", "King", "California King"},
	},
	{
		ID:          6,
		Name:        "Pro-Series Yoga Mat",
		Category:    "Sports",
		Price:       price("65.00"),
		Rating:      4.6,
		Reviews:     150,
		Image:       "https://picsum.photos/id/486/800/800",
		Images:      []string{"https://picsum.photos/id/486/800/800"},
		Description: "Non-slip, high density cushioning for the perfect practice. Includes carrying strap.",
		Features:    []string{"Non-slip surface", "6mm thickness", "Eco-friendly material", "Carrying strap included"},
		Colors:      []string{"#818CF8", "#F472B6", "#34D399"},
	},
	{
		ID:          7,
		Name:        "Hydrating Facial Serum",
		Category:    "Beauty",
		Price:       price("45.00"),
		Rating:      4.9,
		Reviews:     890,
		Image:       "https://picsum.photos/id/514/800/800",
		Images:      []string{"https://picsum.photos/id/514/800/800"},
		Description: "Revitalize your skin with Hyaluronic acid and Vitamin C. Dermatologist tested.",
		Features:    []string{"Hyaluronic Acid", "Vitamin C", "Cruelty-free", "Vegan"},
		Colors:      []string{},
		IsNew:       true,
	},
	{
		ID:            8,
		Name:          "Wireless Charging Pad",
		Category:      "Electronics",
		Price:         price("39.00"),
		OriginalPrice: pricePtr("59.00"),
		Rating:        4.3,
		Reviews:       210,
		Image:         "https://picsum.photos/id/61/800/800",
		Images:        []string{"https://picsum.photos/id/61/800/800"},
		Description:   "Fast charging for all Qi-enabled devices. Sleek aluminum design.",
		Features:      []string{"15W Fast Charging", "Qi Certified", "Aluminum Body", "LED Indicator"},
		Colors:        []string{"#000000", "#FFFFFF"},
		IsSale:        true,
	},
}

// SeedCategories returns a copy of the storefront categories.
func SeedCategories() []models.Category {
	out := make([]models.Category, len(seedCategories))
	copy(out, seedCategories)
	return out
}
