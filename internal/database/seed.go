package database

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"wastex-backend/internal/models"
)

type seedListing struct {
	Title       string
	Description string
	Category    string
	Quality     string
	Price       float64
	Quantity    string
	Images      []string
}

var demoListings = []seedListing{
	{
		Title:       "500kg Clean PET Flakes",
		Description: "High-quality PET flakes, sorted and washed. Ready for industrial processing. Minimal contamination.",
		Category:    "Plastic",
		Quality:     "Sorted/Clean",
		Price:       450,
		Quantity:    "500kg",
		Images:      []string{"https://loremflickr.com/800/600/plastic,recycling", "https://loremflickr.com/800/600/bottles,plastic"},
	},
	{
		Title:       "Mixed Aluminum Scrap",
		Description: "Industrial aluminum scrap from manufacturing offcuts. Mostly 6061 and 7075 alloys.",
		Category:    "Metal",
		Quality:     "Industrial Grade",
		Price:       1200,
		Quantity:    "1 Ton",
		Images:      []string{"https://loremflickr.com/800/600/metal,scrap"},
	},
	{
		Title:       "Bulk Cardboard Bales",
		Description: "OCC (Old Corrugated Containers) bales. Dry and tightly packed. 20 bales available.",
		Category:    "Paper",
		Quality:     "Sorted/Clean",
		Price:       150,
		Quantity:    "5 Tons",
		Images:      []string{"https://loremflickr.com/800/600/paper,cardboard"},
	},
	{
		Title:       "E-Waste: Mixed Circuit Boards",
		Description: "Assorted circuit boards from consumer electronics. Untested, sold for precious metal recovery.",
		Category:    "Electronic",
		Quality:     "Raw/Contaminated",
		Price:       800,
		Quantity:    "100kg",
		Images:      []string{"https://loremflickr.com/800/600/electronics,circuit"},
	},
	{
		Title:       "Crushed Clear Glass Cullet",
		Description: "Clear glass cullet, crushed to 10-20mm size. Free from ceramics and organics.",
		Category:    "Glass",
		Quality:     "Sorted/Clean",
		Price:       300,
		Quantity:    "2 Tons",
		Images:      []string{"https://loremflickr.com/800/600/glass,bottles"},
	},
	{
		Title:       "Organic Compost Material",
		Description: "Pre-processed organic waste suitable for large-scale composting facilities.",
		Category:    "Organic",
		Quality:     "Unsorted/Mixed",
		Price:       50,
		Quantity:    "10 Tons",
		Images:      []string{"https://loremflickr.com/800/600/compost,soil"},
	},
	{
		Title:       "Cotton Textile Scraps",
		Description: "100% cotton textile scraps from garment factory. Sorted by color (mostly white).",
		Category:    "Textile",
		Quality:     "Industrial Grade",
		Price:       200,
		Quantity:    "250kg",
		Images:      []string{"https://loremflickr.com/800/600/fabric,textile"},
	},
}

// Seed ensures an admin account exists and, when the store is empty, creates a
// demo seller with a batch of fixed-price listings.
func Seed(db *gorm.DB) error {
	var adminCount int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount).Error; err != nil {
		return err
	}
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := models.User{
			Email:        "admin@example.com",
			PasswordHash: string(hash),
			FirstName:    "Admin",
			LastName:     "User",
			Role:         models.RoleAdmin,
			IsVerified:   true,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
	}

	var sellerCount int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleSeller).Count(&sellerCount).Error; err != nil {
		return err
	}
	if sellerCount > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		seller := models.User{
			Email:        "seller@example.com",
			PasswordHash: string(hash),
			FirstName:    "John",
			LastName:     "Doe",
			Role:         models.RoleSeller,
			IsVerified:   true,
		}
		if err := tx.Create(&seller).Error; err != nil {
			return err
		}
		for _, l := range demoListings {
			listing := models.Listing{
				SellerID:          seller.ID,
				Title:             l.Title,
				Description:       l.Description,
				Category:          l.Category,
				Quality:           l.Quality,
				PriceType:         models.PriceTypeFixed,
				Price:             l.Price,
				Quantity:          l.Quantity,
				Status:            models.StatusActive,
				IsVerified:        true,
				VerificationNotes: "AI Verified: Material matches description and category.",
			}
			if err := tx.Create(&listing).Error; err != nil {
				return err
			}
			for _, img := range l.Images {
				if err := tx.Create(&models.ListingImage{ListingID: listing.ID, ImageURL: img}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
