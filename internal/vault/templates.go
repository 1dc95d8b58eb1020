package vault

import "github.com/MKhiriev/onelock/models"

const templateNote = " (This is a template - replace with your actual credentials)"

// StarterTemplates returns the sample records offered on first setup.
// They carry no id or timestamps; Import assigns them.
func StarterTemplates() []models.Credential {
	templates := []models.Credential{
		{
			Title:      "Facebook",
			Username:   "your.email@example.com",
			Email:      "your.email@example.com",
			Secret:     "YourSecurePassword123!",
			URL:        "https://facebook.com",
			Category:   models.CategorySocial,
			IsFavorite: true,
			Notes:      "Social media account",
		},
		{
			Title:    "Gmail",
			Username: "your.email@gmail.com",
			Email:    "your.email@gmail.com",
			Secret:   "YourEmailPassword456#",
			URL:      "https://gmail.com",
			Category: models.CategoryWork,
			Notes:    "Primary email account",
		},
		{
			Title:      "Chase Bank",
			Username:   "your_username",
			Email:      "your.email@example.com",
			Secret:     "YourBankPassword789$",
			URL:        "https://chase.com",
			Category:   models.CategoryFinance,
			IsFavorite: true,
			Notes:      "Online banking",
		},
		{
			Title:    "Amazon",
			Username: "your.email@example.com",
			Email:    "your.email@example.com",
			Secret:   "YourShoppingPassword2024@",
			URL:      "https://amazon.com",
			Category: models.CategoryShopping,
			Notes:    "Online shopping account",
		},
		{
			Title:    "Netflix",
			Username: "your.email@example.com",
			Email:    "your.email@example.com",
			Secret:   "YourStreamingPassword!",
			URL:      "https://netflix.com",
			Category: models.CategoryEntertainment,
			Notes:    "Streaming service",
		},
		{
			Title:      "GitHub",
			Username:   "your_github_username",
			Email:      "your.email@example.com",
			Secret:     "YourDevPassword123#",
			URL:        "https://github.com",
			Category:   models.CategoryWork,
			IsFavorite: true,
			Notes:      "Development platform",
		},
	}

	for i := range templates {
		templates[i].Notes += templateNote
	}
	return templates
}
