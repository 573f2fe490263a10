package api

import "time"

// PurchaseItem is one brand line of a purchase.
type PurchaseItem struct {
	ECBrandID int    `json:"ec_brand_id"`
	Category  string `json:"category"`
	Picture   string `json:"picture,omitempty"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Count     int    `json:"count"`
	ECSetID   int    `json:"ec_set_id"`
}

// Purchaselog is one purchase in the user's history.
type Purchaselog struct {
	PurchaseID       int            `json:"purchase_id"`
	DateTime         string         `json:"date_time"`
	TotalAmount      int            `json:"total_amount"`
	TotalCans        int            `json:"total_cans"`
	SurveyCompletion bool           `json:"survey_completion"`
	Details          []PurchaseItem `json:"details"`
}

// PurchasedAt parses DateTime. The backend sends ISO timestamps with or
// without a zone.
func (p Purchaselog) PurchasedAt() (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, p.DateTime, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &time.ParseError{Layout: time.RFC3339, Value: p.DateTime}
}

// PurchaselogPage is one page of purchase history.
type PurchaselogPage struct {
	Page        int           `json:"page"`
	TotalPage   int           `json:"total_page"`
	Purchaselog []Purchaselog `json:"purchaselog"`
}

// User is a profile as returned by /user_with_photos.
type User struct {
	UserID      int    `json:"user_id"`
	UserName    string `json:"user_name"`
	UserProfile string `json:"user_profile"`
	UserPicture string `json:"user_picture"`
}

// Photo is a user-posted photo, base64 encoded.
type Photo struct {
	PhotoID   int    `json:"photo_id"`
	PhotoData string `json:"photo_data"`
}

// UserWithPhotos is the /user_with_photos response.
type UserWithPhotos struct {
	User   User    `json:"user"`
	Photos []Photo `json:"photos"`
}

// Brand is a beer brand.
type Brand struct {
	BrandID   int    `json:"brand_id"`
	BrandName string `json:"brand_name"`
}

// Item is a taste attribute a user can score.
type Item struct {
	ItemID   int    `json:"item_id"`
	ItemName string `json:"item_name"`
}

// Preference is the user's score for one Item.
type Preference struct {
	UserID int  `json:"user_id"`
	ItemID int  `json:"item_id"`
	Score  int  `json:"score"`
	Item   Item `json:"item"`
}

// Preference score bounds.
const (
	MinScore = 1
	MaxScore = 5
)

// Token is the /token response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
