package libssk

import "time"

// Filterable attributes of a hit.
const (
	AttributeObjectID   = "objectID"
	AttributeListID     = "listId"
	AttributeOwnerID    = "ownerId"
	AttributeVisibility = "visibility"
	AttributeCategories = "categories"
	AttributeCategoryID = "categoryIds"
	AttributeTags       = "tags"
	AttributePrice      = "price"
	AttributeVerdict    = "verdict"
	AttributeCreatedAt  = "createdAt"
)

// Visibility of a list.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// MaxImages is the number of images a food can have, the first one is the cover.
const MaxImages = 4

// MaxNameLength is the maximum length of a food name.
const MaxNameLength = 140

// A PriceTier is an affordability bucket.
type PriceTier string

// Price tiers.
const (
	PriceCheap     PriceTier = "1"
	PriceModerate  PriceTier = "2"
	PriceExpensive PriceTier = "3"
	PriceLuxury    PriceTier = "4"
)

// PriceTiers lists all price tiers, from the cheapest.
var PriceTiers = []PriceTier{PriceCheap, PriceModerate, PriceExpensive, PriceLuxury}

// Label returns the human representation of the tier.
func (p PriceTier) Label() string {
	switch p {
	case PriceCheap:
		return "$"
	case PriceModerate:
		return "$$"
	case PriceExpensive:
		return "$$$"
	case PriceLuxury:
		return "$$$$"
	default:
		return ""
	}
}

// Valid returns true for a known tier.
func (p PriceTier) Valid() bool {
	return p.Label() != ""
}

// A Verdict is the qualitative recommendation of a food.
type Verdict string

// Verdicts.
const (
	VerdictMustTry     Verdict = "must-try"
	VerdictRecommended Verdict = "recommended"
	VerdictOkay        Verdict = "okay"
	VerdictAvoid       Verdict = "avoid"
)

// Verdicts lists all verdicts, from the best.
var Verdicts = []Verdict{VerdictMustTry, VerdictRecommended, VerdictOkay, VerdictAvoid}

// Valid returns true for a known verdict.
func (v Verdict) Valid() bool {
	for _, verdict := range Verdicts {
		if v == verdict {
			return true
		}
	}
	return false
}

type (
	// A User is the public profile of a user.
	User struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		Email           string `json:"email,omitempty"`
		ProfileImageURL string `json:"profile_image_url"`
	}

	// A List is a named collection of foods owned by a user.
	List struct {
		ID          string    `json:"id"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
		Visibility  string    `json:"visibility"`
		User        User      `json:"user"`
		CreatedAt   time.Time `json:"created_at"`
	}

	// A Category is a food category.
	Category struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	// A Food is a reviewed food entry.
	Food struct {
		ID          string     `json:"id"`
		ListID      string     `json:"list_id"`
		Name        string     `json:"name"`
		Description string     `json:"description"`
		Categories  []Category `json:"categories"`
		Tags        []string   `json:"tags"`
		Address     string     `json:"address"`
		Price       PriceTier  `json:"price"`
		Verdict     Verdict    `json:"verdict"`
		CoverImage  string     `json:"cover_image"`
		Images      []string   `json:"images"`
		CreatedAt   time.Time  `json:"created_at"`
	}

	// CreateListParams are used to create a list.
	CreateListParams struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Visibility  string `json:"visibility"`
	}

	// AddFoodParams are used to add a food to a list.
	// The cover image is the first image.
	AddFoodParams struct {
		ListID      string    `json:"-"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
		CategoryIDs []string  `json:"category_ids"`
		TagNames    []string  `json:"tag_names"`
		Address     string    `json:"address"`
		Price       PriceTier `json:"price"`
		Verdict     Verdict   `json:"verdict"`
		CoverImage  string    `json:"cover_image"` // Defaults to the first image
		Images      []string  `json:"images"`
	}
)
