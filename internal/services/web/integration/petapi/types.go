package petapi

import (
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Category is a pet species filter value.
type Category string

const (
	CategoryCat    Category = "cat"
	CategoryDog    Category = "dog"
	CategoryFish   Category = "fish"
	CategoryRabbit Category = "rabbit"
	CategoryPigeon Category = "pigeon"
	CategoryBird   Category = "bird"
)

// Categories lists the supported categories in display order.
var Categories = []Category{CategoryCat, CategoryDog, CategoryFish, CategoryRabbit, CategoryPigeon, CategoryBird}

// ParseCategory normalizes a filter value. Unknown values yield "".
func ParseCategory(raw string) Category {
	value := Category(strings.ToLower(strings.TrimSpace(raw)))
	for _, category := range Categories {
		if category == value {
			return value
		}
	}
	return ""
}

// Pet is one adoptable animal listing.
type Pet struct {
	ID               string
	Name             string
	Image            string
	Age              int
	Category         Category
	Location         string
	Color            string
	Breed            string
	ShortDescription string
	LongDescription  string
	Adopted          bool
	CreatedAt        time.Time
	OwnerID          string
}

// Key returns the collection key of the pet.
func (p Pet) Key() string { return p.ID }

type wirePet struct {
	ID               string          `json:"_id,omitempty"`
	Name             string          `json:"petName"`
	LegacyName       string          `json:"name,omitempty"`
	Image            string          `json:"petImage"`
	LegacyImage      string          `json:"image,omitempty"`
	Age              json.RawMessage `json:"petAge,omitempty"`
	LegacyAge        json.RawMessage `json:"age,omitempty"`
	Category         string          `json:"petCategory"`
	Location         string          `json:"petLocation"`
	Color            string          `json:"petColor,omitempty"`
	Breed            string          `json:"petBreed,omitempty"`
	ShortDescription string          `json:"shortDescription"`
	LongDescription  string          `json:"longDescription"`
	Adopted          bool            `json:"adopted"`
	CreatedAt        *time.Time      `json:"createdAt,omitempty"`
	OwnerID          string          `json:"userId,omitempty"`
}

// UnmarshalJSON accepts both the current field names and the older
// name/image/age spellings some records still carry.
func (p *Pet) UnmarshalJSON(data []byte) error {
	var wire wirePet
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*p = Pet{
		ID:               wire.ID,
		Name:             firstNonEmpty(wire.Name, wire.LegacyName),
		Image:            firstNonEmpty(wire.Image, wire.LegacyImage),
		Category:         ParseCategory(wire.Category),
		Location:         wire.Location,
		Color:            wire.Color,
		Breed:            wire.Breed,
		ShortDescription: wire.ShortDescription,
		LongDescription:  wire.LongDescription,
		Adopted:          wire.Adopted,
		OwnerID:          wire.OwnerID,
	}
	if wire.CreatedAt != nil {
		p.CreatedAt = *wire.CreatedAt
	}
	age, ok := parseAge(wire.Age)
	if !ok {
		age, _ = parseAge(wire.LegacyAge)
	}
	p.Age = age
	return nil
}

// MarshalJSON writes the current field names only.
func (p Pet) MarshalJSON() ([]byte, error) {
	wire := wirePet{
		ID:               p.ID,
		Name:             p.Name,
		Image:            p.Image,
		Age:              json.RawMessage(strconv.Itoa(p.Age)),
		Category:         string(p.Category),
		Location:         p.Location,
		Color:            p.Color,
		Breed:            p.Breed,
		ShortDescription: p.ShortDescription,
		LongDescription:  p.LongDescription,
		Adopted:          p.Adopted,
		OwnerID:          p.OwnerID,
	}
	if !p.CreatedAt.IsZero() {
		created := p.CreatedAt
		wire.CreatedAt = &created
	}
	return json.Marshal(wire)
}

func parseAge(raw json.RawMessage) (int, bool) {
	value := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if value == "" || value == "null" {
		return 0, false
	}
	number, err := strconv.ParseFloat(value, 64)
	if err != nil || number < 0 {
		return 0, false
	}
	return int(number), true
}

// PetPatch is a partial pet update. Nil fields are left untouched.
type PetPatch struct {
	Name             *string `json:"petName,omitempty"`
	Image            *string `json:"petImage,omitempty"`
	Age              *int    `json:"petAge,omitempty"`
	Category         *string `json:"petCategory,omitempty"`
	Location         *string `json:"petLocation,omitempty"`
	Color            *string `json:"petColor,omitempty"`
	Breed            *string `json:"petBreed,omitempty"`
	ShortDescription *string `json:"shortDescription,omitempty"`
	LongDescription  *string `json:"longDescription,omitempty"`
	Adopted          *bool   `json:"adopted,omitempty"`
}

// Campaign is a donation campaign for one pet.
type Campaign struct {
	ID               string          `json:"_id,omitempty"`
	PetName          string          `json:"petName"`
	PetImage         string          `json:"petImage"`
	MaxDonation      decimal.Decimal `json:"maxDonation"`
	DonatedAmount    decimal.Decimal `json:"donatedAmount"`
	LastDate         string          `json:"lastDate"`
	ShortDescription string          `json:"shortDescription"`
	LongDescription  string          `json:"longDescription"`
	Paused           bool            `json:"paused"`
	CreatedAt        time.Time       `json:"createdAt,omitempty"`
	OwnerID          string          `json:"userId,omitempty"`
}

// Key returns the collection key of the campaign.
func (c Campaign) Key() string { return c.ID }

// wireAmount encodes a decimal as a bare JSON number, the form the API
// stores amounts in. Decoding accepts either form through decimal itself.
type wireAmount decimal.Decimal

func (a wireAmount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).String()), nil
}

// MarshalJSON writes the goal and donated total as JSON numbers.
func (c Campaign) MarshalJSON() ([]byte, error) {
	type plain Campaign
	return json.Marshal(struct {
		plain
		MaxDonation   wireAmount `json:"maxDonation"`
		DonatedAmount wireAmount `json:"donatedAmount"`
	}{plain: plain(c), MaxDonation: wireAmount(c.MaxDonation), DonatedAmount: wireAmount(c.DonatedAmount)})
}

// Progress returns the donated share of the goal in whole percent, capped at 100.
func (c Campaign) Progress() int {
	if !c.MaxDonation.IsPositive() {
		return 0
	}
	percent := c.DonatedAmount.Div(c.MaxDonation).Mul(decimal.NewFromInt(100)).IntPart()
	switch {
	case percent < 0:
		return 0
	case percent > 100:
		return 100
	default:
		return int(percent)
	}
}

// Closed reports whether the campaign no longer accepts donations at now.
func (c Campaign) Closed(now time.Time) bool {
	if c.Paused {
		return true
	}
	last, err := time.Parse(time.DateOnly, strings.TrimSpace(c.LastDate))
	if err != nil {
		return false
	}
	return now.After(last.Add(24 * time.Hour))
}

// CampaignPatch is a partial campaign update.
type CampaignPatch struct {
	PetName          *string          `json:"petName,omitempty"`
	PetImage         *string          `json:"petImage,omitempty"`
	MaxDonation      *decimal.Decimal `json:"maxDonation,omitempty"`
	LastDate         *string          `json:"lastDate,omitempty"`
	ShortDescription *string          `json:"shortDescription,omitempty"`
	LongDescription  *string          `json:"longDescription,omitempty"`
	Paused           *bool            `json:"paused,omitempty"`
}

// MarshalJSON writes a changed goal as a JSON number.
func (p CampaignPatch) MarshalJSON() ([]byte, error) {
	type plain CampaignPatch
	return json.Marshal(struct {
		plain
		MaxDonation *wireAmount `json:"maxDonation,omitempty"`
	}{plain: plain(p), MaxDonation: (*wireAmount)(p.MaxDonation)})
}

// Donation is one recorded contribution.
type Donation struct {
	ID         string          `json:"_id,omitempty"`
	CampaignID string          `json:"campaignId"`
	Amount     decimal.Decimal `json:"amount"`
	DonorName  string          `json:"donorName"`
	UserID     string          `json:"userId,omitempty"`
	PetName    string          `json:"petName,omitempty"`
	PetImage   string          `json:"petImage,omitempty"`
	// PaymentIntent is the payment provider's reference for the charge.
	PaymentIntent string    `json:"paymentIntent,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

// Key returns the collection key of the donation.
func (d Donation) Key() string { return d.ID }

// MarshalJSON writes the amount as a JSON number.
func (d Donation) MarshalJSON() ([]byte, error) {
	type plain Donation
	return json.Marshal(struct {
		plain
		Amount wireAmount `json:"amount"`
	}{plain: plain(d), Amount: wireAmount(d.Amount)})
}

// AdoptionStatus is the review state of an adoption request.
type AdoptionStatus string

const (
	AdoptionPending  AdoptionStatus = "pending"
	AdoptionAccepted AdoptionStatus = "accepted"
	AdoptionRejected AdoptionStatus = "rejected"
)

// AdoptionRequest asks a pet owner to hand over a pet.
type AdoptionRequest struct {
	ID        string         `json:"_id,omitempty"`
	PetID     string         `json:"petId"`
	PetName   string         `json:"petName"`
	PetImage  string         `json:"petImage"`
	UserName  string         `json:"userName"`
	UserEmail string         `json:"userEmail"`
	Phone     string         `json:"phone"`
	Address   string         `json:"address"`
	Date      time.Time      `json:"date,omitempty"`
	OwnerID   string         `json:"ownerId,omitempty"`
	Status    AdoptionStatus `json:"status,omitempty"`
}

// Key returns the collection key of the request.
func (r AdoptionRequest) Key() string { return r.ID }

// EffectiveStatus treats a missing status as pending.
func (r AdoptionRequest) EffectiveStatus() AdoptionStatus {
	if r.Status == "" {
		return AdoptionPending
	}
	return r.Status
}

// RoleAdmin marks users allowed into the admin area.
const RoleAdmin = "admin"

// User is an account record.
type User struct {
	ID          string `json:"_id,omitempty"`
	UID         string `json:"uid,omitempty"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photoURL,omitempty"`
	Role        string `json:"role,omitempty"`
}

// Key returns the collection key of the user.
func (u User) Key() string { return u.ID }

// IsAdmin reports whether the user has the admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
