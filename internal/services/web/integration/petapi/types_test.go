package petapi

import (
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

func TestPetUnmarshalAcceptsLegacyFields(t *testing.T) {
	t.Parallel()

	var pet Pet
	raw := `{"_id":"p1","name":"Tom","image":"https://img/tom.png","age":"4","petCategory":"CAT","adopted":true}`
	if err := json.Unmarshal([]byte(raw), &pet); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if pet.Name != "Tom" || pet.Image != "https://img/tom.png" || pet.Age != 4 {
		t.Fatalf("pet = %+v", pet)
	}
	if pet.Category != CategoryCat || !pet.Adopted {
		t.Fatalf("pet = %+v, want cat adopted", pet)
	}
}

func TestAmountsEncodeAsJSONNumbers(t *testing.T) {
	t.Parallel()

	goal := decimal.RequireFromString("150.25")
	tests := []struct {
		name  string
		value any
		want  []string
	}{
		{name: "campaign", value: Campaign{PetName: "Rex", MaxDonation: goal, DonatedAmount: decimal.NewFromInt(10)}, want: []string{`"maxDonation":150.25`, `"donatedAmount":10`, `"petName":"Rex"`}},
		{name: "campaign patch", value: CampaignPatch{MaxDonation: &goal}, want: []string{`"maxDonation":150.25`}},
		{name: "donation", value: Donation{CampaignID: "c-1", Amount: goal}, want: []string{`"amount":150.25`, `"campaignId":"c-1"`}},
	}
	for _, tc := range tests {
		raw, err := json.Marshal(tc.value)
		if err != nil {
			t.Fatalf("%s: Marshal() error = %v", tc.name, err)
		}
		for _, want := range tc.want {
			if !strings.Contains(string(raw), want) {
				t.Fatalf("%s: %s missing %s", tc.name, raw, want)
			}
		}
		if strings.Count(string(raw), `"maxDonation"`) > 1 || strings.Count(string(raw), `"amount"`) > 1 {
			t.Fatalf("%s: duplicated field in %s", tc.name, raw)
		}
	}

	raw, err := json.Marshal(CampaignPatch{})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(raw) != `{}` {
		t.Fatalf("empty patch = %s, want {}", raw)
	}
	// Plain decimals elsewhere in the binary keep their default quoted form.
	plain, err := json.Marshal(goal)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(plain) != `"150.25"` {
		t.Fatalf("plain decimal = %s, want quoted", plain)
	}
}

func TestPetMarshalUsesCurrentFields(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(Pet{Name: "Rex", Age: 2, Category: CategoryDog})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if body["petName"] != "Rex" || body["petAge"] != float64(2) {
		t.Fatalf("body = %v", body)
	}
	if _, ok := body["name"]; ok {
		t.Fatal("legacy name should not be written")
	}
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	if got := ParseCategory(" Rabbit "); got != CategoryRabbit {
		t.Fatalf("ParseCategory() = %q, want rabbit", got)
	}
	if got := ParseCategory("dragon"); got != "" {
		t.Fatalf("ParseCategory(dragon) = %q, want empty", got)
	}
}

func TestCampaignProgressAndClosed(t *testing.T) {
	t.Parallel()

	campaign := Campaign{MaxDonation: decimal.NewFromInt(200), DonatedAmount: decimal.NewFromInt(500), LastDate: "2026-01-10"}
	if got := campaign.Progress(); got != 100 {
		t.Fatalf("Progress() = %d, want capped 100", got)
	}
	if got := (Campaign{}).Progress(); got != 0 {
		t.Fatalf("Progress() without goal = %d, want 0", got)
	}
	if campaign.Closed(time.Date(2026, 1, 10, 20, 0, 0, 0, time.UTC)) {
		t.Fatal("campaign should accept donations on its last day")
	}
	if !campaign.Closed(time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("campaign should close after its last day")
	}
	campaign.Paused = true
	if !campaign.Closed(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("paused campaign should be closed")
	}
}
