package petapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/louisbranch/pawprint/internal/collection"
	"github.com/louisbranch/pawprint/internal/platform/pagination"
)

// PetPageSize is the listing page size used by the pets grid.
const PetPageSize = 9

// PetQuery filters a pet listing.
type PetQuery struct {
	Search   string
	Category Category
	// OwnerID restricts the listing to one user's pets.
	OwnerID string
}

// Encode renders the query as URL parameters, used to bind cursors.
func (q PetQuery) Encode() string {
	return q.values().Encode()
}

func (q PetQuery) values() url.Values {
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Category != "" {
		values.Set("category", string(q.Category))
	}
	if q.OwnerID != "" {
		values.Set("userId", q.OwnerID)
	}
	return values
}

// PetPage is one page of the pet listing.
type PetPage struct {
	Pets    []Pet
	Total   int
	HasMore bool
}

// ListPets loads one page of pets matching q.
func (c *Client) ListPets(ctx context.Context, q PetQuery, page, limit int) (PetPage, error) {
	result, err := c.listPets(ctx, q, page, limit)
	if err != nil {
		return PetPage{}, err
	}
	canonical := result.page(page, limit)
	out := PetPage{Pets: canonical.Items, HasMore: canonical.HasMore}
	if result.Total != nil {
		out.Total = *result.Total
	}
	return out, nil
}

func (c *Client) listPets(ctx context.Context, q PetQuery, page, limit int) (listing[Pet], error) {
	values := q.values()
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	body, err := c.send(ctx, request{method: http.MethodGet, path: "/pets", query: values})
	if err != nil {
		return listing[Pet]{}, err
	}
	return decodeListing[Pet](body, "pets")
}

// PetFetcher adapts the pets endpoint to a collection fetcher.
func (c *Client) PetFetcher(limit int) collection.FetchFunc[PetQuery, Pet] {
	limit = pagination.ClampPageSize(limit, pagination.PageSizeConfig{Default: PetPageSize, Max: 50})
	return func(ctx context.Context, q PetQuery, cursor string) (collection.Page[Pet], error) {
		page, err := pagination.ParsePage(cursor)
		if err != nil {
			return collection.Page[Pet]{}, err
		}
		result, err := c.listPets(ctx, q, page, limit)
		if err != nil {
			return collection.Page[Pet]{}, err
		}
		return result.page(page, limit), nil
	}
}

// GetPet loads one pet.
func (c *Client) GetPet(ctx context.Context, id string) (Pet, error) {
	var pet Pet
	err := c.do(ctx, request{method: http.MethodGet, path: "/pets/" + escape(id)}, &pet)
	return pet, err
}

// CreatePet stores a new listing and returns the server copy.
func (c *Client) CreatePet(ctx context.Context, pet Pet) (Pet, error) {
	if pet.CreatedAt.IsZero() {
		pet.CreatedAt = time.Now().UTC()
	}
	pet.ID = ""
	var created createdResponse
	if err := c.do(ctx, request{
		method:         http.MethodPost,
		path:           "/pets",
		body:           pet,
		idempotencyKey: uuid.NewString(),
	}, &created); err != nil {
		return Pet{}, err
	}
	pet.ID = created.id()
	return pet, nil
}

// UpdatePet applies a partial update.
func (c *Client) UpdatePet(ctx context.Context, id string, patch PetPatch) error {
	return c.do(ctx, request{method: http.MethodPatch, path: "/pets/" + escape(id), body: patch}, nil)
}

// SetPetAdopted toggles the adopted flag.
func (c *Client) SetPetAdopted(ctx context.Context, id string, adopted bool) error {
	return c.UpdatePet(ctx, id, PetPatch{Adopted: &adopted})
}

// DeletePet removes a listing.
func (c *Client) DeletePet(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/pets/" + escape(id)}, nil)
}

// createdResponse covers both {"insertedId": ...} and {"_id": ...} replies.
type createdResponse struct {
	InsertedID string `json:"insertedId"`
	ID         string `json:"_id"`
}

func (r createdResponse) id() string {
	if r.InsertedID != "" {
		return r.InsertedID
	}
	return r.ID
}
