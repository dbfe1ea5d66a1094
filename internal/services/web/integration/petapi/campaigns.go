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

const (
	// CampaignPageSize is the listing page size used by the campaigns grid.
	CampaignPageSize = 6
	// RecommendedCampaigns bounds the "you may also like" strip.
	RecommendedCampaigns = 3
)

// CampaignQuery filters a campaign listing.
type CampaignQuery struct {
	OwnerID string
}

// Encode renders the query as URL parameters, used to bind cursors.
func (q CampaignQuery) Encode() string {
	return q.values().Encode()
}

func (q CampaignQuery) values() url.Values {
	values := url.Values{}
	if q.OwnerID != "" {
		values.Set("userId", q.OwnerID)
	}
	return values
}

func (c *Client) listCampaigns(ctx context.Context, q CampaignQuery, page, limit int) (listing[Campaign], error) {
	values := q.values()
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	body, err := c.send(ctx, request{method: http.MethodGet, path: "/donation-campaigns", query: values})
	if err != nil {
		return listing[Campaign]{}, err
	}
	return decodeListing[Campaign](body, "campaigns")
}

// CampaignFetcher adapts the campaigns endpoint to a collection fetcher.
func (c *Client) CampaignFetcher(limit int) collection.FetchFunc[CampaignQuery, Campaign] {
	limit = pagination.ClampPageSize(limit, pagination.PageSizeConfig{Default: CampaignPageSize, Max: 50})
	return func(ctx context.Context, q CampaignQuery, cursor string) (collection.Page[Campaign], error) {
		page, err := pagination.ParsePage(cursor)
		if err != nil {
			return collection.Page[Campaign]{}, err
		}
		result, err := c.listCampaigns(ctx, q, page, limit)
		if err != nil {
			return collection.Page[Campaign]{}, err
		}
		return result.page(page, limit), nil
	}
}

// RecommendedCampaignsFor returns up to limit active campaigns other than
// excludeID.
func (c *Client) RecommendedCampaignsFor(ctx context.Context, excludeID string, limit int) ([]Campaign, error) {
	if limit <= 0 {
		limit = RecommendedCampaigns
	}
	// One extra so dropping the current campaign still fills the strip.
	result, err := c.listCampaigns(ctx, CampaignQuery{}, 0, limit+1)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]Campaign, 0, limit)
	for _, campaign := range result.Items {
		if campaign.ID == excludeID || campaign.Closed(now) {
			continue
		}
		out = append(out, campaign)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// GetCampaign loads one campaign.
func (c *Client) GetCampaign(ctx context.Context, id string) (Campaign, error) {
	var campaign Campaign
	err := c.do(ctx, request{method: http.MethodGet, path: "/donation-campaigns/" + escape(id)}, &campaign)
	return campaign, err
}

// CreateCampaign stores a new campaign and returns the server copy.
func (c *Client) CreateCampaign(ctx context.Context, campaign Campaign) (Campaign, error) {
	if campaign.CreatedAt.IsZero() {
		campaign.CreatedAt = time.Now().UTC()
	}
	campaign.ID = ""
	var created createdResponse
	if err := c.do(ctx, request{
		method:         http.MethodPost,
		path:           "/donation-campaigns",
		body:           campaign,
		idempotencyKey: uuid.NewString(),
	}, &created); err != nil {
		return Campaign{}, err
	}
	campaign.ID = created.id()
	return campaign, nil
}

// UpdateCampaign applies a partial update.
func (c *Client) UpdateCampaign(ctx context.Context, id string, patch CampaignPatch) error {
	return c.do(ctx, request{method: http.MethodPatch, path: "/donation-campaigns/" + escape(id), body: patch}, nil)
}

// SetCampaignPaused pauses or resumes donations.
func (c *Client) SetCampaignPaused(ctx context.Context, id string, paused bool) error {
	return c.UpdateCampaign(ctx, id, CampaignPatch{Paused: &paused})
}

// DeleteCampaign removes a campaign.
func (c *Client) DeleteCampaign(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/donation-campaigns/" + escape(id)}, nil)
}
