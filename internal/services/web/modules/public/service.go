package public

import (
	"context"
	"log"

	"github.com/louisbranch/pawprint/internal/services/web/integration/petapi"
)

const recommendedLimit = 3

type service struct {
	gateway CampaignGateway
}

func newService(gateway CampaignGateway) service {
	return service{gateway: gateway}
}

// recommended never fails the landing page; the section is simply left out.
func (s service) recommended(ctx context.Context) []petapi.Campaign {
	if s.gateway == nil {
		return nil
	}
	campaigns, err := s.gateway.RecommendedCampaignsFor(ctx, "", recommendedLimit)
	if err != nil {
		log.Printf("home recommendations failed err=%v", err)
		return nil
	}
	return campaigns
}
