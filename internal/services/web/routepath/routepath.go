// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root         = "/"
	Health       = "/up"
	StaticPrefix = "/static/"

	PetsPrefix = "/pets/"
	Pets       = "/pets"
	PetsMore   = "/pets/more"
	PetPattern = PetsPrefix + "{petID}"

	CampaignsPrefix = "/campaigns/"
	Campaigns       = "/campaigns"
	CampaignsMore   = "/campaigns/more"
	CampaignPattern = CampaignsPrefix + "{campaignID}"

	AuthPrefix  = "/auth/"
	Login       = "/auth/login"
	Register    = "/auth/register"
	AuthSession = "/auth/session"
	Logout      = "/auth/logout"

	AppPrefix    = "/app/"
	AppDashboard = "/app/"
	AppDonations = "/app/donations"

	AppPetsPrefix             = "/app/pets/"
	AppPets                   = "/app/pets"
	AppPetsMore               = "/app/pets/more"
	AppPetsNew                = "/app/pets/new"
	AppPetEditPattern         = AppPetsPrefix + "{petID}/edit"
	AppPetUpdatePattern       = AppPetsPrefix + "{petID}"
	AppPetAdoptedPattern      = AppPetsPrefix + "{petID}/adopted"
	AppPetDeletePattern       = AppPetsPrefix + "{petID}/delete"
	AppPetAdoptRequestPattern = AppPetsPrefix + "{petID}/adopt"

	AppAdoptionsPrefix       = "/app/adoptions/"
	AppAdoptions             = "/app/adoptions"
	AppAdoptionAcceptPattern = AppAdoptionsPrefix + "{requestID}/accept"
	AppAdoptionRejectPattern = AppAdoptionsPrefix + "{requestID}/reject"

	AppCampaignsPrefix       = "/app/campaigns/"
	AppCampaigns             = "/app/campaigns"
	AppCampaignsMore         = "/app/campaigns/more"
	AppCampaignsNew          = "/app/campaigns/new"
	AppCampaignEditPattern   = AppCampaignsPrefix + "{campaignID}/edit"
	AppCampaignUpdatePattern = AppCampaignsPrefix + "{campaignID}"
	AppCampaignPausePattern  = AppCampaignsPrefix + "{campaignID}/pause"
	AppCampaignDonatePattern = AppCampaignsPrefix + "{campaignID}/donate"
	AppCampaignIntentPattern = AppCampaignsPrefix + "{campaignID}/donate/intent"

	AdminPrefix                = "/app/admin/"
	AdminPets                  = "/app/admin/pets"
	AdminPetsMore              = "/app/admin/pets/more"
	AdminPetAdoptedPattern     = AdminPrefix + "pets/{petID}/adopted"
	AdminPetDeletePattern      = AdminPrefix + "pets/{petID}/delete"
	AdminCampaigns             = "/app/admin/campaigns"
	AdminCampaignsMore         = "/app/admin/campaigns/more"
	AdminCampaignPausePattern  = AdminPrefix + "campaigns/{campaignID}/pause"
	AdminCampaignDeletePattern = AdminPrefix + "campaigns/{campaignID}/delete"
	AdminUsers                 = "/app/admin/users"
	AdminUserPromotePattern    = AdminPrefix + "users/{userID}/promote"

	// CursorParam carries the opaque continuation token of infinite lists.
	CursorParam = "cursor"
	ResumeParam = "resume"
)

// Pet returns the public pet detail route.
func Pet(petID string) string {
	return PetsPrefix + escapeSegment(petID)
}

// PetsFiltered returns the public pet listing for a search and category.
func PetsFiltered(search, category string) string {
	query := url.Values{}
	if search = strings.TrimSpace(search); search != "" {
		query.Set("search", search)
	}
	if category = strings.TrimSpace(category); category != "" {
		query.Set("category", category)
	}
	return withQuery(Pets, query)
}

// Campaign returns the public campaign detail route.
func Campaign(campaignID string) string {
	return CampaignsPrefix + escapeSegment(campaignID)
}

// More appends a continuation token to an infinite-list route.
func More(path, token string) string {
	return withQuery(path, url.Values{CursorParam: {token}})
}

// Resumed marks a list route to render the mounted view without refetching.
func Resumed(path string) string {
	return withQuery(path, url.Values{ResumeParam: {"1"}})
}

// AppPetEdit returns the owner's pet edit form route.
func AppPetEdit(petID string) string {
	return AppPetsPrefix + escapeSegment(petID) + "/edit"
}

// AppPetUpdate returns the owner's pet update route.
func AppPetUpdate(petID string) string {
	return AppPetsPrefix + escapeSegment(petID)
}

// AppPetAdopted returns the owner's adopted toggle route.
func AppPetAdopted(petID string) string {
	return AppPetsPrefix + escapeSegment(petID) + "/adopted"
}

// AppPetDelete returns the owner's pet delete route.
func AppPetDelete(petID string) string {
	return AppPetsPrefix + escapeSegment(petID) + "/delete"
}

// AppPetAdoptRequest returns the adoption request route for a pet.
func AppPetAdoptRequest(petID string) string {
	return AppPetsPrefix + escapeSegment(petID) + "/adopt"
}

// AppAdoptionAccept returns the accept route for an adoption request.
func AppAdoptionAccept(requestID string) string {
	return AppAdoptionsPrefix + escapeSegment(requestID) + "/accept"
}

// AppAdoptionReject returns the reject route for an adoption request.
func AppAdoptionReject(requestID string) string {
	return AppAdoptionsPrefix + escapeSegment(requestID) + "/reject"
}

// AppCampaignEdit returns the owner's campaign edit form route.
func AppCampaignEdit(campaignID string) string {
	return AppCampaignsPrefix + escapeSegment(campaignID) + "/edit"
}

// AppCampaignUpdate returns the owner's campaign update route.
func AppCampaignUpdate(campaignID string) string {
	return AppCampaignsPrefix + escapeSegment(campaignID)
}

// AppCampaignPause returns the owner's pause toggle route.
func AppCampaignPause(campaignID string) string {
	return AppCampaignsPrefix + escapeSegment(campaignID) + "/pause"
}

// AppCampaignDonate returns the donation form route.
func AppCampaignDonate(campaignID string) string {
	return AppCampaignsPrefix + escapeSegment(campaignID) + "/donate"
}

// AppCampaignIntent returns the payment-intent route used by the donation form.
func AppCampaignIntent(campaignID string) string {
	return AppCampaignDonate(campaignID) + "/intent"
}

// AdminPetAdopted returns the admin adopted toggle route.
func AdminPetAdopted(petID string) string {
	return "/app/admin/pets/" + escapeSegment(petID) + "/adopted"
}

// AdminPetDelete returns the admin pet delete route.
func AdminPetDelete(petID string) string {
	return "/app/admin/pets/" + escapeSegment(petID) + "/delete"
}

// AdminCampaignPause returns the admin pause toggle route.
func AdminCampaignPause(campaignID string) string {
	return "/app/admin/campaigns/" + escapeSegment(campaignID) + "/pause"
}

// AdminCampaignDelete returns the admin campaign delete route.
func AdminCampaignDelete(campaignID string) string {
	return "/app/admin/campaigns/" + escapeSegment(campaignID) + "/delete"
}

// AdminUserPromote returns the admin promote route.
func AdminUserPromote(userID string) string {
	return "/app/admin/users/" + escapeSegment(userID) + "/promote"
}

func withQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
