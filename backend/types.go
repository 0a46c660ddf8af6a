package backend

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Text is a loosely typed scalar. The backend is not consistent about the
// JSON type of some fields (budgets, follower counts, amounts), so Text
// accepts strings, numbers, booleans, null and arrays of those, and keeps
// their textual form.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*t = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case data[0] == '[':
		var items []Text
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		parts := make([]string, 0, len(items))
		for _, item := range items {
			if item != "" {
				parts = append(parts, string(item))
			}
		}
		*t = Text(strings.Join(parts, ", "))
	default:
		*t = Text(data)
	}
	return nil
}

// String returns the textual value.
func (t Text) String() string {
	return string(t)
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

// RegisterRequest is the body of POST /admin/register.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Identity is the user returned by a successful login.
type Identity struct {
	ID           string `json:"_id"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	CompanyEmail string `json:"companyEmail"`
}

type loginResponse struct {
	Message string   `json:"message"`
	Data    Identity `json:"data"`
}

// ListInfo is the pagination block attached to server paginated listings.
type ListInfo struct {
	Page       int      `json:"page"`
	TotalPages int      `json:"totalPages"`
	TotalCount int      `json:"totalCount"`
	Cities     []string `json:"cities"`
}

// CreatorsResponse is the answer of GET /admin/get-creators.
type CreatorsResponse struct {
	Data      []RawCreator `json:"data"`
	OtherInfo *ListInfo    `json:"otherInfo,omitempty"`
}

// BrandsResponse is the answer of GET /admin/get-brands.
type BrandsResponse struct {
	Data      []RawBrand `json:"data"`
	OtherInfo *ListInfo  `json:"otherInfo,omitempty"`
}

// CollaborationsResponse is the answer of GET /admin/get-collabs.
type CollaborationsResponse struct {
	Data []RawCollaboration `json:"data"`
}

// RawCreator is a creator account as stored by the backend.
type RawCreator struct {
	ID                     string      `json:"_id"`
	FullName               string      `json:"fullName"`
	Email                  string      `json:"email"`
	ProfileIcon            string      `json:"profileIcon"`
	IsProfileCompleted     bool        `json:"isProfileCompleted"`
	IsEmailVerified        bool        `json:"isEmailVerified"`
	IsAccountVerified      bool        `json:"isAccountVerified"`
	RequestToDeleteAccount bool        `json:"requestToDeleteAccount"`
	Profile                *RawProfile `json:"profile,omitempty"`
	CreatedAt              string      `json:"createdAt"`
}

// RawProfile is the extended questionnaire a creator fills in.
type RawProfile struct {
	ID                       string         `json:"_id"`
	FullName                 string         `json:"fullName"`
	StageName                string         `json:"stageName"`
	Dob                      string         `json:"dob"`
	Gender                   string         `json:"gender"`
	City                     string         `json:"city"`
	Category                 []string       `json:"category"`
	Languages                []string       `json:"languages"`
	Audience                 RawAudience    `json:"audience"`
	SocialLinks              RawSocialLinks `json:"socialLinks"`
	AverageView              Text           `json:"averageView"`
	GrowthRate               Text           `json:"growthRate"`
	PaidCampaigns            Text           `json:"paidCampaigns"`
	FavouriteBrands          Text           `json:"favouriteBrands"`
	WorkedWithAIConsumerApps Text           `json:"workedWithAIConsumerApps"`
	IsActivated              bool           `json:"isActivated"`
	SocialVideos             []RawVideo     `json:"socialVideos"`
}

// RawAudience holds the audience statistics of a profile.
type RawAudience struct {
	AgeBracket         Text     `json:"ageBracket"`
	GenderDistribution Text     `json:"genderDistribution"`
	AudienceLocations  []string `json:"audienceLocations"`
}

// RawSocialLinks holds the primary and secondary social accounts.
type RawSocialLinks struct {
	Primary   RawSocialLink `json:"primary"`
	Secondary RawSocialLink `json:"secondary"`
}

// RawSocialLink is one social account of a creator.
type RawSocialLink struct {
	Platform  string `json:"platform"`
	Link      string `json:"link"`
	Followers Text   `json:"followers"`
}

// RawVideo is a social video submitted by a creator for moderation.
type RawVideo struct {
	ID        string `json:"_id"`
	Title     string `json:"title"`
	Image     string `json:"image"`
	VideoLink string `json:"videoLink"`
	AddedAt   string `json:"addedAt"`
	IsPublic  string `json:"isPublic"`
}

// RawBrand is a brand account as stored by the backend.
type RawBrand struct {
	ID                     string `json:"_id"`
	FullName               string `json:"fullName"`
	CompanyName            string `json:"companyName"`
	CompanyEmail           string `json:"companyEmail"`
	CompanyWebsite         string `json:"companyWebsite"`
	IsAccountVerified      bool   `json:"isAccountVerified"`
	RequestToDeleteAccount bool   `json:"requestToDeleteAccount"`
	ProfileIcon            string `json:"profileIcon"`
	CreatedAt              string `json:"createdAt"`
}

// RawCollaboration links a creator to a brand campaign.
type RawCollaboration struct {
	ID            string           `json:"_id"`
	Campaign      *RawCampaign     `json:"campaignId,omitempty"`
	Brand         *RawParty        `json:"brandId,omitempty"`
	Creator       *RawParty        `json:"creatorId,omitempty"`
	Status        string           `json:"status"`
	Videos        []RawCollabVideo `json:"videos"`
	PaymentStatus string           `json:"paymentStatus"`
	Amount        Text             `json:"amount"`
	CreatedAt     string           `json:"createdAt"`
}

// RawCampaign is the campaign a collaboration belongs to.
type RawCampaign struct {
	ID                   string   `json:"_id"`
	CampaignName         string   `json:"campaignName"`
	CampaignTitle        string   `json:"campaignTitle"`
	BrandName            string   `json:"brandName"`
	CampaignDescription  string   `json:"campaignDescription"`
	CampaignImage        string   `json:"campaignImage"`
	BudgetForCampaign    Text     `json:"budgetForCampaign"`
	Deadline             string   `json:"deadline"`
	TargetNiche          []string `json:"targetNiche"`
	TargetAudience       Text     `json:"targetAudience"`
	SocialPlatforms      Text     `json:"socialPlatforms"`
	ExpectedDeliverables []string `json:"expectedDeliverables"`
	Requirements         []string `json:"requirements"`
	ApplicationQuestions Text     `json:"applicationQuestions"`
}

// RawParty is the brand or creator side of a collaboration.
type RawParty struct {
	ID           string `json:"_id"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	CompanyName  string `json:"companyName"`
	CompanyEmail string `json:"companyEmail"`
}

// RawCollabVideo is a deliverable submitted inside a collaboration.
type RawCollabVideo struct {
	Link      string `json:"link"`
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type videoStatusRequest struct {
	Status  string `json:"status"`
	VideoID string `json:"videoId"`
}
