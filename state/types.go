package state

// Tab is the entity type shown by the dashboard.
type Tab string

const (
	TabCreators       Tab = "creators"
	TabBrands         Tab = "brands"
	TabCollaborations Tab = "collaborations"
)

// Tabs lists the dashboard tabs in display order.
var Tabs = []Tab{TabCreators, TabBrands, TabCollaborations}

// ParseTab returns the tab named s. Unknown names are reported with ok=false.
func ParseTab(s string) (Tab, bool) {
	for _, t := range Tabs {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Title is the heading of the tab's listing.
func (t Tab) Title() string {
	switch t {
	case TabBrands:
		return "Brands List"
	case TabCollaborations:
		return "Collaborations List"
	default:
		return "Creators List"
	}
}

// User is the identity of the signed-in admin.
type User struct {
	FullName string `json:"fullName" bson:"fullName"`
	Email    string `json:"email" bson:"email"`
}

// Session tells whether an admin is signed in and who.
type Session struct {
	Authenticated bool `json:"authenticated" bson:"authenticated"`
	User          User `json:"user" bson:"user"`
}

// Creator is the view shape of a creator account. Flags hold "Yes" or "No".
type Creator struct {
	ID                     string   `json:"id" bson:"id"`
	Name                   string   `json:"name" bson:"name"`
	Email                  string   `json:"email" bson:"email"`
	ProfileIcon            string   `json:"profileIcon" bson:"profileIcon"`
	IsProfileCompleted     string   `json:"isProfileCompleted" bson:"isProfileCompleted"`
	IsEmailVerified        string   `json:"isEmailVerified" bson:"isEmailVerified"`
	IsAccountVerified      string   `json:"isAccountVerified" bson:"isAccountVerified"`
	RequestToDeleteAccount string   `json:"requestToDeleteAccount" bson:"requestToDeleteAccount"`
	Profile                *Profile `json:"profile,omitempty" bson:"profile,omitempty"`
}

// Profile is the extended questionnaire of a creator. It is either absent
// from a Creator or fully populated.
type Profile struct {
	ID                       string      `json:"id" bson:"id"`
	FullName                 string      `json:"fullName" bson:"fullName"`
	StageName                string      `json:"stageName" bson:"stageName"`
	Dob                      string      `json:"dob" bson:"dob"`
	Gender                   string      `json:"gender" bson:"gender"`
	City                     string      `json:"city" bson:"city"`
	Category                 []string    `json:"category" bson:"category"`
	Languages                []string    `json:"languages" bson:"languages"`
	Audience                 Audience    `json:"audience" bson:"audience"`
	SocialLinks              SocialLinks `json:"socialLinks" bson:"socialLinks"`
	AverageView              string      `json:"averageView" bson:"averageView"`
	GrowthRate               string      `json:"growthRate" bson:"growthRate"`
	PaidCampaigns            string      `json:"paidCampaigns" bson:"paidCampaigns"`
	FavouriteBrands          string      `json:"favouriteBrands" bson:"favouriteBrands"`
	WorkedWithAIConsumerApps string      `json:"workedWithAIConsumerApps" bson:"workedWithAIConsumerApps"`
	IsActivated              bool        `json:"isActivated" bson:"isActivated"`
	Videos                   []Video     `json:"videos" bson:"videos"`
}

type Audience struct {
	AgeBracket         string   `json:"ageBracket" bson:"ageBracket"`
	GenderDistribution string   `json:"genderDistribution" bson:"genderDistribution"`
	Locations          []string `json:"locations" bson:"locations"`
}

type SocialLinks struct {
	Primary   SocialLink `json:"primary" bson:"primary"`
	Secondary SocialLink `json:"secondary" bson:"secondary"`
}

type SocialLink struct {
	Platform  string `json:"platform" bson:"platform"`
	Link      string `json:"link" bson:"link"`
	Followers string `json:"followers" bson:"followers"`
}

// Video moderation statuses.
const (
	VideoPending  = "pending"
	VideoApproved = "approved"
	VideoDeclined = "declined"
)

// Video is a social video submitted by a creator.
type Video struct {
	ID      string `json:"id" bson:"id"`
	Title   string `json:"title" bson:"title"`
	Image   string `json:"image" bson:"image"`
	Link    string `json:"link" bson:"link"`
	AddedAt string `json:"addedAt" bson:"addedAt"`
	Status  string `json:"status" bson:"status"`
}

// Brand is the view shape of a brand account. Flags hold "Yes" or "No".
type Brand struct {
	ID                     string `json:"id" bson:"id"`
	Name                   string `json:"name" bson:"name"`
	CompanyName            string `json:"companyName" bson:"companyName"`
	CompanyEmail           string `json:"companyEmail" bson:"companyEmail"`
	CompanyWebsite         string `json:"companyWebsite" bson:"companyWebsite"`
	IsAccountVerified      string `json:"isAccountVerified" bson:"isAccountVerified"`
	RequestToDeleteAccount string `json:"requestToDeleteAccount" bson:"requestToDeleteAccount"`
	ProfileIcon            string `json:"profileIcon" bson:"profileIcon"`
}

// Collaboration is the view shape of a creator/brand collaboration.
// CreatedAt holds a relative human date computed when the list was fetched.
type Collaboration struct {
	ID            string        `json:"id" bson:"id"`
	CampaignName  string        `json:"campaignName" bson:"campaignName"`
	BrandName     string        `json:"brandName" bson:"brandName"`
	BrandEmail    string        `json:"brandEmail" bson:"brandEmail"`
	CreatorName   string        `json:"creatorName" bson:"creatorName"`
	CreatorEmail  string        `json:"creatorEmail" bson:"creatorEmail"`
	Campaign      *Campaign     `json:"campaign,omitempty" bson:"campaign,omitempty"`
	Status        string        `json:"status" bson:"status"`
	Videos        []CollabVideo `json:"videos" bson:"videos"`
	PaymentStatus string        `json:"paymentStatus" bson:"paymentStatus"`
	Amount        string        `json:"amount" bson:"amount"`
	CreatedAt     string        `json:"createdAt" bson:"createdAt"`
}

// Campaign is the brand campaign a collaboration belongs to.
type Campaign struct {
	ID                   string   `json:"id" bson:"id"`
	Title                string   `json:"title" bson:"title"`
	BrandName            string   `json:"brandName" bson:"brandName"`
	Description          string   `json:"description" bson:"description"`
	Image                string   `json:"image" bson:"image"`
	Budget               string   `json:"budget" bson:"budget"`
	Deadline             string   `json:"deadline" bson:"deadline"`
	TargetNiche          []string `json:"targetNiche" bson:"targetNiche"`
	TargetAudience       string   `json:"targetAudience" bson:"targetAudience"`
	SocialPlatforms      string   `json:"socialPlatforms" bson:"socialPlatforms"`
	ExpectedDeliverables []string `json:"expectedDeliverables" bson:"expectedDeliverables"`
	Requirements         []string `json:"requirements" bson:"requirements"`
	ApplicationQuestions string   `json:"applicationQuestions" bson:"applicationQuestions"`
}

// CollabVideo is a deliverable submitted inside a collaboration.
type CollabVideo struct {
	Link      string `json:"link" bson:"link"`
	Status    string `json:"status" bson:"status"`
	Message   string `json:"message" bson:"message"`
	Timestamp string `json:"timestamp" bson:"timestamp"`
}
