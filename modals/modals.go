// Package modals holds the view models of the dashboard detail views. Each
// one is built from a single record; which modal is open is decided by the
// listing session, never by the modal itself.
package modals

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/collabhub/admin-console/internal"
	"github.com/collabhub/admin-console/listing"
	"github.com/collabhub/admin-console/state"
)

// Field is a labelled value.
type Field struct {
	Label string
	Value string
}

// Section groups fields under a heading.
type Section struct {
	Title  string
	Fields []Field
}

// Link is a social account of a creator.
type Link struct {
	Label     string
	Platform  string
	Icon      string
	URL       string
	Followers string
}

// Profile is the creator profile view.
type Profile struct {
	CreatorID string
	Title     string
	Sections  []Section
	Links     []Link
}

func joinList(items []string) string {
	return strings.Join(items, ", ")
}

func yesNoText(s string) string {
	return internal.YesNo(s == "true" || internal.IsYes(s))
}

// FormatDay renders a backend date as month/day/year, or returns it
// verbatim when it cannot be parsed.
func FormatDay(value string) string {
	t := internal.ParseTime(value)
	if t.IsZero() {
		return value
	}
	return t.Format("1/2/2006")
}

// FormatDate renders a backend timestamp with its time of day.
func FormatDate(value string) string {
	t := internal.ParseTime(value)
	if t.IsZero() {
		return value
	}
	return t.Format("January 2, 2006 at 03:04 PM")
}

// NewProfile builds the profile view of c. c must have a profile.
func NewProfile(c state.Creator) Profile {
	p := c.Profile
	if p == nil {
		return Profile{CreatorID: c.ID, Title: "Profile Details"}
	}
	name := p.FullName
	if p.StageName != "" {
		name += " (" + p.StageName + ")"
	}
	growth := p.GrowthRate
	if growth != "" && !strings.HasSuffix(growth, "%") {
		growth += "%"
	}
	view := Profile{
		CreatorID: c.ID,
		Title:     "Profile Details",
		Sections: []Section{
			{Title: "Personal", Fields: []Field{
				{Label: "Name", Value: name},
				{Label: "Gender", Value: p.Gender},
				{Label: "City", Value: p.City},
				{Label: "Date of Birth", Value: FormatDay(p.Dob)},
				{Label: "Category", Value: joinList(p.Category)},
				{Label: "Languages", Value: joinList(p.Languages)},
			}},
			{Title: "Audience", Fields: []Field{
				{Label: "Locations", Value: joinList(p.Audience.Locations)},
				{Label: "Age Bracket", Value: p.Audience.AgeBracket},
				{Label: "Gender Distribution", Value: p.Audience.GenderDistribution},
			}},
			{Title: "Performance", Fields: []Field{
				{Label: "Growth Rate", Value: growth},
				{Label: "Avg Views", Value: p.AverageView},
				{Label: "Favorite Brands", Value: p.FavouriteBrands},
				{Label: "Paid Campaigns", Value: p.PaidCampaigns},
				{Label: "Worked with AI Consumer Apps", Value: yesNoText(p.WorkedWithAIConsumerApps)},
				{Label: "Activated", Value: internal.YesNo(p.IsActivated)},
			}},
		},
	}
	labels := []string{"Primary", "Secondary"}
	for i, l := range []state.SocialLink{p.SocialLinks.Primary, p.SocialLinks.Secondary} {
		if l.Link == "" && l.Platform == "" {
			continue
		}
		view.Links = append(view.Links, Link{
			Label:     labels[i],
			Platform:  l.Platform,
			Icon:      PlatformIcon(l.Platform),
			URL:       l.Link,
			Followers: l.Followers,
		})
	}
	return view
}

// Icon names used by the templates.
const (
	IconInstagram = "instagram"
	IconYouTube   = "youtube"
	IconTwitter   = "twitter"
	IconMail      = "mail"
	IconTikTok    = "tiktok"
	IconShare     = "share"
)

// PlatformIcon maps a free text platform name to an icon.
func PlatformIcon(platform string) string {
	switch strings.ToLower(strings.TrimSpace(platform)) {
	case "instagram":
		return IconInstagram
	case "youtube", "youtube reel":
		return IconYouTube
	case "twitter", "twitter / x", "x":
		return IconTwitter
	case "newsletter", "email":
		return IconMail
	case "tiktok":
		return IconTikTok
	default:
		return IconShare
	}
}

// Platform is a social platform targeted by a campaign.
type Platform struct {
	Name string
	Icon string
}

// Campaign is the campaign view of a collaboration.
type Campaign struct {
	CollaborationID      string
	Title                string
	BrandName            string
	Image                string
	Description          string
	Budget               string
	Deadline             string
	TargetNiche          []string
	TargetAudience       string
	Platforms            []Platform
	Deliverables         []string
	Requirements         []string
	ApplicationQuestions string
}

// PlaceholderImage is shown when a campaign has no image.
const PlaceholderImage = "/static/placeholder.svg"

// NewCampaign builds the campaign view of c.
func NewCampaign(c state.Collaboration) Campaign {
	view := Campaign{CollaborationID: c.ID, Title: "Campaign Title", BrandName: "Brand", Image: PlaceholderImage}
	cmp := c.Campaign
	if cmp == nil {
		return view
	}
	if cmp.Title != "" {
		view.Title = cmp.Title
	}
	if cmp.BrandName != "" {
		view.BrandName = cmp.BrandName
	}
	if cmp.Image != "" {
		view.Image = cmp.Image
	}
	view.Description = cmp.Description
	view.Budget = cmp.Budget
	view.Deadline = FormatDay(cmp.Deadline)
	view.TargetNiche = cmp.TargetNiche
	view.TargetAudience = cmp.TargetAudience
	view.Deliverables = cmp.ExpectedDeliverables
	view.Requirements = cmp.Requirements
	view.ApplicationQuestions = cmp.ApplicationQuestions
	for _, name := range strings.Split(cmp.SocialPlatforms, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		view.Platforms = append(view.Platforms, Platform{Name: name, Icon: PlatformIcon(name)})
	}
	return view
}

var instagramPostRegex = regexp.MustCompile(`(?:reel|p)/([A-Za-z0-9_-]+)`)

// InstagramURL normalizes an Instagram post or reel link to its reel URL.
// Other links are returned unchanged.
func InstagramURL(link string) string {
	m := instagramPostRegex.FindStringSubmatch(link)
	if m == nil {
		return link
	}
	return "https://www.instagram.com/reel/" + m[1]
}

// StatusLabel capitalizes a moderation status.
func StatusLabel(status string) string {
	if status == "" {
		return ""
	}
	r := []rune(status)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// StatusClass is the style class of a moderation status badge.
func StatusClass(status string) string {
	switch status {
	case state.VideoApproved:
		return "status-approved"
	case state.VideoDeclined:
		return "status-declined"
	default:
		return "status-pending"
	}
}

// VideoItem is one video of the moderation list.
type VideoItem struct {
	ID          string
	Title       string
	Image       string
	Link        string
	AddedAt     string
	Status      string
	StatusLabel string
	StatusClass string
	// Pending videos can be approved or declined.
	Pending bool
	// Loading is set on the video whose moderation is in flight.
	Loading bool
	Action  string
}

// VideoList is the moderation view of a creator's videos.
type VideoList struct {
	CreatorID string
	Title     string
	Videos    []VideoItem
	// Busy disables every action while a moderation is in flight.
	Busy bool
}

// Empty reports whether the creator has no videos.
func (v VideoList) Empty() bool {
	return len(v.Videos) == 0
}

// NewVideoList builds the video moderation view of c. loadingID is the video
// whose moderation is in flight, if any.
func NewVideoList(c state.Creator, loadingID string, actionPath func(creatorID, videoID string) string) VideoList {
	view := VideoList{CreatorID: c.ID, Title: "Creator Videos", Busy: loadingID != ""}
	if c.Profile == nil {
		return view
	}
	for _, v := range c.Profile.Videos {
		view.Videos = append(view.Videos, VideoItem{
			ID:          v.ID,
			Title:       v.Title,
			Image:       v.Image,
			Link:        InstagramURL(v.Link),
			AddedAt:     FormatDate(v.AddedAt),
			Status:      v.Status,
			StatusLabel: StatusLabel(v.Status),
			StatusClass: StatusClass(v.Status),
			Pending:     v.Status == state.VideoPending,
			Loading:     v.ID == loadingID,
			Action:      actionPath(c.ID, v.ID),
		})
	}
	return view
}

// CollabVideos is the list of deliverables of a collaboration.
type CollabVideos struct {
	CollaborationID string
	Title           string
	Videos          []state.CollabVideo
}

func (v CollabVideos) Empty() bool {
	return len(v.Videos) == 0
}

// NewCollabVideos builds the deliverables view of c.
func NewCollabVideos(c state.Collaboration) CollabVideos {
	view := CollabVideos{CollaborationID: c.ID, Title: "Collaboration Videos"}
	for _, v := range c.Videos {
		v.Timestamp = FormatDate(v.Timestamp)
		view.Videos = append(view.Videos, v)
	}
	return view
}

// Confirmation asks the admin to confirm an action by posting Fields back
// to Action with confirm=yes.
type Confirmation struct {
	Prompt     string
	Action     string
	Fields     map[string]string
	CancelHref string
}

// NewPaymentConfirmation builds the confirmation of marking the payment of c
// as done. The given amount is shown only when c has none.
func NewPaymentConfirmation(c state.Collaboration, amount, action, cancel string) Confirmation {
	if c.Amount != "" {
		amount = c.Amount
	}
	return Confirmation{
		Prompt:     listing.PaymentPrompt(amount),
		Action:     action,
		Fields:     map[string]string{"amount": amount},
		CancelHref: cancel,
	}
}
