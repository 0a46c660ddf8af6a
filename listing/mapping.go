package listing

import (
	"time"

	"github.com/collabhub/admin-console/backend"
	"github.com/collabhub/admin-console/internal"
	"github.com/collabhub/admin-console/state"
)

func mapCreator(raw backend.RawCreator) state.Creator {
	return state.Creator{
		ID:                     raw.ID,
		Name:                   raw.FullName,
		Email:                  raw.Email,
		ProfileIcon:            raw.ProfileIcon,
		IsProfileCompleted:     internal.YesNo(raw.IsProfileCompleted),
		IsEmailVerified:        internal.YesNo(raw.IsEmailVerified),
		IsAccountVerified:      internal.YesNo(raw.IsAccountVerified),
		RequestToDeleteAccount: internal.YesNo(raw.RequestToDeleteAccount),
		Profile:                mapProfile(raw.Profile),
	}
}

func mapProfile(raw *backend.RawProfile) *state.Profile {
	if raw == nil {
		return nil
	}
	p := &state.Profile{
		ID:        raw.ID,
		FullName:  raw.FullName,
		StageName: raw.StageName,
		Dob:       raw.Dob,
		Gender:    raw.Gender,
		City:      raw.City,
		Category:  raw.Category,
		Languages: raw.Languages,
		Audience: state.Audience{
			AgeBracket:         raw.Audience.AgeBracket.String(),
			GenderDistribution: raw.Audience.GenderDistribution.String(),
			Locations:          raw.Audience.AudienceLocations,
		},
		SocialLinks: state.SocialLinks{
			Primary:   mapSocialLink(raw.SocialLinks.Primary),
			Secondary: mapSocialLink(raw.SocialLinks.Secondary),
		},
		AverageView:              raw.AverageView.String(),
		GrowthRate:               raw.GrowthRate.String(),
		PaidCampaigns:            raw.PaidCampaigns.String(),
		FavouriteBrands:          raw.FavouriteBrands.String(),
		WorkedWithAIConsumerApps: raw.WorkedWithAIConsumerApps.String(),
		IsActivated:              raw.IsActivated,
	}
	for _, v := range raw.SocialVideos {
		status := v.IsPublic
		if status == "" {
			status = state.VideoPending
		}
		p.Videos = append(p.Videos, state.Video{
			ID:      v.ID,
			Title:   v.Title,
			Image:   v.Image,
			Link:    v.VideoLink,
			AddedAt: v.AddedAt,
			Status:  status,
		})
	}
	return p
}

func mapSocialLink(raw backend.RawSocialLink) state.SocialLink {
	return state.SocialLink{
		Platform:  raw.Platform,
		Link:      raw.Link,
		Followers: raw.Followers.String(),
	}
}

func mapBrand(raw backend.RawBrand) state.Brand {
	return state.Brand{
		ID:                     raw.ID,
		Name:                   raw.FullName,
		CompanyName:            raw.CompanyName,
		CompanyEmail:           raw.CompanyEmail,
		CompanyWebsite:         raw.CompanyWebsite,
		IsAccountVerified:      internal.YesNo(raw.IsAccountVerified),
		RequestToDeleteAccount: internal.YesNo(raw.RequestToDeleteAccount),
		ProfileIcon:            raw.ProfileIcon,
	}
}

// mapCollaboration maps a raw collaboration. createdAt is rendered relative
// to now, or kept verbatim when it cannot be parsed.
func mapCollaboration(raw backend.RawCollaboration, now time.Time) state.Collaboration {
	c := state.Collaboration{
		ID:            raw.ID,
		Status:        raw.Status,
		PaymentStatus: raw.PaymentStatus,
		Amount:        raw.Amount.String(),
		CreatedAt:     raw.CreatedAt,
	}
	if t := internal.ParseTime(raw.CreatedAt); !t.IsZero() {
		c.CreatedAt = internal.RelativeTime(t, now)
	}
	if raw.Campaign != nil {
		c.CampaignName = raw.Campaign.CampaignName
		if c.CampaignName == "" {
			c.CampaignName = raw.Campaign.CampaignTitle
		}
		c.BrandName = raw.Campaign.BrandName
		c.Campaign = &state.Campaign{
			ID:                   raw.Campaign.ID,
			Title:                raw.Campaign.CampaignTitle,
			BrandName:            raw.Campaign.BrandName,
			Description:          raw.Campaign.CampaignDescription,
			Image:                raw.Campaign.CampaignImage,
			Budget:               raw.Campaign.BudgetForCampaign.String(),
			Deadline:             raw.Campaign.Deadline,
			TargetNiche:          raw.Campaign.TargetNiche,
			TargetAudience:       raw.Campaign.TargetAudience.String(),
			SocialPlatforms:      raw.Campaign.SocialPlatforms.String(),
			ExpectedDeliverables: raw.Campaign.ExpectedDeliverables,
			Requirements:         raw.Campaign.Requirements,
			ApplicationQuestions: raw.Campaign.ApplicationQuestions.String(),
		}
	}
	if raw.Brand != nil {
		c.BrandEmail = raw.Brand.CompanyEmail
		if c.BrandName == "" {
			c.BrandName = raw.Brand.CompanyName
		}
	}
	if raw.Creator != nil {
		c.CreatorName = raw.Creator.FullName
		c.CreatorEmail = raw.Creator.Email
	}
	for _, v := range raw.Videos {
		c.Videos = append(c.Videos, state.CollabVideo{
			Link:      v.Link,
			Status:    v.Status,
			Message:   v.Message,
			Timestamp: v.Timestamp,
		})
	}
	return c
}
