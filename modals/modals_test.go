package modals

import (
	"testing"

	"github.com/collabhub/admin-console/state"
	qt "github.com/frankban/quicktest"
)

func videoPath(creatorID, videoID string) string {
	return "/videos/" + creatorID + "/" + videoID
}

func TestPlatformIcon(t *testing.T) {
	c := qt.New(t)
	for in, want := range map[string]string{
		"Instagram":    IconInstagram,
		" youtube ":    IconYouTube,
		"YouTube Reel": IconYouTube,
		"Twitter / X":  IconTwitter,
		"x":            IconTwitter,
		"Newsletter":   IconMail,
		"email":        IconMail,
		"TikTok":       IconTikTok,
		"Snapchat":     IconShare,
		"":             IconShare,
	} {
		c.Assert(PlatformIcon(in), qt.Equals, want, qt.Commentf("platform %q", in))
	}
}

func TestInstagramURL(t *testing.T) {
	c := qt.New(t)
	c.Assert(InstagramURL("https://www.instagram.com/p/Cx1_a-B/?igsh=abc"), qt.Equals,
		"https://www.instagram.com/reel/Cx1_a-B")
	c.Assert(InstagramURL("https://instagram.com/reel/XYZ123/"), qt.Equals,
		"https://www.instagram.com/reel/XYZ123")
	c.Assert(InstagramURL("https://youtu.be/abc"), qt.Equals, "https://youtu.be/abc")
}

func TestVideoList(t *testing.T) {
	c := qt.New(t)
	creator := state.Creator{ID: "c1", Profile: &state.Profile{Videos: []state.Video{
		{ID: "v1", Link: "https://instagram.com/p/abc", AddedAt: "2024-03-01T15:04:00Z", Status: state.VideoPending},
		{ID: "v2", Status: state.VideoApproved},
		{ID: "v3", Status: state.VideoDeclined},
	}}}

	view := NewVideoList(creator, "", videoPath)
	c.Assert(view.Empty(), qt.IsFalse)
	c.Assert(view.Busy, qt.IsFalse)
	c.Assert(view.Videos, qt.HasLen, 3)

	first := view.Videos[0]
	c.Assert(first.Pending, qt.IsTrue)
	c.Assert(first.StatusLabel, qt.Equals, "Pending")
	c.Assert(first.Link, qt.Equals, "https://www.instagram.com/reel/abc")
	c.Assert(first.AddedAt, qt.Equals, "March 1, 2024 at 03:04 PM")
	c.Assert(first.Action, qt.Equals, "/videos/c1/v1")

	c.Assert(view.Videos[1].Pending, qt.IsFalse)
	c.Assert(view.Videos[1].StatusClass, qt.Equals, "status-approved")
	c.Assert(view.Videos[2].StatusLabel, qt.Equals, "Declined")

	loading := NewVideoList(creator, "v1", videoPath)
	c.Assert(loading.Busy, qt.IsTrue)
	c.Assert(loading.Videos[0].Loading, qt.IsTrue)
	c.Assert(loading.Videos[1].Loading, qt.IsFalse)

	empty := NewVideoList(state.Creator{ID: "c2", Profile: &state.Profile{}}, "", videoPath)
	c.Assert(empty.Empty(), qt.IsTrue)
}

func TestProfile(t *testing.T) {
	c := qt.New(t)
	view := NewProfile(state.Creator{ID: "c1", Profile: &state.Profile{
		FullName:                 "Alice Smith",
		StageName:                "ali",
		Dob:                      "1995-07-14",
		Category:                 []string{"fitness", "travel"},
		GrowthRate:               "12",
		WorkedWithAIConsumerApps: "true",
		IsActivated:              false,
		SocialLinks: state.SocialLinks{
			Secondary: state.SocialLink{Platform: "YouTube", Link: "https://youtube.com/@ali", Followers: "3,000"},
		},
	}})

	fields := map[string]string{}
	for _, s := range view.Sections {
		for _, f := range s.Fields {
			fields[f.Label] = f.Value
		}
	}
	c.Assert(fields["Name"], qt.Equals, "Alice Smith (ali)")
	c.Assert(fields["Date of Birth"], qt.Equals, "7/14/1995")
	c.Assert(fields["Category"], qt.Equals, "fitness, travel")
	c.Assert(fields["Growth Rate"], qt.Equals, "12%")
	c.Assert(fields["Worked with AI Consumer Apps"], qt.Equals, "Yes")
	c.Assert(fields["Activated"], qt.Equals, "No")

	// empty social links are skipped
	c.Assert(view.Links, qt.HasLen, 1)
	c.Assert(view.Links[0].Label, qt.Equals, "Secondary")
	c.Assert(view.Links[0].Icon, qt.Equals, IconYouTube)
}

func TestCampaign(t *testing.T) {
	c := qt.New(t)

	empty := NewCampaign(state.Collaboration{ID: "col1"})
	c.Assert(empty.Title, qt.Equals, "Campaign Title")
	c.Assert(empty.Image, qt.Equals, PlaceholderImage)

	view := NewCampaign(state.Collaboration{ID: "col1", Campaign: &state.Campaign{
		Title:           "Summer launch",
		BrandName:       "Acme",
		Deadline:        "2024-08-31T00:00:00Z",
		SocialPlatforms: "Instagram, Twitter / X, Podcast",
	}})
	c.Assert(view.Title, qt.Equals, "Summer launch")
	c.Assert(view.Deadline, qt.Equals, "8/31/2024")
	c.Assert(view.Platforms, qt.DeepEquals, []Platform{
		{Name: "Instagram", Icon: IconInstagram},
		{Name: "Twitter / X", Icon: IconTwitter},
		{Name: "Podcast", Icon: IconShare},
	})
}

func TestCollabVideos(t *testing.T) {
	c := qt.New(t)
	view := NewCollabVideos(state.Collaboration{ID: "col1", Videos: []state.CollabVideo{
		{Link: "https://example.com/v", Status: "submitted", Timestamp: "not a date"},
	}})
	c.Assert(view.Empty(), qt.IsFalse)
	c.Assert(view.Videos[0].Timestamp, qt.Equals, "not a date")
	c.Assert(NewCollabVideos(state.Collaboration{}).Empty(), qt.IsTrue)
}

func TestPaymentConfirmation(t *testing.T) {
	c := qt.New(t)
	col := state.Collaboration{ID: "col1", Amount: "75"}

	conf := NewPaymentConfirmation(col, "", "/pay", "/back")
	c.Assert(conf.Prompt, qt.Equals, "Are you sure you want to mark the payment of $75 as done?")
	c.Assert(conf.Fields["amount"], qt.Equals, "75")

	// the stored amount wins over the posted one
	conf = NewPaymentConfirmation(col, "1", "/pay", "/back")
	c.Assert(conf.Prompt, qt.Equals, "Are you sure you want to mark the payment of $75 as done?")
	c.Assert(conf.Fields["amount"], qt.Equals, "75")

	conf = NewPaymentConfirmation(state.Collaboration{ID: "col2"}, "50", "/pay", "/back")
	c.Assert(conf.Prompt, qt.Equals, "Are you sure you want to mark the payment of $50 as done?")
}
