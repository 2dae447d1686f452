package content

// Default values for newly added items.
const (
	DefaultEventDate  = "2026-04-20"
	DefaultEventTitle = "New Event"
	DefaultEventIcon  = "📅"
)

// Defaults returns the built-in site content. Every call returns fresh storage.
func Defaults() SiteContent {
	return SiteContent{
		HeroTitle:       "Tree Troopers Eco Club",
		HeroDescription: "Tree Troopers is a student eco-club founded in 2016. We protect the environment through hands-on action like beach cleanups, recycling projects, and field trips with Generation Earth. Meetings are every other Wednesday.",

		AboutTitle: "About",
		AboutIntro: "By joining Tree Troopers, students build climate literacy, practice environmental stewardship, and participate in real community service through indoor/outdoor learning and conservation work.",

		Activities: []Activity{
			{Icon: "🌊", Title: "Santa Monica Beach Cleanups", Desc: "Learn about human impact on sea animals and help clean the shoreline.", Tag: "Heal the Bay"},
			{Icon: "♻️", Title: "Recycling Project", Desc: "Ongoing campus effort to reduce waste and recycle correctly.", Tag: "On-campus"},
			{Icon: "🌎", Title: "Generation Earth Field Trips", Desc: "Indoor/outdoor education with hands-on conservation learning.", Tag: "Field Trips"},
			{Icon: "🏛️", Title: "Environmental Youth Summit", Desc: "Present what we’ve done, explore the museum, and meet other youth leaders.", Tag: "Required Event"},
		},

		Members: []Member{
			{Title: "President", Desc: "Leads meetings, organizes events, and communicates with partners."},
			{Title: "Vice President", Desc: "Supports planning, attendance tracking, and member coordination."},
			{Title: "Top 35 Attendance", Desc: "Students with top attendance are invited to special field trips."},
		},

		EventsTitle: "Upcoming Events",
		EventsIntro: "Don’t miss what’s next — join us and make an impact.",
		Events: []Event{
			{Date: "2026-03-12", Title: "Beach Cleanup", Icon: "🌊"},
			{Date: "2026-03-26", Title: "Recycling Workshop", Icon: "♻️"},
			{Date: "2026-04-05", Title: "Environmental Youth Summit", Icon: "🌍"},
		},

		OfficersTitle: "Officers & Leadership Team",
		OfficersIntro: "Meet the students leading Tree Troopers and organizing our events.",
		Officers:      DefaultOfficers(),

		GalleryTitle: "Photo Gallery",
		GalleryIntro: "Moments from Santa Monica cleanups, Generation Earth events, youth summits, and meetings.",
		Gallery: []Photo{
			{Src: "assets/gallery1.jpg", Title: "Santa Monica Beach Cleanup", Tag: "Beach Cleanups"},
			{Src: "assets/gallery2.jpg", Title: "Generation Earth Field Trip", Tag: "Generation Earth"},
			{Src: "assets/gallery3.jpg", Title: "Environmental Youth Summit", Tag: "Youth Summit"},
			{Src: "assets/gallery4.jpg", Title: "Club Meeting", Tag: "Meetings"},
		},

		BeforeAfter: BeforeAfter{
			Title:     "Before & After Cleanup",
			BeforeSrc: "assets/before.jpg",
			AfterSrc:  "assets/after.jpg",
		},
	}
}

// DefaultOfficers returns the built-in leadership team.
func DefaultOfficers() []Officer {
	return []Officer{
		{
			Name:  "Jeisi Escobar",
			Role:  "President",
			Bio:   "Leads meetings, organizes cleanups, and coordinates partnerships.",
			Cause: "Ocean & beach protection",
			Photo: "assets/officers/president.jpg",
		},
		{
			Name:  "Chloe Lee",
			Role:  "Vice President",
			Bio:   "Supports planning, attendance tracking, and helps lead events.",
			Cause: "Recycling & waste reduction",
			Photo: "assets/officers/vice-president.jpg",
		},
		{
			Name:  "Sayeed Abdullah",
			Role:  "Treasurer",
			Bio:   "Tracks supplies, budgets, and helps plan fundraising for projects.",
			Cause: "Climate education",
			Photo: "assets/officers/treasurer.jpg",
		},
		{
			Name:  "Alexandra Melgar",
			Role:  SecretaryRole,
			Bio:   "Promotes events, recruits members, and connects with community orgs.",
			Cause: "Wildlife & habitat conservation",
			Photo: SecretaryPhoto,
		},
	}
}

// NewActivity returns the card appended by "add activity".
func NewActivity() Activity {
	return Activity{Icon: "✨", Title: "New Activity", Desc: "Describe the activity...", Tag: "Tag"}
}

// NewMember returns the card appended by "add member".
func NewMember() Member {
	return Member{Title: "New Role", Desc: "Describe this role..."}
}

// NewOfficer returns the card appended by "add officer". It has no photo.
func NewOfficer() Officer {
	return Officer{Name: "New Officer", Role: "Role", Bio: "Short bio...", Cause: "Favorite environmental cause"}
}

// NewEvent returns the event appended by "add event".
func NewEvent() Event {
	return Event{Date: DefaultEventDate, Title: DefaultEventTitle, Icon: DefaultEventIcon}
}

// NewPhoto returns a gallery item for a freshly picked image.
func NewPhoto(src string) Photo {
	return Photo{Src: src, Title: "New Photo", Tag: "Gallery"}
}
