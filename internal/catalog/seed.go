package catalog

import "github.com/mergington/activity-signups/internal/model"

// Seed returns the fixed activity set the catalog is populated with at
// startup. Rosters include the students already registered when the school
// year opened.
func Seed() []model.Activity {
	return []model.Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		{
			Name:            "Basketball Team",
			Description:     "Practice basketball and compete in interschool leagues",
			Schedule:        "Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 15,
			Participants:    []string{"liam@mergington.edu"},
		},
		{
			Name:            "Tennis Club",
			Description:     "Tennis practice and friendly matches on the school courts",
			Schedule:        "Tuesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 10,
			Participants:    []string{"mia@mergington.edu"},
		},
		{
			Name:            "Art Studio",
			Description:     "Explore painting, drawing, and sculpture",
			Schedule:        "Thursdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 16,
			Participants:    []string{"amelia@mergington.edu"},
		},
		{
			Name:            "Drama Club",
			Description:     "Acting, stage production, and the annual school play",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"noah@mergington.edu", "ava@mergington.edu"},
		},
		{
			Name:            "Debate Team",
			Description:     "Develop argumentation and public speaking skills",
			Schedule:        "Tuesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"charlotte@mergington.edu"},
		},
		{
			Name:            "Science Club",
			Description:     "Hands-on experiments and science fair projects",
			Schedule:        "Fridays, 4:00 PM - 5:30 PM",
			MaxParticipants: 14,
			Participants:    []string{"lucas@mergington.edu"},
		},
	}
}
