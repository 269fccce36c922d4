package domain

// Points awarded for campus activity, shown in the leaderboard legend.
const (
	PointsEventAttendance = 3
	PointsEventCreation   = 5
)

type StudentRank struct {
	UserID     uint   `json:"user_id"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
	Points     int    `json:"points"`
}

type ClubRank struct {
	ClubID uint   `json:"club_id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

type Leaderboard struct {
	Students []StudentRank `json:"students"`
	Clubs    []ClubRank    `json:"clubs"`
}
