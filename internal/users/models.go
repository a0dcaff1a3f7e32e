package users

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is an account with its profile, preferences and lifetime stats.
// The password hash is excluded from every JSON response.
type User struct {
	ID           string      `bson:"_id" json:"id"`
	Username     string      `bson:"username" json:"username"`
	Email        string      `bson:"email" json:"email"`
	PasswordHash string      `bson:"password" json:"-"`
	Profile      Profile     `bson:"profile" json:"profile"`
	Preferences  Preferences `bson:"preferences" json:"preferences"`
	Stats        Stats       `bson:"stats" json:"stats"`
	Role         string      `bson:"role" json:"role"`
	CreatedAt    time.Time   `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time   `bson:"updated_at" json:"updatedAt"`
}

type Profile struct {
	FirstName string   `bson:"first_name,omitempty" json:"firstName,omitempty"`
	LastName  string   `bson:"last_name,omitempty" json:"lastName,omitempty"`
	Avatar    string   `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Location  Location `bson:"location,omitempty" json:"location,omitempty"`
}

type Location struct {
	Country  string `bson:"country,omitempty" json:"country,omitempty"`
	City     string `bson:"city,omitempty" json:"city,omitempty"`
	Timezone string `bson:"timezone,omitempty" json:"timezone,omitempty"`
}

type Preferences struct {
	Units         string        `bson:"units" json:"units"`
	WeeklyGoal    float64       `bson:"weekly_goal" json:"weeklyGoal"`
	Notifications Notifications `bson:"notifications" json:"notifications"`
}

type Notifications struct {
	Email        bool `bson:"email" json:"email"`
	WeeklyReport bool `bson:"weekly_report" json:"weeklyReport"`
}

type Stats struct {
	TotalCO2Saved float64   `bson:"total_co2_saved" json:"totalCO2Saved"`
	Streak        int       `bson:"streak" json:"streak"`
	LastActive    time.Time `bson:"last_active,omitempty" json:"lastActive,omitempty"`
	Achievements  []string  `bson:"achievements,omitempty" json:"achievements,omitempty"`
}

// New builds a user with default preferences. Emails are stored lowercased so
// lookups are case-insensitive.
func New(username, email, passwordHash string) *User {
	now := time.Now()
	return &User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		Preferences: Preferences{
			Units:      "metric",
			WeeklyGoal: 50,
			Notifications: Notifications{
				Email:        true,
				WeeklyReport: true,
			},
		},
		Role:      "user",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmail reports whether the address has a plausible mailbox shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
