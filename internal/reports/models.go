package reports

import (
	"time"

	"carbontrack/carbontrack-backend/internal/analytics"
)

// WeeklyReport is a persisted digest of one user's past week, produced by the
// weekly report worker for users who opted into the digest.
type WeeklyReport struct {
	ID         string                   `bson:"_id" json:"id"`
	UserID     string                   `bson:"user" json:"user"`
	WeekStart  time.Time                `bson:"week_start" json:"weekStart"`
	WeekEnd    time.Time                `bson:"week_end" json:"weekEnd"`
	TotalCO2   float64                  `bson:"total_co2" json:"totalCO2"`
	Entries    int                      `bson:"entries" json:"entries"`
	Categories []analytics.CategoryStat `bson:"categories" json:"categories"`
	CreatedAt  time.Time                `bson:"created_at" json:"createdAt"`
}
