package domain

import "time"

const (
	ExportEvents        = "events"
	ExportUsers         = "users"
	ExportRegistrations = "registrations"

	ExportFormatCSV  = "csv"
	ExportFormatJSON = "json"
)

var (
	MessageSuccessGetStats    = "Dashboard statistics retrieved successfully"
	MessageSuccessGetTrending = "Trending events retrieved successfully"
	MessageSuccessGetRecent   = "Recent posts retrieved successfully"
	MessageSuccessExport      = "Data exported successfully"

	MessageFailedGetStats    = "Failed to retrieve dashboard statistics"
	MessageFailedGetTrending = "Failed to retrieve trending events"
	MessageFailedGetRecent   = "Failed to retrieve recent posts"
	MessageFailedExport      = "Failed to export data"

	ErrInvalidExportType = NewError(KindInvalid, "Invalid export type")
)

type (
	AdminStats struct {
		TotalUsers         int64            `json:"totalUsers"`
		TotalEvents        int64            `json:"totalEvents"`
		ApprovedEvents     int64            `json:"approvedEvents"`
		PendingEvents      int64            `json:"pendingEvents"`
		TotalRegistrations int64            `json:"totalRegistrations"`
		UsersByRole        map[string]int64 `json:"usersByRole"`
	}

	ManagerStats struct {
		MyEvents           int64 `json:"myEvents"`
		ApprovedEvents     int64 `json:"approvedEvents"`
		PendingEvents      int64 `json:"pendingEvents"`
		TotalRegistrations int64 `json:"totalRegistrations"`
		TotalPosts         int64 `json:"totalPosts"`
	}

	VolunteerStats struct {
		RegisteredEvents int64   `json:"registeredEvents"`
		CompletedEvents  int64   `json:"completedEvents"`
		UpcomingEvents   int64   `json:"upcomingEvents"`
		HoursContributed float64 `json:"hoursContributed"`
	}

	DashboardStatsResponse struct {
		Role  Role `json:"role"`
		Stats any  `json:"stats"`
	}

	TrendingEvent struct {
		ID                string       `json:"id"`
		Title             string       `json:"title"`
		Category          string       `json:"category"`
		Date              time.Time    `json:"date"`
		Location          string       `json:"location"`
		Image             string       `json:"image,omitempty"`
		Status            string       `json:"status"`
		RegistrationCount int64        `json:"registrationCount"`
		PostCount         int64        `json:"postCount"`
		TrendScore        int64        `json:"trendScore"`
		CreatedBy         *UserSummary `json:"createdBy,omitempty"`
		CreatedAt         time.Time    `json:"createdAt"`
	}

	ExportRequest struct {
		Type   string
		Format string
	}

	// ExportTable is a flattened export: one header row plus records in header order.
	ExportTable struct {
		Type    string
		Headers []string
		Rows    [][]string
		Records []map[string]any
	}
)

// TrendScore weighs registrations twice as much as posts.
func TrendScore(registrations, posts int64) int64 {
	return 2*registrations + posts
}
