package models

import "time"

// DashboardTotals is the headline counter block on the admin dashboard.
type DashboardTotals struct {
	Users          int `json:"users"`
	Programs       int `json:"programs"`
	Events         int `json:"events"`
	Applications   int `json:"applications"`
	Contacts       int `json:"contacts"`
	SuccessStories int `json:"success_stories"`
}

// DashboardRecentActivity counts records created inside the recent window.
type DashboardRecentActivity struct {
	NewUsers        int `json:"new_users_30d"`
	NewApplications int `json:"new_applications_30d"`
	NewContacts     int `json:"new_contacts_30d"`
}

// DashboardBreakdowns groups records by their discriminating field.
type DashboardBreakdowns struct {
	ApplicationStatus map[string]int `json:"application_status"`
	ContactStatus     map[string]int `json:"contact_status"`
	ProgramCategories map[string]int `json:"program_categories"`
}

// ApplicationSummary is a trimmed application row for the dashboard feed.
type ApplicationSummary struct {
	ID            string            `json:"id"`
	ApplicantName string            `json:"applicant_name"`
	Type          ApplicationType   `json:"type"`
	Status        ApplicationStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
}

// ContactSummary is a trimmed contact row for the dashboard feed.
type ContactSummary struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Subject   string        `json:"subject"`
	Status    ContactStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// DashboardRecentItems lists the newest submissions for quick review.
type DashboardRecentItems struct {
	Applications []ApplicationSummary `json:"applications"`
	Contacts     []ContactSummary     `json:"contacts"`
}

// DashboardStats is the aggregate payload for the admin dashboard.
// Totals count only live content: active users, active programs, published
// stories.
type DashboardStats struct {
	Totals         DashboardTotals         `json:"totals"`
	RecentActivity DashboardRecentActivity `json:"recent_activity"`
	Breakdowns     DashboardBreakdowns     `json:"breakdowns"`
	RecentItems    DashboardRecentItems    `json:"recent_items"`
}
