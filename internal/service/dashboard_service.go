package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/rbac-dashboard/internal/domain"
	"github.com/spec-kit/rbac-dashboard/internal/repository"
)

// SystemStats summarizes accounts per role.
type SystemStats struct {
	TotalUsers   int    `json:"totalUsers"`
	AdminCount   int    `json:"adminCount"`
	ManagerCount int    `json:"managerCount"`
	StaffCount   int    `json:"staffCount"`
	SystemHealth string `json:"systemHealth"`
	Uptime       string `json:"uptime"`
}

// LogEntry is one line of the admin system log.
type LogEntry struct {
	ID        int       `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Source    string    `json:"source"`
}

// Report is a manager report.
type Report struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	GeneratedBy string    `json:"generatedBy"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`
	Summary     string    `json:"summary"`
}

// DepartmentCount is one department row of the team overview.
type DepartmentCount struct {
	Name   string `json:"name"`
	Count  int    `json:"count"`
	Active int    `json:"active"`
}

// TeamActivity is a recent team action.
type TeamActivity struct {
	User   string `json:"user"`
	Action string `json:"action"`
	Time   string `json:"time"`
}

// TeamOverview summarizes the manager's team.
type TeamOverview struct {
	TotalMembers   int               `json:"totalMembers"`
	ActiveToday    int               `json:"activeToday"`
	OnLeave        int               `json:"onLeave"`
	Departments    []DepartmentCount `json:"departments"`
	RecentActivity []TeamActivity    `json:"recentActivity"`
}

// Preferences are the staff member's UI preferences.
type Preferences struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
	Language      string `json:"language"`
}

// Profile is the caller's own profile.
type Profile struct {
	domain.Identity
	LastLogin      time.Time   `json:"lastLogin"`
	AccountCreated time.Time   `json:"accountCreated"`
	Preferences    Preferences `json:"preferences"`
}

// Task is a staff task.
type Task struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	DueDate     time.Time `json:"dueDate"`
	Status      string    `json:"status"`
	AssignedBy  string    `json:"assignedBy"`
}

// TaskUpdate acknowledges a task status change.
type TaskUpdate struct {
	ID        int       `json:"id"`
	Status    string    `json:"status"`
	UpdatedBy string    `json:"updatedBy"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Notification is a staff notification.
type Notification struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	Timestamp time.Time `json:"timestamp"`
}

// DashboardService serves the per-role dashboard data. Apart from the account listing,
// everything it returns is fixed demo content.
type DashboardService struct {
	credentials repository.CredentialRepository
	now         func() time.Time
}

// NewDashboardService creates the service.
func NewDashboardService(credentials repository.CredentialRepository) *DashboardService {
	return &DashboardService{credentials: credentials, now: time.Now}
}

// Users lists every account without password digests.
func (s *DashboardService) Users(ctx context.Context) ([]domain.Identity, error) {
	return s.credentials.List(ctx)
}

// Stats counts accounts per role.
func (s *DashboardService) Stats(ctx context.Context) (*SystemStats, error) {
	users, err := s.credentials.List(ctx)
	if err != nil {
		return nil, err
	}
	stats := &SystemStats{TotalUsers: len(users), SystemHealth: "Excellent", Uptime: "99.9%"}
	for _, u := range users {
		switch u.Role {
		case domain.RoleAdmin:
			stats.AdminCount++
		case domain.RoleManager:
			stats.ManagerCount++
		case domain.RoleStaff:
			stats.StaffCount++
		}
	}
	return stats, nil
}

// Logs returns recent system log lines.
func (s *DashboardService) Logs() []LogEntry {
	now := s.now()
	return []LogEntry{
		{ID: 1, Timestamp: now, Level: "INFO", Message: "User admin@demo.com logged in", Source: "AUTH"},
		{ID: 2, Timestamp: now.Add(-5 * time.Minute), Level: "WARN", Message: "Failed login attempt for unknown@test.com", Source: "AUTH"},
		{ID: 3, Timestamp: now.Add(-10 * time.Minute), Level: "INFO", Message: "System backup completed successfully", Source: "SYSTEM"},
		{ID: 4, Timestamp: now.Add(-15 * time.Minute), Level: "ERROR", Message: "Database connection timeout", Source: "DATABASE"},
		{ID: 5, Timestamp: now.Add(-20 * time.Minute), Level: "INFO", Message: "User manager@demo.com accessed reports", Source: "ACCESS"},
	}
}

// Reports returns the manager reports; requester names the activity report author.
func (s *DashboardService) Reports(requester string) []Report {
	now := s.now()
	return []Report{
		{ID: "1", Title: "Monthly Security Report", Type: "Security", GeneratedBy: "System", Date: now, Status: "Completed", Summary: "All security metrics within normal parameters"},
		{ID: "2", Title: "User Activity Report", Type: "Activity", GeneratedBy: requester, Date: now.Add(-24 * time.Hour), Status: "Completed", Summary: "89 active users, 15% increase from last month"},
		{ID: "3", Title: "Performance Analytics", Type: "Performance", GeneratedBy: "System", Date: now.Add(-48 * time.Hour), Status: "In Progress", Summary: "System performance analysis ongoing"},
	}
}

// Team returns the team overview.
func (s *DashboardService) Team() TeamOverview {
	return TeamOverview{
		TotalMembers: 12,
		ActiveToday:  8,
		OnLeave:      2,
		Departments: []DepartmentCount{
			{Name: "Development", Count: 5, Active: 4},
			{Name: "Security", Count: 3, Active: 2},
			{Name: "Operations", Count: 4, Active: 2},
		},
		RecentActivity: []TeamActivity{
			{User: "John Doe", Action: "Completed security audit", Time: "2 hours ago"},
			{User: "Jane Smith", Action: "Updated system documentation", Time: "4 hours ago"},
			{User: "Mike Johnson", Action: "Resolved critical bug", Time: "6 hours ago"},
		},
	}
}

// GenerateReport starts a report of the given type. Nothing is persisted.
func (s *DashboardService) GenerateReport(reportType, requester string) Report {
	return Report{
		ID:          uuid.NewString(),
		Title:       fmt.Sprintf("%s Report", reportType),
		Type:        reportType,
		GeneratedBy: requester,
		Date:        s.now(),
		Status:      "Generating",
		Summary:     "Report generation in progress...",
	}
}

// Profile returns the caller's profile.
func (s *DashboardService) Profile(identity domain.Identity) Profile {
	return Profile{
		Identity:       identity,
		LastLogin:      s.now().Add(-time.Hour),
		AccountCreated: time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		Preferences:    Preferences{Theme: "light", Notifications: true, Language: "en"},
	}
}

// Tasks returns the caller's tasks.
func (s *DashboardService) Tasks() []Task {
	now := s.now()
	return []Task{
		{ID: 1, Title: "Complete security training", Description: "Finish the mandatory security awareness training module", Priority: "High", DueDate: now.Add(24 * time.Hour), Status: "In Progress", AssignedBy: "Manager"},
		{ID: 2, Title: "Update documentation", Description: "Review and update the user manual for the new system", Priority: "Medium", DueDate: now.Add(72 * time.Hour), Status: "Pending", AssignedBy: "Team Lead"},
		{ID: 3, Title: "System backup verification", Description: "Verify that daily backups are running correctly", Priority: "Low", DueDate: now.Add(7 * 24 * time.Hour), Status: "Completed", AssignedBy: "System Admin"},
	}
}

// Notifications returns the caller's notifications.
func (s *DashboardService) Notifications() []Notification {
	now := s.now()
	return []Notification{
		{ID: 1, Title: "System Maintenance", Message: "Scheduled maintenance window this weekend", Type: "info", Read: false, Timestamp: now.Add(-30 * time.Minute)},
		{ID: 2, Title: "New Policy Update", Message: "Please review the updated security policy", Type: "warning", Read: false, Timestamp: now.Add(-2 * time.Hour)},
		{ID: 3, Title: "Training Completed", Message: "Congratulations on completing the security training!", Type: "success", Read: true, Timestamp: now.Add(-24 * time.Hour)},
	}
}

// UpdateTask acknowledges a status change.
func (s *DashboardService) UpdateTask(id int, status, updatedBy string) TaskUpdate {
	return TaskUpdate{ID: id, Status: status, UpdatedBy: updatedBy, UpdatedAt: s.now()}
}
