package dto

import "github.com/shopspring/decimal"

// DashboardResponse is the admin KPI summary.
type DashboardResponse struct {
	TotalPatients        int                `json:"totalPatients"`
	TotalRevenue         decimal.Decimal    `json:"totalRevenue"`
	UpcomingCount        int                `json:"upcomingCount"`
	UpcomingAppointments []IncidentResponse `json:"upcomingAppointments"`
}

// CalendarDay groups the incidents of one day.
type CalendarDay struct {
	Date      string             `json:"date"` // YYYY-MM-DD
	Incidents []IncidentResponse `json:"incidents"`
}

// CalendarResponse lists the days of a month that have incidents.
type CalendarResponse struct {
	Month string        `json:"month"` // YYYY-MM
	Days  []CalendarDay `json:"days"`
}
