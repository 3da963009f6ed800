package handler

import (
	"net/http"
	"sort"
	"time"

	"dental-center-management/internal/converter"
	"dental-center-management/internal/delivery/dto"
	"dental-center-management/internal/domain/entity"
	"dental-center-management/internal/store"
	"dental-center-management/pkg/response"

	"github.com/shopspring/decimal"
)

const upcomingLimit = 10

type DashboardHandler struct {
	entities *store.EntityStore
	now      func() time.Time
}

func NewDashboardHandler(entities *store.EntityStore) *DashboardHandler {
	return &DashboardHandler{
		entities: entities,
		now:      time.Now,
	}
}

// Summary returns the admin KPIs: patient count, total revenue summed
// over all incident costs, and the next upcoming appointments.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	patients := h.entities.Patients()
	incidents := h.entities.Incidents()

	totalRevenue := decimal.Zero
	for i := range incidents {
		if incidents[i].Cost != nil {
			totalRevenue = totalRevenue.Add(*incidents[i].Cost)
		}
	}

	now := h.now()
	upcoming := make([]entity.Incident, 0, len(incidents))
	for _, in := range incidents {
		at, err := in.AppointmentTime()
		if err != nil {
			continue
		}
		if at.After(now) {
			upcoming = append(upcoming, in)
		}
	}
	sortByAppointment(upcoming)

	shown := upcoming
	if len(shown) > upcomingLimit {
		shown = shown[:upcomingLimit]
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dto.DashboardResponse{
		TotalPatients:        len(patients),
		TotalRevenue:         totalRevenue,
		UpcomingCount:        len(upcoming),
		UpcomingAppointments: converter.IncidentsToResponse(shown),
	})
}

// Calendar groups the incidents of one month (query parameter
// month=YYYY-MM, defaulting to the current month) by day.
func (h *DashboardHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = h.now().Format("2006-01")
	}
	monthStart, err := time.Parse("2006-01", month)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid month, use YYYY-MM", nil)
		return
	}
	monthEnd := monthStart.AddDate(0, 1, 0)

	byDay := make(map[string][]entity.Incident)
	for _, in := range h.entities.Incidents() {
		at, err := in.AppointmentTime()
		if err != nil {
			continue
		}
		if at.Before(monthStart) || !at.Before(monthEnd) {
			continue
		}
		day := at.Format("2006-01-02")
		byDay[day] = append(byDay[day], in)
	}

	days := make([]dto.CalendarDay, 0, len(byDay))
	for day, incidents := range byDay {
		sortByAppointment(incidents)
		days = append(days, dto.CalendarDay{
			Date:      day,
			Incidents: converter.IncidentsToResponse(incidents),
		})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	response.Success(w, http.StatusOK, "Calendar retrieved successfully", dto.CalendarResponse{
		Month: month,
		Days:  days,
	})
}

func sortByAppointment(incidents []entity.Incident) {
	sort.SliceStable(incidents, func(i, j int) bool {
		return incidents[i].AppointmentDate < incidents[j].AppointmentDate
	})
}
