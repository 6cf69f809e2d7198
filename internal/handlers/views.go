package handlers

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/calendar"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type slotView struct {
	ID       uint      `json:"id"`
	BarberID uint      `json:"barber_id"`
	DateTime time.Time `json:"date_time"`
	Date     string    `json:"date"`
	Time     string    `json:"time"`
	Status   string    `json:"status"`
}

func slotViews(slots []models.Slot) []slotView {
	out := make([]slotView, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotView{
			ID:       s.ID,
			BarberID: s.BarberID,
			DateTime: s.DateTime,
			Date:     s.DateTime.Format(calendar.DateLayout),
			Time:     s.DateTime.Format(calendar.ClockLayout),
			Status:   s.Status,
		})
	}
	return out
}

type barberView struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	PhotoURL  string `json:"photo_url,omitempty"`
}
