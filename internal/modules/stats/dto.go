package stats

type KPIRequest struct {
	TenantID       int64
	From           string // YYYY-MM-DD, inclusive, tenant wall clock
	To             string // YYYY-MM-DD, exclusive
	ProfessionalID int64
}

type DayPoint struct {
	Date         string `json:"date"`
	Bookings     int    `json:"bookings"`
	RevenueCents int64  `json:"revenueCents"`
}

type KPIResponse struct {
	From          string     `json:"from"`
	To            string     `json:"to"`
	Timezone      string     `json:"timezone"`
	TotalBookings int        `json:"totalBookings"`
	Paid          int        `json:"paid"`
	Attended      int        `json:"attended"`
	NoShow        int        `json:"noShow"`
	Cancelled     int        `json:"cancelled"`
	PaidPct       float64    `json:"paidPct"`
	NoShowPct     float64    `json:"noShowPct"`
	RevenueCents  int64      `json:"revenueCents"`
	Daily         []DayPoint `json:"daily"`
}

type ExportRequest struct {
	TenantID       int64
	From           string
	To             string
	ProfessionalID int64
	Status         string
}
