package availability

type DaySlotsResponse struct {
	Timezone string   `json:"timezone"`
	Date     string   `json:"date"`
	Slots    []string `json:"slots"`
}
