package inbound

type HealthResponse struct {
	Status       string `json:"status"`
	UptimeNS     int64  `json:"uptime_ns"`
	ActiveTimers int64  `json:"active_timers"`
}

type TimerResponse struct {
	Name  string `json:"name"`
	AgeNS int64  `json:"age_ns"`
}

type ListTimersResponse []TimerResponse

func (ListTimersResponse) Message() string {
	return "running timers"
}
