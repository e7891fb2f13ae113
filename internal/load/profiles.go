package load

import "time"

// LoadProfile is the steady-load preset: 20 users for a minute, each
// iteration fetching the trimmed country list and two single countries.
func LoadProfile() (Scenario, Options) {
	scenario := Scenario{
		Name: "load",
		Requests: []Request{
			{Name: "all name,cca3", Path: "/all?fields=name,cca3"},
			{Name: "alpha USA", Path: "/alpha/USA"},
			{Name: "alpha ZAF", Path: "/alpha/ZAF"},
		},
		Checks: []Check{
			{Name: "request %d status 200", PerRequest: true, Pass: statusOK},
		},
	}
	return scenario, Options{VUs: 20, Duration: time.Minute}
}

// PerformanceProfile ramps to 10 users, holds, then ramps down while
// holding p95 latency under 2s and failures under 1%.
func PerformanceProfile() (Scenario, Options) {
	scenario := Scenario{
		Name: "API Performance Test",
		Requests: []Request{
			{Name: "all name,cca3,region,status", Path: "/all?fields=name,cca3,region,status"},
		},
		Checks: []Check{
			{Name: "status is 200", Pass: statusOK},
			{Name: "response time OK", Pass: func(s Sample) bool { return s.Duration < 2*time.Second }},
		},
	}
	return scenario, Options{
		Stages: []Stage{
			{Duration: time.Minute, Target: 10},
			{Duration: 3 * time.Minute, Target: 10},
			{Duration: time.Minute, Target: 0},
		},
		Thresholds: []Threshold{
			P95Below(2 * time.Second),
			FailureRateBelow(0.01),
		},
	}
}

func statusOK(s Sample) bool {
	return s.Err == nil && s.Status == 200
}
