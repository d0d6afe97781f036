package claims

import "sort"

type KPIMetrics struct {
	AvgResolutionTime    float64 `json:"avg_resolution_time"`
	AutoRouteSuccessRate float64 `json:"auto_route_success_rate"`
	EscalationRate       float64 `json:"escalation_rate"`
	TotalClaims          int     `json:"total_claims"`
	OpenClaims           int     `json:"open_claims"`
	ClosedClaims         int     `json:"closed_claims"`
	EscalatedClaims      int     `json:"escalated_claims"`
}

type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type TypeCount struct {
	Type  Type `json:"type"`
	Count int  `json:"count"`
}

type StatusCount struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
}

type RegionCount struct {
	Region Region `json:"region"`
	Count  int    `json:"count"`
}

type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type TrendAnalysis struct {
	ByDayOfWeek []DayCount    `json:"by_day_of_week"`
	ByClaimType []TypeCount   `json:"by_claim_type"`
	ByStatus    []StatusCount `json:"by_status"`
	ByRegion    []RegionCount `json:"by_region"`
	Timeline    []DateCount   `json:"timeline"`
}

// ComputeKPIs aggregates the claim set. Rates are percentages rounded to one
// decimal and are 0 for an empty set.
func ComputeKPIs(items []Claim) KPIMetrics {
	out := KPIMetrics{TotalClaims: len(items)}

	var autoRouted int
	var resolutionSum float64
	var resolutionCount int
	for _, c := range items {
		switch c.Status {
		case StatusOpen:
			out.OpenClaims++
		case StatusClosed:
			out.ClosedClaims++
		case StatusEscalated:
			out.EscalatedClaims++
		}
		if c.AutoRouted {
			autoRouted++
		}
		if c.ResolutionTimeHours != nil {
			resolutionSum += *c.ResolutionTimeHours
			resolutionCount++
		}
	}

	if resolutionCount > 0 {
		out.AvgResolutionTime = Round(resolutionSum/float64(resolutionCount), 1)
	}
	if out.TotalClaims > 0 {
		total := float64(out.TotalClaims)
		out.AutoRouteSuccessRate = Round(float64(autoRouted)/total*100, 1)
		out.EscalationRate = Round(float64(out.EscalatedClaims)/total*100, 1)
	}
	return out
}

// AnalyzeTrends counts claims per day of week, type, status, region and filing
// date. Breakdowns keep first-seen key order; the timeline is sorted by date.
func AnalyzeTrends(items []Claim) TrendAnalysis {
	days := newTally()
	types := newTally()
	statuses := newTally()
	regions := newTally()
	dates := newTally()

	for _, c := range items {
		days.add(c.DayOfWeek)
		types.add(string(c.ClaimType))
		statuses.add(string(c.Status))
		regions.add(string(c.Region))
		dates.add(c.DateFiled)
	}

	out := TrendAnalysis{
		ByDayOfWeek: make([]DayCount, 0, len(days.keys)),
		ByClaimType: make([]TypeCount, 0, len(types.keys)),
		ByStatus:    make([]StatusCount, 0, len(statuses.keys)),
		ByRegion:    make([]RegionCount, 0, len(regions.keys)),
		Timeline:    make([]DateCount, 0, len(dates.keys)),
	}
	for _, k := range days.keys {
		out.ByDayOfWeek = append(out.ByDayOfWeek, DayCount{Day: k, Count: days.counts[k]})
	}
	for _, k := range types.keys {
		out.ByClaimType = append(out.ByClaimType, TypeCount{Type: Type(k), Count: types.counts[k]})
	}
	for _, k := range statuses.keys {
		out.ByStatus = append(out.ByStatus, StatusCount{Status: Status(k), Count: statuses.counts[k]})
	}
	for _, k := range regions.keys {
		out.ByRegion = append(out.ByRegion, RegionCount{Region: Region(k), Count: regions.counts[k]})
	}

	sortedDates := append([]string(nil), dates.keys...)
	sort.Strings(sortedDates)
	for _, k := range sortedDates {
		out.Timeline = append(out.Timeline, DateCount{Date: k, Count: dates.counts[k]})
	}
	return out
}

type tally struct {
	keys   []string
	counts map[string]int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(key string) {
	if _, ok := t.counts[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.counts[key]++
}
