package claims

import "time"

type Type string

const (
	TypeCollision     Type = "Collision"
	TypeWindshield    Type = "Windshield"
	TypeTheft         Type = "Theft"
	TypeComprehensive Type = "Comprehensive"
	TypeLiability     Type = "Liability"
)

var Types = []Type{TypeCollision, TypeWindshield, TypeTheft, TypeComprehensive, TypeLiability}

type Status string

const (
	StatusOpen      Status = "Open"
	StatusInReview  Status = "In Review"
	StatusEscalated Status = "Escalated"
	StatusClosed    Status = "Closed"
)

type Region string

const (
	RegionNortheast Region = "Northeast"
	RegionSoutheast Region = "Southeast"
	RegionMidwest   Region = "Midwest"
	RegionSouthwest Region = "Southwest"
	RegionWest      Region = "West"
	RegionUnknown   Region = "Unknown"
)

// Regions lists the assignable regions; RegionUnknown is never assigned by the seeder.
var Regions = []Region{RegionNortheast, RegionSoutheast, RegionMidwest, RegionSouthwest, RegionWest}

type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// FetchLimit caps every full-collection read of claims. Claims past it are
// silently left out of lists and aggregates.
const FetchLimit = 1000

// DateLayout is the calendar-date format of date_filed.
const DateLayout = "2006-01-02"

// Claim is a filed FNOL claim as stored and served.
type Claim struct {
	ID                  string    `json:"id"`
	ClaimNumber         string    `json:"claim_number"`
	Policyholder        string    `json:"policyholder"`
	PolicyNumber        string    `json:"policy_number"`
	DateFiled           string    `json:"date_filed"`
	ClaimType           Type      `json:"claim_type"`
	Status              Status    `json:"status"`
	Amount              float64   `json:"amount"`
	AutoRouted          bool      `json:"auto_routed"`
	ZipCode             string    `json:"zip_code"`
	Region              Region    `json:"region"`
	AdjusterAssigned    *string   `json:"adjuster_assigned"`
	ResolutionTimeHours *float64  `json:"resolution_time_hours"`
	DayOfWeek           string    `json:"day_of_week"`
	RiskLevel           RiskLevel `json:"risk_level"`
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

func DayOfWeek(t time.Time) string {
	return t.UTC().Weekday().String()
}
