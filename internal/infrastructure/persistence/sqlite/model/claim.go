package model

type Claim struct {
	Seq                 uint64   `gorm:"column:seq;primaryKey;autoIncrement"`
	ID                  string   `gorm:"column:id;type:text;not null;uniqueIndex"`
	ClaimNumber         string   `gorm:"column:claim_number;type:text;not null;index"`
	Policyholder        string   `gorm:"column:policyholder;type:text;not null"`
	PolicyNumber        string   `gorm:"column:policy_number;type:text;not null"`
	DateFiled           string   `gorm:"column:date_filed;type:text;not null;index"`
	ClaimType           string   `gorm:"column:claim_type;type:text;not null"`
	Status              string   `gorm:"column:status;type:text;not null"`
	Amount              float64  `gorm:"column:amount;not null"`
	AutoRouted          bool     `gorm:"column:auto_routed;not null"`
	ZipCode             string   `gorm:"column:zip_code;type:text;not null"`
	Region              string   `gorm:"column:region;type:text;not null"`
	AdjusterAssigned    *string  `gorm:"column:adjuster_assigned;type:text"`
	ResolutionTimeHours *float64 `gorm:"column:resolution_time_hours"`
	DayOfWeek           string   `gorm:"column:day_of_week;type:text;not null"`
	RiskLevel           string   `gorm:"column:risk_level;type:text;not null"`
}

func (Claim) TableName() string {
	return "claims"
}
