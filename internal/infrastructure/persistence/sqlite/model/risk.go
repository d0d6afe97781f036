package model

type Risk struct {
	Seq             uint64   `gorm:"column:seq;primaryKey;autoIncrement"`
	ID              string   `gorm:"column:id;type:text;not null;uniqueIndex"`
	RiskID          string   `gorm:"column:risk_id;type:text;not null;index"`
	Title           string   `gorm:"column:title;type:text;not null"`
	Description     string   `gorm:"column:description;type:text;not null"`
	Probability     string   `gorm:"column:probability;type:text;not null"`
	Impact          string   `gorm:"column:impact;type:text;not null"`
	MitigationSteps []string `gorm:"column:mitigation_steps;type:text;not null;serializer:json"`
	ContingencyPlan string   `gorm:"column:contingency_plan;type:text;not null"`
	Owner           string   `gorm:"column:owner;type:text;not null"`
	Status          string   `gorm:"column:status;type:text;not null"`
}

func (Risk) TableName() string {
	return "risks"
}
