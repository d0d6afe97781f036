package model

type Defect struct {
	Seq          uint64  `gorm:"column:seq;primaryKey;autoIncrement"`
	ID           string  `gorm:"column:id;type:text;not null;uniqueIndex"`
	DefectID     string  `gorm:"column:defect_id;type:text;not null;index"`
	Title        string  `gorm:"column:title;type:text;not null"`
	Description  string  `gorm:"column:description;type:text;not null"`
	Severity     string  `gorm:"column:severity;type:text;not null"`
	Status       string  `gorm:"column:status;type:text;not null"`
	ReportedBy   string  `gorm:"column:reported_by;type:text;not null"`
	AssignedTo   *string `gorm:"column:assigned_to;type:text"`
	ReportedDate string  `gorm:"column:reported_date;type:text;not null"`
	ResolvedDate *string `gorm:"column:resolved_date;type:text"`
	TestScriptID *string `gorm:"column:test_script_id;type:text"`
}

func (Defect) TableName() string {
	return "defects"
}
