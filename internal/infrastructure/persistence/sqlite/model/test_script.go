package model

type TestScript struct {
	Seq            uint64   `gorm:"column:seq;primaryKey;autoIncrement"`
	ID             string   `gorm:"column:id;type:text;not null;uniqueIndex"`
	ScriptID       string   `gorm:"column:script_id;type:text;not null;index"`
	Title          string   `gorm:"column:title;type:text;not null"`
	Description    string   `gorm:"column:description;type:text;not null"`
	Steps          []string `gorm:"column:steps;type:text;not null;serializer:json"`
	ExpectedResult string   `gorm:"column:expected_result;type:text;not null"`
	Status         string   `gorm:"column:status;type:text;not null"`
	TestedBy       *string  `gorm:"column:tested_by;type:text"`
	TestedDate     *string  `gorm:"column:tested_date;type:text"`
	Notes          *string  `gorm:"column:notes;type:text"`
}

func (TestScript) TableName() string {
	return "test_scripts"
}
