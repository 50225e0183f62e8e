package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"codemasti/internal/gen/schema"

	"gorm.io/gorm"
)

// Problem is a coding problem with the execution config its harnesses are built from
type Problem struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string         `gorm:"not null" json:"title"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Bumped on every config edit; part of the program memo key
	ConfigVersion int `gorm:"not null;default:1" json:"configVersion"`

	// Execution config stored as JSON
	ExecutionConfig ExecutionConfigColumn `gorm:"type:jsonb" json:"executionConfig"`

	TestCases []ProblemTestCase `gorm:"foreignKey:ProblemID" json:"testCases,omitempty"`
}

// ExecutionConfigColumn persists a schema.ExecutionConfig as jsonb
type ExecutionConfigColumn schema.ExecutionConfig

// Config returns the stored execution config
func (c ExecutionConfigColumn) Config() schema.ExecutionConfig {
	return schema.ExecutionConfig(c)
}

// Value implements driver.Valuer for GORM
func (c ExecutionConfigColumn) Value() (driver.Value, error) {
	return json.Marshal(schema.ExecutionConfig(c))
}

// Scan implements sql.Scanner for GORM
func (c *ExecutionConfigColumn) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("failed to scan ExecutionConfig: expected []byte")
	}
	var cfg schema.ExecutionConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return err
	}
	*c = ExecutionConfigColumn(cfg)
	return nil
}

// ProblemTestCase is one stored test case of a problem
type ProblemTestCase struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProblemID   uint      `gorm:"not null;index" json:"problemId"`
	Position    int       `gorm:"not null;default:0" json:"position"`
	Input       string    `gorm:"type:text;not null" json:"input"`
	Output      string    `gorm:"type:text;not null" json:"output"`
	Explanation string    `gorm:"type:text" json:"explanation,omitempty"`
	Hidden      bool      `gorm:"default:false" json:"hidden"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TestCase converts the row into the generator's test case
func (tc ProblemTestCase) TestCase() schema.TestCase {
	return schema.TestCase{
		Input:       tc.Input,
		Output:      tc.Output,
		Explanation: tc.Explanation,
	}
}
