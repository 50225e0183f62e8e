package repo

import (
	"codemasti"
	"codemasti/internal/api/models"

	"gorm.io/gorm"
)

type ProblemRepository struct {
	Db *gorm.DB
}

func NewProblemRepository() *ProblemRepository {
	return &ProblemRepository{Db: codemasti.DB}
}

// FindByID retrieves a problem without its test cases
func (slf *ProblemRepository) FindByID(id uint) (models.Problem, error) {
	var problem models.Problem
	err := slf.Db.First(&problem, id).Error
	return problem, err
}

// FindTestCases retrieves the test cases of a problem in display order
func (slf *ProblemRepository) FindTestCases(problemID uint) ([]models.ProblemTestCase, error) {
	var testCases []models.ProblemTestCase
	err := slf.Db.
		Where("problem_id = ?", problemID).
		Order("position ASC, id ASC").
		Find(&testCases).Error
	return testCases, err
}

// FindTestCase retrieves one test case, scoped to its problem
func (slf *ProblemRepository) FindTestCase(problemID, testCaseID uint) (models.ProblemTestCase, error) {
	var testCase models.ProblemTestCase
	err := slf.Db.
		Where("problem_id = ?", problemID).
		First(&testCase, testCaseID).Error
	return testCase, err
}

// UpdateExecutionConfig replaces the execution config of a problem
func (slf *ProblemRepository) UpdateExecutionConfig(problem *models.Problem, cfg models.ExecutionConfigColumn) error {
	return slf.Db.Model(problem).Updates(map[string]interface{}{
		"execution_config": cfg,
		"config_version":   gorm.Expr("config_version + 1"),
	}).Error
}
