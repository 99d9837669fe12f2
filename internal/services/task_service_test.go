package services

import (
	"testing"
	"time"

	"github.com/ryoptimus/DevStorm-backend/internal/models"
	"github.com/ryoptimus/DevStorm-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskServiceTestSuite defines the test suite for TaskService
type TaskServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TaskService
}

// SetupTest runs before each test
func (suite *TaskServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	suite.service = NewTaskService(
		repository.NewTaskRepository(suite.db),
		repository.NewProjectRepository(suite.db),
	)
}

// TearDownTest runs after each test
func (suite *TaskServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *TaskServiceTestSuite) createTestProject(owner string) *models.Project {
	project := &models.Project{
		Owner:       owner,
		Title:       "Test Project",
		Status:      models.ProjectStatusInProgress,
		DateCreated: time.Now(),
	}
	suite.db.Create(project)
	return project
}

func (suite *TaskServiceTestSuite) createTestTask(projectID uint64, description string, priority int) *models.Task {
	task := &models.Task{
		ProjectID:   projectID,
		Description: description,
		Priority:    priority,
		Status:      models.TaskStatusTodo,
	}
	suite.db.Create(task)
	return task
}

// TestCreateTask_Success tests manual task creation
func (suite *TaskServiceTestSuite) TestCreateTask_Success() {
	project := suite.createTestProject("alice")

	task, err := suite.service.CreateTask(CreateTaskInput{
		Caller:      "alice",
		ProjectID:   project.ID,
		Description: "write the README",
		Priority:    2,
	})
	suite.Require().NoError(err)
	assert.NotZero(suite.T(), task.ID)
	assert.Equal(suite.T(), models.TaskStatusTodo, task.Status)
	assert.Equal(suite.T(), 2, task.Priority)
}

// TestCreateTask_Validation tests description, priority and status checks
func (suite *TaskServiceTestSuite) TestCreateTask_Validation() {
	project := suite.createTestProject("alice")

	_, err := suite.service.CreateTask(CreateTaskInput{
		Caller:      "alice",
		ProjectID:   project.ID,
		Description: "   ",
		Priority:    1,
	})
	assert.ErrorIs(suite.T(), err, ErrDescriptionEmpty)

	_, err = suite.service.CreateTask(CreateTaskInput{
		Caller:      "alice",
		ProjectID:   project.ID,
		Description: "valid",
		Priority:    0,
	})
	assert.ErrorIs(suite.T(), err, ErrInvalidPriority)

	_, err = suite.service.CreateTask(CreateTaskInput{
		Caller:      "alice",
		ProjectID:   project.ID,
		Description: "valid",
		Priority:    1,
		Status:      models.TaskStatus("SHIPPED"),
	})
	assert.ErrorIs(suite.T(), err, ErrInvalidTaskStatus)
}

// TestCreateTask_NotOwner tests that only the project owner may add tasks
func (suite *TaskServiceTestSuite) TestCreateTask_NotOwner() {
	project := suite.createTestProject("alice")

	_, err := suite.service.CreateTask(CreateTaskInput{
		Caller:      "bob",
		ProjectID:   project.ID,
		Description: "sneaky task",
		Priority:    1,
	})
	assert.ErrorIs(suite.T(), err, ErrNotProjectOwner)
}

// TestCreateTask_MissingProject tests creation against a nonexistent project
func (suite *TaskServiceTestSuite) TestCreateTask_MissingProject() {
	_, err := suite.service.CreateTask(CreateTaskInput{
		Caller:      "alice",
		ProjectID:   9999,
		Description: "orphan task",
		Priority:    1,
	})
	assert.ErrorIs(suite.T(), err, ErrProjectNotFound)
}

// TestGetTask_OwnerOnly tests that task reads are owner-only; collaborators
// hold no task rights.
func (suite *TaskServiceTestSuite) TestGetTask_OwnerOnly() {
	bob := "bob"
	project := suite.createTestProject("alice")
	project.Collaborator1 = &bob
	suite.db.Save(project)
	task := suite.createTestTask(project.ID, "step one", 1)

	got, err := suite.service.GetTask("alice", task.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), task.ID, got.ID)

	_, err = suite.service.GetTask("bob", task.ID)
	assert.ErrorIs(suite.T(), err, ErrNotProjectOwner)
}

// TestGetTask_Missing tests retrieval of a nonexistent task
func (suite *TaskServiceTestSuite) TestGetTask_Missing() {
	_, err := suite.service.GetTask("alice", 9999)
	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

// TestListTasksByProject_OrderedByPriority tests the listing order
func (suite *TaskServiceTestSuite) TestListTasksByProject_OrderedByPriority() {
	project := suite.createTestProject("alice")
	suite.createTestTask(project.ID, "later", 3)
	suite.createTestTask(project.ID, "first", 1)
	suite.createTestTask(project.ID, "middle", 2)

	tasks, err := suite.service.ListTasksByProject("alice", project.ID)
	suite.Require().NoError(err)
	suite.Require().Len(tasks, 3)
	assert.Equal(suite.T(), "first", tasks[0].Description)
	assert.Equal(suite.T(), "middle", tasks[1].Description)
	assert.Equal(suite.T(), "later", tasks[2].Description)
}

// TestListTasksByProject_Empty tests a project with no tasks
func (suite *TaskServiceTestSuite) TestListTasksByProject_Empty() {
	project := suite.createTestProject("alice")

	_, err := suite.service.ListTasksByProject("alice", project.ID)
	assert.ErrorIs(suite.T(), err, ErrNoTasksForProject)
}

// TestUpdateTaskStatus tests the status transitions
func (suite *TaskServiceTestSuite) TestUpdateTaskStatus() {
	project := suite.createTestProject("alice")
	task := suite.createTestTask(project.ID, "step one", 1)

	updated, err := suite.service.UpdateTaskStatus("alice", task.ID, models.TaskStatusDone)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusDone, updated.Status)

	_, err = suite.service.UpdateTaskStatus("alice", task.ID, models.TaskStatus("SHIPPED"))
	assert.ErrorIs(suite.T(), err, ErrInvalidTaskStatus)
}

// TestUpdateTaskDescription tests rewriting a description
func (suite *TaskServiceTestSuite) TestUpdateTaskDescription() {
	project := suite.createTestProject("alice")
	task := suite.createTestTask(project.ID, "old wording", 1)

	updated, err := suite.service.UpdateTaskDescription("alice", task.ID, "new wording")
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "new wording", updated.Description)

	_, err = suite.service.UpdateTaskDescription("alice", task.ID, "  ")
	assert.ErrorIs(suite.T(), err, ErrDescriptionEmpty)
}

// TestDeleteTask tests removal by owner and refusal for others
func (suite *TaskServiceTestSuite) TestDeleteTask() {
	project := suite.createTestProject("alice")
	task := suite.createTestTask(project.ID, "step one", 1)

	err := suite.service.DeleteTask("bob", task.ID)
	assert.ErrorIs(suite.T(), err, ErrNotProjectOwner)

	err = suite.service.DeleteTask("alice", task.ID)
	suite.Require().NoError(err)

	var count int64
	suite.db.Model(&models.Task{}).Where("id = ?", task.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestSuite runs the test suite
func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
