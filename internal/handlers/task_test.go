package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/planhive/planhive-api/internal/models"
)

type TaskHandlerTestSuite struct {
	suite.Suite
	env *testEnv

	organizer      *models.User
	organizerToken string
	member         *models.User
	memberToken    string
	planID         string
}

func (s *TaskHandlerTestSuite) SetupTest() {
	s.env = newTestEnv(s.T())
	s.organizer, s.organizerToken = s.env.registerUser(s.T(), "Olivia", "olivia@example.com")
	s.member, s.memberToken = s.env.registerUser(s.T(), "Max", "max@example.com")
	s.planID = s.env.createPlan(s.T(), s.organizerToken, "Beach Day")

	require.NoError(s.T(), s.env.db.Create(&models.Participant{
		PlanID: s.planID,
		UserID: s.member.ID,
		Role:   models.RoleParticipant,
		Status: models.ParticipantStatusAccepted,
	}).Error)
}

func (s *TaskHandlerTestSuite) createAvailableTask(text string) *models.Task {
	task := &models.Task{
		PlanID: s.planID,
		Task:   text,
		Status: models.TaskStatusAvailable,
	}
	require.NoError(s.T(), s.env.db.Create(task).Error)
	return task
}

func (s *TaskHandlerTestSuite) TestBulkCreateTasks() {
	w := s.env.request(s.T(), http.MethodPost, "/api/resp/"+s.planID+"/tasks/bulk", s.organizerToken, gin.H{
		"tasks": []string{"Buy drinks", "Book the grill", "Bring sunscreen"},
	})
	require.Equal(s.T(), http.StatusCreated, w.Code)

	var tasks []models.Task
	require.NoError(s.T(), s.env.db.Where("plan_id = ?", s.planID).Find(&tasks).Error)
	require.Len(s.T(), tasks, 3)
	for _, task := range tasks {
		require.Equal(s.T(), models.TaskStatusAvailable, task.Status)
		require.Nil(s.T(), task.UserID)
	}
}

func (s *TaskHandlerTestSuite) TestBulkCreateRejectsEmptyList() {
	w := s.env.request(s.T(), http.MethodPost, "/api/resp/"+s.planID+"/tasks/bulk", s.organizerToken, gin.H{
		"tasks": []string{},
	})
	require.Equal(s.T(), http.StatusBadRequest, w.Code)
	require.Equal(s.T(), "Tasks should be a non-empty array.", decodeBody(s.T(), w)["message"])
}

func (s *TaskHandlerTestSuite) TestBulkCreateRejectsUnknownPlan() {
	w := s.env.request(s.T(), http.MethodPost, "/api/resp/00000000-0000-0000-0000-000000000000/tasks/bulk", s.organizerToken, gin.H{
		"tasks": []string{"Buy drinks"},
	})
	require.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *TaskHandlerTestSuite) TestPickTaskClaimsAvailableTask() {
	task := s.createAvailableTask("Buy drinks")

	w := s.env.request(s.T(), http.MethodPost, "/api/resp/"+s.planID+"/pick", s.memberToken, gin.H{
		"task_id": task.ID,
	})
	require.Equal(s.T(), http.StatusOK, w.Code)

	var picked models.Task
	require.NoError(s.T(), s.env.db.First(&picked, "id = ?", task.ID).Error)
	require.Equal(s.T(), models.TaskStatusAssigned, picked.Status)
	require.NotNil(s.T(), picked.UserID)
	require.Equal(s.T(), s.member.ID, *picked.UserID)
}

func (s *TaskHandlerTestSuite) TestPickTaskLosesWhenAlreadyClaimed() {
	task := s.createAvailableTask("Buy drinks")

	w := s.env.request(s.T(), http.MethodPost, "/api/resp/"+s.planID+"/pick", s.memberToken, gin.H{
		"task_id": task.ID,
	})
	require.Equal(s.T(), http.StatusOK, w.Code)

	// Second claim hits the conditional write and loses
	w = s.env.request(s.T(), http.MethodPost, "/api/resp/"+s.planID+"/pick", s.organizerToken, gin.H{
		"task_id": task.ID,
	})
	require.Equal(s.T(), http.StatusBadRequest, w.Code)
	require.Equal(s.T(), "Task is not available.", decodeBody(s.T(), w)["message"])

	// The first claimer keeps the task
	var picked models.Task
	require.NoError(s.T(), s.env.db.First(&picked, "id = ?", task.ID).Error)
	require.Equal(s.T(), s.member.ID, *picked.UserID)
}

func (s *TaskHandlerTestSuite) TestPickUnknownTaskReturnsNotFound() {
	w := s.env.request(s.T(), http.MethodPost, "/api/resp/"+s.planID+"/pick", s.memberToken, gin.H{
		"task_id": "00000000-0000-0000-0000-000000000000",
	})
	require.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *TaskHandlerTestSuite) TestAssignTaskToParticipant() {
	w := s.env.request(s.T(), http.MethodPost, "/api/resp/"+s.planID+"/assign", s.organizerToken, gin.H{
		"user_id": s.member.ID,
		"task":    "Book the grill",
		"cost":    40.0,
	})
	require.Equal(s.T(), http.StatusCreated, w.Code)

	var task models.Task
	require.NoError(s.T(), s.env.db.
		Where("plan_id = ? AND user_id = ?", s.planID, s.member.ID).
		First(&task).Error)
	require.Equal(s.T(), models.TaskStatusAssigned, task.Status)
	require.Equal(s.T(), 40.0, task.Cost)
}

func (s *TaskHandlerTestSuite) TestAssignRejectsDuplicateTaskText() {
	w := s.env.request(s.T(), http.MethodPost, "/api/resp/"+s.planID+"/assign", s.organizerToken, gin.H{
		"user_id": s.member.ID,
		"task":    "Book the grill",
	})
	require.Equal(s.T(), http.StatusCreated, w.Code)

	w = s.env.request(s.T(), http.MethodPost, "/api/resp/"+s.planID+"/assign", s.organizerToken, gin.H{
		"user_id": s.member.ID,
		"task":    "Book the grill",
	})
	require.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *TaskHandlerTestSuite) TestAssignRejectsNonParticipant() {
	outsider, _ := s.env.registerUser(s.T(), "Oscar", "oscar@example.com")

	w := s.env.request(s.T(), http.MethodPost, "/api/resp/"+s.planID+"/assign", s.organizerToken, gin.H{
		"user_id": outsider.ID,
		"task":    "Book the grill",
	})
	require.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *TaskHandlerTestSuite) TestAssignRejectsNonOrganizer() {
	w := s.env.request(s.T(), http.MethodPost, "/api/resp/"+s.planID+"/assign", s.memberToken, gin.H{
		"user_id": s.member.ID,
		"task":    "Book the grill",
	})
	require.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *TaskHandlerTestSuite) TestCompleteOwnTask() {
	task := s.createAvailableTask("Buy drinks")

	w := s.env.request(s.T(), http.MethodPost, "/api/resp/"+s.planID+"/pick", s.memberToken, gin.H{
		"task_id": task.ID,
	})
	require.Equal(s.T(), http.StatusOK, w.Code)

	w = s.env.request(s.T(), http.MethodPost, "/api/resp/complete/"+task.ID, s.memberToken, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)

	var completed models.Task
	require.NoError(s.T(), s.env.db.First(&completed, "id = ?", task.ID).Error)
	require.Equal(s.T(), models.TaskStatusCompleted, completed.Status)
}

func (s *TaskHandlerTestSuite) TestCompleteSomeoneElsesTaskFails() {
	task := s.createAvailableTask("Buy drinks")

	w := s.env.request(s.T(), http.MethodPost, "/api/resp/"+s.planID+"/pick", s.memberToken, gin.H{
		"task_id": task.ID,
	})
	require.Equal(s.T(), http.StatusOK, w.Code)

	w = s.env.request(s.T(), http.MethodPost, "/api/resp/complete/"+task.ID, s.organizerToken, nil)
	require.Equal(s.T(), http.StatusNotFound, w.Code)
	require.Equal(s.T(), "Task not found or not assigned to you.", decodeBody(s.T(), w)["message"])
}

func (s *TaskHandlerTestSuite) TestListPlanTasksIncludesAssignees() {
	s.createAvailableTask("Buy drinks")

	w := s.env.request(s.T(), http.MethodPost, "/api/resp/"+s.planID+"/assign", s.organizerToken, gin.H{
		"user_id": s.member.ID,
		"task":    "Book the grill",
	})
	require.Equal(s.T(), http.StatusCreated, w.Code)

	w = s.env.request(s.T(), http.MethodGet, "/api/resp/"+s.planID, s.memberToken, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)

	tasks, ok := decodeBody(s.T(), w)["tasks"].([]interface{})
	require.True(s.T(), ok)
	require.Len(s.T(), tasks, 2)
}

func (s *TaskHandlerTestSuite) TestListMyTasksNewestFirst() {
	first := s.createAvailableTask("Buy drinks")
	second := s.createAvailableTask("Bring sunscreen")

	for _, task := range []*models.Task{first, second} {
		w := s.env.request(s.T(), http.MethodPost, "/api/resp/"+s.planID+"/pick", s.memberToken, gin.H{
			"task_id": task.ID,
		})
		require.Equal(s.T(), http.StatusOK, w.Code)
	}

	// Force a deterministic order regardless of timestamp resolution
	require.NoError(s.T(), s.env.db.Model(first).Update("created_at", first.CreatedAt.Add(-time.Minute)).Error)

	w := s.env.request(s.T(), http.MethodGet, "/api/resp/assigned/me", s.memberToken, nil)
	require.Equal(s.T(), http.StatusOK, w.Code)

	tasks, ok := decodeBody(s.T(), w)["tasks"].([]interface{})
	require.True(s.T(), ok)
	require.Len(s.T(), tasks, 2)

	newest, ok := tasks[0].(map[string]interface{})
	require.True(s.T(), ok)
	require.Equal(s.T(), second.ID, newest["id"])

	plan, ok := newest["plan"].(map[string]interface{})
	require.True(s.T(), ok)
	require.Equal(s.T(), s.planID, plan["id"])
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
