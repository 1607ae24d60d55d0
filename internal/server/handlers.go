package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/talentwire/candidate-scorer/internal/pipeline"
)

// runTimeout bounds one background scoring run end to end.
const runTimeout = 15 * time.Minute

var validate = validator.New()

// ScoreRequest is the request body for POST /job-applications/score.
// Submitting the same application again re-scores it.
type ScoreRequest struct {
	CompanyID           int64  `json:"company_id" validate:"required,gt=0"`
	ClientApplicationID string `json:"client_application_id" validate:"required"`
	ClientJobID         string `json:"client_job_id" validate:"required"`
	ResumeURL           string `json:"resume_url" validate:"required,url"`
}

// ScoreResponse is the response for POST /job-applications/score.
type ScoreResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

// TaskResponse is the response for GET /tasks/{id}.
type TaskResponse struct {
	TaskID    string `json:"task_id"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// handleScoreApplication registers a scoring task and launches the run in the
// background. The caller gets the task ID back immediately and polls it.
func (s *Server) handleScoreApplication(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	taskID, err := s.store.CreateTask(r.Context(), pipeline.TaskStarted)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create task: "+err.Error())
		return
	}

	s.logger.Info("scoring run accepted",
		zap.String("task_id", taskID.String()),
		zap.Int64("company_id", req.CompanyID),
		zap.String("client_application_id", req.ClientApplicationID))

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		if err := s.runner.Run(ctx, taskID, pipeline.Request{
			CompanyID:           req.CompanyID,
			ClientApplicationID: req.ClientApplicationID,
			ClientJobID:         req.ClientJobID,
			ResumeURL:           req.ResumeURL,
		}); err != nil {
			s.logger.Error("scoring run failed",
				zap.String("task_id", taskID.String()), zap.Error(err))
		}
	}()

	s.jsonResponse(w, http.StatusAccepted, ScoreResponse{
		TaskID: taskID.String(),
		Status: pipeline.TaskStarted,
	})
}

// handleGetTask returns the status of a scoring task.
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	taskID, err := uuid.Parse(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	task, err := s.store.GetTask(r.Context(), taskID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if task == nil {
		s.errorResponse(w, http.StatusNotFound, "Task not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, TaskResponse{
		TaskID:    task.ID.String(),
		Status:    task.Status,
		CreatedAt: task.CreatedAt.Format(time.RFC3339),
		UpdatedAt: task.UpdatedAt.Format(time.RFC3339),
	})
}
