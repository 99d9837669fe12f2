package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ryoptimus/DevStorm-backend/internal/dto"
	apierrors "github.com/ryoptimus/DevStorm-backend/internal/errors"
	"github.com/ryoptimus/DevStorm-backend/internal/middleware"
	"github.com/ryoptimus/DevStorm-backend/internal/services"
)

// ProjectHandler serves the project lifecycle endpoints.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ListProjects returns every project.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.ListAllProjects()
	if err != nil {
		if errors.Is(err, services.ErrNoProjects) {
			apierrors.NotFound(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
}

// GetProject returns one project, tasks included, to its owner or a
// collaborator.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(username, id)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// ListProjectsByUser returns the caller's owned projects.
func (h *ProjectHandler) ListProjectsByUser(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projects, err := h.projectService.ListProjectsByOwner(username)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
}

// CreateProject creates a project for the caller and derives its initial
// tasks from the plan steps.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateProjectRequest struct {
		Title     string   `json:"title" binding:"required"`
		Summary   string   `json:"summary"`
		Steps     []string `json:"steps"`
		Languages []string `json:"languages"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), services.CreateProjectInput{
		Owner:     username,
		Title:     req.Title,
		Summary:   req.Summary,
		Steps:     req.Steps,
		Languages: req.Languages,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Project created successfully",
		"project": dto.ToProjectDTO(*project),
	})
}

// AddCollaborator fills the project's first open collaborator slot.
func (h *ProjectHandler) AddCollaborator(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req collaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.AddCollaborator(username, id, req.Collaborator)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Collaborator added successfully",
		"project": dto.ToProjectDTO(*project),
	})
}

// RemoveCollaborator clears the named collaborator's slot.
func (h *ProjectHandler) RemoveCollaborator(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req collaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.RemoveCollaborator(username, id, req.Collaborator)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Collaborator removed successfully",
		"project": dto.ToProjectDTO(*project),
	})
}

// UpdateProjectStatus toggles the project between IN_PROGRESS and COMPLETE.
func (h *ProjectHandler) UpdateProjectStatus(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.ToggleStatus(username, id)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project status updated successfully",
		"project": dto.ToProjectDTO(*project),
	})
}

// DeleteProject removes the project, its tasks, and the owner's counters in
// one transaction.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(username, id); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}

type collaboratorRequest struct {
	Collaborator string `json:"collaborator" binding:"required"`
}

// parseIDParam reads a numeric path parameter, responding 400 on garbage.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrNoProjects),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotProjectOwner),
		errors.Is(err, services.ErrProjectAccessDenied),
		errors.Is(err, services.ErrCollaboratorNotFound):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrProjectInProgress):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrCollaboratorSlotsFull),
		errors.Is(err, services.ErrCollaboratorIsOwner),
		errors.Is(err, services.ErrCollaboratorDuplicate),
		errors.Is(err, services.ErrNoCollaborators),
		errors.Is(err, services.ErrCollaboratorNotListed):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
