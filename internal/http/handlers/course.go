package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/agrovet-backend/internal/domain/catalog"
	"github.com/yungbote/agrovet-backend/internal/http/response"
	perrors "github.com/yungbote/agrovet-backend/internal/pkg/errors"
	"github.com/yungbote/agrovet-backend/internal/services"
)

type CourseHandler struct {
	cat             *catalog.Catalog
	progressService services.ProgressService
	contentService  services.ContentService
}

func NewCourseHandler(cat *catalog.Catalog, progressService services.ProgressService, contentService services.ContentService) *CourseHandler {
	return &CourseHandler{cat: cat, progressService: progressService, contentService: contentService}
}

type courseSummary struct {
	ID              catalog.CourseID `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Color           string           `json:"color"`
	DisciplineCount int              `json:"disciplineCount"`
}

// GET /api/courses
func (h *CourseHandler) List(c *gin.Context) {
	out := make([]courseSummary, 0, len(h.cat.Courses))
	for _, course := range h.cat.Courses {
		out = append(out, courseSummary{
			ID:              course.ID,
			Name:            course.Name,
			Description:     course.Description,
			Color:           course.Color,
			DisciplineCount: course.DisciplineCount(),
		})
	}
	response.RespondOK(c, gin.H{"courses": out})
}

// GET /api/courses/:courseId
func (h *CourseHandler) Get(c *gin.Context) {
	id := catalog.CourseID(c.Param("courseId"))
	course, ok := h.cat.Course(id)
	if !ok {
		response.RespondErr(c, fmt.Errorf("course %q: %w", id, perrors.ErrNotFound))
		return
	}
	response.RespondOK(c, gin.H{"course": course})
}

// GET /api/courses/:courseId/progress
func (h *CourseHandler) Progress(c *gin.Context) {
	dash, err := h.progressService.CourseDashboard(c.Request.Context(), catalog.CourseID(c.Param("courseId")))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"progress": dash})
}

// POST /api/progress/toggle
// body: { "disciplineId", "topicId" }
func (h *CourseHandler) ToggleTopic(c *gin.Context) {
	var req struct {
		DisciplineID string `json:"disciplineId"`
		TopicID      string `json:"topicId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondErr(c, fmt.Errorf("%w: %v", perrors.ErrInvalidArgument, err))
		return
	}
	u, err := h.progressService.Toggle(c.Request.Context(), req.DisciplineID, req.TopicID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"user": u})
}

// GET /api/courses/:courseId/disciplines/:disciplineId/topics/:topicId/document?refresh=1
func (h *CourseHandler) TopicDocument(c *gin.Context) {
	refresh := c.Query("refresh") == "1" || c.Query("refresh") == "true"
	doc, err := h.contentService.TopicDocument(
		c.Request.Context(),
		catalog.CourseID(c.Param("courseId")),
		c.Param("disciplineId"),
		c.Param("topicId"),
		refresh,
	)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, gin.H{"document": doc})
}
