package http

import (
	"net/http"

	"learnloop-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func parseLectureID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lecture ID"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// ========== LECTURE AUTHORING (INSTRUCTOR) ==========

func (h *Handler) AddLecture(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	courseID, ok := parseCourseID(c, "id")
	if !ok {
		return
	}

	var input domain.LectureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	lecture, err := h.LectureUsecase.AddLecture(c.Request.Context(), userID, courseID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, lecture)
}

func (h *Handler) UpdateLecture(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	courseID, ok := parseCourseID(c, "id")
	if !ok {
		return
	}
	lectureID, ok := parseLectureID(c, "lectureId")
	if !ok {
		return
	}

	var input domain.LectureInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, formatValidationErrors(err))
		return
	}

	lecture, err := h.LectureUsecase.UpdateLecture(c.Request.Context(), userID, courseID, lectureID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, lecture)
}

func (h *Handler) DeleteLecture(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	courseID, ok := parseCourseID(c, "id")
	if !ok {
		return
	}
	lectureID, ok := parseLectureID(c, "lectureId")
	if !ok {
		return
	}

	if err := h.LectureUsecase.DeleteLecture(c.Request.Context(), userID, courseID, lectureID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lecture deleted successfully"})
}

// ========== LECTURE READING ==========

func (h *Handler) ListLectures(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	role, err := getUserRole(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	courseID, ok := parseCourseID(c, "id")
	if !ok {
		return
	}

	lectures, owner, err := h.LectureUsecase.ListLectures(c.Request.Context(), userID, role, courseID)
	if err != nil {
		respondError(c, err)
		return
	}

	// Owning instructors see correct options; everyone else gets the
	// sanitized view.
	if owner {
		c.JSON(http.StatusOK, gin.H{"lectures": lectures, "count": len(lectures)})
		return
	}

	views := make([]*domain.LectureView, 0, len(lectures))
	for i := range lectures {
		views = append(views, lectures[i].View())
	}
	c.JSON(http.StatusOK, gin.H{"lectures": views, "count": len(views)})
}

func (h *Handler) GetLecture(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	role, err := getUserRole(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	lectureID, ok := parseLectureID(c, "id")
	if !ok {
		return
	}

	view, err := h.LectureUsecase.GetLectureContent(c.Request.Context(), userID, role, lectureID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ========== PROGRESS ==========

func (h *Handler) CompleteLecture(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	lectureID, ok := parseLectureID(c, "id")
	if !ok {
		return
	}

	if err := h.LectureUsecase.CompleteLecture(c.Request.Context(), userID, lectureID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lecture marked as completed"})
}

func (h *Handler) SubmitQuiz(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	lectureID, ok := parseLectureID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Answers []any `json:"answers"`
	}
	// A nil slice means answers was missing or null; an explicit empty
	// array binds non-nil and grades as all-incorrect.
	if err := c.ShouldBindJSON(&req); err != nil || req.Answers == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Answers must be an array"})
		return
	}

	result, err := h.LectureUsecase.SubmitQuiz(c.Request.Context(), userID, lectureID, req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetCourseProgress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	courseID, ok := parseCourseID(c, "courseId")
	if !ok {
		return
	}

	progress, err := h.ProgressUsecase.GetCourseProgress(c.Request.Context(), userID, courseID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}
