package http_handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/course"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/query"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/transport/http/dto"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/transport/http/response"
)

type CourseHandler struct {
	svc *course.Service
}

func NewCourseHandler(svc *course.Service) *CourseHandler {
	return &CourseHandler{svc: svc}
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ListCourses(r.Context(), r.URL.Query())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.List(w, res.Items, res.Total, res.Pagination)
}

// ListForBootcamp handles GET /bootcamp/{bootcampId}/courses.
func (h *CourseHandler) ListForBootcamp(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ListBootcampCourses(r.Context(), chi.URLParam(r, "bootcampId"), r.URL.Query())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.List(w, res.Items, res.Total, res.Pagination)
}

func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.GetCourse(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, courseView(c))
}

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.CreateCourseRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	c, err := h.svc.CreateCourse(r.Context(), actor, chi.URLParam(r, "bootcampId"), req.Input())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Created(w, courseView(c))
}

func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.UpdateCourseRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	c, err := h.svc.UpdateCourse(r.Context(), actor, chi.URLParam(r, "id"), req.Patch())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, courseView(c))
}

func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := h.svc.DeleteCourse(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.Empty(w)
}

func courseView(c domain.Course) query.Document {
	return query.Project(c.Document(), course.Schema.DefaultProjection())
}
