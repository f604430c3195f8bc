package http_handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/bootcamp"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/application/query"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/logger"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/transport/http/dto"
	"github.com/baechuer/real-time-ressys/services/bootcamp-service/internal/transport/http/response"
)

// multipart framing allowance on top of the file itself
const multipartOverhead = 64 << 10

type BootcampHandler struct {
	svc            *bootcamp.Service
	maxUploadBytes int64
}

func NewBootcampHandler(svc *bootcamp.Service, maxUploadBytes int64) *BootcampHandler {
	return &BootcampHandler{svc: svc, maxUploadBytes: maxUploadBytes}
}

// List handles GET /bootcamp with filter, sort, fields, page and limit params.
func (h *BootcampHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ListBootcamps(r.Context(), r.URL.Query())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.List(w, res.Items, res.Total, res.Pagination)
}

func (h *BootcampHandler) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.GetBootcamp(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, doc)
}

func (h *BootcampHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.CreateBootcampRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	b, err := h.svc.CreateBootcamp(r.Context(), actor, req.Input())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("bootcamp_id", b.ID).
		Str("user_id", actor.ID).
		Msg("bootcamp_created")

	response.Created(w, bootcampView(b))
}

func (h *BootcampHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.UpdateBootcampRequest
	if err := response.DecodeJSON(w, r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	b, err := h.svc.UpdateBootcamp(r.Context(), actor, chi.URLParam(r, "id"), req.Patch())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, bootcampView(b))
}

func (h *BootcampHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.svc.DeleteBootcamp(r.Context(), actor, id); err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("bootcamp_id", id).
		Str("user_id", actor.ID).
		Msg("bootcamp_deleted")

	response.Empty(w)
}

// UploadPhoto handles PUT /bootcamp/{id}/photo with a multipart "file" part.
func (h *BootcampHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	actor, err := currentUser(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.WriteError(w, r, domain.ErrInvalidUpload("file too large"))
			return
		}
		response.WriteError(w, r, domain.ErrInvalidUpload("please upload a file"))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, hdr, err := r.FormFile("file")
	if err != nil {
		response.WriteError(w, r, domain.ErrInvalidUpload("please upload a file"))
		return
	}
	defer file.Close()

	image, err := h.svc.UploadBootcampPhoto(r.Context(), actor, chi.URLParam(r, "id"), bootcamp.Photo{
		ContentType: hdr.Header.Get("Content-Type"),
		Size:        hdr.Size,
		Body:        file,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, image)
}

func bootcampView(b domain.Bootcamp) query.Document {
	return query.Project(b.Document(), bootcamp.Schema.DefaultProjection())
}
