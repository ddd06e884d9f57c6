package handlers

import (
	"net/http"

	"github.com/dkotelnikov/eventory/internal/application/catalog"
	"github.com/dkotelnikov/eventory/internal/transport/http/dto"
	"github.com/dkotelnikov/eventory/internal/transport/http/response"
	"github.com/dkotelnikov/eventory/internal/transport/http/validate"
)

type CatalogHandler struct {
	svc *catalog.Service
}

func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// ListCategories handles GET /categories.
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	from, err := queryInt(r, "from", 0)
	if err != nil {
		response.Err(w, err)
		return
	}
	size, err := queryInt(r, "size", 10)
	if err != nil {
		response.Err(w, err)
		return
	}

	items, err := h.svc.ListCategories(r.Context(), from, size)
	if err != nil {
		response.Err(w, err)
		return
	}
	out := make([]dto.CategoryDto, 0, len(items))
	for _, c := range items {
		out = append(out, dto.ToCategoryDto(c))
	}
	response.Data(w, http.StatusOK, out)
}

// GetCategory handles GET /categories/{catId}.
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "catId")
	if err != nil {
		response.Err(w, err)
		return
	}
	c, err := h.svc.GetCategory(r.Context(), id)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToCategoryDto(c))
}

// CreateCategory handles POST /admin/categories.
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.NewCategoryDto
	if err := validate.Body(r, &req); err != nil {
		response.Err(w, err)
		return
	}
	c, err := h.svc.CreateCategory(r.Context(), req.Name)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToCategoryDto(c))
}

// UpdateCategory handles PATCH /admin/categories/{catId}.
func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "catId")
	if err != nil {
		response.Err(w, err)
		return
	}
	var req dto.NewCategoryDto
	if err := validate.Body(r, &req); err != nil {
		response.Err(w, err)
		return
	}
	c, err := h.svc.UpdateCategory(r.Context(), id, req.Name)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusOK, dto.ToCategoryDto(c))
}

// DeleteCategory handles DELETE /admin/categories/{catId}.
func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "catId")
	if err != nil {
		response.Err(w, err)
		return
	}
	if err := h.svc.DeleteCategory(r.Context(), id); err != nil {
		response.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListUsers handles GET /admin/users.
func (h *CatalogHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ids, err := queryInt64List(r, "ids")
	if err != nil {
		response.Err(w, err)
		return
	}
	from, err := queryInt(r, "from", 0)
	if err != nil {
		response.Err(w, err)
		return
	}
	size, err := queryInt(r, "size", 10)
	if err != nil {
		response.Err(w, err)
		return
	}

	items, err := h.svc.ListUsers(r.Context(), ids, from, size)
	if err != nil {
		response.Err(w, err)
		return
	}
	out := make([]dto.UserDto, 0, len(items))
	for _, u := range items {
		out = append(out, dto.ToUserDto(u))
	}
	response.Data(w, http.StatusOK, out)
}

// CreateUser handles POST /admin/users.
func (h *CatalogHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.NewUserRequest
	if err := validate.Body(r, &req); err != nil {
		response.Err(w, err)
		return
	}
	u, err := h.svc.CreateUser(r.Context(), req.Name, req.Email)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Data(w, http.StatusCreated, dto.ToUserDto(u))
}

// DeleteUser handles DELETE /admin/users/{userId}.
func (h *CatalogHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		response.Err(w, err)
		return
	}
	if err := h.svc.DeleteUser(r.Context(), id); err != nil {
		response.Err(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
