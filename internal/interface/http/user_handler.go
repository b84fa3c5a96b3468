package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/user-management-api/internal/application"
	"github.com/oksasatya/user-management-api/internal/domain/entity"
	repo "github.com/oksasatya/user-management-api/internal/domain/repository"
	"github.com/oksasatya/user-management-api/pkg/response"
	"github.com/oksasatya/user-management-api/pkg/validation"
)

// httpDefaultPerPage is the page size applied at the HTTP layer when
// perPage is absent. The service falls back to its own default of 15
// only for callers that bypass this handler.
const httpDefaultPerPage = 10

type UserHandler struct {
	Svc    *userapp.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type indexUsersRequest struct {
	Search  string `form:"search"`
	PerPage int    `form:"perPage" binding:"omitempty,gte=1,lte=100"`
	Page    int    `form:"page" binding:"omitempty,gte=1"`
}

type storeUserRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type updateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,pwd"`
}

// Index GET /api/users?search=&perPage=&page=
// Responds with the bare page object; its shape is the public contract.
func (h *UserHandler) Index(c *gin.Context) {
	var req indexUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid query", validation.ToDetails(err))
		return
	}
	if req.PerPage == 0 {
		req.PerPage = httpDefaultPerPage
	}
	page, err := h.Svc.List(c.Request.Context(), req.Search, req.Page, req.PerPage)
	if err != nil {
		h.Logger.WithError(err).Error("list users failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to list users", nil)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Store POST /api/users
func (h *UserHandler) Store(c *gin.Context) {
	var req storeUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), userapp.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			response.Error[any](c, http.StatusConflict, "email already taken", map[string]string{"email": "already taken"})
			return
		}
		h.Logger.WithError(err).Error("create user failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to create user", nil)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Show GET /api/users/:id
func (h *UserHandler) Show(c *gin.Context) {
	u, ok := h.resolveUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, u)
}

// Update PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	u, ok := h.resolveUser(c)
	if !ok {
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid payload", validation.ToDetails(err))
		return
	}
	fresh, err := h.Svc.Update(c.Request.Context(), u, userapp.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrEmailTaken):
			response.Error[any](c, http.StatusConflict, "email already taken", map[string]string{"email": "already taken"})
		case errors.Is(err, repo.ErrNotFound):
			// lost a race with a concurrent delete
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		default:
			h.Logger.WithError(err).WithField("user_id", u.ID).Error("update user failed")
			response.Error[any](c, http.StatusInternalServerError, "failed to update user", nil)
		}
		return
	}
	c.JSON(http.StatusOK, fresh)
}

// Destroy DELETE /api/users/:id
func (h *UserHandler) Destroy(c *gin.Context) {
	u, ok := h.resolveUser(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), u); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("user_id", u.ID).Error("delete user failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to delete user", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

type searchUsersRequest struct {
	Q    string `form:"q" binding:"required"`
	Size int    `form:"size" binding:"omitempty,gte=1,lte=50"`
}

// Search GET /api/users/search — fuzzy lookup against the
// Elasticsearch mirror; distinct from the SQL-backed Index filter.
func (h *UserHandler) Search(c *gin.Context) {
	var req searchUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error[any](c, http.StatusUnprocessableEntity, "invalid query", validation.ToDetails(err))
		return
	}
	hits, err := h.Svc.SearchUsers(c.Request.Context(), req.Q, req.Size)
	if err != nil {
		h.Logger.WithError(err).Error("user search failed")
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

// resolveUser parses the path id and loads the record before the
// handler body runs; a missing or malformed id never reaches the
// service layer.
func (h *UserHandler) resolveUser(c *gin.Context) (*entity.User, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return nil, false
	}
	u, err := h.Svc.Find(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return nil, false
		}
		h.Logger.WithError(err).WithField("user_id", id).Error("resolve user failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load user", nil)
		return nil, false
	}
	return u, true
}
