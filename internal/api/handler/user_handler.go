package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/SinghShreyansh/users-service/internal/api/metrics"
	"github.com/SinghShreyansh/users-service/internal/core/domain"
	"github.com/SinghShreyansh/users-service/internal/core/ports"
)

// UserHandler handles HTTP requests for the users collection.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /users.
//
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200  {array}   userResponse
// @Failure      500  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	start := time.Now()
	users, err := h.service.List(c.Request().Context())
	observe("list", start, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Create handles POST /users.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User name and password"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	start := time.Now()
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		err = bindError(err)
		observe("create", start, err)
		return err
	}

	user, err := h.service.Create(c.Request().Context(), ports.CreateUserInput{
		Name:     req.Name,
		Password: req.Password,
	})
	observe("create", start, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Update handles PUT /users.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateUserRequest  true  "User id, new name and password"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /users [put]
func (h *UserHandler) Update(c echo.Context) error {
	start := time.Now()
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		err = bindError(err)
		observe("update", start, err)
		return err
	}
	if req.ID == "" {
		req.ID = c.QueryParam("id")
	}

	user, err := h.service.Update(c.Request().Context(), ports.UpdateUserInput{
		ID:       req.ID,
		Name:     req.Name,
		Password: req.Password,
	})
	observe("update", start, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /users.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        id   query     string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /users [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	start := time.Now()
	var req deleteUserRequest
	if err := c.Bind(&req); err != nil {
		err = bindError(err)
		observe("delete", start, err)
		return err
	}

	user, err := h.service.Delete(c.Request().Context(), ports.DeleteUserInput{ID: req.ID})
	observe("delete", start, err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// bindError reports a field of the wrong JSON type as a validation failure.
// Anything else the binder rejects is a malformed payload.
func bindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Errorf("%w: %s must be text", domain.ErrValidation, typeErr.Field)
	}
	return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
}

func observe(operation string, start time.Time, err error) {
	metrics.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	metrics.OperationsTotal.WithLabelValues(operation, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrValidation):
		return "validation_error"
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.As(err, new(*echo.HTTPError)):
		return "invalid_payload"
	default:
		return "error"
	}
}
