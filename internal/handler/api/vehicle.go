package api

import (
	"errors"
	"net/http"

	reqdto "loanerdesk/internal/handler/dto/request"
	"loanerdesk/internal/infra"
	"loanerdesk/internal/usecase/commands"
	"loanerdesk/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type VehicleHandler struct {
	commands commands.VehicleCommands
	queries  queries.VehicleQueries
}

func NewVehicleHandler(cmds commands.VehicleCommands, qs queries.VehicleQueries) *VehicleHandler {
	return &VehicleHandler{
		commands: cmds,
		queries:  qs,
	}
}

// @Summary List vehicles
// @Tags vehicles
// @Produce json
// @Param status query string false "Filter by vehicle status"
// @Success 200 {array} queries.VehicleView
// @Router /vehicles [get]
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	var status *string
	if s := c.Query("status"); s != "" {
		status = &s
	}

	views, err := h.queries.List(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Get vehicle
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} queries.VehicleView
// @Failure 404 {object} map[string]string
// @Router /vehicles/{id} [get]
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	view, err := h.queries.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Create vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Param request body reqdto.VehicleRequest true "Vehicle"
// @Success 201 {object} queries.VehicleView
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /vehicles [post]
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req reqdto.VehicleRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.commands.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// @Summary Update vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param request body reqdto.VehicleRequest true "Vehicle"
// @Success 200 {object} queries.VehicleView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /vehicles/{id} [put]
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	var req reqdto.VehicleRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.commands.Update(c.Request.Context(), c.Param("id"), req.ToInput())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *VehicleHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrVehicleNotFound),
		infra.IsKind(err, infra.KindNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Vehicle not found",
		})
	case errors.Is(err, commands.ErrVehicleAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Vehicle already exists",
		})
	case errors.Is(err, commands.ErrMissingRequiredFields),
		errors.Is(err, commands.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
