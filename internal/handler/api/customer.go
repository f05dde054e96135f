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

type CustomerHandler struct {
	commands commands.CustomerCommands
	queries  queries.CustomerQueries
}

func NewCustomerHandler(cmds commands.CustomerCommands, qs queries.CustomerQueries) *CustomerHandler {
	return &CustomerHandler{
		commands: cmds,
		queries:  qs,
	}
}

// @Summary List customers
// @Tags customers
// @Produce json
// @Success 200 {array} queries.CustomerView
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	views, err := h.queries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Search customers
// @Description Match against name, email, phone or driver's license number
// @Tags customers
// @Produce json
// @Param query path string true "Search text"
// @Success 200 {array} queries.CustomerView
// @Router /customers/search/{query} [get]
func (h *CustomerHandler) SearchCustomers(c *gin.Context) {
	views, err := h.queries.Search(c.Request.Context(), c.Param("query"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Get customer
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} queries.CustomerView
// @Failure 404 {object} map[string]string
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	view, err := h.queries.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary Create customer
// @Tags customers
// @Accept json
// @Produce json
// @Param request body reqdto.CustomerRequest true "Customer"
// @Success 201 {object} queries.CustomerView
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req reqdto.CustomerRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	in, err := req.ToInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	view, err := h.commands.Create(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// @Summary Update customer
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param request body reqdto.CustomerRequest true "Customer"
// @Success 200 {object} queries.CustomerView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /customers/{id} [put]
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var req reqdto.CustomerRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	in, err := req.ToInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	view, err := h.commands.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *CustomerHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrCustomerNotFound),
		infra.IsKind(err, infra.KindNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Customer not found",
		})
	case errors.Is(err, commands.ErrCustomerAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Customer already exists",
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
