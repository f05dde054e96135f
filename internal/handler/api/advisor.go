package api

import (
	"net/http"

	"loanerdesk/internal/infra"
	"loanerdesk/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AdvisorHandler struct {
	queries queries.AdvisorQueries
}

func NewAdvisorHandler(qs queries.AdvisorQueries) *AdvisorHandler {
	return &AdvisorHandler{queries: qs}
}

// @Summary List service advisors
// @Tags advisors
// @Produce json
// @Success 200 {array} queries.AdvisorView
// @Router /advisors [get]
func (h *AdvisorHandler) ListAdvisors(c *gin.Context) {
	views, err := h.queries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Get service advisor
// @Tags advisors
// @Produce json
// @Param id path string true "Advisor ID"
// @Success 200 {object} queries.AdvisorView
// @Failure 404 {object} map[string]string
// @Router /advisors/{id} [get]
func (h *AdvisorHandler) GetAdvisor(c *gin.Context) {
	view, err := h.queries.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Service advisor not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}
