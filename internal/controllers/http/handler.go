package http

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/At1ass/Bakery/internal/domain"
	"github.com/At1ass/Bakery/internal/infra"
	"github.com/At1ass/Bakery/internal/services"
)

type Handler struct {
	assembler *services.OrderAssembler
	lifecycle *services.OrderLifecycle
	query     *services.OrderQuery
	verifier  infra.IdentityVerifier
}

func NewHandler(
	assembler *services.OrderAssembler,
	lifecycle *services.OrderLifecycle,
	query *services.OrderQuery,
	verifier infra.IdentityVerifier,
) *Handler {
	return &Handler{
		assembler: assembler,
		lifecycle: lifecycle,
		query:     query,
		verifier:  verifier,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	// Creation resolves the caller inside the assembler, concurrently
	// with the catalog lookup, so it only extracts the raw credential.
	r.POST("/orders", h.CreateOrder)

	authed := r.Group("/", AuthRequired(h.verifier))
	authed.GET("/orders", h.ListOrders)
	authed.GET("/orders/:id", h.GetOrder)
	authed.PATCH("/orders/:id/status", h.UpdateOrderStatus)
	authed.DELETE("/orders/:id/cancel", h.CancelOrder)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "order-service",
	})
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.assembler.CreateOrder(c.Request.Context(), bearerToken(c), req.toInput())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.query.GetOrder(c.Request.Context(), caller(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) ListOrders(c *gin.Context) {
	in, err := parseListInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.query.ListOrders(c.Request.Context(), caller(c), in)
	if err != nil {
		writeError(c, err)
		return
	}

	orders := page.Orders
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, OrderListResponse{
		Orders:  orders,
		Total:   page.Total,
		Skip:    page.Skip,
		Limit:   page.Limit,
		HasMore: page.HasMore,
	})
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.lifecycle.ApplyTransition(c.Request.Context(), caller(c), c.Param("id"), domain.OrderStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) CancelOrder(c *gin.Context) {
	order, err := h.lifecycle.Cancel(c.Request.Context(), caller(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func parseListInput(c *gin.Context) (services.ListOrdersInput, error) {
	var in services.ListOrdersInput

	if v := c.Query("status"); v != "" {
		status := domain.OrderStatus(v)
		in.Status = &status
	}
	if v := c.Query("fromDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return in, &domain.ValidationError{Field: "fromDate", Message: "must be RFC3339"}
		}
		in.FromDate = &t
	}
	if v := c.Query("toDate"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return in, &domain.ValidationError{Field: "toDate", Message: "must be RFC3339"}
		}
		in.ToDate = &t
	}
	if v := c.Query("minTotal"); v != "" {
		cents, err := parseCents(v)
		if err != nil {
			return in, &domain.ValidationError{Field: "minTotal", Message: "must be a number"}
		}
		in.MinTotal = &cents
	}
	if v := c.Query("maxTotal"); v != "" {
		cents, err := parseCents(v)
		if err != nil {
			return in, &domain.ValidationError{Field: "maxTotal", Message: "must be a number"}
		}
		in.MaxTotal = &cents
	}
	if v := c.Query("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return in, &domain.ValidationError{Field: "skip", Message: "must be a non-negative integer"}
		}
		in.Skip = n
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return in, &domain.ValidationError{Field: "limit", Message: "must be a positive integer"}
		}
		in.Limit = n
	}

	return in, nil
}

// parseCents reads a decimal currency amount into integer cents.
func parseCents(v string) (int64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	return int64(math.Round(f * 100)), nil
}
