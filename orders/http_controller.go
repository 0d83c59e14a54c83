// Package orders exposes the order service. Mutations flow through the order
// lifecycle, which enforces ownership and the Pending-only rule for
// non-admin callers. A legacy unauthenticated status lookup is kept for the
// XML clients that predate the token scheme.
package orders

import (
	"encoding/xml"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	storefront "github.com/goliatone/go-storefront"
)

// RouteRegistrar captures the router methods used by the controller.
type RouteRegistrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Put(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Delete(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

// HTTPController handles order HTTP routes.
type HTTPController struct {
	lifecycle storefront.OrderLifecycle
	repo      storefront.RepositoryManager
	logger    storefront.Logger
	config    HTTPConfig
}

// HTTPConfig configures the HTTP controller.
type HTTPConfig struct {
	// ContextKey is the router locals key the guard stores claims under (default: "user")
	ContextKey string
}

// NewHTTPController creates a new order controller.
func NewHTTPController(lifecycle storefront.OrderLifecycle, repo storefront.RepositoryManager, cfg HTTPConfig) *HTTPController {
	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	return &HTTPController{
		lifecycle: lifecycle,
		repo:      repo,
		logger:    storefront.DefaultLogger("orders"),
		config:    cfg,
	}
}

// WithLogger sets the controller logger.
func (c *HTTPController) WithLogger(logger storefront.Logger) *HTTPController {
	c.logger = logger
	return c
}

// RegisterRoutes registers order routes. The legacy status lookup is public,
// everything else requires authentication.
func (c *HTTPController) RegisterRoutes(group RouteRegistrar, authenticated router.MiddlewareFunc) {
	group.Get("/orders/:id/status", c.LegacyStatus)
	group.Get("/orders", c.Index, authenticated)
	group.Get("/orders/:id", c.Show, authenticated)
	group.Post("/orders", c.Create, authenticated)
	group.Put("/orders/:id/status", c.UpdateStatus, authenticated)
	group.Delete("/orders/:id", c.Delete, authenticated)
}

// CreateOrderPayload carries a new order. OwnerID is optional; it defaults
// to the caller and only admins may set it to someone else.
type CreateOrderPayload struct {
	OwnerID int64   `json:"owner_id"`
	Total   float64 `json:"total"`
}

// Validate the payload fields.
func (p CreateOrderPayload) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&p,
			validation.Field(&p.Total, validation.Min(0.0)),
		)
	}, "Invalid order payload")
}

// StatusPayload carries a status transition request.
type StatusPayload struct {
	Status string `json:"status"`
}

// Validate the payload fields.
func (p StatusPayload) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&p,
			validation.Field(&p.Status, validation.Required),
		)
	}, "Invalid status payload")
}

// Index lists orders. Non-admin callers always get their own orders; admins
// get every order, optionally narrowed with the owner_id query parameter.
func (c *HTTPController) Index(ctx router.Context) error {
	principal, err := storefront.GetRouterPrincipal(ctx, c.config.ContextKey)
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	var filterOwner *int64
	if raw := ctx.Query("owner_id"); raw != "" {
		owner, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return storefront.RespondError(ctx, goerrors.New("invalid owner_id query parameter", goerrors.CategoryBadInput).
				WithCode(goerrors.CodeBadRequest))
		}
		filterOwner = &owner
	}

	records, err := c.lifecycle.List(ctx.Context(), principal, filterOwner)
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, records)
}

// Show returns a single order. Non-admin callers only see their own.
func (c *HTTPController) Show(ctx router.Context) error {
	principal, err := storefront.GetRouterPrincipal(ctx, c.config.ContextKey)
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	id, err := storefront.ParseIDParam(ctx, "id")
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	record, err := c.repo.Orders().GetByID(ctx.Context(), id)
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	if !principal.IsAdmin() && record.OwnerID != principal.ID {
		return storefront.RespondError(ctx, storefront.ErrForbidden.WithMetadata(map[string]any{
			"order_id": id,
		}))
	}

	return ctx.JSON(router.StatusOK, record)
}

// Create places a new order in the Pending state.
func (c *HTTPController) Create(ctx router.Context) error {
	principal, err := storefront.GetRouterPrincipal(ctx, c.config.ContextKey)
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	payload := CreateOrderPayload{}
	if err := ctx.Bind(&payload); err != nil {
		return storefront.RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to parse order payload").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return storefront.RespondError(ctx, err)
	}

	ownerID := payload.OwnerID
	if ownerID == 0 {
		ownerID = principal.ID
	}

	record, err := c.lifecycle.Create(ctx.Context(), principal, ownerID, payload.Total)
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, record)
}

// UpdateStatus transitions an order to the requested status.
func (c *HTTPController) UpdateStatus(ctx router.Context) error {
	principal, err := storefront.GetRouterPrincipal(ctx, c.config.ContextKey)
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	id, err := storefront.ParseIDParam(ctx, "id")
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	payload := StatusPayload{}
	if err := ctx.Bind(&payload); err != nil {
		return storefront.RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to parse status payload").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return storefront.RespondError(ctx, err)
	}

	record, err := c.lifecycle.Transition(ctx.Context(), principal, id, storefront.OrderStatus(payload.Status))
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, record)
}

// Delete removes an order.
func (c *HTTPController) Delete(ctx router.Context) error {
	principal, err := storefront.GetRouterPrincipal(ctx, c.config.ContextKey)
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	id, err := storefront.ParseIDParam(ctx, "id")
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	if err := c.lifecycle.Delete(ctx.Context(), principal, id); err != nil {
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]string{
		"status": "deleted",
	})
}

// legacyStatusResponse is the wire shape the pre-token XML clients expect.
type legacyStatusResponse struct {
	XMLName xml.Name `xml:"orderStatus"`
	OrderID string   `xml:"orderId,omitempty"`
	Status  string   `xml:"status"`
}

// LegacyStatus answers the unauthenticated status lookup. It always responds
// 200 and reports problems inside the status field, matching the clients
// that still consume it.
func (c *HTTPController) LegacyStatus(ctx router.Context) error {
	raw := ctx.Param("id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return c.sendLegacyXML(ctx, legacyStatusResponse{Status: "invalid id"})
	}

	status, err := c.repo.Orders().GetStatus(ctx.Context(), id)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return c.sendLegacyXML(ctx, legacyStatusResponse{OrderID: raw, Status: "not found"})
		}
		return storefront.RespondError(ctx, err)
	}

	return c.sendLegacyXML(ctx, legacyStatusResponse{OrderID: raw, Status: string(status)})
}

func (c *HTTPController) sendLegacyXML(ctx router.Context, body legacyStatusResponse) error {
	out, err := xml.Marshal(body)
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	ctx.SetHeader("Content-Type", "application/xml")
	return ctx.Status(router.StatusOK).SendString(xml.Header + string(out))
}
