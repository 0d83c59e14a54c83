// Package shipping exposes the shipment tracking service. Reads require an
// authenticated account, mutations require the admin role.
package shipping

import (
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

// HTTPController handles shipment HTTP routes.
type HTTPController struct {
	repo   storefront.RepositoryManager
	logger storefront.Logger
}

// NewHTTPController creates a new shipping controller.
func NewHTTPController(repo storefront.RepositoryManager) *HTTPController {
	return &HTTPController{
		repo:   repo,
		logger: storefront.DefaultLogger("shipping"),
	}
}

// WithLogger sets the controller logger.
func (c *HTTPController) WithLogger(logger storefront.Logger) *HTTPController {
	c.logger = logger
	return c
}

// RegisterRoutes registers shipment routes.
func (c *HTTPController) RegisterRoutes(group RouteRegistrar, authenticated, adminOnly router.MiddlewareFunc) {
	group.Get("/shipments", c.Index, authenticated)
	group.Get("/shipments/:id", c.Show, authenticated)
	group.Post("/shipments", c.Create, authenticated, adminOnly)
	group.Put("/shipments/:id", c.Update, authenticated, adminOnly)
	group.Delete("/shipments/:id", c.Delete, authenticated, adminOnly)
}

// ShipmentPayload carries a create or replace request.
type ShipmentPayload struct {
	Name        string `json:"name"`
	Destination string `json:"destination"`
}

// Validate the payload fields.
func (p ShipmentPayload) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&p,
			validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
			validation.Field(&p.Destination, validation.Required, validation.Length(1, 500)),
		)
	}, "Invalid shipment payload")
}

// Index lists every shipment.
func (c *HTTPController) Index(ctx router.Context) error {
	records, err := c.repo.Shipments().List(ctx.Context())
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, records)
}

// Show returns a single shipment.
func (c *HTTPController) Show(ctx router.Context) error {
	id, err := storefront.ParseIDParam(ctx, "id")
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	record, err := c.repo.Shipments().GetByID(ctx.Context(), id)
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, record)
}

// Create registers a new shipment.
func (c *HTTPController) Create(ctx router.Context) error {
	payload := ShipmentPayload{}
	if err := ctx.Bind(&payload); err != nil {
		return storefront.RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to parse shipment payload").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return storefront.RespondError(ctx, err)
	}

	record, err := c.repo.Shipments().Create(ctx.Context(), &storefront.Shipment{
		Name:        payload.Name,
		Destination: payload.Destination,
	})
	if err != nil {
		c.logger.Error("shipment create failed: %v", err)
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, record)
}

// Update replaces a shipment's attributes.
func (c *HTTPController) Update(ctx router.Context) error {
	id, err := storefront.ParseIDParam(ctx, "id")
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	payload := ShipmentPayload{}
	if err := ctx.Bind(&payload); err != nil {
		return storefront.RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to parse shipment payload").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return storefront.RespondError(ctx, err)
	}

	record, err := c.repo.Shipments().Update(ctx.Context(), &storefront.Shipment{
		ID:          id,
		Name:        payload.Name,
		Destination: payload.Destination,
	})
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, record)
}

// Delete removes a shipment.
func (c *HTTPController) Delete(ctx router.Context) error {
	id, err := storefront.ParseIDParam(ctx, "id")
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	if err := c.repo.Shipments().Delete(ctx.Context(), id); err != nil {
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]string{
		"status": "deleted",
	})
}
