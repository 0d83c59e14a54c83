// Package catalog exposes the product catalog service. Browsing is public,
// catalog management requires the admin role.
package catalog

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

// HTTPController handles catalog HTTP routes.
type HTTPController struct {
	repo   storefront.RepositoryManager
	logger storefront.Logger
}

// NewHTTPController creates a new catalog controller.
func NewHTTPController(repo storefront.RepositoryManager) *HTTPController {
	return &HTTPController{
		repo:   repo,
		logger: storefront.DefaultLogger("catalog"),
	}
}

// WithLogger sets the controller logger.
func (c *HTTPController) WithLogger(logger storefront.Logger) *HTTPController {
	c.logger = logger
	return c
}

// RegisterRoutes registers catalog routes.
func (c *HTTPController) RegisterRoutes(group RouteRegistrar, adminOnly router.MiddlewareFunc) {
	group.Get("/products", c.Index)
	group.Get("/products/:id", c.Show)
	group.Post("/products", c.Create, adminOnly)
	group.Put("/products/:id", c.Update, adminOnly)
	group.Delete("/products/:id", c.Delete, adminOnly)
}

// ProductPayload carries a create or replace request.
type ProductPayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Validate the payload fields.
func (p ProductPayload) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&p,
			validation.Field(&p.Name, validation.Required, validation.Length(1, 200)),
			validation.Field(&p.Price, validation.Min(0.0)),
		)
	}, "Invalid product payload")
}

// Index lists every product.
func (c *HTTPController) Index(ctx router.Context) error {
	records, err := c.repo.Products().List(ctx.Context())
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, records)
}

// Show returns a single product.
func (c *HTTPController) Show(ctx router.Context) error {
	id, err := storefront.ParseIDParam(ctx, "id")
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	record, err := c.repo.Products().GetByID(ctx.Context(), id)
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, record)
}

// Create adds a product to the catalog.
func (c *HTTPController) Create(ctx router.Context) error {
	payload := ProductPayload{}
	if err := ctx.Bind(&payload); err != nil {
		return storefront.RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to parse product payload").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return storefront.RespondError(ctx, err)
	}

	record, err := c.repo.Products().Create(ctx.Context(), &storefront.Product{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
	})
	if err != nil {
		c.logger.Error("product create failed: %v", err)
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, record)
}

// Update replaces a product's attributes.
func (c *HTTPController) Update(ctx router.Context) error {
	id, err := storefront.ParseIDParam(ctx, "id")
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	payload := ProductPayload{}
	if err := ctx.Bind(&payload); err != nil {
		return storefront.RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "unable to parse product payload").
			WithCode(goerrors.CodeBadRequest))
	}

	if err := payload.Validate(); err != nil {
		return storefront.RespondError(ctx, err)
	}

	record, err := c.repo.Products().Update(ctx.Context(), &storefront.Product{
		ID:          id,
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
	})
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, record)
}

// Delete removes a product from the catalog.
func (c *HTTPController) Delete(ctx router.Context) error {
	id, err := storefront.ParseIDParam(ctx, "id")
	if err != nil {
		return storefront.RespondError(ctx, err)
	}

	if err := c.repo.Products().Delete(ctx.Context(), id); err != nil {
		return storefront.RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]string{
		"status": "deleted",
	})
}
