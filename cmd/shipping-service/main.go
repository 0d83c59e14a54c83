package main

import (
	"context"
	"log"

	"github.com/goliatone/go-router"
	"github.com/goliatone/go-storefront/app"
	"github.com/goliatone/go-storefront/middleware/guard"
	"github.com/goliatone/go-storefront/shipping"
)

func main() {
	ctx := context.Background()

	svc, err := app.New(ctx, "shipping-service")
	if err != nil {
		log.Fatal(err)
	}

	if err := svc.WithPersistence(ctx); err != nil {
		log.Fatal(err)
	}

	if err := svc.WithAuth(nil); err != nil {
		log.Fatal(err)
	}

	if err := svc.WithHTTPServer(ctx); err != nil {
		log.Fatal(err)
	}

	controller := shipping.NewHTTPController(svc.Repository()).
		WithLogger(svc.GetLogger("shipping"))

	// same historical contract as the order family: 403 missing, 401 invalid
	statuses := guard.Config{
		MissingStatus: router.StatusForbidden,
		InvalidStatus: router.StatusUnauthorized,
	}

	controller.RegisterRoutes(svc.Router(), svc.Authenticated(statuses), svc.AdminOnly(statuses))

	if err := svc.Serve(); err != nil {
		log.Fatal(err)
	}

	app.WaitExitSignal()
}
