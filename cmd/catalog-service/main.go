package main

import (
	"context"
	"log"

	"github.com/goliatone/go-storefront/app"
	"github.com/goliatone/go-storefront/catalog"
)

func main() {
	ctx := context.Background()

	svc, err := app.New(ctx, "catalog-service")
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

	controller := catalog.NewHTTPController(svc.Repository()).
		WithLogger(svc.GetLogger("catalog"))

	controller.RegisterRoutes(svc.Router(), svc.AdminOnly())

	if err := svc.Serve(); err != nil {
		log.Fatal(err)
	}

	app.WaitExitSignal()
}
