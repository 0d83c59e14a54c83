package main

import (
	"context"
	"log"

	"github.com/goliatone/go-storefront/app"
	"github.com/goliatone/go-storefront/cart"
)

func main() {
	ctx := context.Background()

	svc, err := app.New(ctx, "cart-service")
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

	controller := cart.NewHTTPController(svc.Repository(), cart.HTTPConfig{
		ContextKey: svc.Config().GetAuth().GetContextKey(),
	}).WithLogger(svc.GetLogger("cart"))

	controller.RegisterRoutes(svc.Router(), svc.Authenticated(), svc.AdminOnly())

	if err := svc.Serve(); err != nil {
		log.Fatal(err)
	}

	app.WaitExitSignal()
}
