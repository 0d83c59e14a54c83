package main

import (
	"context"
	"log"

	"github.com/goliatone/go-storefront/app"
	"github.com/goliatone/go-storefront/users"
)

func main() {
	ctx := context.Background()

	svc, err := app.New(ctx, "users-service")
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

	controller := users.NewHTTPController(svc.Auther(), svc.Repository(), users.HTTPConfig{
		ContextKey: svc.Config().GetAuth().GetContextKey(),
	}).WithLogger(svc.GetLogger("users"))

	controller.RegisterRoutes(svc.Router(), svc.Authenticated(), svc.AdminOnly())

	if err := svc.Serve(); err != nil {
		log.Fatal(err)
	}

	app.WaitExitSignal()
}
