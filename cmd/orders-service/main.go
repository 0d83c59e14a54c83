package main

import (
	"context"
	"log"

	"github.com/goliatone/go-router"
	storefront "github.com/goliatone/go-storefront"
	"github.com/goliatone/go-storefront/app"
	"github.com/goliatone/go-storefront/middleware/guard"
	"github.com/goliatone/go-storefront/orders"
)

func main() {
	ctx := context.Background()

	svc, err := app.New(ctx, "orders-service")
	if err != nil {
		log.Fatal(err)
	}

	if err := svc.WithPersistence(ctx); err != nil {
		log.Fatal(err)
	}

	activityLog := svc.GetLogger("activity")
	sink := storefront.ActivitySinkFunc(func(ctx context.Context, event storefront.ActivityEvent) error {
		activityLog.Info("order activity",
			"event", string(event.EventType),
			"actor_id", event.Actor.ID,
			"order_id", event.OrderID,
			"from", string(event.FromStatus),
			"to", string(event.ToStatus),
		)
		return nil
	})

	if err := svc.WithAuth(sink); err != nil {
		log.Fatal(err)
	}

	if err := svc.WithHTTPServer(ctx); err != nil {
		log.Fatal(err)
	}

	lifecycle := storefront.NewOrderLifecycle(
		svc.Repository().Orders(),
		storefront.WithLifecycleActivitySink(sink),
		storefront.WithLifecycleLogger(svc.GetLogger("lifecycle")),
	)

	controller := orders.NewHTTPController(lifecycle, svc.Repository(), orders.HTTPConfig{
		ContextKey: svc.Config().GetAuth().GetContextKey(),
	}).WithLogger(svc.GetLogger("orders"))

	// partners depend on this family reporting 403 for a missing credential
	// and 401 for an invalid one
	authenticated := svc.Authenticated(guard.Config{
		MissingStatus: router.StatusForbidden,
		InvalidStatus: router.StatusUnauthorized,
	})

	controller.RegisterRoutes(svc.Router(), authenticated)

	if err := svc.Serve(); err != nil {
		log.Fatal(err)
	}

	app.WaitExitSignal()
}
