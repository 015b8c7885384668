// nexusctl is the Nexus console: a command-line front end over the remote
// REST/GraphQL backend. All business logic (stock decrement, order approval,
// status transitions, auth) runs server-side; this binary only validates
// input, issues the calls and renders the results.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/postqode/nexus-console/internal/core/service"
	"github.com/postqode/nexus-console/internal/infrastructure/config"
	"github.com/postqode/nexus-console/internal/infrastructure/graphql"
	"github.com/postqode/nexus-console/internal/infrastructure/rest"
	"github.com/postqode/nexus-console/internal/infrastructure/storage"
	"github.com/postqode/nexus-console/pkg/logger"
)

// app bundles the wired services the commands run against.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	session *service.Session
	notify  service.Notifier

	auth       *rest.Auth
	products   *rest.Products
	categories *rest.Categories
	orders     *rest.Orders
	inventory  *rest.Inventory
	users      *rest.Users
	dash       *graphql.Client

	orderActions     *service.OrderActions
	inventoryActions *service.InventoryActions
	productActions   *service.ProductActions
	dashboard        *service.Dashboard
}

func bootstrap(ctx context.Context) (*app, error) {
	// .env is a development convenience; a missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Pretty})

	store := storage.NewFileStore(cfg.CredentialsFile)
	session := service.NewSession(store, log)
	if err := session.Restore(); err != nil {
		return nil, err
	}

	onUnauthorized := func() {
		// Cross-cutting 401 handling, installed once on the transport:
		// whatever command triggered it, the session ends here.
		session.Invalidate()
		fmt.Fprintln(os.Stderr, "Session expired. Please log in again.")
	}

	client, err := rest.New(rest.Options{
		BaseURL:        cfg.APIURL,
		Tokens:         session,
		OnUnauthorized: onUnauthorized,
		Timeout:        cfg.HTTPTimeout,
		Logger:         log,
	})
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		log:     log,
		session: session,
		notify:  &printNotifier{},
	}

	a.auth = rest.NewAuth(client)
	session.AttachAuth(a.auth)

	a.products = rest.NewProducts(client)
	a.categories = rest.NewCategories(client)
	a.orders = rest.NewOrders(client)
	a.inventory = rest.NewInventory(client)
	a.users = rest.NewUsers(client)
	a.dash = graphql.New(graphql.Options{
		URL:            cfg.GraphQLURL,
		Tokens:         session,
		OnUnauthorized: onUnauthorized,
		HTTPClient:     client.HTTPClient(),
		Logger:         log,
	})

	a.orderActions = service.NewOrderActions(a.orders, a.notify, log)
	a.inventoryActions = service.NewInventoryActions(a.inventory, a.notify, log)
	a.productActions = service.NewProductActions(a.products, a.notify, log)
	a.dashboard = service.NewDashboard(a.dash, a.orders, a.inventory, session, log)

	return a, nil
}

// printNotifier renders the flows' toasts on the terminal.
type printNotifier struct{}

func (printNotifier) Success(msg string) { fmt.Println(msg) }
func (printNotifier) Error(msg string)   { fmt.Fprintln(os.Stderr, "Error: "+msg) }

func main() {
	ctx := context.Background()

	a, err := bootstrap(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "nexusctl:", err)
		os.Exit(1)
	}

	cliApp := &cli.App{
		Name:  "nexusctl",
		Usage: "console for the Nexus inventory and ordering system",
		Commands: []*cli.Command{
			a.loginCommand(),
			a.logoutCommand(),
			a.whoamiCommand(),
			a.productsCommand(),
			a.categoriesCommand(),
			a.ordersCommand(),
			a.inventoryCommand(),
			a.usersCommand(),
			a.dashboardCommand(),
		},
	}

	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "nexusctl:", err)
		os.Exit(1)
	}
}
