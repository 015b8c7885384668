package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/postqode/nexus-console/internal/core/domain"
	"github.com/postqode/nexus-console/internal/core/ports"
	"github.com/postqode/nexus-console/internal/core/service"
	"github.com/postqode/nexus-console/internal/core/validate"
)

func (a *app) loginCommand() *cli.Command {
	return &cli.Command{
		Name:      "login",
		Usage:     "authenticate and store the session",
		ArgsUsage: "USERNAME PASSWORD",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return fmt.Errorf("usage: login USERNAME PASSWORD")
			}
			user, err := a.session.Login(c.Context, c.Args().Get(0), c.Args().Get(1))
			if err != nil {
				// The form stays populated and nothing navigates; the server
				// message is all the user sees.
				a.notify.Error(domain.UserMessage(err, "Invalid username or password"))
				return cli.Exit("", 1)
			}
			fmt.Printf("Welcome back, %s!\n", user.Username)
			return nil
		},
	}
}

func (a *app) logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "end the session",
		Action: func(c *cli.Context) error {
			a.session.Logout(c.Context)
			fmt.Println("Logged out.")
			return nil
		},
	}
}

func (a *app) whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the current session",
		Action: func(c *cli.Context) error {
			if !a.session.IsAuthenticated() {
				fmt.Println("Not logged in.")
				return nil
			}
			u := a.session.User()
			fmt.Printf("%s (%s)\n", u.Username, u.Role)
			return nil
		},
	}
}

func (a *app) productsCommand() *cli.Command {
	return &cli.Command{
		Name:  "products",
		Usage: "browse and manage the catalog",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list products",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "search"},
					&cli.StringFlag{Name: "status", Usage: "ACTIVE, LOW_STOCK or OUT_OF_STOCK"},
					&cli.StringFlag{Name: "category"},
					&cli.StringFlag{Name: "sort", Value: "name"},
					&cli.BoolFlag{Name: "desc"},
					&cli.IntFlag{Name: "page", Value: 1},
					&cli.IntFlag{Name: "page-size", Value: 10},
				},
				Action: a.listProducts,
			},
			{
				Name:      "create",
				Usage:     "add a product to the catalog",
				ArgsUsage: "SKU NAME PRICE QUANTITY",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "category"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 4 {
						return fmt.Errorf("usage: create SKU NAME PRICE QUANTITY")
					}
					dialog := service.NewProductDialog(a.products, a.notify, nil, a.log)
					dialog.SetForm(validate.ProductForm{
						SKU:         c.Args().Get(0),
						Name:        c.Args().Get(1),
						Price:       c.Args().Get(2),
						Quantity:    c.Args().Get(3),
						Description: c.String("description"),
						CategoryID:  c.String("category"),
						Status:      string(domain.ProductActive),
					})
					return a.submitDialog(c, dialog.Submit, dialog.FieldErrors)
				},
			},
			{
				Name:      "update",
				Usage:     "edit an existing product",
				ArgsUsage: "ID NAME PRICE QUANTITY",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "description"},
					&cli.StringFlag{Name: "category"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() != 4 {
						return fmt.Errorf("usage: update ID NAME PRICE QUANTITY")
					}
					product, err := a.products.Get(c.Context, c.Args().Get(0))
					if err != nil {
						a.notify.Error(domain.UserMessage(err, "Failed to load product"))
						return cli.Exit("", 1)
					}
					dialog := service.NewProductDialog(a.products, a.notify, nil, a.log)
					dialog.SetProduct(product)
					form := dialog.Form()
					form.Name = c.Args().Get(1)
					form.Price = c.Args().Get(2)
					form.Quantity = c.Args().Get(3)
					if v := c.String("description"); v != "" {
						form.Description = v
					}
					if v := c.String("category"); v != "" {
						form.CategoryID = v
					}
					dialog.SetForm(form)
					return a.submitDialog(c, dialog.Submit, dialog.FieldErrors)
				},
			},
			{
				Name:      "delete",
				Usage:     "remove a product",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					if err := a.productActions.Delete(c.Context, c.Args().First()); err != nil {
						return cli.Exit("", 1)
					}
					return nil
				},
			},
			{
				Name:      "buy",
				Usage:     "place an order for a product",
				ArgsUsage: "PRODUCT_ID QUANTITY",
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return fmt.Errorf("usage: buy PRODUCT_ID QUANTITY")
					}
					product, err := a.products.Get(c.Context, c.Args().Get(0))
					if err != nil {
						a.notify.Error(domain.UserMessage(err, "Failed to load product"))
						return cli.Exit("", 1)
					}
					if _, err := a.orderActions.Buy(c.Context, *product, c.Args().Get(1)); err != nil {
						return cli.Exit("", 1)
					}
					return nil
				},
			},
		},
	}
}

// listProducts drives the same list controller the catalog screens use:
// flags seed the query state, the fetch runs against it, and the rendered
// page carries the pagination cues the tables show.
func (a *app) listProducts(c *cli.Context) error {
	dir := ports.SortAsc
	if c.Bool("desc") {
		dir = ports.SortDesc
	}

	settled := make(chan struct{}, 1)
	list := service.NewList(a.products.List, a.notify, a.log,
		service.WithQuery[domain.Product](ports.ProductQuery{
			Search:     c.String("search"),
			Status:     c.String("status"),
			CategoryID: c.String("category"),
			SortField:  c.String("sort"),
			SortDir:    dir,
			Page:       c.Int("page"),
			PageSize:   c.Int("page-size"),
		}),
		service.WithOnChange[domain.Product](func() {
			select {
			case settled <- struct{}{}:
			default:
			}
		}),
	)
	defer list.Close()

	list.Refresh()
	for {
		select {
		case <-settled:
		case <-c.Context.Done():
			return c.Context.Err()
		}
		if !list.Loading() {
			break
		}
	}
	if err := list.Err(); err != nil {
		return cli.Exit("", 1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SKU\tNAME\tPRICE\tQTY\tSTATUS")
	for _, p := range list.Items() {
		fmt.Fprintf(w, "%s\t%s\t$%s\t%d\t%s\n", p.SKU, p.Name, p.Price.StringFixed(2), p.Quantity, p.Status.Display())
	}
	if err := w.Flush(); err != nil {
		return err
	}
	q := list.Query()
	fmt.Printf("Page %d of %d (%d items)\n", q.Page, list.TotalPages(), list.TotalCount())
	return nil
}

func (a *app) categoriesCommand() *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "manage product categories",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list categories",
				Action: func(c *cli.Context) error {
					cats, err := a.categories.List(c.Context)
					if err != nil {
						a.notify.Error(domain.UserMessage(err, "Failed to load categories"))
						return cli.Exit("", 1)
					}
					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
					for _, cat := range cats {
						fmt.Fprintf(w, "%s\t%s\t%s\n", cat.ID, cat.Name, cat.Description)
					}
					return w.Flush()
				},
			},
			{
				Name:      "create",
				Usage:     "add a category",
				ArgsUsage: "NAME",
				Flags:     []cli.Flag{&cli.StringFlag{Name: "description"}},
				Action: func(c *cli.Context) error {
					dialog := service.NewCategoryDialog(a.categories, a.notify, nil, a.log)
					dialog.SetForm(validate.CategoryForm{
						Name:        c.Args().First(),
						Description: c.String("description"),
					})
					return a.submitDialog(c, dialog.Submit, dialog.FieldErrors)
				},
			},
			{
				Name:      "update",
				Usage:     "edit a category",
				ArgsUsage: "ID NAME",
				Flags:     []cli.Flag{&cli.StringFlag{Name: "description"}},
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return fmt.Errorf("usage: update ID NAME")
					}
					category, err := a.categories.Get(c.Context, c.Args().Get(0))
					if err != nil {
						a.notify.Error(domain.UserMessage(err, "Failed to load category"))
						return cli.Exit("", 1)
					}
					dialog := service.NewCategoryDialog(a.categories, a.notify, nil, a.log)
					dialog.SetCategory(category)
					form := dialog.Form()
					form.Name = c.Args().Get(1)
					if v := c.String("description"); v != "" {
						form.Description = v
					}
					dialog.SetForm(form)
					return a.submitDialog(c, dialog.Submit, dialog.FieldErrors)
				},
			},
			{
				Name:      "delete",
				Usage:     "remove a category",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					if err := a.categories.Delete(c.Context, c.Args().First()); err != nil {
						a.notify.Error(domain.UserMessage(err, "Failed to delete category"))
						return cli.Exit("", 1)
					}
					fmt.Println("Category deleted successfully")
					return nil
				},
			},
		},
	}
}

func (a *app) ordersCommand() *cli.Command {
	return &cli.Command{
		Name:  "orders",
		Usage: "view and act on orders",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list all orders (admin)",
				Action: func(c *cli.Context) error {
					orders, err := a.orders.ListAll(c.Context)
					if err != nil {
						a.notify.Error(domain.UserMessage(err, "Failed to load orders"))
						return cli.Exit("", 1)
					}
					return renderOrders(orders, true)
				},
			},
			{
				Name:  "my",
				Usage: "list my orders",
				Action: func(c *cli.Context) error {
					orders, err := a.orders.ListMine(c.Context)
					if err != nil {
						a.notify.Error(domain.UserMessage(err, "Failed to load orders"))
						return cli.Exit("", 1)
					}
					return renderOrders(orders, false)
				},
			},
			{
				Name:      "approve",
				Usage:     "approve a pending order",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					order, err := a.orders.Get(c.Context, c.Args().First())
					if err == nil && !service.CanApprove(*order) {
						// Advisory only: warn like the disabled button would,
						// but let the server have the final word.
						fmt.Fprintln(os.Stderr, "Warning: order quantity exceeds current stock")
					}
					if err := a.orderActions.Approve(c.Context, c.Args().First()); err != nil {
						return cli.Exit("", 1)
					}
					return nil
				},
			},
			{
				Name:      "reject",
				Usage:     "reject a pending order",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					if err := a.orderActions.Reject(c.Context, c.Args().First()); err != nil {
						return cli.Exit("", 1)
					}
					return nil
				},
			},
			{
				Name:      "cancel",
				Usage:     "cancel a pending order",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					if err := a.orderActions.Cancel(c.Context, c.Args().First()); err != nil {
						return cli.Exit("", 1)
					}
					return nil
				},
			},
		},
	}
}

func renderOrders(orders []domain.Order, withUser bool) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if withUser {
		fmt.Fprintln(w, "ID\tUSER\tPRODUCT\tQTY\tTOTAL\tSTATUS")
	} else {
		fmt.Fprintln(w, "ID\tPRODUCT\tQTY\tTOTAL\tSTATUS")
	}
	for _, o := range orders {
		if withUser {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t$%s\t%s\n", o.ID, o.Username(), o.ProductName(), o.Quantity, o.Total().StringFixed(2), o.Status)
		} else {
			fmt.Fprintf(w, "%s\t%s\t%d\t$%s\t%s\n", o.ID, o.ProductName(), o.Quantity, o.Total().StringFixed(2), o.Status)
		}
	}
	return w.Flush()
}

func (a *app) inventoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "inventory",
		Usage: "manage my inventory",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list my inventory items",
				Action: func(c *cli.Context) error {
					items, err := a.inventory.ListMine(c.Context)
					if err != nil {
						a.notify.Error(domain.UserMessage(err, "Failed to load inventory"))
						return cli.Exit("", 1)
					}
					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tNAME\tQTY\tSOURCE\tNOTES")
					for _, it := range items {
						fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", it.ID, it.Name, it.Quantity, it.Source, it.Notes)
					}
					return w.Flush()
				},
			},
			{
				Name:      "add",
				Usage:     "add a manual item",
				ArgsUsage: "NAME QUANTITY",
				Flags:     []cli.Flag{&cli.StringFlag{Name: "notes"}},
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return fmt.Errorf("usage: add NAME QUANTITY")
					}
					dialog := service.NewInventoryDialog(a.inventory, a.notify, nil, a.log)
					dialog.SetForm(validate.InventoryForm{
						Name:     c.Args().Get(0),
						Quantity: c.Args().Get(1),
						Notes:    c.String("notes"),
					})
					return a.submitDialog(c, dialog.Submit, dialog.FieldErrors)
				},
			},
			{
				Name:      "update",
				Usage:     "edit an item",
				ArgsUsage: "ID NAME QUANTITY",
				Flags:     []cli.Flag{&cli.StringFlag{Name: "notes"}},
				Action: func(c *cli.Context) error {
					if c.NArg() != 3 {
						return fmt.Errorf("usage: update ID NAME QUANTITY")
					}
					item, err := a.inventory.Get(c.Context, c.Args().Get(0))
					if err != nil {
						a.notify.Error(domain.UserMessage(err, "Failed to load item"))
						return cli.Exit("", 1)
					}
					dialog := service.NewInventoryDialog(a.inventory, a.notify, nil, a.log)
					dialog.SetItem(item)
					dialog.SetForm(validate.InventoryForm{
						Name:     c.Args().Get(1),
						Quantity: c.Args().Get(2),
						Notes:    c.String("notes"),
					})
					return a.submitDialog(c, dialog.Submit, dialog.FieldErrors)
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a manual item",
				ArgsUsage: "ID",
				Action: func(c *cli.Context) error {
					item, err := a.inventory.Get(c.Context, c.Args().First())
					if err != nil {
						a.notify.Error(domain.UserMessage(err, "Failed to load item"))
						return cli.Exit("", 1)
					}
					if err := a.inventoryActions.Delete(c.Context, *item); err != nil {
						return cli.Exit("", 1)
					}
					return nil
				},
			},
			{
				Name:      "consume",
				Usage:     "consume units of an item",
				ArgsUsage: "ID QUANTITY",
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return fmt.Errorf("usage: consume ID QUANTITY")
					}
					item, err := a.inventory.Get(c.Context, c.Args().Get(0))
					if err != nil {
						a.notify.Error(domain.UserMessage(err, "Failed to load item"))
						return cli.Exit("", 1)
					}
					if service.ConsumesAll(*item, c.Args().Get(1)) {
						fmt.Fprintln(os.Stderr, "Warning: consuming the entire quantity removes this item from your inventory")
					}
					if _, err := a.inventoryActions.Consume(c.Context, *item, c.Args().Get(1)); err != nil {
						return cli.Exit("", 1)
					}
					return nil
				},
			},
		},
	}
}

func (a *app) usersCommand() *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "manage user accounts (admin)",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list users",
				Action: func(c *cli.Context) error {
					users, err := a.users.List(c.Context)
					if err != nil {
						a.notify.Error(domain.UserMessage(err, "Failed to load users"))
						return cli.Exit("", 1)
					}
					w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE\tENABLED")
					for _, u := range users {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", u.ID, u.Username, u.Email, u.Role, u.Enabled)
					}
					return w.Flush()
				},
			},
			{
				Name:      "create",
				Usage:     "create a user",
				ArgsUsage: "USERNAME EMAIL PASSWORD",
				Flags:     []cli.Flag{&cli.StringFlag{Name: "role", Value: domain.RoleUser}},
				Action: func(c *cli.Context) error {
					if c.NArg() != 3 {
						return fmt.Errorf("usage: create USERNAME EMAIL PASSWORD")
					}
					dialog := service.NewUserDialog(a.users, a.notify, nil, a.log)
					dialog.SetForm(validate.UserForm{
						Username: c.Args().Get(0),
						Email:    c.Args().Get(1),
						Password: c.Args().Get(2),
						Role:     c.String("role"),
					})
					return a.submitDialog(c, dialog.Submit, dialog.FieldErrors)
				},
			},
			{
				Name:      "update",
				Usage:     "edit a user",
				ArgsUsage: "ID",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username"},
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "password"},
					&cli.StringFlag{Name: "role"},
				},
				Action: func(c *cli.Context) error {
					user, err := a.users.Get(c.Context, c.Args().First())
					if err != nil {
						a.notify.Error(domain.UserMessage(err, "Failed to load user"))
						return cli.Exit("", 1)
					}
					dialog := service.NewUserDialog(a.users, a.notify, nil, a.log)
					dialog.SetUser(user)
					form := dialog.Form()
					if v := c.String("username"); v != "" {
						form.Username = v
					}
					if v := c.String("email"); v != "" {
						form.Email = v
					}
					if v := c.String("password"); v != "" {
						form.Password = v
					}
					if v := c.String("role"); v != "" {
						form.Role = v
					}
					dialog.SetForm(form)
					return a.submitDialog(c, dialog.Submit, dialog.FieldErrors)
				},
			},
			{
				Name:      "enable",
				Usage:     "enable a user's account",
				ArgsUsage: "ID",
				Action:    func(c *cli.Context) error { return a.toggleUser(c, true) },
			},
			{
				Name:      "disable",
				Usage:     "disable a user's account",
				ArgsUsage: "ID",
				Action:    func(c *cli.Context) error { return a.toggleUser(c, false) },
			},
		},
	}
}

// toggleUser runs the two-phase optimistic toggle used by the users screen.
func (a *app) toggleUser(c *cli.Context, enabled bool) error {
	user, err := a.users.Get(c.Context, c.Args().First())
	if err != nil {
		a.notify.Error(domain.UserMessage(err, "Failed to load user"))
		return cli.Exit("", 1)
	}
	toggle := service.NewUserToggle(a.users, *user, a.notify, a.log)
	if err := toggle.Set(c.Context, enabled); err != nil {
		return cli.Exit("", 1)
	}
	return nil
}

func (a *app) dashboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "show the role-aware dashboard",
		Action: func(c *cli.Context) error {
			snap, err := a.dashboard.Load(c.Context)
			if err != nil {
				a.notify.Error(domain.UserMessage(err, "Failed to load dashboard"))
				return cli.Exit("", 1)
			}
			if snap.Admin != nil {
				return renderAdminDashboard(snap.Admin)
			}
			return renderUserDashboard(snap.User)
		},
	}
}

func renderAdminDashboard(s *service.AdminSnapshot) error {
	fmt.Printf("Products: %d total, %d active, %d low stock, %d out of stock\n",
		s.Metrics.TotalProducts, s.Metrics.ActiveProducts, s.Metrics.LowStockProducts, s.Metrics.OutOfStockProducts)
	fmt.Printf("Today: %d products added, %d actions\n", s.Metrics.ProductsAddedToday, s.Metrics.ActionsToday)

	fmt.Println("\nOrders:")
	for _, st := range []domain.OrderStatus{domain.OrderPending, domain.OrderApproved, domain.OrderRejected, domain.OrderCancelled} {
		fmt.Printf("  %-9s %d\n", st, s.OrderCounts[st])
	}

	if len(s.Recent) > 0 {
		fmt.Println("\nRecent activity:")
		for _, entry := range s.Recent {
			fmt.Printf("  %s %s %s\n", entry.Username, entry.ActionType, entry.ProductName)
		}
	}
	return nil
}

func renderUserDashboard(s *service.UserSnapshot) error {
	fmt.Printf("Orders: %d total, %d pending\n", len(s.Orders), s.PendingOrders)
	fmt.Printf("Total spend: $%s\n", s.TotalSpend.StringFixed(2))
	fmt.Printf("Inventory: %d items, %d units\n", len(s.Inventory), s.InventoryQuantity)
	return nil
}

// submitDialog runs a dialog submit and maps field errors onto stderr
// lines, the console's stand-in for inline form messages.
func (a *app) submitDialog(c *cli.Context, submit func(context.Context) error, fields func() validate.FieldErrors) error {
	if err := submit(c.Context); err != nil {
		errs := fields()
		for _, field := range slices.Sorted(maps.Keys(errs)) {
			fmt.Fprintf(os.Stderr, "%s: %s\n", field, errs[field])
		}
		return cli.Exit("", 1)
	}
	return nil
}
