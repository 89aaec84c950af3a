// Package cmd dispatches the terminal subcommands. It is glue only:
// every command parses flags, calls one service operation and renders
// the result.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"resto-client/internal/data/entity"
	"resto-client/internal/dto/request"
	"resto-client/internal/stub"
	"resto-client/internal/sync"
	"resto-client/internal/wire"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const usage = `usage: resto-client <command> [flags]

account
  login           -name -cellphone
  create-admin    -name -cellphone -secret
  logout
  whoami          [-refresh]

catalog
  products        [-search -category -min-price -max-price -available]
  product         -id
  product-create  -name -description -price -category [-image] [-available]
  product-update  -id [-name -description -price -category -image -available]
  product-delete  -id

ordering
  cart
  cart-add        -product -qty
  cart-remove     -product
  cart-clear
  checkout        [-notes]
  orders          [-watch]

admin
  admin-orders    [-status] [-watch]
  order           -id
  order-status    -id -status
  dashboard       [-watch]

development
  stub            [-no-seed]
`

// Run executes one subcommand against the wired application.
func Run(app *wire.App, args []string) error {
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("missing command")
	}

	ctx := context.Background()

	switch args[0] {
	case "login":
		return runLogin(ctx, app, args[1:])
	case "create-admin":
		return runCreateAdmin(ctx, app, args[1:])
	case "logout":
		if err := app.Service.Auth.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	case "whoami":
		return runWhoami(ctx, app, args[1:])
	case "products":
		return runProducts(ctx, app, args[1:])
	case "product":
		return runProduct(ctx, app, args[1:])
	case "product-create":
		return runProductCreate(ctx, app, args[1:])
	case "product-update":
		return runProductUpdate(ctx, app, args[1:])
	case "product-delete":
		return runProductDelete(ctx, app, args[1:])
	case "cart":
		return renderCart(app, app.Service.Cart.Cart(ctx))
	case "cart-add":
		return runCartAdd(ctx, app, args[1:])
	case "cart-remove":
		return runCartRemove(ctx, app, args[1:])
	case "cart-clear":
		return app.Service.Cart.Clear(ctx)
	case "checkout":
		return runCheckout(ctx, app, args[1:])
	case "orders":
		return runOrders(ctx, app, args[1:])
	case "admin-orders":
		return runAdminOrders(ctx, app, args[1:])
	case "order":
		return runOrder(ctx, app, args[1:])
	case "order-status":
		return runOrderStatus(ctx, app, args[1:])
	case "dashboard":
		return runDashboard(ctx, app, args[1:])
	case "stub":
		return runStub(app, args[1:])
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// ---------- account ----------

func runLogin(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	name := fs.String("name", "", "your name")
	cellphone := fs.String("cellphone", "", "your phone number")
	fs.Parse(args)

	user, err := app.Service.Auth.Login(ctx, &request.LoginRequest{
		Name:      *name,
		Cellphone: *cellphone,
	})
	if err != nil {
		return err
	}
	app.Console.User(user)
	return nil
}

func runCreateAdmin(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("create-admin", flag.ExitOnError)
	name := fs.String("name", "", "admin name")
	cellphone := fs.String("cellphone", "", "admin phone number")
	secret := fs.String("secret", "", "admin secret")
	fs.Parse(args)

	user, err := app.Service.Auth.CreateAdmin(ctx, &request.CreateAdminRequest{
		Name:        *name,
		Cellphone:   *cellphone,
		AdminSecret: *secret,
	})
	if err != nil {
		return err
	}
	app.Console.User(user)
	return nil
}

func runWhoami(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ExitOnError)
	refresh := fs.Bool("refresh", false, "re-fetch the profile from the server")
	fs.Parse(args)

	if *refresh {
		user, err := app.Service.Auth.Profile(ctx)
		if err != nil {
			return err
		}
		app.Console.User(user)
		return nil
	}
	app.Console.User(app.Service.Auth.Current())
	return nil
}

// ---------- catalog ----------

func runProducts(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	search := fs.String("search", "", "search text")
	category := fs.String("category", "", "category filter")
	minPrice := fs.String("min-price", "", "minimum price")
	maxPrice := fs.String("max-price", "", "maximum price")
	available := fs.Bool("available", false, "only available products")
	fs.Parse(args)

	filters := request.ProductFilters{Search: *search, Category: *category}
	if *minPrice != "" {
		d, err := decimal.NewFromString(*minPrice)
		if err != nil {
			return fmt.Errorf("invalid -min-price: %w", err)
		}
		filters.MinPrice = &d
	}
	if *maxPrice != "" {
		d, err := decimal.NewFromString(*maxPrice)
		if err != nil {
			return fmt.Errorf("invalid -max-price: %w", err)
		}
		filters.MaxPrice = &d
	}
	var visited bool
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "available" {
			visited = true
		}
	})
	if visited {
		filters.Available = available
	}

	snap := app.Service.Product.Products(ctx, filters)
	if snap.Err != nil && !snap.HasData {
		return snap.Err
	}
	if snap.Err != nil {
		app.Console.Error("Catalog may be stale: " + snap.Err.Error())
	}
	app.Console.Products(snap.Data)
	return nil
}

func runProduct(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("product", flag.ExitOnError)
	id := fs.String("id", "", "product id")
	fs.Parse(args)

	snap := app.Service.Product.ProductByID(ctx, *id)
	if snap.Err != nil && !snap.HasData {
		return snap.Err
	}
	if !snap.HasData {
		return errors.New("product id required")
	}
	app.Console.Product(snap.Data)
	return nil
}

func runProductCreate(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("product-create", flag.ExitOnError)
	name := fs.String("name", "", "product name")
	description := fs.String("description", "", "product description")
	price := fs.String("price", "", "price, e.g. 12.50")
	category := fs.String("category", "", "category")
	image := fs.String("image", "", "image URL")
	available := fs.Bool("available", true, "availability flag")
	fs.Parse(args)

	p, err := decimal.NewFromString(*price)
	if err != nil {
		return fmt.Errorf("invalid -price: %w", err)
	}

	product, err := app.Service.Product.Create(ctx, &request.CreateProductRequest{
		Name:        *name,
		Description: *description,
		Price:       p,
		Category:    *category,
		ImageURL:    *image,
		Available:   *available,
	})
	if err != nil {
		return err
	}
	app.Console.Product(product)
	return nil
}

func runProductUpdate(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("product-update", flag.ExitOnError)
	id := fs.String("id", "", "product id")
	name := fs.String("name", "", "new name")
	description := fs.String("description", "", "new description")
	price := fs.String("price", "", "new price")
	category := fs.String("category", "", "new category")
	image := fs.String("image", "", "new image URL")
	available := fs.Bool("available", true, "new availability flag")
	fs.Parse(args)

	// Only flags the caller actually set become part of the update.
	var req request.UpdateProductRequest
	var parseErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			req.Name = name
		case "description":
			req.Description = description
		case "price":
			d, err := decimal.NewFromString(*price)
			if err != nil {
				parseErr = fmt.Errorf("invalid -price: %w", err)
				return
			}
			req.Price = &d
		case "category":
			req.Category = category
		case "image":
			req.ImageURL = image
		case "available":
			req.Available = available
		}
	})
	if parseErr != nil {
		return parseErr
	}

	product, err := app.Service.Product.Update(ctx, *id, &req)
	if err != nil {
		return err
	}
	app.Console.Product(product)
	return nil
}

func runProductDelete(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("product-delete", flag.ExitOnError)
	id := fs.String("id", "", "product id")
	fs.Parse(args)

	return app.Service.Product.Delete(ctx, *id)
}

// ---------- ordering ----------

func renderCart(app *wire.App, snap sync.Snapshot[*entity.Cart]) error {
	if !app.Session.IsAuthenticated() {
		return errors.New("log in first")
	}
	if snap.Err != nil && !snap.HasData {
		return snap.Err
	}
	if snap.Err != nil {
		app.Console.Error("Cart may be stale: " + snap.Err.Error())
	}
	app.Console.Cart(snap.Data)
	return nil
}

func runCartAdd(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("cart-add", flag.ExitOnError)
	product := fs.String("product", "", "product id")
	qty := fs.Int("qty", 1, "quantity")
	fs.Parse(args)

	return app.Service.Cart.Add(ctx, *product, *qty)
}

func runCartRemove(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("cart-remove", flag.ExitOnError)
	product := fs.String("product", "", "product id")
	fs.Parse(args)

	return app.Service.Cart.Remove(ctx, *product)
}

func runCheckout(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	notes := fs.String("notes", "", "order notes")
	fs.Parse(args)

	order, err := app.Service.Order.Checkout(ctx, *notes)
	if err != nil {
		return err
	}
	app.Console.Order(order)
	return nil
}

func runOrders(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ExitOnError)
	watchFlag := fs.Bool("watch", false, "keep the list fresh until interrupted")
	fs.Parse(args)

	render := func() error {
		snap := app.Service.Order.UserOrders(ctx)
		if snap.Err != nil && !snap.HasData {
			return snap.Err
		}
		app.Console.Orders(snap.Data)
		return nil
	}
	if err := render(); err != nil {
		return err
	}
	if *watchFlag {
		watch(app, app.Config.Sync.UserOrdersRefresh, app.Service.Order.WatchUserOrders(ctx), render)
	}
	return nil
}

// ---------- admin ----------

func runAdminOrders(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("admin-orders", flag.ExitOnError)
	status := fs.String("status", "", "status filter (pending|accepted|declined|completed)")
	watchFlag := fs.Bool("watch", false, "keep the list fresh until interrupted")
	fs.Parse(args)

	st := entity.OrderStatus(*status)
	if st != "" && !st.Valid() {
		return fmt.Errorf("invalid -status %q", *status)
	}

	render := func() error {
		snap := app.Service.Order.AdminOrders(ctx, st)
		if snap.Err != nil && !snap.HasData {
			return snap.Err
		}
		app.Console.Orders(snap.Data)
		return nil
	}
	if err := render(); err != nil {
		return err
	}
	if *watchFlag {
		watch(app, app.Config.Sync.AdminOrdersRefresh, app.Service.Order.WatchAdminOrders(ctx, st), render)
	}
	return nil
}

func runOrder(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("order", flag.ExitOnError)
	id := fs.String("id", "", "order id")
	fs.Parse(args)

	admin := app.Service.Auth.Current()
	if !admin.IsAdmin() {
		return errors.New("admin access required")
	}
	order, err := app.Repo.Order.FindByID(ctx, admin.ID, *id)
	if err != nil {
		return err
	}
	app.Console.Order(order)
	return nil
}

func runOrderStatus(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("order-status", flag.ExitOnError)
	id := fs.String("id", "", "order id")
	status := fs.String("status", "", "target status (accepted|declined|completed)")
	fs.Parse(args)

	order, err := app.Service.Order.UpdateStatus(ctx, *id, entity.OrderStatus(*status))
	if err != nil {
		return err
	}
	app.Console.Order(order)
	return nil
}

func runDashboard(ctx context.Context, app *wire.App, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
	watchFlag := fs.Bool("watch", false, "keep the dashboard fresh until interrupted")
	fs.Parse(args)

	render := func() error {
		snap := app.Service.Dashboard.Dashboard(ctx)
		if snap.Err != nil && !snap.HasData {
			return snap.Err
		}
		app.Console.Dashboard(snap.Data)
		return nil
	}
	if err := render(); err != nil {
		return err
	}
	if *watchFlag {
		watch(app, app.Config.Sync.DashboardRefresh, app.Service.Dashboard.WatchDashboard(ctx), render)
	}
	return nil
}

// watch re-renders from the cache while the resource's polling policy
// keeps it fresh, until the user interrupts. The render cadence follows
// the resource's own refresh interval so unchanged data is not redrawn
// between polls.
func watch(app *wire.App, interval time.Duration, stop func(), render func() error) {
	defer stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)

	done := make(chan struct{})
	go func() {
		<-sig
		close(done)
	}()

	watchLoop(interval, done, render, func(err error) {
		app.Console.Error(err.Error())
	})
}

func watchLoop(interval time.Duration, done <-chan struct{}, render func() error, onErr func(error)) {
	if interval <= 0 {
		interval = 2 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := render(); err != nil {
				onErr(err)
			}
		case <-done:
			return
		}
	}
}

// ---------- development ----------

func runStub(app *wire.App, args []string) error {
	fs := flag.NewFlagSet("stub", flag.ExitOnError)
	noSeed := fs.Bool("no-seed", false, "start with an empty catalog")
	fs.Parse(args)

	store := stub.NewStore(app.Config.Stub.AdminSecret)
	if !*noSeed {
		store.Seed()
	}

	addr := ":" + app.Config.Stub.Port
	app.Log.Info("Stub API listening", zap.String("addr", addr))
	fmt.Printf("Stub API running on http://localhost%s\n", addr)

	return http.ListenAndServe(addr, stub.NewServer(store, app.Log))
}
