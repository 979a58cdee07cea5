package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fieldmart/fieldmart-client/internal/api"
	"github.com/fieldmart/fieldmart-client/internal/config"
	"github.com/fieldmart/fieldmart-client/internal/domain/auth"
	"github.com/fieldmart/fieldmart-client/internal/domain/booking"
	"github.com/fieldmart/fieldmart-client/internal/domain/cart"
	"github.com/fieldmart/fieldmart-client/internal/domain/field"
	"github.com/fieldmart/fieldmart-client/internal/domain/order"
	"github.com/fieldmart/fieldmart-client/internal/domain/product"
	"github.com/fieldmart/fieldmart-client/internal/domain/user"
	"github.com/fieldmart/fieldmart-client/internal/pkg/imaging"
	"github.com/fieldmart/fieldmart-client/internal/pkg/logger"
)

const usage = `usage: storefront <command> [flags]

commands:
  login        -email -password
  logout
  profile
  fields
  grid         -field -date
  book         -field -date -slot -subfield
  history
  products     [-category]
  categories
  cart-add     -product -name -price -qty [-version] [-currency]
  cart-list
  cart-remove  -id
  cart-qty     -id -qty
  cart-clear
  checkout     -name -phone -address
  orders
  order-status -id -status
  users
`

type app struct {
	cfg      *config.Config
	tokens   api.TokenStore
	guard    *auth.Guard
	auth     *auth.Service
	fields   *field.Service
	bookings *booking.Service
	products *product.Service
	orders   *order.Service
	users    *user.Service
	cart     *cart.Cart
}

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	a, err := newApp(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Fatal().Err(err).Str("command", os.Args[1]).Msg("command failed")
	}
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	tokens := api.NewFileTokenStore(cfg.TokenFile)
	client := api.NewClient(cfg.APIBaseURL, tokens, cfg.APITimeout, cfg.UserAgent)
	images := imaging.NewProcessor(imaging.Config{
		MaxWidth:  cfg.ImageMaxWidth,
		MaxHeight: cfg.ImageMaxHeight,
	})

	store, err := cartStore(cfg)
	if err != nil {
		return nil, err
	}
	userCart, err := cart.New(ctx, store)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		tokens:   tokens,
		guard:    auth.NewGuard(tokens),
		auth:     auth.NewService(client, tokens),
		fields:   field.NewService(client, images),
		bookings: booking.NewService(client),
		products: product.NewService(client, images),
		orders:   order.NewService(client),
		users:    user.NewService(client),
		cart:     userCart,
	}, nil
}

func cartStore(cfg *config.Config) (cart.Store, error) {
	if cfg.CartRedisURL == "" {
		return cart.NewFileStore(cfg.CartFile), nil
	}
	rdb, err := cart.NewRedisClient(cfg.CartRedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect cart store: %w", err)
	}
	return cart.NewRedisStore(rdb, cfg.CartOwner), nil
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "logout":
		a.auth.Logout()
		fmt.Println("logged out")
		return nil
	case "profile":
		return a.profile(ctx)
	case "fields":
		return a.listFields(ctx)
	case "grid":
		return a.showGrid(ctx, args)
	case "book":
		return a.book(ctx, args)
	case "history":
		return a.history(ctx)
	case "products":
		return a.listProducts(ctx, args)
	case "categories":
		return a.listCategories(ctx)
	case "cart-add":
		return a.cartAdd(ctx, args)
	case "cart-list":
		return a.cartList()
	case "cart-remove":
		return a.cartRemove(ctx, args)
	case "cart-qty":
		return a.cartQty(ctx, args)
	case "cart-clear":
		return a.cart.Clear(ctx)
	case "checkout":
		return a.checkout(ctx, args)
	case "orders":
		return a.listOrders(ctx)
	case "order-status":
		return a.orderStatus(ctx, args)
	case "users":
		return a.listUsers(ctx)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	session, err := a.auth.Login(ctx, auth.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", session.User.Name, session.User.Role)
	return nil
}

func (a *app) profile(ctx context.Context) error {
	me, err := a.auth.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s  %s  %s  role=%s\n", me.ID, me.Name, me.Email, me.Role)
	return nil
}

func (a *app) listFields(ctx context.Context) error {
	fields, err := a.fields.List(ctx)
	if err != nil {
		return err
	}
	for _, f := range fields {
		fmt.Printf("%s  %s  %s  sub-fields=%d\n", f.ID, f.Name, f.Address, len(f.SubFields))
	}
	return nil
}

func (a *app) showGrid(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("grid", flag.ExitOnError)
	fieldID := fs.String("field", "", "field id")
	date := fs.String("date", time.Now().Format(booking.DateLayout), "date (YYYY-MM-DD)")
	_ = fs.Parse(args)

	fld, err := a.fields.Get(ctx, *fieldID)
	if err != nil {
		return err
	}

	flow := booking.NewFlow(a.bookings, *fld, *date)
	if err := flow.Load(ctx); err != nil {
		return err
	}

	grid := flow.Grid()
	fmt.Printf("%s on %s\n", fld.Name, grid.Date)
	for _, slot := range grid.Slots {
		fmt.Printf("%-16s", slot)
		for _, sf := range grid.SubFields {
			mark := "free"
			if grid.Booked(slot, sf.Name) {
				mark = "booked"
			}
			fmt.Printf("  %s=%s(%s)", sf.Name, mark, field.FormatPrice(sf.PricePerHour))
		}
		fmt.Println()
	}
	return nil
}

func (a *app) book(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	fieldID := fs.String("field", "", "field id")
	date := fs.String("date", time.Now().Format(booking.DateLayout), "date (YYYY-MM-DD)")
	slot := fs.String("slot", "", `slot label, e.g. "5:00 - 6:30"`)
	subFieldName := fs.String("subfield", "", "sub-field name")
	_ = fs.Parse(args)

	claims, err := a.guard.Claims()
	if err != nil {
		return err
	}

	fld, err := a.fields.Get(ctx, *fieldID)
	if err != nil {
		return err
	}

	var cell *booking.CellRef
	for _, sf := range fld.SubFields {
		if sf.Name == *subFieldName {
			cell = &booking.CellRef{Slot: *slot, SubFieldID: sf.ID, SubFieldName: sf.Name}
			break
		}
	}
	if cell == nil {
		return fmt.Errorf("sub-field %q not found in field %s", *subFieldName, fld.Name)
	}

	flow := booking.NewFlow(a.bookings, *fld, *date)
	if err := flow.Load(ctx); err != nil {
		return err
	}
	if !flow.Toggle(*cell) {
		return fmt.Errorf("slot %q on %s is not available for %s", *slot, *date, *subFieldName)
	}

	created, err := flow.Confirm(ctx, claims.UserID)
	if err != nil {
		return err
	}
	fmt.Printf("booked %s %s on %s, total %s\n", created.SubFieldName, created.Slot, created.Date, field.FormatPrice(created.TotalPrice))
	return nil
}

func (a *app) history(ctx context.Context) error {
	claims, err := a.guard.Claims()
	if err != nil {
		return err
	}
	bookings, err := a.bookings.History(ctx, claims.UserID)
	if err != nil {
		return err
	}
	for _, b := range bookings {
		fmt.Printf("%s  %s  %s  %s  %s\n", b.Date, b.Slot, b.SubFieldName, b.Status, field.FormatPrice(b.TotalPrice))
	}
	return nil
}

func (a *app) listProducts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	category := fs.String("category", "", "category id filter")
	_ = fs.Parse(args)

	products, err := a.products.List(ctx, *category)
	if err != nil {
		return err
	}
	for _, p := range products {
		inCart := ""
		for _, v := range p.Versions {
			if a.cart.Contains(p.ID, v) {
				inCart = "  [in cart]"
				break
			}
		}
		fmt.Printf("%s  %s  %s %s%s\n", p.ID, p.Name, field.FormatPrice(p.Price), p.Currency, inCart)
	}
	return nil
}

func (a *app) listCategories(ctx context.Context) error {
	categories, err := a.products.Categories().List(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Printf("%s  %s\n", c.ID, c.Name)
	}
	return nil
}

func (a *app) cartAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cart-add", flag.ExitOnError)
	productID := fs.String("product", "", "product id")
	name := fs.String("name", "", "product name")
	price := fs.Float64("price", 0, "unit price")
	qty := fs.Int("qty", 1, "quantity")
	version := fs.String("version", product.VersionPhysical, "digital or physical")
	currency := fs.String("currency", "VND", "currency code")
	_ = fs.Parse(args)

	return a.cart.Add(ctx, cart.AddInput{
		ProductID: *productID,
		Name:      *name,
		Price:     *price,
		Quantity:  *qty,
		Version:   *version,
		Currency:  *currency,
	})
}

func (a *app) cartList() error {
	for _, item := range a.cart.Items() {
		fmt.Printf("%s  %s x%d  %s (%s)\n", item.ID, item.Name, item.Quantity, field.FormatPrice(item.Price), item.Version)
	}
	fmt.Printf("items=%d total=%s\n", a.cart.ItemCount(), field.FormatPrice(a.cart.Total()))
	return nil
}

func (a *app) cartRemove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cart-remove", flag.ExitOnError)
	id := fs.String("id", "", "cart line id")
	_ = fs.Parse(args)
	return a.cart.Remove(ctx, *id)
}

func (a *app) cartQty(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cart-qty", flag.ExitOnError)
	id := fs.String("id", "", "cart line id")
	qty := fs.Int("qty", 0, "new quantity (0 removes the line)")
	_ = fs.Parse(args)
	return a.cart.UpdateQuantity(ctx, *id, *qty)
}

func (a *app) checkout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	name := fs.String("name", "", "recipient name")
	phone := fs.String("phone", "", "recipient phone")
	address := fs.String("address", "", "delivery address")
	_ = fs.Parse(args)

	claims, err := a.guard.Claims()
	if err != nil {
		return err
	}

	created, err := a.orders.Checkout(ctx, claims.UserID, a.cart.Items(), order.Shipping{
		Name:    *name,
		Phone:   *phone,
		Address: *address,
	})
	if err != nil {
		return err
	}

	if err := a.cart.Clear(ctx); err != nil {
		log.Warn().Err(err).Msg("order placed but cart not cleared")
	}
	fmt.Printf("order %s placed, total %s %s\n", created.ID, field.FormatPrice(created.Total), created.Currency)
	return nil
}

func (a *app) listOrders(ctx context.Context) error {
	if !a.guard.IsAdmin() {
		return fmt.Errorf("admin role required")
	}
	orders, err := a.orders.List(ctx)
	if err != nil {
		return err
	}
	for _, o := range orders {
		fmt.Printf("%s  %s  %s  %s\n", o.ID, o.UserID, o.Status, field.FormatPrice(o.Total))
	}
	return nil
}

func (a *app) orderStatus(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("order-status", flag.ExitOnError)
	id := fs.String("id", "", "order id")
	status := fs.String("status", "", "new status")
	_ = fs.Parse(args)

	if !a.guard.IsAdmin() {
		return fmt.Errorf("admin role required")
	}
	updated, err := a.orders.UpdateStatus(ctx, *id, *status)
	if err != nil {
		return err
	}
	fmt.Printf("order %s is now %s\n", updated.ID, updated.Status)
	return nil
}

func (a *app) listUsers(ctx context.Context) error {
	if !a.guard.IsAdmin() {
		return fmt.Errorf("admin role required")
	}
	users, err := a.users.List(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		fmt.Printf("%s  %s  %s  role=%s\n", u.ID, u.Name, u.Email, u.Role)
	}
	return nil
}
