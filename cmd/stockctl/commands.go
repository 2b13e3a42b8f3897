package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/hongminglow/stockroom/internal/api"
	"github.com/hongminglow/stockroom/internal/models"
	"github.com/hongminglow/stockroom/internal/models/dto"
	"github.com/hongminglow/stockroom/internal/views"
)

var errUsage = errors.New("invalid usage")

func (a *app) run(ctx context.Context, name string, args []string) error {
	switch name {
	case "login":
		return a.login(ctx, args)
	case "register":
		return a.register(ctx, args)
	case "logout":
		a.session.Logout(ctx)
		fmt.Fprintln(a.out, "Logged out.")
		return nil
	case "whoami":
		return a.whoami(ctx)
	case "profile":
		return a.profile(ctx, args)
	case "dashboard":
		return a.dashboard(ctx)
	case "items":
		return a.items(ctx, args)
	case "item":
		return a.item(ctx, args)
	case "item-create":
		return a.saveItem(ctx, args, false)
	case "item-update":
		return a.saveItem(ctx, args, true)
	case "item-delete":
		return a.deleteItem(ctx, args)
	case "low-stock":
		return a.lowStock(ctx)
	case "categories":
		return a.categories(ctx, args)
	case "category-create":
		return a.createCategory(ctx, args)
	case "suppliers":
		return a.suppliers(ctx, args)
	case "supplier-create":
		return a.createSupplier(ctx, args)
	case "users":
		return a.users(ctx, args)
	case "profiles":
		return a.profiles(ctx)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
	}
	return nil
}

// authenticated resolves the stored token into a user or fails.
func (a *app) authenticated(ctx context.Context) (*models.User, error) {
	a.session.Init(ctx)
	st := a.session.State()
	if !st.Authenticated {
		return nil, errors.New("not logged in; run `stockctl login`")
	}
	return st.User, nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := newFlags("login")
	email := fs.String("email", "", "Account email")
	password := fs.String("password", "", "Account password")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return fmt.Errorf("%w: login needs -email and -password", errUsage)
	}

	if _, err := a.session.Login(ctx, dto.LoginRequest{Email: *email, Password: *password}); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	fmt.Fprintf(a.out, "Logged in as %s.\n", a.session.State().User.DisplayName())
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := newFlags("register")
	email := fs.String("email", "", "Account email")
	password := fs.String("password", "", "Password")
	confirm := fs.String("confirm", "", "Password again")
	first := fs.String("first", "", "First name")
	last := fs.String("last", "", "Last name")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *email == "" {
		return fmt.Errorf("%w: register needs -email", errUsage)
	}
	if err := views.ValidateSignup(*password, *confirm); err != nil {
		return err
	}

	_, err := a.session.Register(ctx, dto.RegisterRequest{Email: *email, Password: *password, FirstName: *first, LastName: *last})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	fmt.Fprintf(a.out, "Welcome, %s.\n", a.session.State().User.DisplayName())
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	user, err := a.authenticated(ctx)
	if err != nil {
		return err
	}
	w := table(a.out)
	fmt.Fprintf(w, "Name\t%s\n", user.DisplayName())
	fmt.Fprintf(w, "Email\t%s\n", user.Email)
	fmt.Fprintf(w, "Staff\t%t\n", user.IsStaff)
	if user.DateJoined != nil {
		fmt.Fprintf(w, "Joined\t%s\n", user.DateJoined.Format("2006-01-02"))
	}
	return w.Flush()
}

func (a *app) profile(ctx context.Context, args []string) error {
	user, err := a.authenticated(ctx)
	if err != nil {
		return err
	}
	fs := newFlags("profile")
	first := fs.String("first", user.FirstName, "First name")
	last := fs.String("last", user.LastName, "Last name")
	email := fs.String("email", user.Email, "Email")
	if err := parse(fs, args); err != nil {
		return err
	}

	updated, err := a.session.UpdateProfile(ctx, dto.ProfileUpdate{FirstName: *first, LastName: *last, Email: *email})
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	fmt.Fprintf(a.out, "Profile updated: %s <%s>\n", updated.DisplayName(), updated.Email)
	return nil
}

func (a *app) catalog() views.Catalog {
	return views.CatalogFrom(a.svc.Inventory, a.logger)
}

func (a *app) dashboard(ctx context.Context) error {
	if _, err := a.authenticated(ctx); err != nil {
		return err
	}
	dash, err := views.LoadDashboard(ctx, a.catalog())
	if err != nil {
		return err
	}

	w := table(a.out)
	fmt.Fprintf(w, "Total items\t%d\n", dash.Stats.TotalItems)
	fmt.Fprintf(w, "Low stock\t%d\n", dash.Stats.LowStock)
	fmt.Fprintf(w, "Categories\t%d\n", dash.Stats.Categories)
	fmt.Fprintf(w, "Total value\t$%s\n", dash.Stats.TotalValue.StringFixed(2))
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "\nRecent items")
	if err := printItems(a.out, dash.RecentItems); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "\nLow stock alerts")
	return printItems(a.out, dash.LowStockItems)
}

func (a *app) items(ctx context.Context, args []string) error {
	fs := newFlags("items")
	page := fs.Int("page", 1, "Page number")
	search := fs.String("search", "", "Search text")
	category := fs.Int64("category", 0, "Category id")
	supplier := fs.Int64("supplier", 0, "Supplier id")
	low := fs.Bool("low", false, "Only low-stock items on the page")
	if err := parse(fs, args); err != nil {
		return err
	}
	if _, err := a.authenticated(ctx); err != nil {
		return err
	}

	list := views.NewItemList(a.catalog(), a.cfg.Debounce)
	defer list.Close()
	filters := views.Filters{Search: *search, Category: *category, Supplier: *supplier, LowStockOnly: *low}
	if err := list.Apply(ctx, filters, *page); err != nil {
		return err
	}

	st := list.State()
	if err := printItems(a.out, st.Items); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\nPage %d of %d (%d items)\n", st.CurrentPage, max(st.TotalPages, 1), st.TotalItems)
	return nil
}

func (a *app) item(ctx context.Context, args []string) error {
	fs := newFlags("item")
	id := fs.Int64("id", 0, "Item id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("%w: item needs -id", errUsage)
	}
	if _, err := a.authenticated(ctx); err != nil {
		return err
	}

	detail, err := views.LoadItemDetail(ctx, a.catalog(), *id)
	if err != nil {
		return err
	}
	item := detail.Item
	supplier := "No supplier"
	if detail.Supplier != nil {
		supplier = detail.Supplier.Name
	}

	w := table(a.out)
	fmt.Fprintf(w, "Name\t%s\n", item.Name)
	fmt.Fprintf(w, "Description\t%s\n", item.Description)
	fmt.Fprintf(w, "Price\t$%s\n", item.Price.Decimal().StringFixed(2))
	fmt.Fprintf(w, "Quantity\t%s\n", intOrDash(item.Quantity))
	fmt.Fprintf(w, "Threshold\t%s\n", intOrDash(item.LowStockThreshold))
	fmt.Fprintf(w, "Category\t%s\n", detail.CategoryName())
	fmt.Fprintf(w, "Supplier\t%s\n", supplier)
	if detail.LowStock {
		fmt.Fprintf(w, "Status\tLOW STOCK\n")
	}
	return w.Flush()
}

// saveItem creates an item, or updates one starting from its current values
// so only the flags given change.
func (a *app) saveItem(ctx context.Context, args []string, update bool) error {
	fs := newFlags("item-create")
	if update {
		fs = newFlags("item-update")
	}
	id := fs.Int64("id", 0, "Item id (update only)")
	name := fs.String("name", "", "Name")
	description := fs.String("description", "", "Description")
	price := fs.String("price", "", "Unit price, e.g. 9.99")
	qty := fs.Int("qty", 0, "Quantity on hand")
	threshold := fs.Int("threshold", 0, "Low stock threshold")
	category := fs.Int64("category", 0, "Category id (0 for none)")
	supplier := fs.Int64("supplier", 0, "Supplier id (0 for none)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if update && *id == 0 {
		return fmt.Errorf("%w: item-update needs -id", errUsage)
	}
	if _, err := a.authenticated(ctx); err != nil {
		return err
	}

	var in dto.ItemInput
	if update {
		current, err := a.svc.Inventory.Items.GetByID(ctx, *id)
		if err != nil {
			return err
		}
		in = dto.FromItem(current)
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			in.Name = *name
		case "description":
			in.Description = *description
		case "price":
			in.Price = models.Money(*price)
		case "qty":
			in.Quantity = *qty
		case "threshold":
			in.LowStockThreshold = *threshold
		case "category":
			in.Category = optionalID(*category)
		case "supplier":
			in.Supplier = optionalID(*supplier)
		}
	})
	if err := views.ValidateItem(in); err != nil {
		return err
	}

	list := views.NewItemList(a.catalog(), a.cfg.Debounce)
	defer list.Close()
	var (
		saved models.Item
		err   error
	)
	if update {
		saved, err = list.Update(ctx, *id, in)
	} else {
		saved, err = list.Create(ctx, in)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Saved item #%d %q.\n", saved.ID, saved.Name)
	if views.IsLowStock(saved) {
		fmt.Fprintln(a.out, "Warning: item is at or below its low stock threshold.")
	}
	return nil
}

func (a *app) deleteItem(ctx context.Context, args []string) error {
	fs := newFlags("item-delete")
	id := fs.Int64("id", 0, "Item id")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id == 0 {
		return fmt.Errorf("%w: item-delete needs -id", errUsage)
	}
	if _, err := a.authenticated(ctx); err != nil {
		return err
	}
	if err := a.svc.Inventory.Items.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted item #%d.\n", *id)
	return nil
}

func (a *app) lowStock(ctx context.Context) error {
	if _, err := a.authenticated(ctx); err != nil {
		return err
	}
	page, err := a.svc.Inventory.Items.LowStock(ctx)
	if err != nil {
		return err
	}
	return printItems(a.out, page.Results)
}

func (a *app) categories(ctx context.Context, args []string) error {
	fs := newFlags("categories")
	search := fs.String("search", "", "Search text")
	if err := parse(fs, args); err != nil {
		return err
	}
	if _, err := a.authenticated(ctx); err != nil {
		return err
	}
	page, err := a.svc.Inventory.Categories.GetAll(ctx, api.Params{"search": *search})
	if err != nil {
		return err
	}
	w := table(a.out)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
	for _, c := range page.Results {
		fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, c.Description)
	}
	return w.Flush()
}

func (a *app) createCategory(ctx context.Context, args []string) error {
	fs := newFlags("category-create")
	name := fs.String("name", "", "Name")
	description := fs.String("description", "", "Description")
	if err := parse(fs, args); err != nil {
		return err
	}
	if strings.TrimSpace(*name) == "" {
		return fmt.Errorf("%w: category-create needs -name", errUsage)
	}
	if _, err := a.authenticated(ctx); err != nil {
		return err
	}
	c, err := a.svc.Inventory.Categories.Create(ctx, dto.CategoryInput{Name: *name, Description: *description})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created category #%d %q.\n", c.ID, c.Name)
	return nil
}

func (a *app) suppliers(ctx context.Context, args []string) error {
	fs := newFlags("suppliers")
	search := fs.String("search", "", "Search text")
	if err := parse(fs, args); err != nil {
		return err
	}
	if _, err := a.authenticated(ctx); err != nil {
		return err
	}
	page, err := a.svc.Inventory.Suppliers.GetAll(ctx, api.Params{"search": *search})
	if err != nil {
		return err
	}
	w := table(a.out)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE")
	for _, s := range page.Results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.ID, s.Name, s.ContactEmail, s.Phone)
	}
	return w.Flush()
}

func (a *app) createSupplier(ctx context.Context, args []string) error {
	fs := newFlags("supplier-create")
	name := fs.String("name", "", "Name")
	email := fs.String("email", "", "Contact email")
	phone := fs.String("phone", "", "Phone")
	address := fs.String("address", "", "Address")
	if err := parse(fs, args); err != nil {
		return err
	}
	if strings.TrimSpace(*name) == "" {
		return fmt.Errorf("%w: supplier-create needs -name", errUsage)
	}
	if _, err := a.authenticated(ctx); err != nil {
		return err
	}
	s, err := a.svc.Inventory.Suppliers.Create(ctx, dto.SupplierInput{Name: *name, ContactEmail: *email, Phone: *phone, Address: *address})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created supplier #%d %q.\n", s.ID, s.Name)
	return nil
}

func (a *app) users(ctx context.Context, args []string) error {
	fs := newFlags("users")
	search := fs.String("search", "", "Search text")
	if err := parse(fs, args); err != nil {
		return err
	}
	if _, err := a.authenticated(ctx); err != nil {
		return err
	}
	page, err := a.svc.Users.Users.GetAll(ctx, api.Params{"search": *search})
	if err != nil {
		return err
	}
	w := table(a.out)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tSTAFF")
	for _, u := range page.Results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%t\n", u.ID, u.DisplayName(), u.Email, u.IsStaff)
	}
	return w.Flush()
}

func (a *app) profiles(ctx context.Context) error {
	if _, err := a.authenticated(ctx); err != nil {
		return err
	}
	page, err := a.svc.Users.Profiles.GetAll(ctx, nil)
	if err != nil {
		return err
	}
	w := table(a.out)
	fmt.Fprintln(w, "ID\tUSER\tROLE\tDEPARTMENT\tPHONE")
	for _, p := range page.Results {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", p.ID, p.User, p.Role, p.Department, p.Phone)
	}
	return w.Flush()
}

func printItems(out io.Writer, items []models.Item) error {
	if len(items) == 0 {
		fmt.Fprintln(out, "No items found.")
		return nil
	}
	w := table(out)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tQTY\tTHRESHOLD\t")
	for _, it := range items {
		status := ""
		if views.IsLowStock(it) {
			status = "LOW"
		}
		fmt.Fprintf(w, "%d\t%s\t$%s\t%s\t%s\t%s\n", it.ID, it.Name, it.Price.Decimal().StringFixed(2),
			intOrDash(it.Quantity), intOrDash(it.LowStockThreshold), status)
	}
	return w.Flush()
}

func table(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}

func optionalID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
