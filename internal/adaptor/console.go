// Package adaptor is the terminal view layer: purely presentational,
// it renders entities and surfaces transient notifications.
package adaptor

import (
	"fmt"
	"io"
	"text/tabwriter"

	"resto-client/internal/data/entity"

	"go.uber.org/zap"
)

type Console struct {
	out io.Writer
	log *zap.Logger
}

func NewConsole(out io.Writer, log *zap.Logger) *Console {
	return &Console{
		out: out,
		log: log,
	}
}

// Success implements usecase.Notifier.
func (c *Console) Success(message string) {
	fmt.Fprintf(c.out, "✔ %s\n", message)
}

// Error implements usecase.Notifier.
func (c *Console) Error(message string) {
	fmt.Fprintf(c.out, "✘ %s\n", message)
}

func (c *Console) User(user *entity.User) {
	if user == nil {
		fmt.Fprintln(c.out, "Not logged in")
		return
	}
	fmt.Fprintf(c.out, "%s (%s) - %s, id %s\n", user.Name, user.Cellphone, user.Role, user.ID)
}

func (c *Console) Products(products []entity.Product) {
	if len(products) == 0 {
		fmt.Fprintln(c.out, "No products")
		return
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tAVAILABLE")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n",
			p.ID, p.Name, p.Category, p.Price.StringFixed(2), p.Available)
	}
	w.Flush()
}

func (c *Console) Product(p *entity.Product) {
	fmt.Fprintf(c.out, "%s - %s (%s)\n", p.Name, p.Price.StringFixed(2), p.Category)
	if p.Description != "" {
		fmt.Fprintln(c.out, p.Description)
	}
	if p.ImageURL != "" {
		fmt.Fprintln(c.out, p.ImageURL)
	}
	fmt.Fprintf(c.out, "available: %t, id: %s\n", p.Available, p.ID)
}

func (c *Console) Cart(cart *entity.Cart) {
	if cart == nil || len(cart.Items) == 0 {
		fmt.Fprintln(c.out, "Cart is empty")
		return
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tQTY\tPRICE\tSUBTOTAL")
	for _, item := range cart.Items {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			item.Name, item.Quantity, item.Price.StringFixed(2), item.Subtotal().StringFixed(2))
	}
	w.Flush()
	fmt.Fprintf(c.out, "Total: %s (%d items)\n", cart.TotalAmount.StringFixed(2), cart.ItemCount())
}

func (c *Console) Orders(orders []entity.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(c.out, "No orders")
		return
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCUSTOMER\tSTATUS\tTOTAL\tPLACED")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			o.ID, o.UserName, o.Status, o.TotalAmount.StringFixed(2),
			o.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}

func (c *Console) Order(o *entity.Order) {
	fmt.Fprintf(c.out, "Order %s - %s, total %s\n", o.ID, o.Status, o.TotalAmount.StringFixed(2))
	fmt.Fprintf(c.out, "Customer: %s (%s)\n", o.UserName, o.UserCellphone)
	if o.Notes != "" {
		fmt.Fprintf(c.out, "Notes: %s\n", o.Notes)
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tQTY\tPRICE\tSUBTOTAL")
	for _, item := range o.Items {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			item.Name, item.Quantity, item.Price.StringFixed(2), item.Subtotal().StringFixed(2))
	}
	w.Flush()
}

func (c *Console) Dashboard(d *entity.Dashboard) {
	if d == nil {
		fmt.Fprintln(c.out, "No dashboard data")
		return
	}
	s := d.Stats
	fmt.Fprintf(c.out, "Orders: %d total, %d pending, %d completed\n",
		s.TotalOrders, s.PendingOrders, s.CompletedOrders)
	fmt.Fprintf(c.out, "Products: %d total, %d available\n",
		s.TotalProducts, s.AvailableProducts)
	fmt.Fprintf(c.out, "Revenue: %s\n", s.TotalRevenue.StringFixed(2))
	if len(d.RecentOrders) > 0 {
		fmt.Fprintln(c.out, "Recent orders:")
		c.Orders(d.RecentOrders)
	}
}
