package main

import (
	"fmt"
	"io"
	"strings"

	"kisanmandi/internal/assistant"
	"kisanmandi/internal/cart"
	"kisanmandi/internal/inventory"
	"kisanmandi/internal/metrics"
	"kisanmandi/internal/order"
	"kisanmandi/internal/product"
	"kisanmandi/internal/user"
	"kisanmandi/internal/weather"
)

func printUser(w io.Writer, u *user.User) {
	if u == nil {
		fmt.Fprintln(w, "not logged in")
		return
	}
	fmt.Fprintf(w, "%s (%s) %s, %s, language %s\n", u.Name, u.Role, u.ID, u.Phone, u.Language)
	if u.Location != "" {
		fmt.Fprintf(w, "  location: %s\n", u.Location)
	}
	if u.LandSize != "" {
		fmt.Fprintf(w, "  land: %s acres\n", u.LandSize)
	}
	if len(u.PrimaryCrops) > 0 {
		fmt.Fprintf(w, "  crops: %s\n", strings.Join(u.PrimaryCrops, ", "))
	}
}

func printProducts(w io.Writer, ps []product.Product) {
	for _, p := range ps {
		fmt.Fprintf(w, "%-4s %-24s %-6s Rs %.2f/%s\n", p.ID, p.Name, p.Category, p.Price, p.Unit)
	}
}

func printCart(w io.Writer, items []cart.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "cart is empty")
		return
	}
	for _, it := range items {
		fmt.Fprintf(w, "%-4s %-24s x%d  Rs %.2f\n", it.ID, it.Name, it.CartQuantity, it.Price*float64(it.CartQuantity))
	}
	fmt.Fprintf(w, "total: Rs %.2f\n", cart.ComputeTotal(items))
}

func printOrders(w io.Writer, orders []order.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(w, "no orders yet")
		return
	}
	for _, o := range orders {
		fmt.Fprintf(w, "%s  %s  %-8s %-9s Rs %.2f (%d items)\n", o.ID, o.Date, o.Type, o.Status, o.Total, len(o.Items))
	}
}

func printInventory(w io.Writer, items []inventory.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "no stock recorded")
		return
	}
	for _, it := range items {
		fmt.Fprintf(w, "%-12s %-20s %d %s  Rs %.2f  added %s\n", it.ID, it.Name, it.Quantity, it.Unit, it.Price, it.AddedDate)
	}
}

func printWeather(w io.Writer, info weather.Info) {
	fmt.Fprintf(w, "%.0f°C %s. %s\n", info.Temp, info.Condition, info.Forecast)
}

func printRecommendations(w io.Writer, recs []assistant.Recommendation) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "no recommendations available")
		return
	}
	for _, r := range recs {
		fmt.Fprintf(w, "[%s] %s\n  %s\n  %s\n", r.Type, r.Title, r.Description, r.Link)
	}
}

func printMetrics(w io.Writer, counters []*metrics.Counter) {
	for _, c := range counters {
		fmt.Fprintf(w, "%-18s %d\n", c.Name(), c.Load())
	}
}
