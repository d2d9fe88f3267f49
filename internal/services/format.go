package services

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Roshen-Perera/whatsapp-bot-test/internal/config"
	"github.com/Roshen-Perera/whatsapp-bot-test/internal/models"
)

// SearchResultLimit caps the number of products shown for "check <keyword>"
const SearchResultLimit = 6

// Formatter renders catalog, cart and order data as WhatsApp text
type Formatter struct {
	currency string
	printer  *message.Printer
}

// NewFormatter creates a formatter for amounts prefixed by currency (e.g. "Rs.")
func NewFormatter(currency string) *Formatter {
	return &Formatter{
		currency: currency,
		printer:  message.NewPrinter(language.English),
	}
}

// Amount renders a price with thousands separators: "Rs. 18,990".
func (f *Formatter) Amount(n int64) string {
	return f.printer.Sprintf("%s %d", f.currency, n)
}

// Count renders n with thousands separators, e.g. "10,000".
func (f *Formatter) Count(n int) string {
	return f.printer.Sprintf("%d", n)
}

// Product renders one catalog entry with stock status and description.
func (f *Formatter) Product(p models.Product) string {
	avail := "✅ In stock"
	if !p.Available {
		avail = "❌ Out of stock"
	}
	return fmt.Sprintf("• %s [%s] - %s / %s\n  %s — %s", p.Name, p.ID, f.Amount(p.UnitPrice), p.Unit, avail, p.Description)
}

// ProductList renders a titled list followed by ordering instructions.
func (f *Formatter) ProductList(items []models.Product, title string) string {
	if len(items) == 0 {
		return fmt.Sprintf("No items found in %s.", title)
	}

	blocks := make([]string, 0, len(items))
	for _, p := range items {
		blocks = append(blocks, f.Product(p))
	}
	return fmt.Sprintf("🛠️ %s\n\n%s\n\n➡️ Use: add <ID> <qty>\n➡️ Example: add %s 3", title, strings.Join(blocks, "\n\n"), items[0].ID)
}

// CategoryMenu renders the product categories menu.
func (f *Formatter) CategoryMenu(categories []CategoryInfo) string {
	var b strings.Builder
	b.WriteString("🛠️ *PRODUCT CATEGORIES*\n\n")
	for i, c := range categories {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "• %s — type *%s*", c.Label, c.Category)
	}
	return b.String()
}

// SearchResults renders the first SearchResultLimit matches for keyword.
func (f *Formatter) SearchResults(keyword string, items []models.Product, showStock bool) string {
	if len(items) == 0 {
		return fmt.Sprintf("No products found for \"%s\". Try a different keyword or type *products*.", keyword)
	}
	if len(items) > SearchResultLimit {
		items = items[:SearchResultLimit]
	}

	lines := make([]string, 0, len(items))
	for _, p := range items {
		line := fmt.Sprintf("• %s [%s] — %s", p.Name, p.ID, f.Amount(p.UnitPrice))
		if showStock {
			stock := "In stock"
			if !p.Available {
				stock = "Out of stock"
			}
			line += fmt.Sprintf(" (%s)", stock)
		}
		lines = append(lines, line)
	}
	return fmt.Sprintf("🔎 *Search results*\n\n%s\n\n➡️ Use: *add <ID> <qty>*", strings.Join(lines, "\n"))
}

// AddedToCart confirms a new cart line.
func (f *Formatter) AddedToCart(line models.CartLine) string {
	return fmt.Sprintf("🧺 Added *%s* x %d — %s\nType *cart* to view your cart or *confirm* to place order.",
		line.Product.Name, line.Quantity, f.Amount(line.Subtotal()))
}

// Cart renders the itemized cart with its total.
func (f *Formatter) Cart(lines []models.CartLine, total int64) string {
	if len(lines) == 0 {
		return "Your cart is empty. Add items using *add <ID> <qty>*."
	}

	items := make([]string, 0, len(lines))
	for _, l := range lines {
		item := fmt.Sprintf("• %s x %d — %s", l.Product.Name, l.Quantity, f.Amount(l.Subtotal()))
		if l.Note != "" {
			item += fmt.Sprintf("\n  📝 %s", l.Note)
		}
		items = append(items, item)
	}
	return fmt.Sprintf("🧺 *Your Cart*\n\n%s\n\n*Total:* %s\n\nCommands: *confirm*, *clear*", strings.Join(items, "\n"), f.Amount(total))
}

// OrderPlaced confirms a new order and tells the customer how they will be contacted.
func (f *Formatter) OrderPlaced(order models.Order, storePhone string) string {
	return fmt.Sprintf("✅ *Order placed!* ID: %s\nItems: %s\nTotal: %s\nWe’ll contact you shortly at this number to confirm delivery/pickup.\n📞 %s",
		order.ID, f.Count(order.ItemCount()), f.Amount(order.Total), storePhone)
}

// Hours renders the weekly table, merging consecutive days with the same slot.
func (f *Formatter) Hours(hours config.WeeklyHours) string {
	days := hours.Days()

	var rows []string
	for i := 0; i < len(days); {
		j := i
		for j+1 < len(days) && days[j+1].Slot == days[i].Slot {
			j++
		}

		label := dayAbbrev(days[i].Day)
		if j > i {
			label += "–" + dayAbbrev(days[j].Day)
		}
		rows = append(rows, fmt.Sprintf("%s: %s", label, formatSlot(days[i].Slot)))
		i = j + 1
	}

	return "⏰ *Opening Hours*\n" + strings.Join(rows, "\n")
}

func dayAbbrev(d time.Weekday) string {
	return d.String()[:3]
}

func formatSlot(s config.TimeSlot) string {
	if s.Closed {
		return "Closed"
	}
	return fmt.Sprintf("%s – %s", formatClock(s.Open), formatClock(s.Close))
}

// formatClock turns "18:00" into "6:00 PM"; unparsable values are shown as-is.
func formatClock(hhmm string) string {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return hhmm
	}
	return t.Format("3:04 PM")
}
