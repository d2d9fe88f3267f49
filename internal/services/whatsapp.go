package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/Roshen-Perera/whatsapp-bot-test/internal/config"
	"github.com/Roshen-Perera/whatsapp-bot-test/internal/models"
)

const (
	groupSenderMarker = "@g.us"
	broadcastSender   = "status@broadcast"
)

// ShouldSkipSender reports whether a sender is a group chat or the status
// broadcast channel. Transports drop such messages before calling ProcessMessage.
func ShouldSkipSender(senderID string) bool {
	return strings.Contains(senderID, groupSenderMarker) || senderID == broadcastSender
}

// commandKeywords are the words that bypass name capture for a sender who has not given a name yet
var commandKeywords = []string{
	"help", "products", "cement", "paint", "tools", "plumbing", "electrical",
	"offers", "hours", "location", "contact",
	"check", "add", "cart", "clear", "confirm",
}

// request is one inbound message as seen by a rule
type request struct {
	text  string // trimmed body as sent
	lower string // lower-cased text
	arg   string // lower-cased text after the command word
	raw   string // text after the command word, original case
}

type matcher func(lower string) (arg string, ok bool)

type handler func(session *models.Session, req request) (string, error)

type rule struct {
	intent string
	match  matcher
	handle handler
}

// WhatsAppService handles WhatsApp message processing
type WhatsAppService struct {
	cfg      *config.Config
	sessions *SessionManager
	catalog  *CatalogService
	carts    *CartService
	orders   *OrderBuilder
	format   *Formatter
	logger   *zap.Logger
	rules    []rule
	now      func() time.Time
}

// NewWhatsAppService creates a new WhatsApp service
func NewWhatsAppService(cfg *config.Config, sessions *SessionManager, catalog *CatalogService, orders *OrderBuilder, logger *zap.Logger) *WhatsAppService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if orders == nil {
		orders = NewOrderBuilder(catalog, nil)
	}

	w := &WhatsAppService{
		cfg:      cfg,
		sessions: sessions,
		catalog:  catalog,
		carts:    NewCartService(catalog),
		orders:   orders,
		format:   NewFormatter(cfg.Currency),
		logger:   logger,
		now:      time.Now,
	}
	w.rules = w.buildRules()
	return w
}

// buildRules returns the dispatch table. Order matters: the first match wins.
func (w *WhatsAppService) buildRules() []rule {
	rules := []rule{
		{"help", exact("help"), w.handleHelp},
		{"greet", exact("hi", "hello", "hey"), w.handleGreet},
		{"products", exact("products"), w.handleProducts},
	}

	for _, c := range w.catalog.Categories() {
		category := c
		rules = append(rules, rule{
			intent: "category",
			match:  exact(string(category.Category)),
			handle: func(session *models.Session, req request) (string, error) {
				return w.format.ProductList(w.catalog.ListByCategory(category.Category), category.Label), nil
			},
		})
	}

	return append(rules,
		rule{"search", command("check"), w.handleSearch},
		rule{"add", command("add"), w.handleAdd},
		rule{"cart", exact("cart"), w.handleViewCart},
		rule{"clear", exact("clear"), w.handleClearCart},
		rule{"confirm", exact("confirm"), w.handleConfirm},
		rule{"offers", exact("offer", "offers"), w.handleOffers},
		rule{"hours", exact("hour", "hours", "open"), w.handleHours},
		rule{"location", exact("location", "address"), w.handleLocation},
		rule{"contact", exact("contact", "phone"), w.handleContact},
	)
}

// ProcessMessage runs one inbound message through the conversation and
// returns the reply. Messages from the same sender are handled one at a time.
func (w *WhatsAppService) ProcessMessage(from, message string) (string, error) {
	text := strings.TrimSpace(message)
	lower := strings.ToLower(text)

	session := w.sessions.Touch(from)
	session.Lock()
	defer session.Unlock()

	if session.IsFirstVisit() {
		w.logger.Debug("First visit, asking for name")
		return w.welcomeMessage(), nil
	}

	if !session.HasName() && !startsWithCommand(lower) {
		if text == "" {
			return w.welcomeMessage(), nil
		}
		session.DisplayName = text
		w.logger.Debug("Captured display name")
		return fmt.Sprintf("Nice to meet you, %s! 😊\nType *products* to see categories or *help* for all commands.", session.DisplayName), nil
	}

	for _, r := range w.rules {
		arg, ok := r.match(lower)
		if !ok {
			continue
		}
		w.logger.Debug("Routing message", zap.String("intent", r.intent))

		req := request{text: text, lower: lower, arg: arg, raw: rawArg(text, lower, arg)}
		reply, err := r.handle(session, req)
		if err != nil {
			return "", fmt.Errorf("%s: %w", r.intent, err)
		}
		return reply, nil
	}

	w.logger.Debug("Unrecognized command")
	return w.fallbackMessage(), nil
}

func (w *WhatsAppService) welcomeMessage() string {
	return fmt.Sprintf("🏪 Welcome to *%s*!\nMay I know your name? (This helps me serve you better)", w.cfg.Store.Name)
}

func (w *WhatsAppService) fallbackMessage() string {
	return "I didn't quite understand.\n\n" +
		"Try:\n• *products* — categories\n• *check cement* — search\n• *add CEM-TS-50 3* — add to cart\n• *cart* — view cart\n• *help* — all commands"
}

func (w *WhatsAppService) orderingDisabledMessage() string {
	return fmt.Sprintf("🛒 Online ordering is currently unavailable.\nPlease call us on %s to place an order.", w.cfg.Store.Phone)
}

func (w *WhatsAppService) handleHelp(session *models.Session, req request) (string, error) {
	return `🤖 *Commands*

• *products* — show categories
• *cement* / *paint* / *tools* / *plumbing* / *electrical* — list items
• *check <keyword>* — search products
• *add <ID> <qty>* — add to cart (e.g., add CEM-TS-50 3)
• *cart* — view your cart
• *confirm* — place an order
• *clear* — clear cart
• *offers* — current promotions
• *hours* / *location* / *contact*
`, nil
}

func (w *WhatsAppService) handleGreet(session *models.Session, req request) (string, error) {
	who := session.DisplayName
	if who == "" {
		who = "customer"
	}
	return fmt.Sprintf("Hello %s! 👋 How can I help you today?\nType *products* to browse or *help* for all commands.", who), nil
}

func (w *WhatsAppService) handleProducts(session *models.Session, req request) (string, error) {
	return w.format.CategoryMenu(w.catalog.Categories()), nil
}

// Handle "check <keyword>"
func (w *WhatsAppService) handleSearch(session *models.Session, req request) (string, error) {
	results := w.catalog.Search(req.arg)
	return w.format.SearchResults(req.arg, results, w.cfg.Features.EnableStockCheck), nil
}

// Handle "add <id> [qty] [note]"
func (w *WhatsAppService) handleAdd(session *models.Session, req request) (string, error) {
	if !w.cfg.Features.EnableOrdering {
		return w.orderingDisabledMessage(), nil
	}

	productID, quantity, note := parseAddArgs(req.raw)

	line, err := w.carts.Add(session, productID, quantity, note)
	switch {
	case errors.Is(err, ErrUnknownProduct):
		return fmt.Sprintf("I couldn't find product with ID *%s*. Type *check <keyword>* or *products*.", productID), nil
	case errors.Is(err, ErrProductUnavailable):
		product, _ := w.catalog.FindByID(productID)
		return fmt.Sprintf("*%s* is currently out of stock.", product.Name), nil
	case errors.Is(err, ErrQuantityTooLarge):
		return fmt.Sprintf("You can add at most %s of an item per line.\nFor bulk orders please call us on %s.",
			w.format.Count(MaxLineQuantity), w.cfg.Store.Phone), nil
	case errors.Is(err, ErrCartFull):
		return fmt.Sprintf("Your cart already has %d lines.\nType *confirm* to place this order or *clear* to start over.", MaxCartLines), nil
	case err != nil:
		return "", err
	}

	w.logger.Info("🧺 Added to cart",
		zap.String("product", line.Product.ID),
		zap.Int("quantity", line.Quantity),
		zap.Int("lines", len(session.Cart)))
	return w.format.AddedToCart(line), nil
}

func (w *WhatsAppService) handleViewCart(session *models.Session, req request) (string, error) {
	return w.format.Cart(session.Cart, w.catalog.Total(session.Cart)), nil
}

func (w *WhatsAppService) handleClearCart(session *models.Session, req request) (string, error) {
	w.carts.Clear(session)
	return "🧹 Cart cleared.", nil
}

func (w *WhatsAppService) handleConfirm(session *models.Session, req request) (string, error) {
	if !w.cfg.Features.EnableOrdering {
		return w.orderingDisabledMessage(), nil
	}

	order, err := w.orders.Confirm(session)
	if errors.Is(err, ErrEmptyCart) {
		return "Your cart is empty. Add items first with *add <ID> <qty>*.", nil
	}
	if err != nil {
		return "", err
	}

	w.logger.Info("✅ Order placed",
		zap.String("order_id", order.ID),
		zap.Int64("total", order.Total),
		zap.Int("lines", len(order.Lines)))
	return w.format.OrderPlaced(order, w.cfg.Store.Phone), nil
}

func (w *WhatsAppService) handleOffers(session *models.Session, req request) (string, error) {
	if len(w.cfg.Offers) == 0 {
		return "🎉 No special offers right now. Check back soon!", nil
	}

	var b strings.Builder
	b.WriteString("🎉 *Current Offers*\n")
	for _, offer := range w.cfg.Offers {
		b.WriteString("• " + offer + "\n")
	}
	b.WriteString("\n*Valid until end of month.*")
	return b.String(), nil
}

func (w *WhatsAppService) handleHours(session *models.Session, req request) (string, error) {
	reply := w.format.Hours(w.cfg.Store.Hours)
	if w.cfg.Store.Hours.IsOpenAt(w.now().In(w.cfg.Store.Location())) {
		return reply + "\n\n🟢 We're open now.", nil
	}
	return reply + "\n\n🔴 We're closed right now.", nil
}

func (w *WhatsAppService) handleLocation(session *models.Session, req request) (string, error) {
	reply := fmt.Sprintf("📍 *%s*\n%s", w.cfg.Store.Name, w.cfg.Store.Address)
	if w.cfg.Features.EnableDelivery {
		reply += "\n\n🚚 Delivery available within city limits."
	}
	return reply, nil
}

func (w *WhatsAppService) handleContact(session *models.Session, req request) (string, error) {
	return fmt.Sprintf("📞 *Contact*\nPhone: %s\nEmail: %s", w.cfg.Store.Phone, w.cfg.Store.Email), nil
}

// exact matches the whole message against any of words.
func exact(words ...string) matcher {
	return func(lower string) (string, bool) {
		for _, word := range words {
			if lower == word {
				return "", true
			}
		}
		return "", false
	}
}

// command matches "<word> <argument>" with a non-empty argument.
func command(word string) matcher {
	return func(lower string) (string, bool) {
		rest, ok := strings.CutPrefix(lower, word)
		if !ok || rest == "" || !unicode.IsSpace([]rune(rest)[0]) {
			return "", false
		}
		arg := strings.TrimSpace(rest)
		return arg, arg != ""
	}
}

// startsWithCommand reports whether lower begins with a command keyword
// followed by a word boundary.
func startsWithCommand(lower string) bool {
	for _, kw := range commandKeywords {
		rest, ok := strings.CutPrefix(lower, kw)
		if !ok {
			continue
		}
		if rest == "" || !isWordRune([]rune(rest)[0]) {
			return true
		}
	}
	return false
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// rawArg returns the original-case text matching arg, when lower-casing kept the byte layout.
func rawArg(text, lower, arg string) string {
	if arg == "" || len(text) != len(lower) {
		return arg
	}
	i := strings.LastIndex(lower, arg)
	if i < 0 {
		return arg
	}
	return text[i : i+len(arg)]
}

// parseAddArgs splits "<id> [qty] [note...]". A missing or unparsable quantity
// is 1. A number past the int range is kept at the range limit so the cart
// rejects it instead of treating it as a note.
func parseAddArgs(arg string) (productID string, quantity int, note string) {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		return "", 1, ""
	}
	productID = fields[0]
	quantity = 1
	if len(fields) < 2 {
		return productID, quantity, ""
	}

	if n, err := strconv.Atoi(fields[1]); err == nil || errors.Is(err, strconv.ErrRange) {
		quantity = n
		note = strings.Join(fields[2:], " ")
	} else {
		note = strings.Join(fields[1:], " ")
	}
	if quantity < 1 {
		quantity = 1
	}
	return productID, quantity, note
}
