package services

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Roshen-Perera/whatsapp-bot-test/internal/models"
)

// OrderIDGenerator mints order ids. Implementations must never return the same id twice.
type OrderIDGenerator func(now time.Time) string

// NewOrderIDGenerator returns ids like "ORD-1718000000000-7". The trailing
// sequence is process-wide, so ids stay unique within the same millisecond.
func NewOrderIDGenerator() OrderIDGenerator {
	var seq atomic.Uint64
	return func(now time.Time) string {
		return fmt.Sprintf("ORD-%d-%d", now.UnixMilli(), seq.Add(1))
	}
}

// Cart limits. With MaxUnitPrice enforced by the catalog, a full cart totals
// well below math.MaxInt64.
const (
	MaxLineQuantity = 10000
	MaxCartLines    = 50
	MaxUnitPrice    = 1_000_000_000
)

// CartService mutates a sender's cart
type CartService struct {
	catalog *CatalogService
}

// NewCartService creates a new cart service
func NewCartService(catalog *CatalogService) *CartService {
	return &CartService{catalog: catalog}
}

// Add appends a line for productID. Quantities below 1 are raised to 1 and
// quantities above MaxLineQuantity are rejected. Adding the same product twice
// creates two lines. Caller holds the session lock.
func (c *CartService) Add(session *models.Session, productID string, quantity int, note string) (models.CartLine, error) {
	product, ok := c.catalog.FindByID(productID)
	if !ok {
		return models.CartLine{}, fmt.Errorf("%w: %s", ErrUnknownProduct, productID)
	}
	if !product.Available {
		return models.CartLine{}, fmt.Errorf("%w: %s", ErrProductUnavailable, product.ID)
	}

	if quantity < 1 {
		quantity = 1
	}
	if quantity > MaxLineQuantity {
		return models.CartLine{}, fmt.Errorf("%w: %d", ErrQuantityTooLarge, quantity)
	}
	if len(session.Cart) >= MaxCartLines {
		return models.CartLine{}, ErrCartFull
	}
	line := models.CartLine{
		Product:  product,
		Quantity: quantity,
		Note:     strings.TrimSpace(note),
	}
	session.Cart = append(session.Cart, line)
	return line, nil
}

// Clear empties the cart. Caller holds the session lock.
func (c *CartService) Clear(session *models.Session) {
	session.Cart = []models.CartLine{}
}

// OrderBuilder turns a cart into an order
type OrderBuilder struct {
	catalog *CatalogService
	newID   OrderIDGenerator
	now     func() time.Time
}

// NewOrderBuilder creates a new order builder
func NewOrderBuilder(catalog *CatalogService, newID OrderIDGenerator) *OrderBuilder {
	if newID == nil {
		newID = NewOrderIDGenerator()
	}
	return &OrderBuilder{
		catalog: catalog,
		newID:   newID,
		now:     time.Now,
	}
}

// Confirm snapshots the cart into a pending order, appends it to the
// session's history and empties the cart. Caller holds the session lock,
// so no one observes the order without the cleared cart.
func (b *OrderBuilder) Confirm(session *models.Session) (models.Order, error) {
	if len(session.Cart) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	now := b.now()
	lines := make([]models.CartLine, len(session.Cart))
	copy(lines, session.Cart)

	order := models.Order{
		ID:        b.newID(now),
		SenderID:  session.SenderID,
		Lines:     lines,
		Total:     b.catalog.Total(lines),
		Status:    models.OrderStatusPending,
		CreatedAt: now,
	}

	session.OrderHistory = append(session.OrderHistory, order)
	session.Cart = []models.CartLine{}

	return order, nil
}
