package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"lumina-store/libs"
	"lumina-store/models"
	"lumina-store/repositories"

	"github.com/shopspring/decimal"
)

const (
	CartStorageKey = "lumina_cart"
	persistTimeout = 2 * time.Second
)

var taxRate = decimal.RequireFromString("0.08")

// CartManager owns the lines of one storefront session. Totals are always derived from lines.
type CartManager struct {
	mu    sync.Mutex
	lines []models.CartLine
	store repositories.KeyValueStore
	log   *slog.Logger
}

// NewCartManager restores previously persisted lines from store when present. store may be nil.
func NewCartManager(store repositories.KeyValueStore, log *slog.Logger) *CartManager {
	if log == nil {
		log = libs.NopLogger()
	}
	m := &CartManager{store: store, log: log}
	m.restore()
	return m
}

func (m *CartManager) restore() {
	if m.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	raw, ok, err := m.store.Get(ctx, CartStorageKey)
	if err != nil {
		m.log.Warn("cart restore failed", "error", err)
		return
	}
	if !ok {
		return
	}
	var lines []models.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		m.log.Warn("discarding unreadable cart record", "error", err)
		return
	}
	for _, l := range lines {
		if l.Quantity >= 1 {
			m.lines = append(m.lines, l)
		}
	}
}

// persist must be called with mu held.
func (m *CartManager) persist() {
	if m.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	var err error
	if len(m.lines) == 0 {
		err = m.store.Remove(ctx, CartStorageKey)
	} else {
		var raw []byte
		raw, err = json.Marshal(m.lines)
		if err == nil {
			err = m.store.Set(ctx, CartStorageKey, string(raw))
		}
	}
	if err != nil {
		m.log.Warn("cart persist failed", "error", err)
	}
}

// AddItem merges into the line with the same (product, color, size) key or appends a new one.
// Quantities below 1 are clamped to 1.
func (m *CartManager) AddItem(product models.Product, quantity int, color, size string) {
	if quantity < 1 {
		quantity = 1
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	key := models.LineKey{ProductID: product.ID, Color: color, Size: size}
	for i := range m.lines {
		if m.lines[i].Key() == key {
			m.lines[i].Quantity += quantity
			m.mutated("add")
			return
		}
	}
	m.lines = append(m.lines, models.CartLine{
		Product:       product,
		Quantity:      quantity,
		SelectedColor: color,
		SelectedSize:  size,
	})
	m.mutated("add")
}

// RemoveItem drops every line of the product regardless of variant.
func (m *CartManager) RemoveItem(productID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.filter(func(l models.CartLine) bool { return l.Product.ID != productID }) {
		m.mutated("remove")
	}
}

// RemoveLine drops a single variant line.
func (m *CartManager) RemoveLine(key models.LineKey) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.filter(func(l models.CartLine) bool { return l.Key() != key }) {
		m.mutated("remove_line")
	}
}

// UpdateQuantity sets the quantity of every line of the product; n <= 0 removes them.
func (m *CartManager) UpdateQuantity(productID, n int) {
	if n <= 0 {
		m.RemoveItem(productID)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	changed := false
	for i := range m.lines {
		if m.lines[i].Product.ID == productID && m.lines[i].Quantity != n {
			m.lines[i].Quantity = n
			changed = true
		}
	}
	if changed {
		m.mutated("update")
	}
}

func (m *CartManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = nil
	m.mutated("clear")
}

// filter keeps lines for which keep is true and reports whether anything was removed.
func (m *CartManager) filter(keep func(models.CartLine) bool) bool {
	kept := m.lines[:0]
	for _, l := range m.lines {
		if keep(l) {
			kept = append(kept, l)
		}
	}
	removed := len(kept) != len(m.lines)
	for i := len(kept); i < len(m.lines); i++ {
		m.lines[i] = models.CartLine{}
	}
	m.lines = kept
	return removed
}

func (m *CartManager) mutated(op string) {
	libs.CartMutations.WithLabelValues(op).Inc()
	m.persist()
}

func (m *CartManager) Lines() []models.CartLine {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.CartLine, len(m.lines))
	copy(out, m.lines)
	return out
}

func (m *CartManager) Total() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return total(m.lines)
}

// Count is the number of units across all lines.
func (m *CartManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.lines {
		n += l.Quantity
	}
	return n
}

func (m *CartManager) IsEmpty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lines) == 0
}

func (m *CartManager) Summary() models.CartSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return summarize(m.lines)
}

func (m *CartManager) View() models.CartView {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := make([]models.CartLine, len(m.lines))
	copy(lines, m.lines)
	return models.CartView{Lines: lines, Summary: summarize(m.lines)}
}

func total(lines []models.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}

func summarize(lines []models.CartLine) models.CartSummary {
	subtotal := total(lines)
	tax := subtotal.Mul(taxRate).Round(2)
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return models.CartSummary{
		ItemCount: count,
		Subtotal:  subtotal,
		Shipping:  decimal.Zero,
		Tax:       tax,
		Total:     subtotal.Add(tax),
	}
}
