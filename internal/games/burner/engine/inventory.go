package engine

// DefaultInventoryCapacity is the number of power-ups a player can bank.
const DefaultInventoryCapacity = 10

// Inventory is a bounded FIFO of banked power-ups.
type Inventory struct {
	items    []PowerUp
	capacity int
}

// NewInventory creates an empty inventory. Non-positive capacities fall back
// to DefaultInventoryCapacity.
func NewInventory(capacity int) *Inventory {
	if capacity <= 0 {
		capacity = DefaultInventoryCapacity
	}
	return &Inventory{
		items:    make([]PowerUp, 0, capacity),
		capacity: capacity,
	}
}

// Add banks p. Returns false, dropping p, when the inventory is full.
func (inv *Inventory) Add(p PowerUp) bool {
	if len(inv.items) >= inv.capacity {
		return false
	}
	inv.items = append(inv.items, p)
	return true
}

// Use removes and returns the oldest power-up.
func (inv *Inventory) Use() (PowerUp, bool) {
	if len(inv.items) == 0 {
		return 0, false
	}
	p := inv.items[0]
	inv.items = append(inv.items[:0], inv.items[1:]...)
	return p, true
}

// Peek returns the oldest power-up without removing it.
func (inv *Inventory) Peek() (PowerUp, bool) {
	if len(inv.items) == 0 {
		return 0, false
	}
	return inv.items[0], true
}

// Len returns the number of banked power-ups.
func (inv *Inventory) Len() int {
	return len(inv.items)
}

// Cap returns the inventory capacity.
func (inv *Inventory) Cap() int {
	return inv.capacity
}

// Full reports whether another power-up would be dropped.
func (inv *Inventory) Full() bool {
	return len(inv.items) >= inv.capacity
}

// Items returns a copy of the banked power-ups, oldest first.
func (inv *Inventory) Items() []PowerUp {
	out := make([]PowerUp, len(inv.items))
	copy(out, inv.items)
	return out
}

// Clear drops every banked power-up.
func (inv *Inventory) Clear() {
	inv.items = inv.items[:0]
}
