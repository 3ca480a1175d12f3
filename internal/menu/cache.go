package menu

import (
	"container/list"
	"context"
	"sync"
)

// DefaultBudget bounds how many loaded menus the cache keeps alive at once.
const DefaultBudget = 32

// Cache memoizes loaded menus per node and reclaims the least recently used
// ones once the budget is exceeded. Reclaiming a node also reclaims the menus
// of its descendants, since a rebuilt parent menu carries fresh child nodes
// and the old subtree would be unreachable.
type Cache struct {
	mu     sync.Mutex
	budget int
	order  *list.List
	elems  map[*Node]*list.Element
}

// NewCache builds a cache with the given budget. Budgets below one fall back
// to DefaultBudget.
func NewCache(budget int) *Cache {
	if budget < 1 {
		budget = DefaultBudget
	}
	return &Cache{
		budget: budget,
		order:  list.New(),
		elems:  make(map[*Node]*list.Element),
	}
}

// Activate returns the node's menu, loading it on first use. The second
// return value reports whether the menu came from cache. The same node
// returns the identical *Menu until the cache reclaims it.
func (c *Cache) Activate(ctx context.Context, mc Context, node *Node) (*Menu, bool, error) {
	c.mu.Lock()
	if node.slot != nil {
		c.touch(node)
		m := node.slot
		c.mu.Unlock()
		return m, true, nil
	}
	c.mu.Unlock()

	m, err := node.load(ctx, mc)
	if err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// A concurrent activation may have filled the slot; keep the first menu
	// so callers observe a single identity.
	if node.slot != nil {
		c.touch(node)
		return node.slot, true, nil
	}
	node.slot = m
	c.elems[node] = c.order.PushFront(node)
	c.evictOver()
	return m, false, nil
}

// Cached reports whether the node's menu is currently held.
func (c *Cache) Cached(node *Node) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return node.slot != nil
}

// Len returns the number of menus currently held.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Evict drops the node's menu and those of all its descendants. The next
// activation rebuilds from the registry.
func (c *Cache) Evict(node *Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evict(node)
}

func (c *Cache) touch(node *Node) {
	if elem, ok := c.elems[node]; ok {
		c.order.MoveToFront(elem)
	}
}

func (c *Cache) evictOver() {
	for c.order.Len() > c.budget {
		oldest := c.order.Back()
		if oldest == nil {
			return
		}
		c.evict(oldest.Value.(*Node))
	}
}

func (c *Cache) evict(node *Node) {
	if node.slot == nil {
		return
	}
	for _, item := range node.slot.Items {
		if item.Node != nil {
			c.evict(item.Node)
		}
	}
	node.slot = nil
	if elem, ok := c.elems[node]; ok {
		c.order.Remove(elem)
		delete(c.elems, node)
	}
}
