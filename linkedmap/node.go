package linkedmap

// nilIdx marks the absence of a node in links, the header and cursors.
const nilIdx = -1

const (
	pageShift = 6
	pageSize  = 1 << pageShift
	pageMask  = pageSize - 1
)

// node is one entry of the insertion-ordered list. Links are arena slot
// indices, not pointers; the map's index stores the same slot index.
type node[K comparable, V any] struct {
	key K
	val V

	// Insertion timestamp in nanoseconds from the map's Clock.
	at int64

	// Insertion-order links: prev is older, next is newer.
	// While the slot is free, next threads the free list.
	prev int
	next int
}

// arena owns every node of a map. Nodes are allocated in fixed-size pages so
// that a node's address is stable until the slot is released.
type arena[K comparable, V any] struct {
	pages  []*[pageSize]node[K, V]
	unused int // first slot never handed out
	free   int // head of the free list (nilIdx = empty)
	live   int
}

func newArena[K comparable, V any]() arena[K, V] {
	return arena[K, V]{free: nilIdx}
}

// alloc returns a slot for a new node, preferring reclaimed slots.
// The returned node is zeroed with both links set to nilIdx.
func (a *arena[K, V]) alloc() int {
	var i int
	if a.free != nilIdx {
		i = a.free
		a.free = a.at(i).next
	} else {
		i = a.unused
		if i>>pageShift == len(a.pages) {
			a.pages = append(a.pages, new([pageSize]node[K, V]))
		}
		a.unused++
	}
	n := a.at(i)
	n.prev, n.next = nilIdx, nilIdx
	a.live++
	return i
}

// at returns the node stored in slot i.
func (a *arena[K, V]) at(i int) *node[K, V] {
	return &a.pages[i>>pageShift][i&pageMask]
}

// release zeroes slot i and pushes it onto the free list.
// The caller must have unlinked the node from the list and the index.
func (a *arena[K, V]) release(i int) {
	n := a.at(i)
	*n = node[K, V]{prev: nilIdx, next: a.free}
	a.free = i
	a.live--
}
