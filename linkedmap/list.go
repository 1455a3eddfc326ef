package linkedmap

// header tracks the oldest node. It is embedded in the map and valid from
// construction: first == nilIdx means the list is empty.
type header struct {
	first int
	// oldest caches the insertion time of first (0 while empty).
	oldest int64
}

// -------------------- list surgery --------------------
//
// All helpers keep the header, tail and read cursor consistent with the
// links in the same call, and bump gen so outstanding Cursors go stale.

// attach appends node i at the tail in O(1).
func (m *Map[K, V]) attach(i int) {
	n := m.nodes.at(i)
	n.next = nilIdx
	if m.tail == nilIdx {
		n.prev = nilIdx
		m.head.first = i
		m.head.oldest = n.at
	} else {
		m.nodes.at(m.tail).next = i
		n.prev = m.tail
	}
	m.tail = i

	// An exhausted read cursor picks up the new entry.
	if m.cur == nilIdx {
		m.cur = i
	}
	m.gen++
}

// detachFirst unlinks the head node and refreshes the oldest-time watermark.
func (m *Map[K, V]) detachFirst() {
	i := m.head.first
	if i == nilIdx {
		return
	}
	n := m.nodes.at(i)
	if m.cur == i {
		m.cur = n.next
	}

	m.head.first = n.next
	if n.next != nilIdx {
		next := m.nodes.at(n.next)
		next.prev = nilIdx
		m.head.oldest = next.at
	} else {
		m.head.oldest = 0
		m.tail = nilIdx
		m.cur = nilIdx
	}
	n.prev, n.next = nilIdx, nilIdx
	m.gen++
}

// detach unlinks node i from an arbitrary position in O(1).
func (m *Map[K, V]) detach(i int) {
	if i == m.head.first {
		m.detachFirst()
		return
	}
	// i is not the head, so it has a predecessor.
	n := m.nodes.at(i)
	m.nodes.at(n.prev).next = n.next
	if n.next != nilIdx {
		m.nodes.at(n.next).prev = n.prev
	} else {
		m.tail = n.prev
	}
	if m.cur == i {
		m.cur = n.next
	}
	n.prev, n.next = nilIdx, nilIdx
	m.gen++
}
