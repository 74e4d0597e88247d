package memory

// table keeps rows by id and remembers the order ids were first inserted in.
type table[T any] struct {
	rows map[string]T
	keys []string
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[string]T)}
}

func (t *table[T]) get(id string) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) has(id string) bool {
	_, ok := t.rows[id]
	return ok
}

func (t *table[T]) put(id string, row T) {
	if _, ok := t.rows[id]; !ok {
		t.keys = append(t.keys, id)
	}
	t.rows[id] = row
}

func (t *table[T]) len() int {
	return len(t.keys)
}

// all returns rows in insertion order.
func (t *table[T]) all() []T {
	out := make([]T, 0, len(t.keys))
	for _, id := range t.keys {
		out = append(out, t.rows[id])
	}
	return out
}

func (t *table[T]) clear() {
	t.rows = make(map[string]T)
	t.keys = nil
}

// merge overlays staged rows on committed ones: committed ids keep their
// position, newly staged ids follow in the order they were staged.
func merge[T any](committed, staged *table[T]) []T {
	out := make([]T, 0, committed.len()+staged.len())
	for _, id := range committed.keys {
		if row, ok := staged.get(id); ok {
			out = append(out, row)
			continue
		}
		out = append(out, committed.rows[id])
	}
	for _, id := range staged.keys {
		if !committed.has(id) {
			out = append(out, staged.rows[id])
		}
	}
	return out
}
