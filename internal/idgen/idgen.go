// Package idgen hands out monotonically increasing signal identifiers.
// A Generator is process-local and single-writer: the whole compile
// pipeline runs on one goroutine, so no locking is used, mirroring the
// upstream Rust IdGenerator (original_source/vm/src/id_generator.rs), which
// is a plain Rc<RefCell<..>> counter rather than an atomic.
package idgen

// Generator hands out sequential ids starting at 0.
type Generator struct {
	next uint64
}

// New returns a Generator whose first Gen() call returns 0.
func New() *Generator {
	return &Generator{}
}

// Gen returns the next id and advances the counter.
func (g *Generator) Gen() uint64 {
	id := g.next
	g.next++
	return id
}
