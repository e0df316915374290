package refs

// Registry maps record indices to the live values rebuilt from them during
// deserialization. A shell is reserved before its children are resolved, so
// a child that points back at an ancestor resolves to the ancestor itself.
type Registry struct {
	live map[int]any
}

func NewRegistry() *Registry {
	return &Registry{live: make(map[int]any)}
}

// Reserve registers shell as the value of record index.
func (r *Registry) Reserve(index int, shell any) {
	r.live[index] = shell
}

// Resolve returns the value registered for index.
func (r *Registry) Resolve(index int) (any, bool) {
	v, ok := r.live[index]
	return v, ok
}

func (r *Registry) Len() int { return len(r.live) }
