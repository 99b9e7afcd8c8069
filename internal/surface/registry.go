package surface

// Registry maps block ids to their mounted rich texts
type Registry struct {
	surfaces map[string]*RichText
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{surfaces: make(map[string]*RichText)}
}

// Mount returns the rich text for blockID, creating it with text if needed.
// The bool is true when a new surface was created.
func (r *Registry) Mount(blockID, text string) (*RichText, bool) {
	if rt, ok := r.surfaces[blockID]; ok {
		return rt, false
	}
	rt := NewRichText(blockID, text)
	r.surfaces[blockID] = rt
	return rt, true
}

// Unmount forgets the rich text of blockID
func (r *Registry) Unmount(blockID string) {
	delete(r.surfaces, blockID)
}

// RichTextFor looks up the rich text of a block
func (r *Registry) RichTextFor(blockID string) (*RichText, bool) {
	rt, ok := r.surfaces[blockID]
	return rt, ok
}

// Len returns the number of mounted surfaces
func (r *Registry) Len() int {
	return len(r.surfaces)
}

// Retain unmounts every surface whose block id is not in keep
func (r *Registry) Retain(keep map[string]bool) {
	for id := range r.surfaces {
		if !keep[id] {
			delete(r.surfaces, id)
		}
	}
}
