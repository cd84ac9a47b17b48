// Package scene provides a name-addressable scene graph.
//
// Callers that animate objects resolve them by name every frame instead of
// keeping pointers, so objects may arrive late from asynchronous loads and
// may be replaced without leaving stale references behind.
package scene

// Graph is the root of a scene.
type Graph struct {
	root *Object
}

// New creates an empty scene graph.
func New() *Graph {
	return &Graph{root: NewObject("")}
}

// Add attaches an object at the top level.
func (g *Graph) Add(obj *Object) {
	g.root.Add(obj)
}

// Remove detaches a top-level object.
func (g *Graph) Remove(obj *Object) {
	g.root.Remove(obj)
}

// ObjectByName returns the first object with the given name, or nil.
// An empty name never matches.
func (g *Graph) ObjectByName(name string) *Object {
	if name == "" {
		return nil
	}
	for _, c := range g.root.children {
		if found := c.FindByName(name); found != nil {
			return found
		}
	}
	return nil
}

// Traverse visits every object in the graph, parents first.
func (g *Graph) Traverse(fn func(*Object)) {
	for _, c := range g.root.children {
		c.Traverse(fn)
	}
}

// Objects returns the top-level objects.
func (g *Graph) Objects() []*Object {
	return g.root.children
}

// Len returns the number of top-level objects.
func (g *Graph) Len() int {
	return len(g.root.children)
}
