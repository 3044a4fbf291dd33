package record

// Node is one entry of a describe tree.
type Node struct {
	Name     string `json:"name" toml:"name"`
	Type     string `json:"type" toml:"type"`
	Value    string `json:"value,omitempty" toml:"value,omitempty"`
	Children []Node `json:"children,omitempty" toml:"children,omitempty"`
}

// Child returns the direct child with the given name.
func (n Node) Child(name string) (Node, bool) {
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}
	return Node{}, false
}
