package viewmodel

// Info is a serializable snapshot of a subtree.
type Info struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	State    string `json:"state"`
	Path     string `json:"path"`
	Live     bool   `json:"live"`
	Children []Info `json:"children,omitempty"`
}

// Describe snapshots vm and its descendants.
func Describe(vm ViewModel) Info {
	n := vm.viewNode()
	info := Info{
		ID:    n.id,
		Name:  n.name,
		State: n.state.String(),
		Path:  n.Path().String(),
		Live:  n.Live(),
	}
	for _, c := range n.children {
		info.Children = append(info.Children, Describe(c))
	}
	return info
}
