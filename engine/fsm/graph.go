package fsm

import "fmt"

// resetGraph drops the loaded graph and any active state
func (m *Machine[T]) resetGraph() {
	m.nodes = make(map[StateID]*Node[T])
	m.byName = make(map[string]StateID)
	m.initial = StateNone
	m.active = StateNone
	m.path = m.path[:0]
}

func (m *Machine[T]) addNode(id StateID, name string, parent StateID) *Node[T] {
	n := &Node[T]{ID: id, Name: name, ParentID: parent}
	m.nodes[id] = n
	m.byName[name] = id
	return n
}

// linkPaths fills Node.Path for every node, failing on dangling parents or cycles
func (m *Machine[T]) linkPaths() error {
	done := make(map[StateID]bool, len(m.nodes))
	visiting := make(map[StateID]bool)

	var resolve func(n *Node[T]) error
	resolve = func(n *Node[T]) error {
		if done[n.ID] {
			return nil
		}
		if visiting[n.ID] {
			return fmt.Errorf("state '%s' is part of a parent cycle", n.Name)
		}
		if n.ParentID == StateNone {
			n.Path = []StateID{n.ID}
			done[n.ID] = true
			return nil
		}

		parent, ok := m.nodes[n.ParentID]
		if !ok {
			return fmt.Errorf("state '%s' has missing parent %d", n.Name, n.ParentID)
		}
		visiting[n.ID] = true
		if err := resolve(parent); err != nil {
			return err
		}
		delete(visiting, n.ID)

		n.Path = append(append(make([]StateID, 0, len(parent.Path)+1), parent.Path...), n.ID)
		done[n.ID] = true
		return nil
	}

	for _, n := range m.nodes {
		if err := resolve(n); err != nil {
			return err
		}
	}
	return nil
}

// GetStateID resolves a state name to ID
func (m *Machine[T]) GetStateID(name string) (StateID, bool) {
	id, ok := m.byName[name]
	return id, ok
}

// StateName returns the name of id, empty when unknown
func (m *Machine[T]) StateName(id StateID) string {
	if n, ok := m.nodes[id]; ok {
		return n.Name
	}
	return ""
}
