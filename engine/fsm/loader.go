package fsm

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	rootStateName   = "Root"
	tickTriggerName = "Tick"
)

// LoadConfig parses a YAML graph and replaces the machine's graph with it
// Every state, guard, action and trigger reference is checked here so a loaded graph cannot fail at runtime
func (m *Machine[T]) LoadConfig(data []byte) error {
	var cfg RootConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to unmarshal FSM config: %w", err)
	}
	return m.LoadRootConfig(&cfg)
}

// LoadRootConfig builds the graph from an already decoded config
func (m *Machine[T]) LoadRootConfig(cfg *RootConfig) error {
	m.resetGraph()

	// Root gets ID 1, the rest follow in name order so IDs are stable across loads
	names := make([]string, 0, len(cfg.States))
	for name := range cfg.States {
		if name != rootStateName {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	ids := map[string]StateID{rootStateName: StateRoot}
	for i, name := range names {
		ids[name] = StateRoot + 1 + StateID(i)
	}

	for _, name := range append([]string{rootStateName}, names...) {
		sc := cfg.States[name]
		if sc == nil {
			sc = &StateConfig{}
		}

		parent := StateNone
		if name != rootStateName {
			pName := sc.Parent
			if pName == "" {
				pName = rootStateName
			}
			var ok bool
			if parent, ok = ids[pName]; !ok {
				return fmt.Errorf("state '%s' references unknown parent '%s'", name, pName)
			}
		}
		node := m.addNode(ids[name], name, parent)

		if err := m.compileNode(node, sc, ids); err != nil {
			return fmt.Errorf("state '%s' %w", name, err)
		}
	}

	if err := m.linkPaths(); err != nil {
		return err
	}

	if cfg.InitialState == "" {
		return fmt.Errorf("initial state not set")
	}
	initial, ok := ids[cfg.InitialState]
	if !ok {
		return fmt.Errorf("initial state '%s' not found", cfg.InitialState)
	}
	m.initial = initial
	return nil
}

func (m *Machine[T]) compileNode(node *Node[T], sc *StateConfig, ids map[string]StateID) error {
	var err error
	if node.OnEnter, err = m.compileActions(sc.OnEnter); err != nil {
		return fmt.Errorf("on_enter: %w", err)
	}
	if node.OnUpdate, err = m.compileActions(sc.OnUpdate); err != nil {
		return fmt.Errorf("on_update: %w", err)
	}
	if node.OnExit, err = m.compileActions(sc.OnExit); err != nil {
		return fmt.Errorf("on_exit: %w", err)
	}

	for _, tc := range sc.Transitions {
		t, err := m.compileTransition(tc, ids)
		if err != nil {
			return fmt.Errorf("transitions: %w", err)
		}
		node.Transitions = append(node.Transitions, t)
	}
	return nil
}

func (m *Machine[T]) compileTransition(tc TransitionConfig, ids map[string]StateID) (Transition[T], error) {
	t := Transition[T]{Trigger: TriggerTick}

	var ok bool
	if t.TargetID, ok = ids[tc.Target]; !ok {
		return t, fmt.Errorf("transition references unknown target '%s'", tc.Target)
	}

	if tc.Trigger != tickTriggerName {
		if t.Trigger, ok = m.reg.triggers[tc.Trigger]; !ok {
			return t, fmt.Errorf("unknown trigger '%s'", tc.Trigger)
		}
	}

	if tc.Guard != "" {
		if t.Guard, ok = m.reg.guards[tc.Guard]; !ok {
			return t, fmt.Errorf("unknown guard '%s'", tc.Guard)
		}
	}

	actions, err := m.compileActions(tc.Actions)
	if err != nil {
		return t, fmt.Errorf("transition to '%s': %w", tc.Target, err)
	}
	t.Actions = actions
	return t, nil
}

func (m *Machine[T]) compileActions(configs []ActionConfig) ([]Action[T], error) {
	actions := make([]Action[T], 0, len(configs))
	for _, ac := range configs {
		fn, ok := m.reg.actions[ac.Action]
		if !ok {
			return nil, fmt.Errorf("unknown action function '%s'", ac.Action)
		}

		var args any
		compile, hasCompiler := m.reg.compilers[ac.Action]
		switch {
		case hasCompiler:
			compiled, err := compile(ac.Args)
			if err != nil {
				return nil, fmt.Errorf("action '%s': %w", ac.Action, err)
			}
			args = compiled
		case len(ac.Args) > 0:
			return nil, fmt.Errorf("action '%s' takes no args", ac.Action)
		}

		actions = append(actions, Action[T]{Name: ac.Action, Func: fn, Args: args})
	}
	return actions, nil
}
