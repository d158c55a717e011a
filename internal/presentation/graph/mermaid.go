package graph

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/espalier/pkg/automaton"
	"github.com/aretw0/espalier/pkg/matcher"
)

// GenerateMermaid produces a Mermaid flowchart syntax string from an
// automaton record.
// It applies semantic styling:
// - Initial: ((Circle))
// - Accepting: (((Double circle))), labeled with its pattern when known
// - Default: [Rectangle]
// Success edges are solid and labeled with their symbols. Failure links are
// dotted and unlabeled; links back to the initial state are omitted to keep
// large diagrams readable.
func GenerateMermaid(rec *matcher.Record) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	if rec == nil || rec.Automaton == nil || rec.Automaton.States == nil {
		return sb.String()
	}
	auto := rec.Automaton
	numStates := int(*auto.States) + 1

	symbols := slices.Clone(auto.Alphabet)
	slices.Sort(symbols)

	accepting := make(map[automaton.State]bool, len(auto.AcceptingStates))
	for _, s := range auto.AcceptingStates {
		accepting[s] = true
	}

	initial := automaton.State(0)
	if auto.InitialState != nil {
		initial = *auto.InitialState
	}

	for i := 0; i < numStates; i++ {
		state := automaton.State(i)

		pattern := rec.PatternMap[state]
		if pattern == "" && accepting[state] {
			pattern = rec.Pattern
		}
		sb.WriteString(nodeLine(state, state == initial, accepting[state], pattern))

		key := strconv.Itoa(i)
		row := auto.Transitions[key]
		kinds := auto.TransitionKinds[key]

		// Group parallel success edges into one labeled arrow per target.
		grouped := make(map[automaton.State][]string)
		for _, sym := range symbols {
			to, ok := row[sym]
			if !ok || kinds[sym] != automaton.Success {
				continue
			}
			grouped[to] = append(grouped[to], sym)
		}
		for _, to := range sortedTargets(grouped) {
			// Escape double quotes for Mermaid labels
			label := strings.ReplaceAll(strings.Join(grouped[to], ","), "\"", "'")
			sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", stateID(state), label, stateID(to)))
		}

		if i > 0 && i-1 < len(rec.FailFunctions) {
			if target := rec.FailFunctions[i-1]; target != initial {
				sb.WriteString(fmt.Sprintf("    %s -.-> %s\n", stateID(state), stateID(target)))
			}
		}
	}

	if len(auto.AcceptingStates) > 0 {
		sb.WriteString("\n    %% Accepting Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef accepting fill:#dcfce7,stroke:#166534,stroke-width:2px,color:#000;\n")
		for _, s := range auto.AcceptingStates {
			sb.WriteString(fmt.Sprintf("    class %s accepting;\n", stateID(s)))
		}
	}

	return sb.String()
}

func nodeLine(s automaton.State, initial, accepting bool, pattern string) string {
	label := strconv.Itoa(int(s))
	opener, closer := "[", "]"

	switch {
	case accepting:
		opener, closer = "(((", ")))" // Double circle
		if pattern != "" {
			label = fmt.Sprintf("%d: %s", s, strings.ReplaceAll(pattern, "\"", "'"))
		}
	case initial:
		opener, closer = "((", "))" // Circle
	}

	return fmt.Sprintf("    %s%s\"%s\"%s\n", stateID(s), opener, label, closer)
}

func sortedTargets(grouped map[automaton.State][]string) []automaton.State {
	targets := make([]automaton.State, 0, len(grouped))
	for t := range grouped {
		targets = append(targets, t)
	}
	slices.Sort(targets)
	return targets
}

func stateID(s automaton.State) string {
	return "s" + strconv.Itoa(int(s))
}
