package runtime

import "github.com/es3vm/es3vm/internal/values"

// activeLabel is one entry on the label stack: the label text (empty
// for the implicit, unlabelled target every loop/switch also pushes)
// and the TargetID break/continue completions must carry to reach it.
type activeLabel struct {
	name   string
	target values.TargetID
	isLoop bool // false for a bare labelled non-loop statement (break only)
}

// LabelStack resolves a break/continue's optional label to the
// TargetID the enclosing loop or labelled statement was assigned,
// implementing ECMA-262 §12.12's label/target matching without needing
// the parser to pre-resolve targets (spec.md §4.4).
type LabelStack struct {
	labels []activeLabel
	next   values.TargetID
}

// NewLabelStack creates an empty label stack.
func NewLabelStack() *LabelStack { return &LabelStack{next: 1} }

// PushLoop enters a new loop or switch, returning the TargetID break
// and continue statements inside it (with no label, or with any label
// named here) should use. name is empty when the loop has no label.
func (ls *LabelStack) PushLoop(name string) values.TargetID {
	id := ls.next
	ls.next++
	ls.labels = append(ls.labels, activeLabel{name: name, target: id, isLoop: true})
	return id
}

// PushLabel enters a labelled non-loop statement (e.g. `outer: { ... }`),
// which only `break outer;` can target, never `continue outer;`.
func (ls *LabelStack) PushLabel(name string) values.TargetID {
	id := ls.next
	ls.next++
	ls.labels = append(ls.labels, activeLabel{name: name, target: id, isLoop: false})
	return id
}

// Pop leaves the innermost pushed loop/label.
func (ls *LabelStack) Pop() {
	if len(ls.labels) > 0 {
		ls.labels = ls.labels[:len(ls.labels)-1]
	}
}

// ResolveBreak finds the target for `break;` (label == "", innermost
// loop or switch) or `break label;`.
func (ls *LabelStack) ResolveBreak(label string) (values.TargetID, bool) {
	if label == "" {
		if len(ls.labels) == 0 {
			return 0, false
		}
		return ls.labels[len(ls.labels)-1].target, true
	}
	for i := len(ls.labels) - 1; i >= 0; i-- {
		if ls.labels[i].name == label {
			return ls.labels[i].target, true
		}
	}
	return 0, false
}

// ResolveContinue finds the target for `continue;`/`continue label;`:
// unlike break, it must land on a loop, so a labelled non-loop
// statement is skipped over when searching by label.
func (ls *LabelStack) ResolveContinue(label string) (values.TargetID, bool) {
	if label == "" {
		for i := len(ls.labels) - 1; i >= 0; i-- {
			if ls.labels[i].isLoop {
				return ls.labels[i].target, true
			}
		}
		return 0, false
	}
	for i := len(ls.labels) - 1; i >= 0; i-- {
		if ls.labels[i].name == label && ls.labels[i].isLoop {
			return ls.labels[i].target, true
		}
	}
	return 0, false
}
