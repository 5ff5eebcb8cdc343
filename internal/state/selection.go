package state

// Direction is a navigation move.
type Direction int

const (
	RepoUp Direction = iota
	RepoDown
	RunLeft
	RunRight
)

// Shape describes the current data shape the selection must stay valid
// against: the repository count and each repository's run count.
type Shape interface {
	Len() int
	RunCount(i int) int
}

// Selection tracks the highlighted repository and run. Both indices are
// always valid against the shape they were last reconciled with, or (0,0)
// when the relevant sequence is empty.
type Selection struct {
	Repo int
	Run  int
}

// Move shifts the selection one step, saturating at bounds. Moving across
// repositories re-clamps the run index against the new repository.
func (sel *Selection) Move(dir Direction, shape Shape) {
	n := shape.Len()
	if n == 0 {
		return
	}
	switch dir {
	case RepoUp:
		if sel.Repo > 0 {
			sel.Repo--
		}
	case RepoDown:
		if sel.Repo < n-1 {
			sel.Repo++
		}
	case RunLeft:
		if sel.Run > 0 {
			sel.Run--
		}
	case RunRight:
		if sel.Run < shape.RunCount(sel.Repo)-1 {
			sel.Run++
		}
	}
	sel.clampRun(shape)
}

// Reconcile re-validates the selection after a shape change. Called after
// every store mutation, before the next render. Idempotent.
func (sel *Selection) Reconcile(shape Shape) {
	n := shape.Len()
	if n == 0 {
		sel.Repo, sel.Run = 0, 0
		return
	}
	if sel.Repo >= n {
		sel.Repo = n - 1
	}
	if sel.Repo < 0 {
		sel.Repo = 0
	}
	sel.clampRun(shape)
}

func (sel *Selection) clampRun(shape Shape) {
	runs := shape.RunCount(sel.Repo)
	if runs == 0 {
		sel.Run = 0
		return
	}
	if sel.Run >= runs {
		sel.Run = runs - 1
	}
	if sel.Run < 0 {
		sel.Run = 0
	}
}
