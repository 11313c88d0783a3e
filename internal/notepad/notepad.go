// Package notepad builds copyable scene metadata text. Users paste the
// output into an external AI coding tool; nothing here talks to one.
package notepad

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/sceneforge/sceneforge/internal/scene"
)

// Notepad accumulates a working text buffer of object references and
// coordinates alongside one-shot context generation.
type Notepad struct {
	mu   sync.Mutex
	text string
}

func New() *Notepad {
	return &Notepad{}
}

// AppendObjectRef appends "[name]" to the buffer, falling back to the
// id when the object is unnamed.
func (n *Notepad) AppendObjectRef(obj scene.Object) {
	name := objectName(obj)
	n.appendToken("[" + name + "]")
}

// AppendCoordinates appends an "(x, y)" token rounded to whole pixels.
func (n *Notepad) AppendCoordinates(x, y float64) {
	n.appendToken(fmt.Sprintf("(%d, %d)", round(x), round(y)))
}

// AppendGroup appends a one-line group summary with its member count
// and snapshot bounds.
func (n *Notepad) AppendGroup(g scene.Group) {
	n.appendToken(fmt.Sprintf("[group %s: %d objects at (%d, %d) %dx%d]",
		g.Name, len(g.ObjectIDs),
		round(g.Bounds.X), round(g.Bounds.Y),
		round(g.Bounds.Width), round(g.Bounds.Height)))
}

func (n *Notepad) appendToken(token string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.text == "" {
		n.text = token
		return
	}
	n.text += " " + token
}

func (n *Notepad) Text() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.text
}

func (n *Notepad) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.text = ""
}

// SceneContext renders the full scene inventory as paste-ready text:
// object counts, then one line per placed asset and shape with rounded
// position and size.
func SceneContext(snap scene.Snapshot, selectedID string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "SCENE CONTEXT\n\n")
	fmt.Fprintf(&b, "Overview:\n")
	fmt.Fprintf(&b, "- Total objects: %d\n", len(snap.CanvasAssets)+len(snap.Shapes))
	fmt.Fprintf(&b, "- Assets: %d\n", len(snap.CanvasAssets))
	fmt.Fprintf(&b, "- Shapes: %d\n", len(snap.Shapes))
	if selectedID == "" {
		selectedID = "none"
	}
	fmt.Fprintf(&b, "- Selected: %s\n", selectedID)

	b.WriteString("\nCanvas assets:\n")
	if len(snap.CanvasAssets) == 0 {
		b.WriteString("(no assets)\n")
	}
	for _, a := range snap.CanvasAssets {
		name := a.Name
		if name == "" {
			name = a.ID
		}
		fmt.Fprintf(&b, "- %s at (%d, %d) size %dx%d\n",
			name, round(a.X), round(a.Y), round(a.Width), round(a.Height))
	}

	b.WriteString("\nShapes:\n")
	if len(snap.Shapes) == 0 {
		b.WriteString("(no shapes)\n")
	}
	for _, s := range snap.Shapes {
		name := s.Name
		if name == "" {
			name = s.ID
		}
		fmt.Fprintf(&b, "- %s (%s %s) at (%d, %d) size %dx%d\n",
			name, s.Class, s.Geometry, round(s.X), round(s.Y), round(s.Width), round(s.Height))
	}

	b.WriteString("\nThe canvas coordinate system places (0,0) at the top-left.\n")

	return b.String()
}

func objectName(obj scene.Object) string {
	switch o := obj.(type) {
	case scene.Asset:
		if o.Name != "" {
			return o.Name
		}
	case scene.Shape:
		if o.Name != "" {
			return o.Name
		}
	}
	return obj.ObjectID()
}

func round(v float64) int {
	return int(math.Round(v))
}
