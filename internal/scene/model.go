package scene

import "math"

// Kind discriminates the two object families sharing the canvas id space.
type Kind string

const (
	KindAsset Kind = "asset"
	KindShape Kind = "shape"
)

// Geometry is the drawable form of a shape.
type Geometry string

const (
	GeometryRectangle Geometry = "rectangle"
	GeometryCircle    Geometry = "circle"
)

// Class is the game-logic category of a shape. It controls visual style
// only; no collision detection happens in the editor.
type Class string

const (
	ClassBoundary  Class = "boundary"
	ClassHitbox    Class = "hitbox"
	ClassTrigger   Class = "trigger"
	ClassCollision Class = "collision"
)

// ValidClass reports whether c is one of the known shape classes.
func ValidClass(c Class) bool {
	switch c {
	case ClassBoundary, ClassHitbox, ClassTrigger, ClassCollision:
		return true
	}
	return false
}

// Minimum committed dimensions after any transform.
const (
	MinAssetSize = 10
	MinShapeSize = 5
)

// Asset is a placed image or audio clip.
type Asset struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Src      string  `json:"src"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
	Locked   bool    `json:"locked"`
	IsAudio  bool    `json:"isAudio"`
	Folder   string  `json:"folder,omitempty"`
	MimeType string  `json:"type,omitempty"`
	Size     int64   `json:"size,omitempty"`
}

func (a Asset) ObjectID() string { return a.ID }
func (a Asset) Kind() Kind       { return KindAsset }
func (a Asset) IsLocked() bool   { return a.Locked }

func (a Asset) Bounds() Rect {
	return Rect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height}
}

// Shape is a geometric annotation region drawn by the user.
// For circles, Radius is authoritative and Width == Height == 2*Radius.
type Shape struct {
	ID       string   `json:"id"`
	Geometry Geometry `json:"type"`
	Class    Class    `json:"shapeType"`
	Name     string   `json:"name,omitempty"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Radius   float64  `json:"radius,omitempty"`
	Rotation float64  `json:"rotation,omitempty"`
	Locked   bool     `json:"locked"`
	Preview  bool     `json:"isPreview,omitempty"`
}

func (s Shape) ObjectID() string { return s.ID }
func (s Shape) Kind() Kind       { return KindShape }
func (s Shape) IsLocked() bool   { return s.Locked }

func (s Shape) Bounds() Rect {
	return Rect{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

// Object is the canvas-facing view shared by assets and shapes. Behavior
// that branches on the concrete family switches on Kind.
type Object interface {
	ObjectID() string
	Kind() Kind
	IsLocked() bool
	Bounds() Rect
}

// Rect is an axis-aligned bounding box in logical canvas coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains checks if a point is inside the rect.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersects reports whether two rects overlap. Edge-touching rects do
// not count as overlapping.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}

	minX := math.Min(r.X, other.X)
	minY := math.Min(r.Y, other.Y)
	maxX := math.Max(r.X+r.Width, other.X+other.Width)
	maxY := math.Max(r.Y+r.Height, other.Y+other.Height)

	return Rect{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Center returns the center point of the rect.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}
