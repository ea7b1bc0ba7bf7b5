package obj

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type Action int

const (
	ActionNone Action = iota
	ActionPause
	ActionClear
	ActionToggleMerge
	ActionFaster
	ActionSlower
	ActionGravityUp
	ActionGravityDown
	ActionToggleTrails
	ActionToggleAudio
	ActionCopy
	ActionFit
	ActionResetCamera
	ActionNextScene
	ActionGrowRadius
	ActionShrinkRadius
	ActionQuit
)

type binding struct {
	keys   []ebiten.Key
	shift  bool
	action Action
}

// Order matters: shifted bindings are listed before their plain variants.
var bindings = []binding{
	{keys: []ebiten.Key{ebiten.KeySpace, ebiten.KeyP}, action: ActionPause},
	{keys: []ebiten.Key{ebiten.KeyR}, action: ActionClear},
	{keys: []ebiten.Key{ebiten.KeyM}, action: ActionToggleMerge},
	{keys: []ebiten.Key{ebiten.KeyEqual, ebiten.KeyNumpadAdd}, action: ActionFaster},
	{keys: []ebiten.Key{ebiten.KeyMinus, ebiten.KeyNumpadSubtract}, action: ActionSlower},
	{keys: []ebiten.Key{ebiten.KeyG}, shift: true, action: ActionGravityDown},
	{keys: []ebiten.Key{ebiten.KeyG}, action: ActionGravityUp},
	{keys: []ebiten.Key{ebiten.KeyT}, action: ActionToggleTrails},
	{keys: []ebiten.Key{ebiten.KeyV}, action: ActionToggleAudio},
	{keys: []ebiten.Key{ebiten.KeyC}, action: ActionCopy},
	{keys: []ebiten.Key{ebiten.KeyF}, action: ActionFit},
	{keys: []ebiten.Key{ebiten.KeyHome}, action: ActionResetCamera},
	{keys: []ebiten.Key{ebiten.KeyN}, action: ActionNextScene},
	{keys: []ebiten.Key{ebiten.KeyBracketRight}, action: ActionGrowRadius},
	{keys: []ebiten.Key{ebiten.KeyBracketLeft}, action: ActionShrinkRadius},
	{keys: []ebiten.Key{ebiten.KeyF12}, action: ActionQuit},
}

var sceneKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// Input is the per-frame snapshot of mouse and keyboard state.
type Input struct {
	// Screen and world cursor position.
	MouseX, MouseY           int
	MouseWorldX, MouseWorldY float64

	LeftPressed  bool
	LeftReleased bool
	// RightPressed cancels a pending spawn.
	RightPressed bool
	// Wheel is the vertical wheel delta this frame.
	Wheel float64
	// PanX/PanY is the screen-space pan requested this frame.
	PanX, PanY float64

	// Actions holds the keyboard actions triggered this frame in binding order.
	Actions []Action
	// Scene is the 0-based scene slot chosen with 1-9, or -1.
	Scene int

	camera   *Camera
	panSpeed float64
	dragging bool
	lastX    int
	lastY    int
}

func NewInput(camera *Camera, panSpeed float64) *Input {
	return &Input{camera: camera, panSpeed: panSpeed, Scene: -1}
}

func (i *Input) Has(a Action) bool {
	for _, got := range i.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Update polls ebiten. dt is the frame time in seconds.
func (i *Input) Update(dt float64) {
	i.Actions = i.Actions[:0]
	i.Scene = -1

	i.MouseX, i.MouseY = ebiten.CursorPosition()

	i.LeftPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	i.LeftReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	i.RightPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)
	_, i.Wheel = ebiten.Wheel()

	// drag with right or middle button to pan
	i.PanX, i.PanY = 0, 0
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		if i.dragging {
			i.PanX = float64(i.lastX - i.MouseX)
			i.PanY = float64(i.lastY - i.MouseY)
		}
		i.dragging = true
	} else {
		i.dragging = false
	}
	i.lastX, i.lastY = i.MouseX, i.MouseY

	step := i.panSpeed * dt
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		i.PanX -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		i.PanX += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		i.PanY -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		i.PanY += step
	}

	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	seen := map[ebiten.Key]bool{}
	for _, b := range bindings {
		if b.shift && !shift {
			continue
		}
		for _, k := range b.keys {
			if seen[k] || !inpututil.IsKeyJustPressed(k) {
				continue
			}
			seen[k] = true
			i.Actions = append(i.Actions, b.action)
			break
		}
	}

	for slot, k := range sceneKeys {
		if inpututil.IsKeyJustPressed(k) {
			i.Scene = slot
			break
		}
	}
}

// UpdateWorld refreshes the world-space cursor after the camera moved.
func (i *Input) UpdateWorld() {
	i.MouseWorldX, i.MouseWorldY = i.camera.ScreenToWorld(float64(i.MouseX), float64(i.MouseY))
}
