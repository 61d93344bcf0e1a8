//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var keyMap = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyEnter, KeyEnter},
	{ebiten.KeyEscape, KeyEscape},
	{ebiten.KeyBackspace, KeyBackspace},
	{ebiten.KeyTab, KeyTab},
}

func (k *hostKeyboard) poll() {
	for _, r := range ebiten.AppendInputChars(nil) {
		if r == ' ' {
			k.push(KeyEvent{Code: KeySpace, Press: true, Rune: r})
			continue
		}
		k.push(KeyEvent{Press: true, Rune: r})
	}

	for _, m := range keyMap {
		if inpututil.IsKeyJustPressed(m.key) {
			k.push(KeyEvent{Code: m.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(m.key) {
			k.push(KeyEvent{Code: m.code, Press: false})
		}
	}
}

func (p *hostPointer) poll() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		p.down = true
		p.push(PointerEvent{X: x, Y: y, Press: true})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && p.down {
		x, y := ebiten.CursorPosition()
		p.down = false
		p.push(PointerEvent{X: x, Y: y, Press: false})
	}

	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		p.push(PointerEvent{X: x, Y: y, Press: true})
	}
	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		p.push(PointerEvent{X: x, Y: y, Press: false})
	}
}
