package scoreboard

import (
	"fmt"
	"image/color"

	"tally/model"
	"tally/ui"
)

// Button IDs, also the action names accepted by `tally headless --press`.
const (
	ActionIncrement = "increment"
	ActionStart     = "start"
	ActionStop      = "stop"
	ActionReset     = "reset"
)

// Shortcuts maps each action to its keyboard rune.
var Shortcuts = map[string]rune{
	ActionIncrement: '+',
	ActionStart:     's',
	ActionStop:      'x',
	ActionReset:     'r',
}

var (
	colorBackground = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	colorText       = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
	colorWhite      = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	colorBlue       = color.RGBA{R: 0x00, G: 0x7A, B: 0xFF, A: 0xFF}
	colorGreen      = color.RGBA{R: 0x34, G: 0xC7, B: 0x59, A: 0xFF}
	colorPurple     = color.RGBA{R: 0xAF, G: 0x52, B: 0xDE, A: 0xFF}
	colorRed        = color.RGBA{R: 0xFF, G: 0x3B, B: 0x30, A: 0xFF}
)

const (
	scaleBody       = 1
	scaleLargeTitle = 2
	scaleCounter    = 4
)

// body builds the composite view for the current state.
func (t *Task) body() ui.Node {
	return ui.VStack{
		Spacing: 8,
		Children: []ui.Node{
			ui.Spacer{},
			ui.Text{
				Value: fmt.Sprintf("Your score is %d", t.progress.Score()),
				Style: ui.TextStyle{Scale: scaleBody, Color: colorText},
			},
			ui.Outline{
				Color:  colorBlue,
				Radius: 20,
				Width:  2,
				Child:  ui.Padding{Insets: ui.All(16), Child: innerView(t.progress)},
			},
			ui.Spacer{},
			ui.Text{
				Value: fmt.Sprintf("%d", t.stopwatch.Elapsed()),
				Style: ui.TextStyle{Scale: scaleCounter, Color: colorText},
			},
			ui.HStack{
				Spacing: 8,
				Children: []ui.Node{
					t.action(ActionStart, buttonLook("Start", colorGreen), t.start),
					t.action(ActionStop, buttonLook("Stop", colorPurple), t.stopwatch.Stop),
					t.action(ActionReset, buttonLook("Reset", colorRed), t.stopwatch.Reset),
				},
			},
			ui.Spacer{},
		},
	}
}

// innerView reads the score holder it is handed; it does not own it.
func innerView(progress *model.ScoreCounter) ui.Node {
	return ui.Button{
		ID:    ActionIncrement,
		Label: "Increase Score",
		Style: ui.ButtonStyle{
			Text:       ui.TextStyle{Scale: scaleBody, Color: colorBlue},
			Padding:    ui.Symmetric(4, 2),
			Radius:     4,
			FocusColor: colorBlue,
		},
		OnPress: progress.Increment,
	}
}

// buttonLook is the large white-on-color label used by the stopwatch controls.
func buttonLook(title string, bg color.RGBA) ui.Button {
	return ui.Button{
		Label: title,
		Style: ui.ButtonStyle{
			Text:       ui.TextStyle{Scale: scaleLargeTitle, Color: colorWhite},
			Background: bg,
			Padding:    ui.Symmetric(10, 5),
			Radius:     8,
			FocusColor: colorText,
		},
	}
}

func (t *Task) action(id string, b ui.Button, fn func()) ui.Button {
	b.ID = id
	b.OnPress = fn
	return b
}
