package shell

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// actionButton is a tappable label whose fill, border and text colors come
// from the timer theme rather than the fyne theme.
type actionButton struct {
	widget.BaseWidget
	label    *canvas.Text
	fill     *canvas.Rectangle
	onTapped func()
}

var (
	_ fyne.Tappable      = (*actionButton)(nil)
	_ desktop.Cursorable = (*actionButton)(nil)
)

func newActionButton(text string, onTapped func()) *actionButton {
	label := canvas.NewText(text, color.Black)
	label.Alignment = fyne.TextAlignCenter
	label.TextStyle = fyne.TextStyle{Bold: true}
	label.TextSize = 18

	fill := canvas.NewRectangle(color.White)
	fill.StrokeColor = color.Black
	fill.StrokeWidth = 2
	fill.CornerRadius = 10

	button := &actionButton{label: label, fill: fill, onTapped: onTapped}
	button.ExtendBaseWidget(button)
	return button
}

func (button *actionButton) CreateRenderer() fyne.WidgetRenderer {
	padded := container.New(&buttonPaddingLayout{}, button.label)
	return widget.NewSimpleRenderer(container.NewStack(button.fill, padded))
}

func (button *actionButton) Tapped(*fyne.PointEvent) {
	if button.onTapped != nil {
		button.onTapped()
	}
}

func (button *actionButton) Cursor() desktop.Cursor {
	return desktop.PointerCursor
}

// SetText changes the label.
func (button *actionButton) SetText(text string) {
	button.label.Text = text
	button.label.Refresh()
}

// Text returns the label.
func (button *actionButton) Text() string {
	return button.label.Text
}

// SetColors restyles the button.
func (button *actionButton) SetColors(fill, border, font color.Color) {
	button.fill.FillColor = fill
	button.fill.StrokeColor = border
	button.label.Color = font
	button.fill.Refresh()
	button.label.Refresh()
}

type buttonPaddingLayout struct{}

const (
	buttonPadX = float32(22)
	buttonPadY = float32(10)
)

func (layout *buttonPaddingLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, object := range objects {
		object.Move(fyne.NewPos(buttonPadX, buttonPadY))
		object.Resize(fyne.NewSize(size.Width-buttonPadX*2, size.Height-buttonPadY*2))
	}
}

func (layout *buttonPaddingLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var width, height float32
	for _, object := range objects {
		minSize := object.MinSize()
		if minSize.Width > width {
			width = minSize.Width
		}
		if minSize.Height > height {
			height = minSize.Height
		}
	}
	return fyne.NewSize(width+buttonPadX*2, height+buttonPadY*2)
}
