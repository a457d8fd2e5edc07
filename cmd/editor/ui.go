package main

import (
	"bytes"
	"fmt"
	"image/color"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/pixelsmash/editor"
	"github.com/milk9111/pixelsmash/levels"
)

var (
	layerLabels  = []string{"Background", "Foreground"}
	modeLabels   = []string{"Paint", "Pan", "Dropper"}
	targetLabels = []string{"Primary", "Secondary"}
	anchorLabels = []string{"TL", "T", "TR", "L", "C", "R", "BL", "B", "BR"}
)

// panel is the ebitenui side panel. Its radio groups mirror session state
// that can also change from the canvas or hotkeys, so sync runs every frame.
type panel struct {
	game     *Game
	theme    *widget.Theme
	fontFace *text.Face

	spriteLabel *widget.Label
	preview     *widget.Graphic
	sizeLabel   *widget.Label
	viewLabel   *widget.Label
	lightBtn    *widget.Button
	nameBtn     *widget.Button

	layers  *radio
	modes   *radio
	types   *radio
	targets *radio
	anchors *radio

	swatches     *widget.Container
	swatchHolder *widget.Container
}

// radio pairs a RadioGroup with its buttons in display order.
type radio struct {
	group   *widget.RadioGroup
	buttons []*widget.Button
}

func (r *radio) selectIndex(i int) {
	if i < 0 || i >= len(r.buttons) {
		return
	}
	if r.group.Active() != widget.RadioGroupElement(r.buttons[i]) {
		r.group.SetActive(r.buttons[i])
	}
}

func buildUI(g *Game) (*ebitenui.UI, *panel) {
	ui := &ebitenui.UI{}

	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}
	var fontFace text.Face = &text.GoTextFace{Source: s, Size: 13}
	ui.PrimaryTheme = newEditorTheme(&fontFace)

	p := &panel{game: g, theme: ui.PrimaryTheme, fontFace: &fontFace}
	content := p.build()

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	content.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
		StretchVertical:    true,
	}
	root.AddChild(content)
	ui.Container = root

	p.sync(g.session)
	return ui, p
}

func (p *panel) build() *widget.Container {
	sess := p.game.session
	c := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(panelWidth, p.game.canvasH+stripHeight),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(colorPanel)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(4),
			),
		),
	)

	p.spriteLabel = p.label("")
	p.preview = widget.NewGraphic(
		widget.GraphicOpts.WidgetOpts(widget.WidgetOpts.MinSize(32, 32)),
	)
	c.AddChild(p.row(
		p.button("<", 28, func() { sess.CycleSprite(-1) }),
		p.button(">", 28, func() { sess.CycleSprite(1) }),
		p.preview,
		p.spriteLabel,
	))

	c.AddChild(p.label("Layer"))
	p.layers = p.radioRow(layerLabels, 100, func(i int) { sess.SetLayer(i) })
	c.AddChild(p.layers.container(2))

	c.AddChild(p.label("Mode"))
	p.modes = p.radioRow(modeLabels, 80, func(i int) { sess.SetMode(editor.Mode(i)) })
	c.AddChild(p.modes.container(3))

	c.AddChild(p.label("Tile Type"))
	typeNames := make([]string, len(levels.TypeIDs))
	for i, id := range levels.TypeIDs {
		typeNames[i] = fmt.Sprintf("%d %s", int(id), id)
	}
	p.types = p.radioRow(typeNames, 100, func(i int) { sess.SetType(levels.TypeIDs[i]) })
	c.AddChild(p.types.container(3))

	p.lightBtn = p.button("Emitter: off", 140, func() { sess.ToggleLight() })
	c.AddChild(p.lightBtn)

	c.AddChild(p.label("Color Target"))
	p.targets = p.radioRow(targetLabels, 100, func(i int) { sess.SetColorTarget(editor.ColorTarget(i)) })
	c.AddChild(p.targets.container(2))

	p.swatchHolder = widget.NewContainer(widget.ContainerOpts.Layout(widget.NewRowLayout()))
	p.setPalette(p.game.palette)
	c.AddChild(p.swatchHolder)
	c.AddChild(p.row(
		p.button("Suggest secondary", 150, sess.SuggestSecondary),
		p.button("More swatches", 130, p.game.addSwatches),
	))

	c.AddChild(p.label("Anchor"))
	p.anchors = p.radioRow(anchorLabels, 36, func(i int) { sess.SetAnchorCell(i%3, i/3) })
	c.AddChild(p.anchors.container(3))

	p.nameBtn = p.button("", 300, func() { sess.Naming = true })
	c.AddChild(p.nameBtn)

	c.AddChild(p.row(
		p.button("Save", 80, func() { _ = sess.Save("") }),
		p.button("Save As", 90, func() { _ = sess.SaveTimestamped(time.Now()) }),
		p.button("Load", 80, func() { _ = sess.Load("") }),
	))

	p.sizeLabel = p.label("")
	c.AddChild(p.sizeLabel)
	c.AddChild(p.row(
		p.button("W-", 40, sess.ShrinkWidth),
		p.button("W+", 40, sess.GrowWidth),
		p.button("H-", 40, sess.ShrinkHeight),
		p.button("H+", 40, sess.GrowHeight),
	))
	p.viewLabel = p.label("")
	c.AddChild(p.viewLabel)
	return c
}

// setPalette replaces the swatch grid, e.g. after the config file changed.
func (p *panel) setPalette(colors []levels.Color) {
	if p.swatches != nil {
		p.swatchHolder.RemoveChild(p.swatches)
	}
	p.swatches = widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewGridLayout(
				widget.GridLayoutOpts.Columns(8),
				widget.GridLayoutOpts.Spacing(4, 4),
			),
		),
	)
	for _, c := range colors {
		img := ebiten.NewImage(32, 20)
		img.Fill(c)
		swatch := c
		p.swatches.AddChild(widget.NewGraphic(
			widget.GraphicOpts.Image(img),
			widget.GraphicOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(32, 20),
				widget.WidgetOpts.MouseButtonClickedHandler(func(args *widget.WidgetMouseButtonClickedEventArgs) {
					p.game.session.Naming = false
					p.game.session.SetColor(swatch)
				}),
			),
		))
	}
	p.swatchHolder.AddChild(p.swatches)
}

func (p *panel) label(s string) *widget.Label {
	return widget.NewLabel(
		widget.LabelOpts.Text(s, p.fontFace, &widget.LabelColor{Idle: colorText, Disabled: color.Gray{Y: 140}}),
	)
}

func (p *panel) row(children ...widget.PreferredSizeLocateableWidget) *widget.Container {
	r := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(6),
			),
		),
	)
	for _, ch := range children {
		r.AddChild(ch)
	}
	return r
}

// button clears the name focus before running onClick, like any click
// outside the name field.
func (p *panel) button(label string, width int, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(p.theme.ButtonTheme.Image),
		widget.ButtonOpts.Text(label, p.fontFace, p.theme.ButtonTheme.TextColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(width, 24)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			p.game.session.Naming = false
			onClick()
		}),
	)
}

func (p *panel) radioRow(labels []string, width int, onSelect func(i int)) *radio {
	r := &radio{}
	for _, l := range labels {
		r.buttons = append(r.buttons, widget.NewButton(
			widget.ButtonOpts.Image(p.theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(l, p.fontFace, p.theme.ButtonTheme.TextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(width, 24)),
		))
	}
	elements := make([]widget.RadioGroupElement, 0, len(r.buttons))
	for _, b := range r.buttons {
		elements = append(elements, b)
	}
	r.group = widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			for i, b := range r.buttons {
				if args.Active == b {
					p.game.session.Naming = false
					onSelect(i)
					return
				}
			}
		}),
	)
	return r
}

func (r *radio) container(columns int) *widget.Container {
	c := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewGridLayout(
				widget.GridLayoutOpts.Columns(columns),
				widget.GridLayoutOpts.Spacing(4, 4),
			),
		),
	)
	for _, b := range r.buttons {
		c.AddChild(b)
	}
	return c
}

// sync copies session state into the widgets.
func (p *panel) sync(s *editor.Session) {
	p.spriteLabel.Label = s.Sprite()
	if img := p.game.sprites.get(s.Sprite(), s.Primary, s.Secondary); img != nil {
		p.preview.Image = img
	}

	p.layers.selectIndex(s.Layer)
	p.modes.selectIndex(int(s.Mode))
	p.targets.selectIndex(int(s.Target))
	for i, id := range levels.TypeIDs {
		if id == s.TypeID {
			p.types.selectIndex(i)
		}
	}
	ix := int(s.Anchor.X*2 + 0.5)
	iy := int(s.Anchor.Y*2 + 0.5)
	p.anchors.selectIndex(iy*3 + ix)

	light := "Emitter: off"
	if s.EmitsLight {
		light = "Emitter: on"
	}
	if t := p.lightBtn.Text(); t != nil {
		t.Label = light
	}

	name := "Name: " + s.Level.Name
	if s.Naming {
		name += "_"
	}
	if t := p.nameBtn.Text(); t != nil {
		t.Label = name
	}
	p.sizeLabel.Label = fmt.Sprintf("Level: %d x %d", s.Level.Width(), s.Level.Height())
	p.viewLabel.Label = fmt.Sprintf("View origin: (%d, %d)", s.CamX, s.CamY)
}
