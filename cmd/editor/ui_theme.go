package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

// newEditorTheme is the dark panel theme. Pressed doubles as the selected
// look for toggle buttons in radio groups.
func newEditorTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(colorPanel),
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:     solidNineSlice(colorIdle),
				Hover:    solidNineSlice(color.RGBA{95, 95, 95, 255}),
				Pressed:  solidNineSlice(color.RGBA{40, 110, 150, 255}),
				Disabled: solidNineSlice(color.RGBA{45, 45, 45, 255}),
			},
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle:     colorText,
				Disabled: color.Gray{Y: 120},
			},
		},
	}
}
