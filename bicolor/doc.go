// Package bicolor provides the colour-plane mask used by HT1632C LED matrices.
//
// Each HT1632C chip holds one bitmap per colour plane. The common Sure
// Electronics bicolour boards carry two planes, red and green, and light both
// LEDs of a pixel to show orange. A Color is a bit mask where bit k selects
// plane k:
//
//	bit 0 -> plane 0 (red)
//	bit 1 -> plane 1 (green)
//
//	Black  = 0b00
//	Red    = 0b01
//	Green  = 0b10
//	Orange = 0b11
//
// Boards with more planes use the higher bits the same way. Transparent is a
// sentinel only meaningful as a text background: it leaves the pixels behind
// a glyph untouched.
//
// This package provides:
//
// - Color: the plane mask, usable as a color.Color
// - Model: a color.Model converting standard Go colours to Color
// - Image: a draw.Image holding one Color per pixel
//
// Example usage:
//
//	img := bicolor.NewImage(image.Rect(0, 0, 32, 16))
//	img.SetColor(3, 4, bicolor.Orange)
//	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 0xff, A: 0xff}), image.Point{}, draw.Src)
package bicolor
