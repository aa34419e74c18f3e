package ecellweb

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	maxPlaceholderSize = 1200
	jpegQuality        = 80
)

var placeholderPalette = []color.RGBA{
	{0x1e, 0x3a, 0x8a, 0xff},
	{0x0f, 0x76, 0x6e, 0xff},
	{0x9a, 0x34, 0x12, 0xff},
	{0x5b, 0x21, 0xb6, 0xff},
	{0x33, 0x41, 0x55, 0xff},
	{0xb4, 0x53, 0x09, 0xff},
}

// Initials returns up to two upper-case initials of name: the first letters
// of its first and last words. An empty name gives "?".
func Initials(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		return "?"
	}
	first := []rune(words[0])[0]
	out := []rune{unicode.ToUpper(first)}
	if len(words) > 1 {
		out = append(out, unicode.ToUpper([]rune(words[len(words)-1])[0]))
	}
	return string(out)
}

func placeholderColor(name string) color.RGBA {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(name))))
	return placeholderPalette[h.Sum32()%uint32(len(placeholderPalette))]
}

// renderPlaceholder draws the initials of name centered on a w x h tile and
// encodes it as JPEG. The glyphs come from a 7x13 bitmap font and are scaled
// up to half the shorter side.
func renderPlaceholder(w, h int, name string) ([]byte, error) {
	if w < 1 || h < 1 || w > maxPlaceholderSize || h > maxPlaceholderSize {
		return nil, fmt.Errorf("placeholder size %dx%d out of range", w, h)
	}
	bg := image.NewUniform(placeholderColor(name))
	face := basicfont.Face7x13
	text := Initials(name)

	const pad = 2
	textW := font.MeasureString(face, text).Ceil()
	glyphs := image.NewRGBA(image.Rect(0, 0, textW+2*pad, face.Height+2*pad))
	draw.Draw(glyphs, glyphs.Bounds(), bg, image.Point{}, draw.Src)
	d := font.Drawer{
		Dst:  glyphs,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(pad, pad+face.Ascent),
	}
	d.DrawString(text)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), bg, image.Point{}, draw.Src)

	gb := glyphs.Bounds()
	tw := max(min(w, h)/2, 1)
	th := max(tw*gb.Dy()/gb.Dx(), 1)
	if th > h {
		th = h
		tw = max(th*gb.Dx()/gb.Dy(), 1)
	}
	x0, y0 := (w-tw)/2, (h-th)/2
	draw.CatmullRom.Scale(dst, image.Rect(x0, y0, x0+tw, y0+th), glyphs, gb, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// handlePlaceholder serves GET /placeholder/:w/:h/?name=...
func (a *App) handlePlaceholder(c echo.Context) error {
	w, errW := strconv.Atoi(c.Param("w"))
	h, errH := strconv.Atoi(c.Param("h"))
	if errW != nil || errH != nil {
		return c.String(http.StatusBadRequest, "Invalid size")
	}
	data, err := renderPlaceholder(w, h, c.QueryParam("name"))
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	return c.Blob(http.StatusOK, "image/jpeg", data)
}
