package calendar

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strconv"

	"github.com/chai2010/webp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	FormatPNG  = "png"
	FormatWebP = "webp"
)

// Rosé Pine, the palette the salon frontend uses.
var (
	colBase    = color.RGBA{0x19, 0x17, 0x24, 0xff}
	colSurface = color.RGBA{0x1f, 0x1d, 0x2e, 0xff}
	colOverlay = color.RGBA{0x26, 0x23, 0x3a, 0xff}
	colText    = color.RGBA{0xe0, 0xde, 0xf4, 0xff}
	colSubtle  = color.RGBA{0x90, 0x8c, 0xaa, 0xff}
	colMuted   = color.RGBA{0x6e, 0x6a, 0x86, 0xff}
	colRose    = color.RGBA{0xeb, 0xbc, 0xba, 0xff}
	colGold    = color.RGBA{0xf6, 0xc1, 0x77, 0xff}
	colIris    = color.RGBA{0xc4, 0xa7, 0xe7, 0xff}
	colLove    = color.RGBA{0xeb, 0x6f, 0x92, 0xff}
)

const (
	margin       = 40
	headerHeight = 90
	labelHeight  = 30
	cardWidth    = 170
	cardGap      = 12
	cardHeader   = 34
	slotHeight   = 16
	minCardBody  = 60
)

var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Render draws the month grid. Days outside the month are left blank.
func Render(m Month) *image.RGBA {
	maxSlots := 0
	for _, w := range m.Weeks {
		for _, d := range w {
			if d.IsCurrentMonth && len(d.Slots) > maxSlots {
				maxSlots = len(d.Slots)
			}
		}
	}

	cardHeight := cardHeader + max(minCardBody, maxSlots*slotHeight+16)
	width := 2*margin + 7*cardWidth + 6*cardGap
	height := headerHeight + labelHeight + len(m.Weeks)*(cardHeight+cardGap) + margin

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fill(img, img.Bounds(), colBase)

	// header with accent stripe
	fill(img, image.Rect(0, 0, width, headerHeight), colSurface)
	fill(img, image.Rect(0, 0, width/3, 6), colIris)
	fill(img, image.Rect(width/3, 0, 2*width/3, 6), colRose)
	fill(img, image.Rect(2*width/3, 0, width, 6), colGold)
	title := fmt.Sprintf("%s %d", m.MonthName, m.Year)
	text(img, title, (width-textWidth(title))/2, headerHeight/2+6, colText)

	top := headerHeight + labelHeight
	for i, label := range weekdayLabels {
		x := margin + i*(cardWidth+cardGap)
		text(img, label, x+(cardWidth-textWidth(label))/2, top-10, colSubtle)
	}

	for wi, w := range m.Weeks {
		for di, d := range w {
			if !d.IsCurrentMonth {
				continue
			}
			x := margin + di*(cardWidth+cardGap)
			y := top + wi*(cardHeight+cardGap)
			drawCard(img, d, image.Rect(x, y, x+cardWidth, y+cardHeight))
		}
	}

	return img
}

func drawCard(img *image.RGBA, d DayCell, r image.Rectangle) {
	fill(img, r, colSurface)
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+cardHeader), colOverlay)

	numCol := colText
	switch {
	case d.IsToday:
		numCol = colRose
	case d.IsWeekend:
		numCol = colGold
	}
	text(img, strconv.Itoa(d.DayNum), r.Min.X+12, r.Min.Y+22, numCol)

	if d.IsToday {
		outline(img, r, colRose)
	}

	y := r.Min.Y + cardHeader + 18
	if d.IsWeekend {
		text(img, "Day off", r.Min.X+12, y, colGold)
		return
	}
	if len(d.Slots) == 0 {
		text(img, "No hours set", r.Min.X+12, y, colMuted)
		return
	}

	for _, s := range d.Slots {
		col, label := colIris, s.Time+"  free"
		if s.Booked {
			col, label = colLove, s.Time+"  booked"
		}
		text(img, label, r.Min.X+12, y, col)
		y += slotHeight
	}
}

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func outline(img *image.RGBA, r image.Rectangle, c color.Color) {
	const w = 2
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w), c)
	fill(img, image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y), c)
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+w, r.Max.Y), c)
	fill(img, image.Rect(r.Max.X-w, r.Min.Y, r.Max.X, r.Max.Y), c)
}

func text(img *image.RGBA, s string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Round()
}

// ======================================================
// Encoding
// ======================================================

func ValidFormat(format string) bool {
	return format == FormatPNG || format == FormatWebP
}

func ContentType(format string) string {
	if format == FormatWebP {
		return "image/webp"
	}
	return "image/png"
}

func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatWebP:
		return webp.Encode(w, img, &webp.Options{Lossless: true})
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}
