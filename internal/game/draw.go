package game

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/iburimskiy/petal-letter/internal/config"
	"github.com/iburimskiy/petal-letter/internal/scene"
)

const (
	lineHeight = 16
	charWidth  = 7
	cardPad    = 28
	bandHeight = 4
)

var (
	petalColor  = color.NRGBA{R: 0xff, G: 0x57, B: 0x57, A: 204}
	groundColor = color.NRGBA{R: 0x3b, G: 0x2a, B: 0x3a, A: 255}
	paperColor  = color.NRGBA{R: 0xff, G: 0xfa, B: 0xf0, A: 255}
	paperEdge   = color.NRGBA{R: 0xd8, G: 0xc8, B: 0xb0, A: 255}
	inkColor    = color.NRGBA{R: 0x5a, G: 0x1e, B: 0x2a, A: 255}
	shadeColor  = color.NRGBA{A: 160}

	face       = text.NewGoXFace(basicfont.Face7x13)
	whiteImage *ebiten.Image
)

func whitePixel() *ebiten.Image {
	if whiteImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteImage
}

func (g *Game) Draw(screen *ebiten.Image) {
	view := g.scene.Viewport()

	g.drawBackground(screen, view)
	g.drawGround(screen, view)

	for _, lp := range g.scene.Landed() {
		fillPolygon(screen, petalOutline(lp.X+lp.Size/2, lp.Y(view.Height)+lp.Size/2, lp.Size, lp.Rotation), fade(petalColor, lp.Alpha))
	}
	for _, p := range g.scene.Petals() {
		fillPolygon(screen, petalOutline(p.X+p.Size/2, p.Y+p.Size/2, p.Size, p.Rotation), petalColor)
	}

	paper := g.scene.Paper()
	if paper != nil {
		g.drawPaper(screen, paper)
	}
	if g.scene.GateVisible() {
		g.drawGate(screen, view)
	}
	if paper != nil && paper.Letter().Active() {
		g.drawLetter(screen, view, paper.Letter())
	}
	if g.debug {
		g.drawHUD(screen)
	}
}

func (g *Game) drawBackground(screen *ebiten.Image, view scene.Viewport) {
	for y := 0.0; y < view.Height; y += bandHeight {
		ratio := y / view.Height
		hue := 320 + 20*math.Sin(g.time*0.1+ratio*math.Pi)
		r, gv, b := hsvToRgb(hue, 0.35, 0.18+0.12*ratio)
		vector.DrawFilledRect(screen, 0, float32(y), float32(view.Width), bandHeight, color.RGBA{R: r, G: gv, B: b, A: 255}, false)
	}
}

func (g *Game) drawGround(screen *ebiten.Image, view scene.Viewport) {
	top := view.Height * (1 - config.GroundStripRatio)
	vector.DrawFilledRect(screen, 0, float32(top), float32(view.Width), float32(view.Height-top), groundColor, false)
}

func (g *Game) drawPaper(screen *ebiten.Image, p *scene.Paper) {
	cx := p.X + config.PaperWidth/2
	cy := p.Y + config.PaperHeight/2
	outline := rectOutline(cx, cy, config.PaperWidth, config.PaperHeight, p.Rotation)
	fillPolygon(screen, outline, paperColor)
	strokePolygon(screen, outline, 1, paperEdge)

	lines := wrapText(p.Label, config.PaperWidth/charWidth)
	y := cy - float64(len(lines)*lineHeight)/2
	for _, line := range lines {
		w := float64(len([]rune(line)) * charWidth)
		drawText(screen, line, cx-w/2, y, inkColor)
		y += lineHeight
	}
}

func (g *Game) drawGate(screen *ebiten.Image, view scene.Viewport) {
	alpha := g.scene.GateAlpha()
	vector.DrawFilledRect(screen, 0, 0, float32(view.Width), float32(view.Height), fade(color.NRGBA{A: 200}, alpha), false)

	cx, cy, r := playButton(view)
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(r), fade(petalColor, alpha), true)
	vector.StrokeCircle(screen, float32(cx), float32(cy), float32(r), 2, fade(paperColor, alpha), true)
	triangle := []point{{cx - r*0.3, cy - r*0.45}, {cx + r*0.5, cy}, {cx - r*0.3, cy + r*0.45}}
	fillPolygon(screen, triangle, fade(paperColor, alpha))

	hint := "Press play"
	drawText(screen, hint, cx-float64(len(hint)*charWidth)/2, cy+r+12, fade(paperColor, alpha))
}

func (g *Game) drawLetter(screen *ebiten.Image, view scene.Viewport, l *scene.Letter) {
	vector.DrawFilledRect(screen, 0, 0, float32(view.Width), float32(view.Height), shadeColor, false)

	card := cardRect(view)
	vector.DrawFilledRect(screen, float32(card.X), float32(card.Y), float32(card.W), float32(card.H), paperColor, false)
	vector.StrokeRect(screen, float32(card.X), float32(card.Y), float32(card.W), float32(card.H), 2, paperEdge, false)

	cr := closeRect(card)
	vector.StrokeRect(screen, float32(cr.X), float32(cr.Y), float32(cr.W), float32(cr.H), 1, inkColor, false)
	drawText(screen, "x", cr.X+(cr.W-charWidth)/2, cr.Y+(cr.H-lineHeight)/2, inkColor)

	g.drawHearts(screen, card)

	width := int((card.W - 2*cardPad) / charWidth)
	y := card.Y + cardPad + 40
	for i, line := range l.Visible() {
		wrapped := wrapText(line, width)
		if l.Typing(i) {
			wrapped[len(wrapped)-1] += "|"
		}
		for _, w := range wrapped {
			drawText(screen, w, card.X+cardPad, y, inkColor)
			y += lineHeight
		}
		y += lineHeight / 2
	}

	if l.SignatureVisible() {
		y += lineHeight
		for _, line := range l.Signature() {
			w := float64(len([]rune(line)) * charWidth)
			drawText(screen, line, card.X+card.W-cardPad-w, y, inkColor)
			y += lineHeight
		}
	}
}

// drawHearts draws a row of hearts that beat with the music.
func (g *Game) drawHearts(screen *ebiten.Image, card rect) {
	const gap = 36
	startX := card.X + card.W/2 - gap*(config.HeartCount-1)/2
	for i := 0; i < config.HeartCount; i++ {
		phase := g.time*3 + float64(i)*0.8
		size := 18 + 4*math.Sin(phase) + 10*g.level
		r, gv, b := hsvToRgb(350+float64(i)*6, 0.7, 0.95)
		fillPolygon(screen, heartOutline(startX+float64(i)*gap, card.Y+cardPad+6, size), color.NRGBA{R: r, G: gv, B: b, A: 230})
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	state := g.scene.State()
	status := fmt.Sprintf("t=%s petals=%d/%d landed=%d resizing=%v",
		formatDuration(time.Duration(g.time*float64(time.Second))),
		g.scene.PetalCount(), g.scene.Target(), len(g.scene.Landed()), state.Resizing)

	type positioner interface{ Position() time.Duration }
	if p, ok := g.track.(positioner); ok {
		status += " song=" + formatDuration(p.Position())
	}
	s := g.settings.Settings()
	status += fmt.Sprintf(" vol=%.1f muted=%v level=%.2f", s.Volume, s.Muted, g.level)
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

func drawText(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}

func fillPolygon(dst *ebiten.Image, pts []point, clr color.Color) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].x), float32(pts[0].y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.x), float32(p.y))
	}
	path.Close()
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	drawVertices(dst, vs, is, clr)
}

func strokePolygon(dst *ebiten.Image, pts []point, width float32, clr color.Color) {
	if len(pts) < 2 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].x), float32(pts[0].y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.x), float32(p.y))
	}
	path.Close()
	vs, is := path.AppendVerticesAndIndicesForStroke(nil, nil, &vector.StrokeOptions{Width: width})
	drawVertices(dst, vs, is, clr)
}

func drawVertices(dst *ebiten.Image, vs []ebiten.Vertex, is []uint16, clr color.Color) {
	r, g, b, a := clr.RGBA()
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(r) / 0xffff
		vs[i].ColorG = float32(g) / 0xffff
		vs[i].ColorB = float32(b) / 0xffff
		vs[i].ColorA = float32(a) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	dst.DrawTriangles(vs, is, whitePixel(), op)
}
