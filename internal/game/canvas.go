package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/page-indicator/internal/indicator"
)

var whiteImage *ebiten.Image

// whiteSubImage is the 1x1 source texture for DrawTriangles.
func whiteSubImage() *ebiten.Image {
	if whiteImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
	}
	return whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// screenCanvas draws indicator shapes onto an ebiten image, translated by
// the widget origin. Strokes use round caps and joins.
type screenCanvas struct {
	dst              *ebiten.Image
	offsetX, offsetY float64

	vertices []ebiten.Vertex
	indices  []uint16
}

var _ indicator.Canvas = (*screenCanvas)(nil)

func (c *screenCanvas) StrokeArc(cx, cy, radius, startAngle, sweepAngle float64, p indicator.Paint) {
	x, y := c.offsetX+cx, c.offsetY+cy
	if sweepAngle >= 360 {
		vector.StrokeCircle(c.dst, float32(x), float32(y), float32(radius), float32(p.StrokeWidth), p.Color, true)
		return
	}
	if sweepAngle <= 0 || radius <= 0 {
		return
	}

	from := startAngle * math.Pi / 180
	to := (startAngle + sweepAngle) * math.Pi / 180

	var path vector.Path
	path.MoveTo(float32(x+radius*math.Cos(from)), float32(y+radius*math.Sin(from)))
	path.Arc(float32(x), float32(y), float32(radius), float32(from), float32(to), vector.Clockwise)
	c.stroke(&path, p)
}

func (c *screenCanvas) StrokeLine(x0, y0, x1, y1 float64, p indicator.Paint) {
	var path vector.Path
	path.MoveTo(float32(c.offsetX+x0), float32(c.offsetY+y0))
	path.LineTo(float32(c.offsetX+x1), float32(c.offsetY+y1))
	c.stroke(&path, p)
}

func (c *screenCanvas) FillCircle(cx, cy, radius float64, p indicator.Paint) {
	if radius <= 0 {
		return
	}
	vector.DrawFilledCircle(c.dst, float32(c.offsetX+cx), float32(c.offsetY+cy), float32(radius), p.Color, true)
}

func (c *screenCanvas) stroke(path *vector.Path, p indicator.Paint) {
	op := &vector.StrokeOptions{
		Width:    float32(p.StrokeWidth),
		LineCap:  vector.LineCapRound,
		LineJoin: vector.LineJoinRound,
	}
	c.vertices, c.indices = path.AppendVerticesAndIndicesForStroke(c.vertices[:0], c.indices[:0], op)

	r, g, b, a := p.Color.RGBA()
	for i := range c.vertices {
		c.vertices[i].SrcX = 1
		c.vertices[i].SrcY = 1
		c.vertices[i].ColorR = float32(r) / 0xffff
		c.vertices[i].ColorG = float32(g) / 0xffff
		c.vertices[i].ColorB = float32(b) / 0xffff
		c.vertices[i].ColorA = float32(a) / 0xffff
	}

	op2 := &ebiten.DrawTrianglesOptions{}
	op2.AntiAlias = true
	c.dst.DrawTriangles(c.vertices, c.indices, whiteSubImage(), op2)
}
