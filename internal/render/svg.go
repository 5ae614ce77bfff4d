package render

import (
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/benbeisheim/variantchess-backend/internal/engine"
)

const (
	cell   = 60
	margin = 24
)

var (
	lightFill  = "fill:#f0d9b5"
	darkFill   = "fill:#b58863"
	hintStyle  = "fill:#3a7d44;fill-opacity:0.55"
	threatRing = "fill:none;stroke:#c0392b;stroke-width:4"
	labelStyle = "font-family:sans-serif;font-size:14px;text-anchor:middle;fill:#333"
)

// SVG writes the board with the same overlay Text uses: hint dots (rings for
// captures) and red frames around threatened pieces.
func SVG(w io.Writer, b *engine.Board, o Overlay) {
	size := engine.Size*cell + 2*margin
	canvas := svg.New(w)
	canvas.Start(size, size)
	canvas.Rect(0, 0, size, size, "fill:#fafafa")

	for row := 0; row < engine.Size; row++ {
		for col := 0; col < engine.Size; col++ {
			x, y := margin+col*cell, margin+row*cell
			style := lightFill
			if (row+col)%2 == 1 {
				style = darkFill
			}
			canvas.Rect(x, y, cell, cell, style)

			sq := engine.Sq(row, col)
			if o.Threats != nil && o.Threats.IsThreatened(sq) {
				canvas.Rect(x+2, y+2, cell-4, cell-4, threatRing)
			}
			if p, ok := b.Get(sq); ok {
				drawPiece(canvas, x, y, p)
			}
			if o.Hints != nil {
				if r, ok := o.Hints.Get(sq); ok {
					if r == engine.HintCapture {
						canvas.Circle(x+cell/2, y+cell/2, cell/2-4, "fill:none;stroke:#3a7d44;stroke-width:5")
					} else {
						canvas.Circle(x+cell/2, y+cell/2, cell/7, hintStyle)
					}
				}
			}
		}
	}

	for i := 0; i < engine.Size; i++ {
		file := string(rune('a' + i))
		rank := strconv.Itoa(engine.Size - i)
		canvas.Text(margin+i*cell+cell/2, margin-8, file, labelStyle)
		canvas.Text(margin+i*cell+cell/2, size-6, file, labelStyle)
		canvas.Text(margin/2, margin+i*cell+cell/2+5, rank, labelStyle)
		canvas.Text(size-margin/2, margin+i*cell+cell/2+5, rank, labelStyle)
	}
	canvas.End()
}

func drawPiece(canvas *svg.SVG, x, y int, p engine.Piece) {
	fill, ink := "#ffffff", "#222222"
	if p.Color == engine.Black {
		fill, ink = "#222222", "#ffffff"
	}
	canvas.Circle(x+cell/2, y+cell/2, cell/2-10, "fill:"+fill+";stroke:#222;stroke-width:2")
	if p.Kind == engine.CheckerMan {
		canvas.Circle(x+cell/2, y+cell/2, cell/2-18, "fill:none;stroke:"+ink+";stroke-width:2")
		return
	}
	letter := string(engine.Piece{Kind: p.Kind, Color: engine.White}.Symbol())
	canvas.Text(x+cell/2, y+cell/2+8, letter, "font-family:sans-serif;font-weight:bold;font-size:24px;text-anchor:middle;fill:"+ink)
}
