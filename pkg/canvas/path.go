package canvas

import "math"

// arcStep is the largest angle covered by one flattened arc segment.
const arcStep = math.Pi / 90

type segmentKind int

const (
	segMove segmentKind = iota
	segLine
	segClose
)

type segment struct {
	kind segmentKind
	x, y float64
}

// path is a canvas-style path in logical units. It survives fills and
// strokes until reset.
type path struct {
	segs    []segment
	hasCurr bool
}

func (p *path) reset() {
	p.segs = p.segs[:0]
	p.hasCurr = false
}

func (p *path) moveTo(x, y float64) {
	p.segs = append(p.segs, segment{kind: segMove, x: x, y: y})
	p.hasCurr = true
}

func (p *path) lineTo(x, y float64) {
	if !p.hasCurr {
		p.moveTo(x, y)

		return
	}

	p.segs = append(p.segs, segment{kind: segLine, x: x, y: y})
}

func (p *path) close() {
	if p.hasCurr {
		p.segs = append(p.segs, segment{kind: segClose})
	}
}

// arc appends a flattened circular arc, joined to the current point by a
// straight line as a 2D canvas does.
func (p *path) arc(cx, cy, r, start, end float64, ccw bool) {
	delta := arcSweep(start, end, ccw)
	n := max(1, int(math.Ceil(math.Abs(delta)/arcStep)))

	for i := 0; i <= n; i++ {
		a := start + delta*float64(i)/float64(n)
		p.lineTo(cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
}

// arcSweep is the signed angle travelled from start to end in the given
// direction, limited to one full turn.
func arcSweep(start, end float64, ccw bool) float64 {
	const turn = 2 * math.Pi

	d := end - start

	if ccw {
		if d <= -turn {
			return -turn
		}

		for d > 0 {
			d -= turn
		}

		return d
	}

	if d >= turn {
		return turn
	}

	for d < 0 {
		d += turn
	}

	return d
}
