package window

import "fyne.io/fyne/v2"

// cell is an object's position in a spanGrid
type cell struct {
	row, col         int
	rowSpan, colSpan int
}

// spanGrid places objects on a weighted grid where each object may span
// several rows and columns. Overlapping objects are drawn in container order.
type spanGrid struct {
	rows, columns int
	rowWeight     func(row int) int
	colWeight     func(col int) int
	cells         map[fyne.CanvasObject]cell
}

func newSpanGrid(rows, columns int, rowWeight, colWeight func(int) int) *spanGrid {
	return &spanGrid{
		rows:      rows,
		columns:   columns,
		rowWeight: rowWeight,
		colWeight: colWeight,
		cells:     make(map[fyne.CanvasObject]cell),
	}
}

func (g *spanGrid) place(obj fyne.CanvasObject, c cell) {
	if c.col+c.colSpan > g.columns {
		c.colSpan = g.columns - c.col
	}
	if c.row+c.rowSpan > g.rows {
		c.rowSpan = g.rows - c.row
	}
	g.cells[obj] = c
}

func (g *spanGrid) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	xs := offsets(g.columns, g.colWeight, size.Width)
	ys := offsets(g.rows, g.rowWeight, size.Height)

	for _, obj := range objects {
		c, ok := g.cells[obj]
		if !ok {
			continue
		}
		obj.Move(fyne.NewPos(xs[c.col], ys[c.row]))
		obj.Resize(fyne.NewSize(xs[c.col+c.colSpan]-xs[c.col], ys[c.row+c.rowSpan]-ys[c.row]))
	}
}

// MinSize scales the whole grid so that every object gets at least its
// minimum size within its share of the weights
func (g *spanGrid) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var unitW, unitH float32
	for _, obj := range objects {
		c, ok := g.cells[obj]
		if !ok || !obj.Visible() {
			continue
		}
		ms := obj.MinSize()
		if w := sumWeights(g.colWeight, c.col, c.colSpan); w > 0 && ms.Width/float32(w) > unitW {
			unitW = ms.Width / float32(w)
		}
		if h := sumWeights(g.rowWeight, c.row, c.rowSpan); h > 0 && ms.Height/float32(h) > unitH {
			unitH = ms.Height / float32(h)
		}
	}
	return fyne.NewSize(
		unitW*float32(sumWeights(g.colWeight, 0, g.columns)),
		unitH*float32(sumWeights(g.rowWeight, 0, g.rows)),
	)
}

// offsets returns n+1 boundaries splitting total by weight
func offsets(n int, weight func(int) int, total float32) []float32 {
	out := make([]float32, n+1)
	sum := sumWeights(weight, 0, n)
	if sum == 0 {
		return out
	}
	acc := 0
	for i := 0; i < n; i++ {
		acc += weight(i)
		out[i+1] = total * float32(acc) / float32(sum)
	}
	return out
}

func sumWeights(weight func(int) int, from, count int) int {
	sum := 0
	for i := from; i < from+count; i++ {
		sum += weight(i)
	}
	return sum
}
