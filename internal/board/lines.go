package board

// Line is a maximal straight line of cells across the board in one of the
// four directions: rows, columns, diagonals (down-right) and anti-diagonals
// (up-right).
type Line struct {
	X, Y   int // first cell
	DX, DY int // step between consecutive cells
	Len    int // number of cells
}

// At returns the coordinates of the i-th cell of the line.
func (l Line) At(i int) (int, int) {
	return l.X + i*l.DX, l.Y + i*l.DY
}

// Directions are the four line orientations used by win checks.
var Directions = [4][2]int{
	{1, 0},  // horizontal
	{0, 1},  // vertical
	{1, 1},  // diagonal down-right
	{1, -1}, // diagonal up-right
}

// lines holds every line on the board, built once at init.
var lines []Line

func init() {
	lines = make([]Line, 0, 2*Size+2*(2*Size-1))

	for y := 0; y < Size; y++ {
		lines = append(lines, Line{X: 0, Y: y, DX: 1, DY: 0, Len: Size})
	}
	for x := 0; x < Size; x++ {
		lines = append(lines, Line{X: x, Y: 0, DX: 0, DY: 1, Len: Size})
	}
	for k := -(Size - 1); k <= Size-1; k++ {
		xs := max(0, k)
		ys := max(0, -k)
		lines = append(lines, Line{X: xs, Y: ys, DX: 1, DY: 1, Len: min(Size-xs, Size-ys)})
	}
	for s := 0; s <= 2*(Size-1); s++ {
		xs := max(0, s-(Size-1))
		ys := min(Size-1, s)
		lines = append(lines, Line{X: xs, Y: ys, DX: 1, DY: -1, Len: min(ys+1, Size-xs)})
	}
}

// Lines returns every row, column, diagonal and anti-diagonal of the board.
// The returned slice is shared and must not be modified.
func Lines() []Line {
	return lines
}

// Run is a maximal contiguous sequence of one side's stones along a line.
type Run struct {
	Line      Line
	Start     int  // offset of the first stone in the line
	Length    int  // number of stones
	LeftOpen  bool // the cell before the run is on-board and empty
	RightOpen bool // the cell after the run is on-board and empty
}

// OpenEnds returns the number of open ends (0, 1 or 2).
func (r Run) OpenEnds() int {
	n := 0
	if r.LeftOpen {
		n++
	}
	if r.RightOpen {
		n++
	}
	return n
}

// ForEachRun calls f for every maximal run of p's stones on every line.
func (b *Board) ForEachRun(p Player, f func(Run)) {
	own := &b.stones[p]
	occ := b.occupied()
	for _, l := range lines {
		i := 0
		for i < l.Len {
			x, y := l.At(i)
			if !own.IsSet(cellIndex(x, y)) {
				i++
				continue
			}
			j := i
			for j < l.Len {
				xj, yj := l.At(j)
				if !own.IsSet(cellIndex(xj, yj)) {
					break
				}
				j++
			}
			r := Run{Line: l, Start: i, Length: j - i}
			if i > 0 {
				xl, yl := l.At(i - 1)
				r.LeftOpen = !occ.IsSet(cellIndex(xl, yl))
			}
			if j < l.Len {
				xr, yr := l.At(j)
				r.RightOpen = !occ.IsSet(cellIndex(xr, yr))
			}
			f(r)
			i = j
		}
	}
}
