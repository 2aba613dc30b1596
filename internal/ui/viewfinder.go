package ui

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"wall-overlay/internal/calibrate"
	"wall-overlay/internal/config"
	"wall-overlay/internal/overlay"
)

// CellMapper converts between terminal cells and virtual screen pixels
// (camera frame space). X and Y scale independently, which also absorbs the
// terminal character aspect ratio.
type CellMapper struct {
	Cols, Rows       int
	ScreenW, ScreenH float64
}

// ToScreen maps a cell to the screen position at its center.
func (m CellMapper) ToScreen(col, row int) (x, y float64) {
	x = (float64(col) + 0.5) * m.ScreenW / float64(m.Cols)
	y = (float64(row) + 0.5) * m.ScreenH / float64(m.Rows)
	return
}

// ToCell maps a screen position to the cell containing it.
func (m CellMapper) ToCell(x, y float64) (col, row int) {
	col = int(x * float64(m.Cols) / m.ScreenW)
	row = int(y * float64(m.Rows) / m.ScreenH)
	if col < 0 {
		col = 0
	}
	if col >= m.Cols {
		col = m.Cols - 1
	}
	if row < 0 {
		row = 0
	}
	if row >= m.Rows {
		row = m.Rows - 1
	}
	return
}

// ViewfinderState bundles everything the viewfinder draws for one frame.
type ViewfinderState struct {
	Preview image.Image // latest camera preview, may be nil

	ScreenW, ScreenH float64

	Placement  *overlay.Placement // nil until calibrated
	PPM        float64
	ShowGrid   bool
	ShowLabels bool
	Tint       int

	Points      []calibrate.Point
	ActivePoint int // index being nudged in adjust mode, -1 otherwise
}

// Cell content kinds, in drawing priority order.
const (
	kindEmpty = iota
	kindPreview
	kindGrid
	kindRoute
	kindLabel
	kindMarker
)

var previewShades = []struct {
	ch    byte
	style lipgloss.Style
}{
	{' ', lipgloss.NewStyle()},
	{'.', lipgloss.NewStyle().Foreground(lipgloss.Color("#3A3A36"))},
	{':', lipgloss.NewStyle().Foreground(lipgloss.Color("#5A5A55"))},
	{'+', lipgloss.NewStyle().Foreground(lipgloss.Color("#858580"))},
	{'#', lipgloss.NewStyle().Foreground(lipgloss.Color("#B5B5AE"))},
	{'@', lipgloss.NewStyle().Foreground(ColorChalk)},
}

var tintStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444")).Bold(true),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#44DD66")).Bold(true),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#4488FF")).Bold(true),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#FFDD44")).Bold(true),
	lipgloss.NewStyle().Foreground(lipgloss.Color("#F5F5F5")).Bold(true),
}

// RenderViewfinder draws the camera preview with the overlay, grid, labels
// and calibration markers as a cell grid.
func RenderViewfinder(width, height int, st ViewfinderState) string {
	if width < 10 || height < 5 {
		return ""
	}

	chars := make([][]byte, height)
	kinds := make([][]int, height)
	shades := make([][]int, height)
	for r := range chars {
		chars[r] = make([]byte, width)
		kinds[r] = make([]int, width)
		shades[r] = make([]int, width)
		for c := range chars[r] {
			chars[r][c] = ' '
		}
	}

	mapper := CellMapper{Cols: width, Rows: height, ScreenW: st.ScreenW, ScreenH: st.ScreenH}

	drawPreview(chars, kinds, shades, width, height, st.Preview)
	if st.Placement != nil {
		if st.ShowGrid && st.PPM > 0 {
			drawGrid(chars, kinds, mapper, *st.Placement, st.PPM)
		}
		drawRoute(chars, kinds, mapper, *st.Placement)
		if st.ShowLabels && st.PPM > 0 {
			drawLabels(chars, kinds, mapper, *st.Placement, st.PPM)
		}
	}
	drawMarkers(chars, kinds, mapper, st.Points)

	tintSty := tintStyles[st.Tint%len(tintStyles)]

	var sb strings.Builder
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			ch := chars[r][c]
			switch kinds[r][c] {
			case kindMarker:
				style := StyleMarker
				if st.ActivePoint >= 0 && markerIndex(ch) == st.ActivePoint {
					style = StylePanelTitle
				}
				sb.WriteString(style.Render(string(ch)))
			case kindLabel:
				sb.WriteString(StyleLabel.Render(string(ch)))
			case kindRoute:
				sb.WriteString(tintSty.Render(string(ch)))
			case kindGrid:
				sb.WriteString(StyleGridLine.Render(string(ch)))
			case kindPreview:
				sb.WriteString(previewShades[shades[r][c]].style.Render(string(ch)))
			default:
				sb.WriteByte(' ')
			}
		}
		if r < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func markerIndex(ch byte) int {
	if ch == '1' {
		return 0
	}
	return 1
}

// drawPreview shades each cell from the luminance of the matching preview
// region.
func drawPreview(chars [][]byte, kinds [][]int, shades [][]int, width, height int, img image.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			px := b.Min.X + c*b.Dx()/width
			py := b.Min.Y + r*b.Dy()/height
			cr, cg, cb, _ := img.At(px, py).RGBA()

			// Rec. 601 luma, 16-bit channels scaled to a shade bucket.
			luma := (299*float64(cr) + 587*float64(cg) + 114*float64(cb)) / 1000 / 65535
			shade := int(luma * float64(len(previewShades)))
			if shade >= len(previewShades) {
				shade = len(previewShades) - 1
			}

			chars[r][c] = previewShades[shade].ch
			kinds[r][c] = kindPreview
			shades[r][c] = shade
		}
	}
}

func drawRoute(chars [][]byte, kinds [][]int, m CellMapper, p overlay.Placement) {
	for i := 0; i < 4; i++ {
		drawSegment(chars, kinds, m, p.Corners[i], p.Corners[(i+1)%4], kindRoute, segmentChar(p.Corners[i], p.Corners[(i+1)%4]))
	}
	for _, c := range p.Corners {
		setCell(chars, kinds, m, c, '+', kindRoute)
	}
}

func drawGrid(chars [][]byte, kinds [][]int, m CellMapper, p overlay.Placement, ppm float64) {
	step := config.GridSpacingM * ppm
	halfW := p.RenderedW / 2
	halfH := p.RenderedH / 2

	for lx := -halfW + step; lx < halfW; lx += step {
		drawSegment(chars, kinds, m, p.ProjectLocal(lx, -halfH), p.ProjectLocal(lx, halfH), kindGrid, '|')
	}
	for ly := -halfH + step; ly < halfH; ly += step {
		drawSegment(chars, kinds, m, p.ProjectLocal(-halfW, ly), p.ProjectLocal(halfW, ly), kindGrid, '-')
	}
}

// drawLabels writes meter heights just inside the overlay's left edge.
func drawLabels(chars [][]byte, kinds [][]int, m CellMapper, p overlay.Placement, ppm float64) {
	halfW := p.RenderedW / 2
	halfH := p.RenderedH / 2

	for meters := 0.0; meters <= config.TemplateHeightM; meters += 1.0 {
		pt := p.ProjectLocal(-halfW, halfH-meters*ppm)
		col, row := m.ToCell(pt.X, pt.Y)
		label := fmt.Sprintf("%.0fm", meters)
		for i := 0; i < len(label); i++ {
			c := col + 1 + i
			if c >= 0 && c < m.Cols && row >= 0 && row < m.Rows {
				chars[row][c] = label[i]
				kinds[row][c] = kindLabel
			}
		}
	}
}

func drawMarkers(chars [][]byte, kinds [][]int, m CellMapper, points []calibrate.Point) {
	if len(points) == 2 {
		a := overlay.Vec2{X: points[0].X, Y: points[0].Y}
		b := overlay.Vec2{X: points[1].X, Y: points[1].Y}
		drawSegment(chars, kinds, m, a, b, kindGrid, '.')
	}
	for i, pt := range points {
		setCell(chars, kinds, m, overlay.Vec2{X: pt.X, Y: pt.Y}, byte('1'+i), kindMarker)
	}
}

// drawSegment steps along a screen-space segment and stamps cells, with
// enough steps that diagonal lines stay connected.
func drawSegment(chars [][]byte, kinds [][]int, m CellMapper, a, b overlay.Vec2, kind int, ch byte) {
	ac, ar := m.ToCell(a.X, a.Y)
	bc, br := m.ToCell(b.X, b.Y)
	steps := maxInt(intAbs(bc-ac), intAbs(br-ar))
	if steps == 0 {
		steps = 1
	}
	for s := 0; s <= steps; s++ {
		t := float64(s) / float64(steps)
		col := int(math.Round(float64(ac) + t*float64(bc-ac)))
		row := int(math.Round(float64(ar) + t*float64(br-ar)))
		stamp(chars, kinds, m, col, row, ch, kind)
	}
}

func setCell(chars [][]byte, kinds [][]int, m CellMapper, v overlay.Vec2, ch byte, kind int) {
	col, row := m.ToCell(v.X, v.Y)
	stamp(chars, kinds, m, col, row, ch, kind)
}

func stamp(chars [][]byte, kinds [][]int, m CellMapper, col, row int, ch byte, kind int) {
	if col < 0 || col >= m.Cols || row < 0 || row >= m.Rows {
		return
	}
	if kinds[row][col] > kind {
		return
	}
	chars[row][col] = ch
	kinds[row][col] = kind
}

// segmentChar picks a line character from the segment's dominant direction.
func segmentChar(a, b overlay.Vec2) byte {
	dx := math.Abs(b.X - a.X)
	dy := math.Abs(b.Y - a.Y)
	if dy > 2*dx {
		return '|'
	}
	if dx > 2*dy {
		return '-'
	}
	if (b.X-a.X)*(b.Y-a.Y) > 0 {
		return '\\'
	}
	return '/'
}

func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
