package plot

import (
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/golspi/policy"
)

const (
	cellWidth  = 60
	plotHeight = 240
	margin     = 30
)

var actionColours = []color.Color{
	color.RGBA{0x1f, 0x77, 0xb4, 0xff},
	color.RGBA{0xff, 0x7f, 0x0e, 0xff},
	color.RGBA{0x2c, 0xa0, 0x2c, 0xff},
	color.RGBA{0xd6, 0x27, 0x28, 0xff},
}

// QValues returns the Q-values of every action in each state of a
// chain of numStates states. Element [s][a] is Q(s, a).
func QValues(p *policy.Policy, numStates int) ([][]float64, error) {
	values := make([][]float64, numStates)
	for s := range values {
		state := mat.NewVecDense(1, []float64{float64(s)})
		q, err := p.QValues(state)
		if err != nil {
			return nil, fmt.Errorf("qValues: state %d: %w", s, err)
		}
		values[s] = q
	}
	return values, nil
}

// RenderChain draws the Q-values of a policy over a chain of numStates
// states. Each state is drawn as a group of bars, one per action. The
// greedy action of each state is written beneath its group of bars.
func RenderChain(p *policy.Policy, numStates int,
	actionName func(int) string) (*gg.Context, error) {
	if numStates < 1 {
		return nil, fmt.Errorf("renderChain: numStates must be >= 1, "+
			"have %d", numStates)
	}

	values, err := QValues(p, numStates)
	if err != nil {
		return nil, err
	}

	min, max := math.Inf(1), math.Inf(-1)
	for _, q := range values {
		min = math.Min(min, floats.Min(q))
		max = math.Max(max, floats.Max(q))
	}
	min = math.Min(min, 0)
	max = math.Max(max, 0)
	if max == min {
		max = min + 1
	}

	width := numStates*cellWidth + 2*margin
	height := plotHeight + 3*margin
	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()

	// y coordinate of a value
	y := func(v float64) float64 {
		return margin + (max-v)/(max-min)*plotHeight
	}

	numActions := p.NumActions()
	barWidth := float64(cellWidth-10) / float64(numActions)
	for s, q := range values {
		left := float64(margin + s*cellWidth + 5)
		for a, v := range q {
			dc.SetColor(actionColours[a%len(actionColours)])
			top, bottom := y(math.Max(v, 0)), y(math.Min(v, 0))
			dc.DrawRectangle(left+float64(a)*barWidth, top, barWidth,
				bottom-top)
			dc.Fill()
		}

		greedy := floats.MaxIdx(q)
		dc.SetColor(color.Black)
		dc.DrawStringAnchored(fmt.Sprintf("%d", s),
			float64(margin+s*cellWidth+cellWidth/2), margin+plotHeight+10,
			0.5, 0.5)
		dc.DrawStringAnchored(actionName(greedy),
			float64(margin+s*cellWidth+cellWidth/2), margin+plotHeight+25,
			0.5, 0.5)
	}

	// Zero line
	dc.SetColor(color.Black)
	dc.SetLineWidth(1)
	dc.DrawLine(margin, y(0), float64(width-margin), y(0))
	dc.Stroke()

	return dc, nil
}

// SaveChain renders the Q-values of a policy over a chain to a PNG file
func SaveChain(filename string, p *policy.Policy, numStates int,
	actionName func(int) string) error {
	dc, err := RenderChain(p, numStates, actionName)
	if err != nil {
		return err
	}
	return dc.SavePNG(filename)
}
