package blurhash

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// parallelThreshold is the pixel×component work below which the fan-out
// costs more than it saves.
const parallelThreshold = 1 << 16

// Component is one cosine-basis projection of the image, in linear light.
type Component struct {
	X, Y    int
	R, G, B float64
}

// Components projects the pixel buffer onto xComp × yComp cosine bases.
//
// The result is ordered DC first, then row-major by (y, x), so entry
// i corresponds to basis (i % xComp, i / xComp).  Each basis is summed in
// pixel order regardless of parallelism, so the output is deterministic.
func Components(pixels []byte, width, height, xComp, yComp int) ([]Component, error) {
	if err := validate(pixels, width, height, xComp, yComp); err != nil {
		return nil, err
	}
	return computeComponents(pixels, width, height, xComp, yComp), nil
}

func computeComponents(pixels []byte, width, height, xComp, yComp int) []Component {
	n := width * height
	lin := make([]float64, n*3)
	for i, c := range pixels[:n*3] {
		lin[i] = toLinear[c]
	}

	comps := make([]Component, xComp*yComp)
	if n*len(comps) < parallelThreshold || len(comps) == 1 {
		for i := range comps {
			comps[i] = basisComponent(lin, width, height, i%xComp, i/xComp)
		}
		return comps
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range comps {
		i := i
		g.Go(func() error {
			comps[i] = basisComponent(lin, width, height, i%xComp, i/xComp)
			return nil
		})
	}
	_ = g.Wait() // tasks never fail
	return comps
}

// basisComponent computes the averaged projection for basis (cx, cy).
// lin holds linear-light samples, three per pixel, row-major.
func basisComponent(lin []float64, width, height, cx, cy int) Component {
	norm := 2.0
	if cx == 0 && cy == 0 {
		norm = 1
	}

	cosX := make([]float64, width)
	for x := range cosX {
		cosX[x] = math.Cos(math.Pi * float64(x) * float64(cx) / float64(width))
	}
	cosY := make([]float64, height)
	for y := range cosY {
		cosY[y] = math.Cos(math.Pi * float64(y) * float64(cy) / float64(height))
	}

	var r, g, b float64
	off := 0
	for y := 0; y < height; y++ {
		wy := norm * cosY[y]
		for x := 0; x < width; x++ {
			basis := wy * cosX[x]
			r += basis * lin[off]
			g += basis * lin[off+1]
			b += basis * lin[off+2]
			off += 3
		}
	}

	scale := 1 / float64(width*height)
	return Component{X: cx, Y: cy, R: r * scale, G: g * scale, B: b * scale}
}
