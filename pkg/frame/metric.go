package frame

import "math"

// Sharpness returns a non-negative structure score for a frame: the
// variance of a 3x3 Laplacian (second-derivative) response over the
// grayscale image. Higher means more edge detail. A frame scoring below
// a caller's static threshold is treated as noise (black screen, codec
// artifact, solid fill).
//
// An invalid or unreadable frame scores 0 so it fails any positive
// static threshold instead of raising; transient decode failures are
// common on compressed streams.
func Sharpness(f *Frame) float64 {
	if !f.Valid() {
		return 0
	}
	g := toGray(f.Image)
	b := g.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 3 || h < 3 {
		return 0
	}

	// 4-connected Laplacian over interior pixels.
	n := 0
	sum, sumSq := 0.0, 0.0
	for y := 1; y < h-1; y++ {
		row := g.Pix[y*g.Stride:]
		above := g.Pix[(y-1)*g.Stride:]
		below := g.Pix[(y+1)*g.Stride:]
		for x := 1; x < w-1; x++ {
			v := 4*float64(row[x]) -
				float64(row[x-1]) - float64(row[x+1]) -
				float64(above[x]) - float64(below[x])
			sum += v
			sumSq += v * v
			n++
		}
	}
	mean := sum / float64(n)
	v := sumSq/float64(n) - mean*mean
	if v < 0 {
		// Rounding can push a flat frame a hair below zero.
		return 0
	}
	return v
}

// Dissimilarity returns the mean absolute per-pixel intensity difference
// between the grayscale versions of two frames, in 0..255 units. Zero
// means pixel-identical; values below a caller's duplicate threshold mark
// the second frame as a repeat of the first.
//
// Frames of different dimensions are resized onto the first frame's
// bounds before comparison. This is a required normalization step, not an
// error: the same video can decode at different resolutions across
// samplers. If either frame is invalid the result is +Inf, so an
// unreadable frame is never mistaken for a duplicate.
func Dissimilarity(a, b *Frame) float64 {
	if !a.Valid() || !b.Valid() {
		return math.Inf(1)
	}
	ga := toGray(a.Image)
	gb := toGray(b.Image)

	ab := ga.Bounds()
	w, h := ab.Dx(), ab.Dy()
	gb = resizeGray(gb, w, h)

	total := 0.0
	for y := 0; y < h; y++ {
		ra := ga.Pix[y*ga.Stride : y*ga.Stride+w]
		rb := gb.Pix[y*gb.Stride : y*gb.Stride+w]
		for x := 0; x < w; x++ {
			d := int(ra[x]) - int(rb[x])
			if d < 0 {
				d = -d
			}
			total += float64(d)
		}
	}
	return total / float64(w*h)
}
