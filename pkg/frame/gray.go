package frame

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// toGray converts an image to 8-bit grayscale.
// Returns the input unchanged when it is already *image.Gray.
func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	g := image.NewGray(b)
	draw.Draw(g, b, img, b.Min, draw.Src)
	return g
}

// resizeGray scales a grayscale image to the given width and height.
// Used to bring two frames of different decoded resolutions onto a
// common reference size before comparison.
func resizeGray(g *image.Gray, w, h int) *image.Gray {
	b := g.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return g
	}
	dst := image.NewGray(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), g, b, xdraw.Src, nil)
	return dst
}
