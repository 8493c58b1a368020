// Package resize adapts source-video RGB24 frames to the target cell grid's
// pixel dimensions, the "image resizing" collaborator spec §1 calls external.
package resize

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// FrameResizer scales RGB24 frames to a fixed target size derived from a
// terminal grid: targetWidth = cols, targetHeight = rows*2 (two pixel rows
// per cell, per the half-block trick).
type FrameResizer struct {
	targetWidth  int
	targetHeight int
	scaler       draw.Scaler
}

// New creates a resizer targeting the pixel dimensions of a cols x rows
// cell grid.
func New(cols, rows uint16) *FrameResizer {
	return &FrameResizer{
		targetWidth:  int(cols),
		targetHeight: int(rows) * 2,
		// CatmullRom is a convolution-based scaler (cubic kernel), the
		// closest counterpart in x/image/draw to the Lanczos3 convolution
		// resampler the original implementation uses.
		scaler: draw.CatmullRom,
	}
}

// TargetWidth returns the resizer's fixed output width in pixels.
func (r *FrameResizer) TargetWidth() int { return r.targetWidth }

// TargetHeight returns the resizer's fixed output height in pixels.
func (r *FrameResizer) TargetHeight() int { return r.targetHeight }

// Resize scales an RGB24 buffer (row-major, stride srcWidth*3) to the
// resizer's target dimensions, returning a new RGB24 buffer. If the source
// is already at the target size, it is returned unchanged (no copy).
func (r *FrameResizer) Resize(src []byte, srcWidth, srcHeight int) []byte {
	if srcWidth == r.targetWidth && srcHeight == r.targetHeight {
		return src
	}

	srcImg := &rgb24Image{pix: src, width: srcWidth, height: srcHeight}
	dst := image.NewRGBA(image.Rect(0, 0, r.targetWidth, r.targetHeight))
	r.scaler.Scale(dst, dst.Bounds(), srcImg, srcImg.Bounds(), draw.Over, nil)

	out := make([]byte, r.targetWidth*r.targetHeight*3)
	for y := 0; y < r.targetHeight; y++ {
		for x := 0; x < r.targetWidth; x++ {
			i := dst.PixOffset(x, y)
			o := (y*r.targetWidth + x) * 3
			out[o] = dst.Pix[i]
			out[o+1] = dst.Pix[i+1]
			out[o+2] = dst.Pix[i+2]
		}
	}
	return out
}

// rgb24Image wraps a raw RGB24 buffer as an image.Image so it can be fed
// through golang.org/x/image/draw's scalers without an extra color-model
// conversion pass.
type rgb24Image struct {
	pix           []byte
	width, height int
}

func (im *rgb24Image) ColorModel() color.Model { return color.RGBAModel }
func (im *rgb24Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, im.width, im.height)
}
func (im *rgb24Image) At(x, y int) color.Color {
	off := (y*im.width + x) * 3
	return color.RGBA{R: im.pix[off], G: im.pix[off+1], B: im.pix[off+2], A: 255}
}
