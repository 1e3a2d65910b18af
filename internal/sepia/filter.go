package sepia

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/melody-ding/go-sepia/internal/types"
	"go.uber.org/zap"
	"gocv.io/x/gocv"
)

var (
	// ErrMissingFrame indicates a frame file is absent or cannot be decoded.
	ErrMissingFrame = types.ErrMissingFrame

	// ErrInvalidFrame indicates a frame that is not a 3-channel 8-bit image.
	ErrInvalidFrame = errors.New("invalid frame")
)

// Kernel is a 3x3 matrix applied to each pixel's channel vector.
// Row i produces output channel i.
type Kernel [3][3]float64

// SepiaKernel is the warm brown tone matrix, rows ordered B, G, R.
var SepiaKernel = Kernel{
	{0.272, 0.534, 0.131},
	{0.349, 0.686, 0.168},
	{0.393, 0.769, 0.189},
}

// RowSums returns the gain of each output channel for a white input.
func (k Kernel) RowSums() [3]float64 {
	var sums [3]float64
	for i, row := range k {
		for _, v := range row {
			sums[i] += v
		}
	}
	return sums
}

func (k Kernel) mat() gocv.Mat {
	m := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV64F)
	for r, row := range k {
		for c, v := range row {
			m.SetDoubleAt(r, c, v)
		}
	}
	return m
}

// Filter applies a Kernel to frames on disk.
type Filter struct {
	kernel Kernel
	logger *zap.Logger
}

// NewFilter creates a filter for the given kernel. The kernel is copied.
func NewFilter(kernel Kernel, logger *zap.Logger) *Filter {
	return &Filter{kernel: kernel, logger: logger}
}

// ApplyMat returns a new Mat holding src transformed by the kernel.
// The caller owns the result and must Close it.
func (f *Filter) ApplyMat(src gocv.Mat) (gocv.Mat, error) {
	if src.Empty() {
		return gocv.NewMat(), fmt.Errorf("%w: empty image", ErrInvalidFrame)
	}
	if src.Type() != gocv.MatTypeCV8UC3 {
		return gocv.NewMat(), fmt.Errorf("%w: unsupported mat type %v", ErrInvalidFrame, src.Type())
	}

	km := f.kernel.mat()
	defer km.Close()

	dst := gocv.NewMat()
	gocv.Transform(src, &dst, km)
	return dst, nil
}

// ApplyFile transforms the image at path and overwrites it.
func (f *Filter) ApplyFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %w", ErrMissingFrame, err)
	}

	img := gocv.IMRead(path, gocv.IMReadColor)
	defer img.Close()
	if img.Empty() {
		return fmt.Errorf("%w: cannot decode %s", ErrMissingFrame, path)
	}

	out, err := f.ApplyMat(img)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer out.Close()

	if ok := gocv.IMWrite(path, out); !ok {
		return fmt.Errorf("write frame %s failed", path)
	}
	return nil
}

// Apply transforms frames 0..count-1 in dir in place.
func (f *Filter) Apply(ctx context.Context, dir string, count int) error {
	start := time.Now()
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := f.ApplyFile(types.FramePath(dir, i)); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}

	f.logger.Info("sepia applied",
		zap.Int("count", count),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
