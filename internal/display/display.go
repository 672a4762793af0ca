// Package display shows the mirrored camera feed with the detected hand
// skeletons and the current gesture.
package display

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/detector"
)

// QuitKey closes the preview window.
const QuitKey = 'q'

// Display renders one annotated frame per loop iteration.
type Display interface {
	// Show draws hands and caption onto frame and presents it. It returns
	// true when the user asked to quit.
	Show(frame *gocv.Mat, hands []detector.HandLandmarks, caption string) bool
	Close() error
}

var (
	jointColor = color.RGBA{0, 0, 255, 0}
	boneColor  = color.RGBA{0, 255, 0, 0}
	textColor  = color.RGBA{255, 255, 0, 0}
)

// Window is an OpenCV HighGUI window.
type Window struct {
	win *gocv.Window
}

// NewWindow opens a window titled title.
func NewWindow(title string) *Window {
	return &Window{win: gocv.NewWindow(title)}
}

func (w *Window) Show(frame *gocv.Mat, hands []detector.HandLandmarks, caption string) bool {
	Annotate(frame, hands, caption)
	w.win.IMShow(*frame)
	return w.win.WaitKey(1)&0xff == QuitKey
}

func (w *Window) Close() error {
	return w.win.Close()
}

// Annotate draws every hand's joints and connections plus caption.
func Annotate(frame *gocv.Mat, hands []detector.HandLandmarks, caption string) {
	size := image.Pt(frame.Cols(), frame.Rows())

	for i := range hands {
		points := project(&hands[i], size)
		for _, c := range detector.HandConnections {
			gocv.Line(frame, points[c[0]], points[c[1]], boneColor, 2)
		}
		for _, p := range points {
			gocv.Circle(frame, p, 4, jointColor, -1)
		}
	}

	if caption != "" {
		gocv.PutText(frame, caption, image.Pt(10, 30), gocv.FontHersheySimplex, 0.8, textColor, 2)
	}
}

func project(hand *detector.HandLandmarks, size image.Point) [detector.NumLandmarks]image.Point {
	var out [detector.NumLandmarks]image.Point
	for i, p := range hand.Points {
		out[i] = image.Pt(int(p.X*float64(size.X)), int(p.Y*float64(size.Y)))
	}
	return out
}

// Headless discards frames. Quit never comes from the display, so the loop
// runs until its context is cancelled.
type Headless struct{}

func (Headless) Show(*gocv.Mat, []detector.HandLandmarks, string) bool { return false }
func (Headless) Close() error                                          { return nil }
