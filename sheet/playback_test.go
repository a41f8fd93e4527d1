package sheet

import (
	"image"
	"math"
	"testing"
	"time"
)

func TestFrameAt(t *testing.T) {
	img := testSheetImage(3, 1, 4, 4)
	rects, _ := GridRects(img.Bounds(), 3, 1)
	ms := time.Millisecond

	infinite, err := NewWithFrames(img, []Frame{
		{rects[0], 100 * ms}, {rects[1], 50 * ms}, {rects[2], 150 * ms},
	}, 0)
	if err != nil {
		t.Fatalf("NewWithFrames: %v", err)
	}
	twice, err := NewWithFrames(img, infinite.Frames(), 2)
	if err != nil {
		t.Fatalf("NewWithFrames: %v", err)
	}

	endless, err := NewWithFrames(img, infinite.Frames(), math.MaxInt)
	if err != nil {
		t.Fatalf("NewWithFrames: %v", err)
	}

	for _, tc := range []struct {
		name      string
		s         *Sheet
		elapsed   time.Duration
		want      int
		wantAlive bool
	}{
		{"start", infinite, 0, 0, true},
		{"negative", infinite, -ms, 0, true},
		{"within first", infinite, 99 * ms, 0, true},
		{"second", infinite, 100 * ms, 1, true},
		{"third", infinite, 160 * ms, 2, true},
		{"wrapped", infinite, 300 * ms, 0, true},
		{"many loops", infinite, 300*ms*1000 + 120*ms, 1, true},
		{"finite second pass", twice, 420 * ms, 1, true},
		{"finite done", twice, 600 * ms, 2, false},
		{"finite long done", twice, time.Hour, 2, false},
		{"huge loop count start", endless, 0, 0, true},
		{"huge loop count later", endless, time.Hour + 120*ms, 1, true},
	} {
		got, alive := tc.s.FrameAt(tc.elapsed)
		if got != tc.want || alive != tc.wantAlive {
			t.Errorf("%s: FrameAt(%v)=%d,%v; want %d,%v", tc.name, tc.elapsed, got, alive, tc.want, tc.wantAlive)
		}
	}
}

func TestFrameAtZeroDuration(t *testing.T) {
	s, err := NewWithFrames(testSheetImage(1, 1, 2, 2), []Frame{{Rect: image.Rect(0, 0, 2, 2)}}, 1)
	if err != nil {
		t.Fatalf("NewWithFrames: %v", err)
	}
	if got, alive := s.FrameAt(time.Second); got != 0 || !alive {
		t.Errorf("FrameAt=%d,%v; want 0,true", got, alive)
	}
}
