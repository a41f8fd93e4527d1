package sheet

import "time"

// FrameAt returns the index of the frame that is visible after elapsed time
// of playback started at frame 0.
//
// The second return value is false once a finitely looping animation has
// finished; the index then refers to the last frame, which is where playback
// stops. Zero-duration sheets always show frame 0.
func (s *Sheet) FrameAt(elapsed time.Duration) (int, bool) {
	total := s.TotalDuration()
	if total <= 0 || elapsed < 0 {
		return 0, true
	}
	if s.loopCount > 0 && elapsed/total >= time.Duration(s.loopCount) {
		return len(s.frames) - 1, false
	}
	t := elapsed % total
	for i, f := range s.frames {
		if t < f.Duration {
			return i, true
		}
		t -= f.Duration
	}
	return len(s.frames) - 1, true
}
