// Package sheet describes sprite sheet animations: a single composite image
// containing all frames of an animation, plus the rectangle and display
// duration of each frame and the number of times the animation loops.
//
// A Sheet does not run a timer and does not draw anything by itself. An
// external display component asks it for the contents rectangle of the
// current frame (ContentsRect), or for the frame itself (Frame), and drives
// timing from FrameDuration and LoopCount. FrameAt helps such a component map
// elapsed playback time onto a frame index.
//
// Sheets are immutable after construction and are safe for concurrent use.
package sheet
