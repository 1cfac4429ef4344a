package thing

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrUnknownClip is returned when selecting an animation that was never defined.
var ErrUnknownClip = errors.New("thing: unknown animation clip")

// Clip is one named animation: a sequence of sprite frame indices played at
// Speed frames per step.
type Clip struct {
	Frames   []int   `yaml:"frames" msgpack:"frames"`
	Speed    float64 `yaml:"speed" msgpack:"speed"`
	FrameW   int     `yaml:"frame_w" msgpack:"frame_w"`
	FrameH   int     `yaml:"frame_h" msgpack:"frame_h"`
	Restart  bool    `yaml:"restart" msgpack:"restart"`     // Reset to frame 0 when switched to
	NoRepeat bool    `yaml:"no_repeat" msgpack:"no_repeat"` // Hold the last frame instead of wrapping
}

type animState struct {
	current  string
	previous string
	index    float64
}

// DefineAnimations replaces the set of clips the thing may play.
func (t *Thing) DefineAnimations(clips map[string]Clip) {
	t.anims = make(map[string]Clip, len(clips))
	for name, c := range clips {
		t.anims[name] = c
	}
}

// Animations returns the defined clip names, sorted.
func (t *Thing) Animations() []string {
	names := make([]string, 0, len(t.anims))
	for name := range t.anims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetAnimation selects the clip to play from the next step on.
func (t *Thing) SetAnimation(name string) error {
	if _, ok := t.anims[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownClip, name)
	}
	t.anim.current = name
	return nil
}

// Animation returns the current clip name.
func (t *Thing) Animation() string {
	return t.anim.current
}

// AdvanceAnimation moves the frame index by the clip speed, then resets it
// if the clip changed and asks for a restart, then wraps or clamps.
func (t *Thing) AdvanceAnimation() {
	if t.anim.current == "" {
		return
	}
	clip, ok := t.anims[t.anim.current]
	if !ok {
		return
	}

	t.anim.index += clip.Speed
	if t.anim.current != t.anim.previous && clip.Restart {
		t.anim.index = 0
	}

	n := float64(len(clip.Frames))
	switch {
	case n == 0:
		t.anim.index = 0
	case clip.NoRepeat:
		if t.anim.index > n-1 {
			t.anim.index = n - 1
		}
		if t.anim.index < 0 {
			t.anim.index = 0
		}
	default:
		t.anim.index = math.Mod(t.anim.index, n)
		if t.anim.index < 0 {
			t.anim.index += n
		}
	}
	t.anim.previous = t.anim.current
}

// FrameIndex returns the position within the current clip.
func (t *Thing) FrameIndex() int {
	return int(t.anim.index)
}

// Frame returns the sprite frame to draw. Without a clip it is 0.
func (t *Thing) Frame() int {
	clip, ok := t.anims[t.anim.current]
	if !ok || len(clip.Frames) == 0 {
		return 0
	}
	i := int(t.anim.index)
	if i >= len(clip.Frames) {
		i = len(clip.Frames) - 1
	}
	return clip.Frames[i]
}
