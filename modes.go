package vt100core

// ScreenMode is a bitmask of per-screen mode bits (§4.4). Each bit supports
// independent set/reset/save/restore.
type ScreenMode uint16

const (
	ModeWrap ScreenMode = 1 << iota
	ModeInsert
	ModeOrigin
	ModeCursorVisible
	ModeReverseScreen
	ModeAppScreen
	// ModeNewLine mirrors the emulator-level NewLine mode onto the active
	// screen so Screen.newLine can decide cx=0 without reaching back into
	// the Emulation (§4.4 note: "NewLine... live on the emulator... or both").
	ModeNewLine
)

// EmulatorMode is a bitmask of emulator-level mode bits (§4.4).
type EmulatorMode uint16

const (
	ModeAnsi EmulatorMode = 1 << iota
	ModeEmulatorNewLine
	ModeAppKeyPad
	ModeAppCuKeys
	ModeMouse1000
	// ModeAltScreenActive tracks whether the alternate screen (DECSET
	// 47/1047/1049) is current, so it can be saved/restored like any other
	// mode bit even though switching screens isn't itself a ScreenMode.
	ModeAltScreenActive
)

// modeSaveSet stores the last saved value of each bit in a mask, keyed by
// bit so saveMode/restoreMode pairs nest correctly per individual mode bit
// rather than as one composite snapshot.
type modeSaveSet[M ~uint16] struct {
	saved map[M]bool
}

func newModeSaveSet[M ~uint16]() modeSaveSet[M] {
	return modeSaveSet[M]{saved: make(map[M]bool)}
}

func (s *modeSaveSet[M]) save(current M, bit M) {
	s.saved[bit] = current&bit != 0
}

// restore reports the saved value for bit, or ok=false if it was never saved.
func (s *modeSaveSet[M]) restore(bit M) (value bool, ok bool) {
	value, ok = s.saved[bit]
	return value, ok
}
