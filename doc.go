// Package vt100core implements the core of a VT100/VT102/VT52-compatible
// terminal emulator: a byte-stream tokenizer and action dispatcher that
// drives a character-cell screen model plus a bounded scrollback history.
//
// The emulation core reaches its pseudo-terminal, display, keyboard
// translation table and byte-to-Unicode codec only through the [PTY],
// [Display], [KeyTrans] and [Codec] interfaces. The package also ships
// concrete implementations of some of them ([PTYAdapter], [YAMLKeyTrans],
// [UTF8Codec], [LocaleCodec]) and a pixel renderer ([Emulation.Screenshot]).
//
// # Quick start
//
//	em := vt100core.NewEmulation(24, 80)
//	em.Feed([]byte("\x1b[31mHello\x1b[0m"))
//	img := em.Screen().CookedImage()
//
// # Architecture
//
//   - [Tokenizer]: incremental parser turning an inbound byte stream into
//     one of nine token shapes (CHR, CTL, ESC, ESC_CS, ESC_DE, CSI_PS,
//     CSI_PN, CSI_PR, CSI_PG) plus the VT52 shape, following a fixed,
//     order-sensitive predicate ladder.
//   - [Interpreter]: maps each token to a [Screen] operation or an
//     emulator-level action (mode changes, charset switches, replies).
//   - [Screen]: the character-cell grid, cursor, rendition, margins, tab
//     stops and selection for one of the two screens (primary/alternate).
//   - [History]: bounded scrollback attached to the primary screen.
//   - [Emulation]: orchestrates codec-driven decoding, refresh batching,
//     and the host/GUI wiring described by the external contracts.
package vt100core
