// Package fluke drives Fluke dry-well and bath temperature sources over an
// RS-232 point-to-point link using their line-oriented ASCII command
// protocol.
//
// # Protocol Overview
//
// Every operation is a strict command/response exchange: the engine sends a
// short command token, optionally with a value ("pr=50.0"), terminated by
// CR LF, and reads back at most one CR LF terminated response line. There
// is no pipelining and no asynchronous traffic from the instrument.
//
// The instrument can run the link in two duplex modes:
//
//   - half: commands are not echoed; a write completes once the bytes are sent
//   - full: the instrument echoes every command line before answering; the
//     engine reads the echo and verifies the sent token appears in it
//
// Responses carrying a temperature value also carry the unit letter (C or F).
// The engine queries the instrument's unit once at session start and checks
// every subsequent unit letter against it, since the unit can be changed
// out-of-band from the instrument's front panel.
//
// # Device Models
//
// [Device] implements the command set shared by the supported models.
// [Fluke9141] (dry-well with scan/limit features) and [Fluke6020] (bath with
// vernier/cutout features) extend it with their model-specific commands.
//
// The engine is strictly single-threaded: callers issuing operations from
// multiple goroutines must serialize externally, because the half-duplex
// wire cannot distinguish interleaved command/response pairs.
package fluke
