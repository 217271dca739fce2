// Package macro records pointer clicks triggered by a global hotkey and
// replays them through synthetic input with the original timing.
//
// Device events flow from a listener into the Dispatcher, which filters the
// engine's own synthetic input (echo suppression), updates the Recorder and
// detects hotkeys. Replay requests are snapshots of the recorded macro handed
// to the ReplayEngine over a second queue and reproduced one at a time.
package macro
