package macro

import (
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

var testBase = time.Date(2024, 3, 14, 9, 26, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: testBase}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeKeys struct {
	mu   sync.Mutex
	held map[Key]bool
}

func newFakeKeys() *fakeKeys {
	return &fakeKeys{held: make(map[Key]bool)}
}

func (k *fakeKeys) IsHeld(key Key) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.held[key]
}

func (k *fakeKeys) Hold(keys ...Key) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, key := range keys {
		k.held[key] = true
	}
}

func (k *fakeKeys) Release(keys ...Key) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, key := range keys {
		delete(k.held, key)
	}
}

// Key codes used by the test hotkeys. They are arbitrary and independent of
// the hook's table.
const (
	testCtrl  Key = 1001
	testShift Key = 1002
	testAlt   Key = 1003
	testC     Key = 1004
	testX     Key = 1005
	testOther Key = 1006
)

var testModifiers = []Key{testCtrl, testShift, testAlt}

func testHotkeys() []*HotkeyDefinition {
	return []*HotkeyDefinition{
		{Name: "toggle", Action: ActionToggleRecord, Trigger: testC, Modifiers: testModifiers},
		{Name: "replay", Action: ActionReplay, Trigger: testX, Modifiers: testModifiers},
	}
}

type injectedCall struct {
	Op       string
	Position Point
	Button   Button
	At       time.Time
}

type recordingInjector struct {
	mu        sync.Mutex
	calls     []injectedCall
	onRelease func(count int)
	failPress error
	releases  int
}

func (ri *recordingInjector) MoveTo(p Point) error {
	ri.add(injectedCall{Op: "move", Position: p})
	return nil
}

func (ri *recordingInjector) Press(b Button) error {
	if ri.failPress != nil {
		return ri.failPress
	}
	ri.add(injectedCall{Op: "press", Button: b})
	return nil
}

func (ri *recordingInjector) Release(b Button) error {
	ri.add(injectedCall{Op: "release", Button: b})
	ri.mu.Lock()
	ri.releases++
	count := ri.releases
	hook := ri.onRelease
	ri.mu.Unlock()
	if hook != nil {
		hook(count)
	}
	return nil
}

func (ri *recordingInjector) add(c injectedCall) {
	c.At = time.Now()
	ri.mu.Lock()
	defer ri.mu.Unlock()
	ri.calls = append(ri.calls, c)
}

func (ri *recordingInjector) Calls() []injectedCall {
	ri.mu.Lock()
	defer ri.mu.Unlock()
	out := make([]injectedCall, len(ri.calls))
	copy(out, ri.calls)
	return out
}

func (ri *recordingInjector) Moves() []injectedCall {
	var moves []injectedCall
	for _, c := range ri.Calls() {
		if c.Op == "move" {
			moves = append(moves, c)
		}
	}
	return moves
}

type logLine struct {
	Level   string
	Message string
}

type captureLogger struct {
	mu    sync.Mutex
	lines []logLine
}

func (l *captureLogger) add(level, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, logLine{Level: level, Message: message})
}

func (l *captureLogger) LogDebug(message string, _ ...string) { l.add("debug", message) }
func (l *captureLogger) LogInfo(message string, _ ...string) { l.add("info", message) }
func (l *captureLogger) LogWarning(message string, _ ...string) { l.add("warning", message) }
func (l *captureLogger) LogError(message string, _ error, _ ...string) {
	l.add("error", message)
}

func (l *captureLogger) Has(message string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.EqualFold(line.Message, message) {
			return true
		}
	}
	return false
}

type sliceSubmitter struct {
	mu       sync.Mutex
	requests []ReplayRequest
	err      error
}

func (s *sliceSubmitter) Push(req ReplayRequest) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, req)
	return nil
}

func (s *sliceSubmitter) Requests() []ReplayRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ReplayRequest(nil), s.requests...)
}

var errInjectorBroken = errors.New("injector broken")
