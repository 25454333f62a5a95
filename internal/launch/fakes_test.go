package launch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/farfania/oblivion-launcher/internal/locale"
	"github.com/farfania/oblivion-launcher/internal/model"
	"github.com/farfania/oblivion-launcher/internal/worker"
)

type fakeWorker struct {
	role   []string
	msgs   chan worker.Message
	done   chan struct{}
	onSend func(w *fakeWorker, cmd worker.Command)

	mu           sync.Mutex
	sent         []worker.Command
	disconnected bool
	exited       bool
	code         int
}

func newFakeWorker(role []string) *fakeWorker {
	return &fakeWorker{
		role: role,
		msgs: make(chan worker.Message, 64),
		done: make(chan struct{}),
	}
}

func (f *fakeWorker) Send(cmd worker.Command) error {
	f.mu.Lock()
	if f.disconnected {
		f.mu.Unlock()
		return errors.New("disconnected")
	}
	f.sent = append(f.sent, cmd)
	onSend := f.onSend
	f.mu.Unlock()
	if onSend != nil {
		onSend(f, cmd)
	}
	return nil
}

func (f *fakeWorker) Messages() <-chan worker.Message { return f.msgs }
func (f *fakeWorker) Done() <-chan struct{}           { return f.done }

func (f *fakeWorker) ExitCode() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.code
}

// Disconnect behaves like a worker that exits cleanly on stdin EOF
func (f *fakeWorker) Disconnect() {
	f.mu.Lock()
	f.disconnected = true
	f.mu.Unlock()
	f.exit(0)
}

func (f *fakeWorker) exit(code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.exited {
		return
	}
	f.exited = true
	f.code = code
	close(f.msgs)
	close(f.done)
}

func (f *fakeWorker) push(msgs ...worker.Message) {
	for _, m := range msgs {
		f.msgs <- m
	}
}

func (f *fakeWorker) commands() []worker.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]worker.Command(nil), f.sent...)
}

func (f *fakeWorker) isDisconnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.disconnected
}

type forker struct {
	mu      sync.Mutex
	workers []*fakeWorker
	script  map[string]func(w *fakeWorker, cmd worker.Command)
	err     error
}

func (f *forker) fork(ctx context.Context, role ...string) (Worker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	w := newFakeWorker(role)
	if len(role) > 0 {
		w.onSend = f.script[role[0]]
	}
	f.workers = append(f.workers, w)
	return w, nil
}

func (f *forker) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.workers)
}

func (f *forker) last() *fakeWorker {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.workers) == 0 {
		return nil
	}
	return f.workers[len(f.workers)-1]
}

type fakeView struct {
	mu              sync.Mutex
	calls           int
	details         []string
	progress        []int
	osProgress      []float64
	loading         bool
	enabled         bool
	overlay         *Overlay
	hidden          int
	lastPlayed      string
	serverSelection int
}

func (v *fakeView) record(fn func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls++
	fn()
}

func (v *fakeView) SetDetails(text string) { v.record(func() { v.details = append(v.details, text) }) }
func (v *fakeView) SetProgress(value, max int64, percent int) {
	v.record(func() { v.progress = append(v.progress, percent) })
}
func (v *fakeView) SetOSProgress(value float64) {
	v.record(func() { v.osProgress = append(v.osProgress, value) })
}
func (v *fakeView) ToggleLaunchArea(loading bool) { v.record(func() { v.loading = loading }) }
func (v *fakeView) SetLaunchEnabled(enabled bool) { v.record(func() { v.enabled = enabled }) }
func (v *fakeView) SetLastPlayed(text string)     { v.record(func() { v.lastPlayed = text }) }
func (v *fakeView) ShowOverlay(o Overlay)         { v.record(func() { v.overlay = &o }) }
func (v *fakeView) HideOverlay() {
	v.record(func() {
		v.overlay = nil
		v.hidden++
	})
}
func (v *fakeView) ShowServerSelection() { v.record(func() { v.serverSelection++ }) }

func (v *fakeView) callCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.calls
}

func (v *fakeView) currentOverlay() *Overlay {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.overlay
}

func (v *fakeView) overlayTitle() string {
	if o := v.currentOverlay(); o != nil {
		return o.Title
	}
	return ""
}

func (v *fakeView) osProgressCount(value float64) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := 0
	for _, p := range v.osProgress {
		if p == value {
			n++
		}
	}
	return n
}

func (v *fakeView) lastDetails() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.details) == 0 {
		return ""
	}
	return v.details[len(v.details)-1]
}

func (v *fakeView) snapshot() (loading, enabled bool, lastPlayed string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading, v.enabled, v.lastPlayed
}

type fakeSettings struct {
	mu      sync.Mutex
	server  string
	account *model.Account
	java    string
	codes   []string
}

func (s *fakeSettings) GetSelectedServer() string          { return s.server }
func (s *fakeSettings) GetSelectedAccount() *model.Account { return s.account }
func (s *fakeSettings) GetDataDirectory() string           { return "/data" }
func (s *fakeSettings) GetCommonDirectory() string         { return "/data/common" }

func (s *fakeSettings) GetJavaExecutable() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.java
}

func (s *fakeSettings) SetJavaExecutable(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.java = path
}

func (s *fakeSettings) HasServerCode(code string) bool {
	for _, c := range s.codes {
		if c == code {
			return true
		}
	}
	return false
}

type fakeDistro struct {
	dist *model.Distribution
	pull *model.Distribution
	err  error
}

func (d *fakeDistro) Distribution() *model.Distribution { return d.dist }
func (d *fakeDistro) IsDevMode() bool                   { return false }
func (d *fakeDistro) PullRemoteIfOutdated(ctx context.Context) (*model.Distribution, error) {
	return d.pull, d.err
}

type fakeJava struct{ valid bool }

func (j fakeJava) Validate(ctx context.Context, path string) bool { return j.valid }

type fakeProc struct {
	done     chan struct{}
	once     sync.Once
	mu       sync.Mutex
	killed   bool
	exitCode int
}

func (p *fakeProc) Kill() error {
	p.mu.Lock()
	p.killed = true
	p.mu.Unlock()
	p.exit(137)
	return nil
}

func (p *fakeProc) exit(code int) {
	p.once.Do(func() {
		p.mu.Lock()
		p.exitCode = code
		p.mu.Unlock()
		close(p.done)
	})
}

func (p *fakeProc) Done() <-chan struct{} { return p.done }

func (p *fakeProc) ExitCode() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exitCode
}

func (p *fakeProc) wasKilled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.killed
}

type fakeGame struct {
	crashDir string

	mu     sync.Mutex
	starts int
	proc   *fakeProc
	onLine func(string)
	err    error
}

func (g *fakeGame) Start(s *model.Session, onLine func(string)) (GameProcess, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.starts++
	if g.err != nil {
		return nil, g.err
	}
	g.proc = &fakeProc{done: make(chan struct{})}
	g.onLine = onLine
	return g.proc, nil
}

func (g *fakeGame) CrashReportsDir(serverID string) string { return g.crashDir }
func (g *fakeGame) LatestLog(serverID string) string       { return "/data/instances/" + serverID + "/logs/latest.log" }

func (g *fakeGame) startCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.starts
}

func (g *fakeGame) line(l string) {
	g.mu.Lock()
	onLine := g.onLine
	g.mu.Unlock()
	onLine(l)
}

func (g *fakeGame) process() *fakeProc {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.proc
}

type fakeOpener struct {
	mu       sync.Mutex
	opened   []string
	revealed []string
}

func (o *fakeOpener) OpenPath(path string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened = append(o.opened, path)
	return nil
}

func (o *fakeOpener) ShowItemInFolder(path string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.revealed = append(o.revealed, path)
	return nil
}

type fakePresence struct {
	mu      sync.Mutex
	details []string
	resets  int
}

func (p *fakePresence) UpdateDetails(d string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.details = append(p.details, d)
}
func (p *fakePresence) UpdateState(string) {}
func (p *fakePresence) ClearState()        {}
func (p *fakePresence) ResetTime() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resets++
}
func (p *fakePresence) Close() error { return nil }

func (p *fakePresence) last() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.details) == 0 {
		return ""
	}
	return p.details[len(p.details)-1]
}

// harness wires an orchestrator to fakes
type harness struct {
	o        *Orchestrator
	view     *fakeView
	settings *fakeSettings
	distro   *fakeDistro
	forker   *forker
	game     *fakeGame
	opener   *fakeOpener
	presence *fakePresence
	loc      *locale.Localization
}

func testServer() *model.Server {
	return &model.Server{ID: "oblivion", Name: "Oblivion", Address: "play.oblivion.net", MinecraftVersion: "1.12.2"}
}

func newHarness(t *testing.T, java fakeJava) *harness {
	t.Helper()
	dist := &model.Distribution{Servers: []*model.Server{testServer()}}
	h := &harness{
		view:     &fakeView{enabled: true},
		settings: &fakeSettings{server: "oblivion", account: &model.Account{UUID: "u1", DisplayName: "Steve"}},
		distro:   &fakeDistro{dist: dist, pull: dist},
		forker:   &forker{script: map[string]func(*fakeWorker, worker.Command){}},
		game:     &fakeGame{crashDir: t.TempDir()},
		opener:   &fakeOpener{},
		presence: &fakePresence{},
		loc:      locale.NewLocalization(),
	}
	h.o = New(Deps{
		View:     h.view,
		Presence: h.presence,
		Settings: h.settings,
		Distro:   h.distro,
		Java:     java,
		Fork:     h.forker.fork,
		Game:     h.game,
		Opener:   h.opener,
		Locale:   h.loc,
		Logger:   zaptest.NewLogger(t),
	})
	h.o.minLinger = 0
	h.o.dotEvery = 5 * time.Millisecond
	t.Cleanup(h.o.Shutdown)
	return h
}

func (h *harness) text(key string) string { return h.loc.GetText(key) }

func strPtr(s string) *string { return &s }

func raw(s string) []byte { return []byte(s) }

// validAssetScript answers validateEverything like a healthy AssetGuard
func validAssetScript(w *fakeWorker, cmd worker.Command) {
	if cmd.Function != worker.FuncValidateEverything {
		return
	}
	w.push(
		worker.Validate{Data: worker.DataDistribution},
		worker.Validate{Data: worker.DataVersion},
		worker.Progress{Data: worker.DataAssets, Value: 50, Total: 100, Percent: 50},
		worker.Validate{Data: worker.DataAssets},
		worker.Validate{Data: worker.DataLibraries},
		worker.Validate{Data: worker.DataFiles},
		worker.Progress{Data: worker.DataDownload, Value: 10, Total: 20, Percent: 50},
		worker.Complete{Data: worker.DataDownload},
		worker.ValidateEverything{Result: model.ValidationResult{
			ForgeData:   raw(`{"mainClass":"net.minecraft.launchwrapper.Launch"}`),
			VersionData: raw(fmt.Sprintf(`{"id":%q}`, "1.12.2")),
		}},
	)
}
