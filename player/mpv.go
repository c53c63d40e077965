package player

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/replaysync/replaysync/log"
	"github.com/replaysync/replaysync/where"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// MPV implements Transport using mpv's JSON-IPC protocol.
type MPV struct {
	binary     string
	volume     int
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when mpv process exits
	procMu     sync.RWMutex  // guards socketPath, cmd and exited
	mu         sync.Mutex    // serialises IPC round trips
}

var _ Transport = (*MPV)(nil)

// NewMPV creates a new MPV player instance (does not start playback).
// binary is the mpv executable, volume the initial volume once media is opened.
func NewMPV(binary string, volume int) *MPV {
	exited := make(chan struct{})
	close(exited)

	return &MPV{
		binary: binary,
		volume: volume,
		exited: exited,
	}
}

// Open starts playback of the given file. If mpv is already running,
// the file replaces the current one in the existing instance.
func (m *MPV) Open(path string) error {
	target, err := sanitizeMediaTarget(path)
	if err != nil {
		return wrap("open", fmt.Errorf("invalid media target: %w", err))
	}

	if m.IsRunning() {
		if _, err := m.sendCommand("loadfile", target, "replace"); err != nil {
			return wrap("open", err)
		}
		return wrap("open", m.set("pause", false))
	}

	return wrap("open", m.spawn(target))
}

// spawn launches mpv with an IPC socket and waits until it accepts connections.
func (m *MPV) spawn(target string) error {
	m.procMu.Lock()
	defer m.procMu.Unlock()

	// os.TempDir() keeps this portable: macOS $TMPDIR is /var/folders/... not /tmp/
	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(where.Temp(), fmt.Sprintf("mpv-%x.sock", randomBytes))
	}

	// keep-open holds the last frame at end of file so the transport can still be paused and sought.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--title=%s", sanitizeTitle(filepath.Base(target))),
		fmt.Sprintf("--volume=%d", m.volume),
		"--force-window=yes",
		"--idle=yes",
		"--keep-open=yes",
		"--",
		target,
	}

	m.cmd = exec.Command(m.binary, args...)

	// Detach from parent process group so terminal signals reach only the TUI.
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	// Reap the process in the background to prevent zombies
	exited := make(chan struct{})
	m.exited = exited
	cmd := m.cmd
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	if err := m.waitForSocket(exited); err != nil {
		select {
		case <-exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	log.Infof("mpv started on socket %s", m.socketPath)
	return nil
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	_, exited := m.proc()
	return exited
}

// proc returns the socket path and exit channel of the current process.
func (m *MPV) proc() (string, chan struct{}) {
	m.procMu.RLock()
	defer m.procMu.RUnlock()
	return m.socketPath, m.exited
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket(exited <-chan struct{}) error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-exited:
			return errors.New("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

func (m *MPV) Position() (int, error) {
	pos, err := m.getFloat("time-pos")
	if err != nil {
		return 0, wrap("position", err)
	}
	return secondsToMs(pos), nil
}

func (m *MPV) SetPosition(ms int) error {
	_, err := m.sendCommand("seek", float64(ms)/1000, "absolute+exact")
	return wrap("seek", err)
}

func (m *MPV) Length() (int, error) {
	dur, err := m.getFloat("duration")
	if err != nil {
		return 0, wrap("length", err)
	}
	return secondsToMs(dur), nil
}

func (m *MPV) Play() error {
	return wrap("play", m.set("pause", false))
}

func (m *MPV) Pause() error {
	return wrap("pause", m.set("pause", true))
}

func (m *MPV) Stop() error {
	if err := m.set("pause", true); err != nil {
		return wrap("stop", err)
	}
	_, err := m.sendCommand("seek", 0, "absolute")
	return wrap("stop", err)
}

// IsPlaying is false while mpv idles without media, even when unpaused.
func (m *MPV) IsPlaying() (bool, error) {
	if !m.IsRunning() {
		return false, nil
	}

	paused, err := m.getBool("pause")
	if err != nil {
		return false, wrap("is playing", err)
	}
	if paused {
		return false, nil
	}

	idle, err := m.getBool("idle-active")
	if err != nil {
		return false, wrap("is playing", err)
	}
	return !idle, nil
}

func (m *MPV) SetRate(rate float64) error {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return wrap("set rate", fmt.Errorf("invalid rate %v", rate))
	}
	return wrap("set rate", m.set("speed", rate))
}

func (m *MPV) Rate() (float64, error) {
	rate, err := m.getFloat("speed")
	return rate, wrap("rate", err)
}

func (m *MPV) Volume() (int, error) {
	vol, err := m.getFloat("volume")
	return int(math.Round(vol)), wrap("volume", err)
}

func (m *MPV) SetVolume(volume int) error {
	if volume < 0 || volume > 100 {
		return wrap("set volume", fmt.Errorf("volume %d out of range 0-100", volume))
	}
	return wrap("set volume", m.set("volume", volume))
}

// ToggleMute reads the mute flag and writes its inverse, so a lost reply never flips it twice.
func (m *MPV) ToggleMute() (bool, error) {
	muted, err := m.getBool("mute")
	if err != nil {
		return false, wrap("mute", err)
	}
	if err := m.set("mute", !muted); err != nil {
		return muted, wrap("mute", err)
	}
	return !muted, nil
}

// IsRunning reports whether the mpv process is alive.
func (m *MPV) IsRunning() bool {
	socket, exited := m.proc()
	if socket == "" {
		return false
	}

	select {
	case <-exited:
		return false
	default:
		return true
	}
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	socket, exited := m.proc()
	if socket == "" {
		return nil
	}

	if m.IsRunning() {
		// Try graceful quit via IPC
		_, _ = m.sendCommand("quit")

		select {
		case <-exited:
		case <-time.After(3 * time.Second):
			m.procMu.RLock()
			_ = killProcess(m.cmd)
			m.procMu.RUnlock()
		}
	}

	_ = os.Remove(socket)
	return nil
}

func (m *MPV) set(property string, value interface{}) error {
	_, err := m.sendCommand("set_property", property, value)
	return err
}

// getFloat retrieves a numeric mpv property via IPC.
func (m *MPV) getFloat(name string) (float64, error) {
	data, err := m.sendCommand("get_property", name)
	if errors.Is(err, ErrNoMedia) {
		return 0, ErrNoMedia
	}
	if err != nil {
		return 0, err
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected number, got %T", name, data)
	}
	return val, nil
}

// getBool retrieves a boolean mpv property via IPC.
func (m *MPV) getBool(name string) (bool, error) {
	data, err := m.sendCommand("get_property", name)
	if err != nil {
		return false, err
	}

	val, ok := data.(bool)
	if !ok {
		return false, fmt.Errorf("property %s: expected bool, got %T", name, data)
	}
	return val, nil
}

func secondsToMs(seconds float64) int {
	return int(math.Round(seconds * 1000))
}

// sanitizeMediaTarget validates that a path is safe to pass to mpv.
func sanitizeMediaTarget(path string) (string, error) {
	p := strings.TrimSpace(path)
	if p == "" {
		return "", errors.New("empty path")
	}

	if strings.ContainsAny(p, "\x00\n\r") {
		return "", errors.New("invalid control characters in path")
	}

	// Prevent flag injection; mpv would read a leading dash as an option
	if strings.HasPrefix(p, "-") {
		return "", errors.New("path must not start with '-' (looks like a flag)")
	}

	if strings.Contains(p, "://") {
		return "", errors.New("only local files can be synchronized")
	}

	return filepath.Clean(p), nil
}

// sanitizeTitle cleans up the title for mpv.
func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
