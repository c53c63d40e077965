package player

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"
)

// ipcCommand is the JSON structure sent to mpv's IPC socket.
type ipcCommand struct {
	Command   []interface{} `json:"command"`
	RequestID int64         `json:"request_id"`
}

// ipcResponse is the JSON structure received from mpv's IPC socket.
// Event broadcasts share the connection and carry an Event name instead of a request id.
type ipcResponse struct {
	Data      interface{} `json:"data"`
	Error     string      `json:"error"`
	Event     string      `json:"event"`
	RequestID int64       `json:"request_id"`
}

const (
	maxRetries   = 2
	retryDelay   = 20 * time.Millisecond
	readDeadline = time.Second
	maxLineSize  = 1 << 20
)

// ErrNoMedia is reported when a property of the loaded media is read while nothing is loaded.
var ErrNoMedia = errors.New("no media loaded")

// errNotSent marks failures that happened before the command reached mpv.
var errNotSent = errors.New("command not sent")

var requestSeq atomic.Int64

// sendCommand sends a JSON-IPC command to mpv via Unix domain socket.
// Commands are serialised. Only a failed connect is retried: once the command
// is written mpv may have run it, and a resend would run it twice.
func (m *MPV) sendCommand(command ...interface{}) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}

		socket, _ := m.proc()
		result, err := doSendCommand(socket, command)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !errors.Is(err, errNotSent) {
			break
		}
	}

	return nil, lastErr
}

// mpvError is an error string returned by mpv itself.
type mpvError struct {
	msg string
}

func (e *mpvError) Error() string {
	return "mpv error: " + e.msg
}

func (e *mpvError) Is(target error) bool {
	return target == ErrNoMedia && e.msg == "property unavailable"
}

// doSendCommand performs a single IPC command attempt.
func doSendCommand(socketPath string, command []interface{}) (interface{}, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect: %w: %w", errNotSent, err)
	}
	defer conn.Close()

	id := requestSeq.Add(1)
	payload, err := json.Marshal(ipcCommand{Command: command, RequestID: id})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	// mpv requires newline-delimited JSON
	if _, err = conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 4096), maxLineSize)
	for scanner.Scan() {
		var resp ipcResponse
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			return nil, fmt.Errorf("unmarshal: %w", err)
		}

		if resp.Event != "" || resp.RequestID != id {
			continue
		}

		if resp.Error != "" && resp.Error != "success" {
			return nil, &mpvError{msg: resp.Error}
		}

		return resp.Data, nil
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return nil, errors.New("read: connection closed before reply")
}
