/***************************************************************
 *
 * Copyright (C) 2025, Pelican Project, Morgridge Institute for Research
 *
 * Licensed under the Apache License, Version 2.0 (the "License"); you
 * may not use this file except in compliance with the License.  You may
 * obtain a copy of the License at
 *
 *    http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 *
 ***************************************************************/

package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/go-kit/log/term"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/pelicanplatform/transferctl/param"
)

// BufferedLogHook holds log entries emitted before the configuration (and
// hence the log destination) is known.
type BufferedLogHook struct {
	mu      sync.Mutex
	entries []*log.Entry
	flushed atomic.Bool
}

var (
	bufferedHook atomic.Pointer[BufferedLogHook]
	flushOnce    sync.Once
	logFHandle   *os.File
)

// Reset function intended for unit tests to be able to
// reset log flush state.
func ResetLogFlush() {
	flushOnce = sync.Once{}
	bufferedHook.Store(nil)
}

func NewBufferedLogHook() *BufferedLogHook {
	return &BufferedLogHook{
		entries: make([]*log.Entry, 0),
	}
}

func (hook *BufferedLogHook) Fire(entry *log.Entry) error {
	if hook.flushed.Load() {
		return nil
	}
	hook.mu.Lock()
	defer hook.mu.Unlock()
	hook.entries = append(hook.entries, entry)
	return nil
}

func (hook *BufferedLogHook) Levels() []log.Level {
	return log.AllLevels
}

// Entries returns the number of entries currently held by the hook.
func (hook *BufferedLogHook) Entries() int {
	hook.mu.Lock()
	defer hook.mu.Unlock()
	return len(hook.entries)
}

// SetupLogBuffering discards log output and buffers entries until FlushLogs
// is called.
func SetupLogBuffering() {
	log.SetOutput(io.Discard)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
		DisableColors: true,
	})

	hook := NewBufferedLogHook()
	if bufferedHook.CompareAndSwap(nil, hook) {
		log.AddHook(hook)
	}
}

// openLogFile opens (creating if needed) the file named by Logging.LogLocation.
func openLogFile(logLocation string) (*os.File, error) {
	if dir := filepath.Dir(logLocation); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, errors.Wrap(err, "failed to access/create specified log directory")
		}
	}
	f, err := os.OpenFile(logLocation, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0640)
	if err != nil {
		return nil, errors.Wrap(err, "failed to access specified log file")
	}
	return f, nil
}

// FlushLogs switches logging to its final destination and replays any
// buffered entries there.  When pushToFile is set and Logging.LogLocation is
// configured, logs go to that file; otherwise to stderr, colorized only when
// stderr is a terminal.  Only the first call has any effect.
func FlushLogs(pushToFile bool) (err error) {
	flushOnce.Do(func() {
		logLocation := param.Logging_LogLocation.GetString()
		if pushToFile && logLocation != "" {
			var f *os.File
			if f, err = openLogFile(logLocation); err != nil {
				return
			}
			logFHandle = f
			log.SetOutput(f)
			log.SetFormatter(&log.TextFormatter{
				FullTimestamp:          true,
				DisableColors:          true,
				DisableLevelTruncation: true,
			})
		} else {
			log.SetOutput(os.Stderr)
			log.SetFormatter(&log.TextFormatter{
				FullTimestamp:          true,
				ForceColors:            term.IsTerminal(os.Stderr),
				DisableLevelTruncation: true,
			})
		}

		hook := bufferedHook.Load()
		if hook == nil {
			return
		}
		hook.flushed.Store(true)

		hook.mu.Lock()
		entries := hook.entries
		hook.entries = nil
		hook.mu.Unlock()

		level := log.GetLevel()
		for _, entry := range entries {
			if entry.Level > level {
				continue
			}
			if formatted, err := log.StandardLogger().Formatter.Format(entry); err == nil {
				_, _ = log.StandardLogger().Out.Write(formatted)
			}
		}

		remaining := make(log.LevelHooks)
		for lvl, hooks := range log.StandardLogger().Hooks {
			for _, h := range hooks {
				if h != log.Hook(hook) {
					remaining[lvl] = append(remaining[lvl], h)
				}
			}
		}
		log.StandardLogger().ReplaceHooks(remaining)
	})
	return
}

// For unit tests, guarantees the filehandle is closed so tests can clean up
// after themselves.
func CloseLogger() {
	if logFHandle != nil {
		_ = logFHandle.Close()
		logFHandle = nil
	}
}
