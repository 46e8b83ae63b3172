// Package eventpipe accepts wheel commands over a named pipe, so spins
// can be triggered from shell scripts and other local processes:
//
//	echo "spin 2" > /tmp/prizewheel-events
package eventpipe

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// Config holds configuration for the event pipe.
type Config struct {
	Path string `yaml:"path"` // Path to named pipe (e.g. "/tmp/prizewheel-events")
}

// Op is a command kind read from the pipe.
type Op int

const (
	// OpSpin starts a spin toward a prize index.
	OpSpin Op = iota
	// OpShow forces a redraw of the current resting frame.
	OpShow
)

// Command is one parsed pipe line.
type Command struct {
	Op    Op
	Prize int
}

// Handler is called for each command received from the pipe.
type Handler func(Command)

// EventPipe listens for commands on a named pipe.
type EventPipe struct {
	path    string
	handler Handler
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates a new EventPipe. Returns nil if path is empty.
func New(cfg Config, handler Handler) (*EventPipe, error) {
	if cfg.Path == "" {
		return nil, nil
	}

	// Remove existing pipe if it exists
	os.Remove(cfg.Path)

	if err := syscall.Mkfifo(cfg.Path, 0666); err != nil {
		return nil, fmt.Errorf("create named pipe %s: %w", cfg.Path, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &EventPipe{
		path:    cfg.Path,
		handler: handler,
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Start begins listening for commands on the pipe.
// This should be called as a goroutine.
func (ep *EventPipe) Start() {
	log.Printf("Event pipe listening on %s", ep.path)

	for {
		select {
		case <-ep.ctx.Done():
			return
		default:
		}

		// Open blocks until a writer connects; a closed writer loops
		// back here to wait for the next one.
		file, err := os.OpenFile(ep.path, os.O_RDONLY, 0)
		if err != nil {
			if ep.ctx.Err() != nil {
				return
			}
			log.Printf("Event pipe open error: %v", err)
			continue
		}

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			select {
			case <-ep.ctx.Done():
				file.Close()
				return
			default:
			}

			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			cmd, err := parseLine(line)
			if err != nil {
				log.Printf("Event pipe parse error: %v", err)
				continue
			}

			if ep.handler != nil {
				ep.handler(cmd)
			}
		}

		file.Close()
	}
}

// Close stops the listener and removes the pipe.
func (ep *EventPipe) Close() error {
	ep.cancel()
	return os.Remove(ep.path)
}

// parseLine parses a command line.
// Command format:
//
//	spin <prize>   - Spin the wheel toward prize index <prize>
//	show           - Redraw the current resting frame
func parseLine(line string) (Command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}

	switch strings.ToLower(parts[0]) {
	case "spin":
		if len(parts) < 2 {
			return Command{}, fmt.Errorf("spin requires a prize index")
		}
		prize, err := strconv.Atoi(parts[1])
		if err != nil {
			return Command{}, fmt.Errorf("invalid prize index: %s", parts[1])
		}
		return Command{Op: OpSpin, Prize: prize}, nil

	case "show":
		return Command{Op: OpShow}, nil

	default:
		return Command{}, fmt.Errorf("unknown command: %s", parts[0])
	}
}
