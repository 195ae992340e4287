package spinner

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

type Spinner struct {
	chars    []string
	delay    time.Duration
	message  string
	active   bool
	mu       sync.Mutex
	stopChan chan bool
}

func New(message string) *Spinner {
	return &Spinner{
		chars:    []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		delay:    100 * time.Millisecond,
		message:  message,
		stopChan: make(chan bool, 1),
	}
}

func (s *Spinner) Start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.mu.Unlock()

	go func() {
		i := 0
		for {
			select {
			case <-s.stopChan:
				return
			default:
				s.mu.Lock()
				if !s.active {
					s.mu.Unlock()
					return
				}
				fmt.Printf("\r%s %s", s.chars[i%len(s.chars)], s.message)
				s.mu.Unlock()
				i++
				time.Sleep(s.delay)
			}
		}
	}()
}

// Update swaps the message while the spinner keeps running, so
// multi-stage work can reuse one spinner.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(message) < len(s.message) {
		fmt.Print("\r" + strings.Repeat(" ", len(s.message)+4) + "\r")
	}
	s.message = message
}

func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	s.mu.Unlock()

	s.stopChan <- true

	s.mu.Lock()
	fmt.Print("\r" + strings.Repeat(" ", len(s.message)+10) + "\r")
	s.mu.Unlock()
}
