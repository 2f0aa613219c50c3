package proc

import (
	"context"
	"os/exec"
	"sync"
)

// Exit describes a collected background child.
type Exit struct {
	Pid    int
	Label  string
	Status int
	Err    error
}

// CollectResult is the outcome of a non-blocking collection attempt.
type CollectResult int

const (
	// Running means the child hasn't terminated yet.
	Running CollectResult = iota
	// Collected means this call reclaimed the child.
	Collected
	// AlreadyReaped means some other party reclaimed the child first, or it
	// was never adopted. It's a normal outcome.
	AlreadyReaped
)

type child struct {
	cmd   *exec.Cmd
	label string
	done  chan struct{}
	exit  Exit
}

// Reaper collects background children so none are left as zombies.
//
// Each adopted child gets exactly one waiter. Its termination is delivered
// both to TryCollect callers and to the handler passed to Run; whichever
// consumes it first removes it from the table and the other sees
// AlreadyReaped.
type Reaper struct {
	mu       sync.Mutex
	children map[int]*child
	events   chan *child
}

// NewReaper creates an empty Reaper.
func NewReaper() *Reaper {
	return &Reaper{
		children: make(map[int]*child),
		events:   make(chan *child, 64),
	}
}

// Adopt hands a started child to the reaper.
func (r *Reaper) Adopt(cmd *exec.Cmd, label string) {
	c := &child{
		cmd:   cmd,
		label: label,
		done:  make(chan struct{}),
	}
	pid := cmd.Process.Pid

	r.mu.Lock()
	r.children[pid] = c
	r.mu.Unlock()

	go func() {
		status, err := Wait(cmd)
		c.exit = Exit{Pid: pid, Label: label, Status: status, Err: err}
		close(c.done)

		select {
		case r.events <- c:
		default:
			// Nobody is draining events, reclaim without notification.
			r.claim(c)
		}
	}()
}

// TryCollect makes a non-blocking attempt to reclaim the child with pid.
func (r *Reaper) TryCollect(pid int) (Exit, CollectResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.children[pid]
	if !ok {
		return Exit{}, AlreadyReaped
	}

	select {
	case <-c.done:
		delete(r.children, pid)
		return c.exit, Collected
	default:
		return Exit{}, Running
	}
}

// Pending returns the number of adopted children not yet reclaimed.
func (r *Reaper) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.children)
}

// Run delivers terminations to handler until ctx is done. Children already
// reclaimed through TryCollect are skipped. It should be started once.
func (r *Reaper) Run(ctx context.Context, handler func(Exit)) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-r.events:
			if r.claim(c) && handler != nil {
				handler(c.exit)
			}
		}
	}
}

func (r *Reaper) claim(c *child) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.children[c.exit.Pid] != c {
		return false
	}
	delete(r.children, c.exit.Pid)
	return true
}
