// Package proc starts, wires and collects the shell's child processes.
package proc
