package sightline

import "strings"

// Command is a single input action.
type Command uint8

const (
	MoveForward Command = 1 << iota
	MoveBackward
	RotateLeft
	RotateRight
	Quit
)

var commandNames = []struct {
	cmd  Command
	name string
}{
	{MoveBackward, "backward"},
	{MoveForward, "forward"},
	{RotateRight, "right"},
	{RotateLeft, "left"},
	{Quit, "quit"},
}

// Commands is the set of commands issued during one tick.
type Commands uint8

// Has reports whether c is in the set.
func (s Commands) Has(c Command) bool { return s&Commands(c) != 0 }

// With returns the set extended by c.
func (s Commands) With(c Command) Commands { return s | Commands(c) }

// String lists the commands in application order.
func (s Commands) String() string {
	if s == 0 {
		return "none"
	}
	var names []string
	for _, cn := range commandNames {
		if s.Has(cn.cmd) {
			names = append(names, cn.name)
		}
	}
	return strings.Join(names, "+")
}
