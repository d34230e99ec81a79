package hid

import (
	"go-keyfx/debug"
	"go-keyfx/keycode"
)

// Log writes every action to the debug log.
type Log struct{}

func (Log) Press(k keycode.Keycode)   { debug.Log("hid", "press %v", k) }
func (Log) Release(k keycode.Keycode) { debug.Log("hid", "release %v", k) }
func (Log) Type(text string)          { debug.Log("hid", "type %q", text) }
