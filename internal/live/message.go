// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package live

import (
	"strconv"

	"github.com/olegiv/counsel-site/internal/section"
)

// Event is a client event addressed to a component.
type Event struct {
	Ref     string  `json:"ref" msgpack:"ref"`
	Target  string  `json:"target" msgpack:"target"`
	Name    string  `json:"name" msgpack:"name"`
	Payload Payload `json:"payload" msgpack:"payload"`
}

// Payload carries the event arguments. Only the fields an event needs are set.
type Payload struct {
	// Y is the window scroll offset.
	Y int `json:"y,omitempty" msgpack:"y,omitempty"`
	// Top is the measured document offset of a section.
	Top int `json:"top,omitempty" msgpack:"top,omitempty"`
	// Section is an anchor id.
	Section string `json:"section,omitempty" msgpack:"section,omitempty"`
	// Key is a keyboard key name.
	Key string `json:"key,omitempty" msgpack:"key,omitempty"`
	// ID is a service id.
	ID string `json:"id,omitempty" msgpack:"id,omitempty"`
}

// Reply answers one event with the commands to apply.
type Reply struct {
	Ref      string    `json:"ref" msgpack:"ref"`
	Commands []Command `json:"commands,omitempty" msgpack:"commands,omitempty"`
	Error    string    `json:"error,omitempty" msgpack:"error,omitempty"`
}

// Command operations understood by the client script.
const (
	OpSetAttr      = "set_attr"
	OpSetOpen      = "set_open"
	OpScrollTo     = "scroll_to"
	OpRender       = "render"
	OpClear        = "clear"
	OpInjectScript = "inject_script"
	OpRemoveScript = "remove_script"
	OpLockScroll   = "lock_scroll"
	OpUnlockScroll = "unlock_scroll"
	OpListen       = "listen"
	OpUnlisten     = "unlisten"
	OpFocus        = "focus"
)

// Command is one client-side effect.
type Command struct {
	Op     string `json:"op" msgpack:"op"`
	Target string `json:"target,omitempty" msgpack:"target,omitempty"`
	Attr   string `json:"attr,omitempty" msgpack:"attr,omitempty"`
	Value  string `json:"value,omitempty" msgpack:"value,omitempty"`
	HTML   string `json:"html,omitempty" msgpack:"html,omitempty"`
	Y      int    `json:"y,omitempty" msgpack:"y,omitempty"`
	Src    string `json:"src,omitempty" msgpack:"src,omitempty"`
	Event  string `json:"event,omitempty" msgpack:"event,omitempty"`
}

// Patch collects the commands produced while handling one event.
type Patch struct {
	Commands []Command
}

func (p *Patch) add(c Command) {
	p.Commands = append(p.Commands, c)
}

// SetAttr sets an attribute on the element matching target.
func (p *Patch) SetAttr(target, attr, value string) {
	p.add(Command{Op: OpSetAttr, Target: target, Attr: attr, Value: value})
}

// SetBool sets a "true"/"false" attribute.
func (p *Patch) SetBool(target, attr string, v bool) {
	p.SetAttr(target, attr, strconv.FormatBool(v))
}

// SetOpen opens or closes a details element.
func (p *Patch) SetOpen(target string, open bool) {
	p.add(Command{Op: OpSetOpen, Target: target, Value: strconv.FormatBool(open)})
}

// ScrollTo smooth-scrolls the window to y.
func (p *Patch) ScrollTo(y int) {
	p.add(Command{Op: OpScrollTo, Y: y, Value: "smooth"})
}

// Render replaces the inner markup of target.
func (p *Patch) Render(target, html string) {
	p.add(Command{Op: OpRender, Target: target, HTML: html})
}

// Clear empties target.
func (p *Patch) Clear(target string) {
	p.add(Command{Op: OpClear, Target: target})
}

// InjectScript appends a script element with the given id.
func (p *Patch) InjectScript(id, src string) {
	p.add(Command{Op: OpInjectScript, Target: id, Src: src})
}

// RemoveScript removes the script element with the given id.
func (p *Patch) RemoveScript(id string) {
	p.add(Command{Op: OpRemoveScript, Target: id})
}

// LockScroll suppresses document scrolling.
func (p *Patch) LockScroll() {
	p.add(Command{Op: OpLockScroll})
}

// UnlockScroll restores the document scrolling saved by LockScroll.
func (p *Patch) UnlockScroll() {
	p.add(Command{Op: OpUnlockScroll})
}

// Listen asks the client to forward a global event to target.
func (p *Patch) Listen(event, target string) {
	p.add(Command{Op: OpListen, Event: event, Target: target})
}

// Unlisten removes a listener registered with Listen.
func (p *Patch) Unlisten(event, target string) {
	p.add(Command{Op: OpUnlisten, Event: event, Target: target})
}

// Focus moves keyboard focus to target.
func (p *Patch) Focus(target string) {
	p.add(Command{Op: OpFocus, Target: target})
}

// OffsetScroll returns the scroll position that brings a section whose
// document offset is top just below the fixed header.
func OffsetScroll(top int) int {
	return max(0, top-section.ScrollOffset)
}
