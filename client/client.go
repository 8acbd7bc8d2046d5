package client

import (
	"strings"

	"actfilter/rules"
)

// ItemInfo describes a live conversation item known to the host.
type ItemInfo struct {
	Kind      rules.Kind
	Name      string
	WindowRef int
	Level     rules.Level
}

// WindowInfo describes a live window known to the host.
type WindowInfo struct {
	Name  string
	Ref   int
	Level rules.Level
}

// Host exposes the chat client's live entities to the command layer. A
// real chat client embedding the engine implements this over its own
// window list.
type Host interface {
	Items() []ItemInfo
	Windows() []WindowInfo
}

// Session is the in-memory host used by the standalone binary: entities
// fed through simulated events are recorded so the show command has
// something to list.
type Session struct {
	items   []ItemInfo
	windows []WindowInfo
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// RecordItem upserts an item, keyed by kind and case-insensitive name.
func (s *Session) RecordItem(kind rules.Kind, name string, windowRef int, level rules.Level) {
	for i := range s.items {
		if s.items[i].Kind == kind && strings.EqualFold(s.items[i].Name, name) {
			s.items[i].WindowRef = windowRef
			s.items[i].Level = level
			return
		}
	}
	s.items = append(s.items, ItemInfo{Kind: kind, Name: name, WindowRef: windowRef, Level: level})
}

// RecordWindow upserts a window by reference id. An empty name never
// overwrites a known one.
func (s *Session) RecordWindow(ref int, name string, level rules.Level) {
	for i := range s.windows {
		if s.windows[i].Ref == ref {
			if name != "" {
				s.windows[i].Name = name
			}
			s.windows[i].Level = level
			return
		}
	}
	s.windows = append(s.windows, WindowInfo{Name: name, Ref: ref, Level: level})
}

// Items implements Host.
func (s *Session) Items() []ItemInfo {
	return s.items
}

// Windows implements Host.
func (s *Session) Windows() []WindowInfo {
	return s.windows
}
