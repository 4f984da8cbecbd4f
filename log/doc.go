// Package log provides the leveled logging interface used by the workflow
// engine and its providers.
//
// The Logger interface has four printf-style methods (Debug, Info, Warn,
// Error). Two implementations ship with the package: DefaultLogger on top
// of the standard library, and GologLogger wrapping kataras/golog. A
// package-level default logger is available for components that are not
// handed a logger explicitly, and NoOpLogger silences a component entirely.
package log
