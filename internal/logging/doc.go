// Package logging provides leveled logging for the photo viewer backend.
//
// Levels, from most to least verbose: DEBUG, INFO, WARN, ERROR, FATAL.
// The active level is read once from the environment: LOG_LEVEL selects a
// level by name, and DEBUG=true forces debug output regardless of
// LOG_LEVEL. Tests and tools may override it with SetLevel.
package logging
