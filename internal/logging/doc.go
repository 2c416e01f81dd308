// Package logging builds the process logger.
//
// Components receive a *zap.Logger through their options and default to a
// no-op logger. The application builds one Logger from configuration and
// hands each component a named child via Component. The level can be
// changed at runtime, which the config watcher uses on reload.
package logging
