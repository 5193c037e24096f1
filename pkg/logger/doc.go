// Package logger builds *slog.Logger instances for lexicon services and keeps
// attribute naming consistent across packages.
//
// New creates a logger configured by Option functions: output format (text or
// json), minimum level, output writer and static attributes. Attribute helpers
// such as Culture, Scope and Key return slog.Attr values used by the dictionary
// engine and the store packages.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithService("lexicond"),
//	)
//
//	log.Warn("dictionary accessed before load",
//	    logger.Culture("en-US"),
//	    logger.Scope("global"),
//	)
//
// Error returns an empty attribute for a nil error, so it can be used without
// an additional nil check:
//
//	log.Info("catalog indexed", logger.Error(err))
package logger
