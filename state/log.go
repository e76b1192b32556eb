package state

import (
	cosmoslog "cosmossdk.io/log"
	cmtlog "github.com/cometbft/cometbft/libs/log"
)

// treeLogger adapts the node's cometbft logger to the cosmossdk.io/log
// interface the iavl tree wants.
type treeLogger struct {
	lg cmtlog.Logger
}

func TreeLogger(lg cmtlog.Logger) cosmoslog.Logger {
	return treeLogger{lg: lg}
}

func (l treeLogger) Info(msg string, keyVals ...any) { l.lg.Info(msg, keyVals...) }

func (l treeLogger) Error(msg string, keyVals ...any) { l.lg.Error(msg, keyVals...) }

func (l treeLogger) Debug(msg string, keyVals ...any) { l.lg.Debug(msg, keyVals...) }

// cometbft's logger has no warn level; warnings go out as errors rather
// than being dropped.
func (l treeLogger) Warn(msg string, keyVals ...any) { l.lg.Error(msg, keyVals...) }

func (l treeLogger) With(keyVals ...any) cosmoslog.Logger {
	return treeLogger{lg: l.lg.With(keyVals...)}
}

func (l treeLogger) Impl() any { return l.lg }
