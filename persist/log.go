package persist

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/bwtcert/scwallet/build"
	"github.com/bwtcert/scwallet/types"
)

// persistDir is the subdirectory, within the OS temp dir, that persist
// package tests use to scratch their log files.
const persistDir = "persist"

// Logger wraps a logrus logger bound to a single log file, writing
// structured STARTUP/SHUTDOWN markers and optionally Debug-level output.
type Logger struct {
	*logrus.Logger
	file    *os.File
	isDebug bool
}

// NewFileLogger returns a logger that logs to logFilename. The file is
// opened in append mode so that restarts do not clobber prior history.
// When isDebug is true, Debugln output is also written to the file.
func NewFileLogger(info types.BlockchainInfo, logFilename string, isDebug bool) (*Logger, error) {
	file, err := os.OpenFile(logFilename, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0600)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(file)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000000",
	})
	if isDebug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	fl := &Logger{
		Logger:  logger,
		file:    file,
		isDebug: isDebug,
	}
	fl.Println("STARTUP: Logging has started for", info.Name, info.NetworkName, info.ProtocolVersion.String())
	return fl, nil
}

// Println logs a line at Info level, matching the signature of
// log.Println.
func (l *Logger) Println(v ...interface{}) {
	l.Logger.Infoln(v...)
}

// Debugln logs a line at Debug level. It is a no-op (in terms of file
// output) unless the logger was created with isDebug set.
func (l *Logger) Debugln(v ...interface{}) {
	l.Logger.Debugln(v...)
}

// Critical logs a critical-severity line and then panics, signaling that a
// developer invariant has been violated.
func (l *Logger) Critical(v ...interface{}) {
	msg := fmt.Sprintln(v...)
	l.Logger.Errorln("CRITICAL:", msg)
	build.Critical(v...)
	panic("CRITICAL: " + msg)
}

// Close writes a SHUTDOWN marker and closes the underlying log file.
func (l *Logger) Close() error {
	l.Println("SHUTDOWN: Logging has terminated.")
	return l.file.Close()
}
