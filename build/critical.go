package build

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Critical should be called if a sanity check has failed, indicating a
// developer error. Critical is called with a slice of interfaces that get
// combined into a single string, matching the conventions of the fmt
// package.
func Critical(v ...interface{}) {
	msg := "Critical error: " + fmt.Sprintln(v...)
	log.Output(2, msg)
	if DEBUG {
		panic(msg)
	}
}

// Severe should be called if a sanity check has failed in a way that does
// not necessarily corrupt state but still indicates a bug. Like Critical,
// Severe only panics in a debug build.
func Severe(v ...interface{}) {
	msg := "Severe error: " + fmt.Sprintln(v...)
	log.Output(2, msg)
	if DEBUG {
		panic(msg)
	}
}

// JoinErrors combines multiple errors into a single error, using sep to
// separate the individual error messages. Nil errors in errs are skipped.
// If no non-nil error is present, JoinErrors returns nil.
func JoinErrors(errs []error, sep string) error {
	var nonNil []string
	for _, err := range errs {
		if err != nil {
			nonNil = append(nonNil, err.Error())
		}
	}
	if len(nonNil) == 0 {
		return nil
	}
	return errors.New(strings.Join(nonNil, sep))
}

// TempDir joins the provided directory names into a path within the OS
// temporary directory, scoped by package name, and removes any preexisting
// directory at that path so tests start from a clean slate.
func TempDir(packageName string, names ...string) string {
	parts := append([]string{os.TempDir(), packageName}, names...)
	path := filepath.Join(parts...)
	err := os.RemoveAll(path)
	if err != nil {
		panic(err)
	}
	err = os.MkdirAll(path, 0700)
	if err != nil {
		panic(err)
	}
	return path
}
