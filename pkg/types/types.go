package types

import (
	"fmt"
	"strings"
)

const (
	// RootVolumeGroup is the volume group holding the running system.
	RootVolumeGroup = "rootvg"
	// AltVolumeGroup is the volume group name alt_disk_copy assigns to
	// the cloned rootvg.
	AltVolumeGroup = "altinst_rootvg"
)

// SizePolicy governs how a target disk is picked when the caller does not
// name one.
type SizePolicy string

const (
	// PolicyNearest picks the disk whose size is closest to the rootvg size.
	PolicyNearest = SizePolicy("nearest")
	// PolicyMinimize picks the smallest disk that can hold the used space.
	PolicyMinimize = SizePolicy("minimize")
	// PolicyUpper picks the first disk at least as large as the rootvg.
	PolicyUpper = SizePolicy("upper")
	// PolicyLower picks the largest disk smaller than the rootvg, as long as
	// it can hold the used space.
	PolicyLower = SizePolicy("lower")
)

func ParseSizePolicy(s string) (SizePolicy, error) {
	switch p := SizePolicy(s); p {
	case PolicyNearest, PolicyMinimize, PolicyUpper, PolicyLower:
		return p, nil
	}
	return SizePolicy(""), fmt.Errorf("invalid disk size policy %v, must be one of minimize, upper, lower or nearest", s)
}

// Executor runs one external command to completion and returns its captured
// standard output and standard error. A non-zero exit status is reported as
// a *CommandError carrying both streams.
type Executor interface {
	Execute(binary string, args []string) (stdout string, stderr string, err error)
}

// Result is the caller facing outcome of one copy or clean invocation.
// Stdout and Stderr accumulate the output of every mutating command in
// execution order, including commands run before a failure.
type Result struct {
	Changed bool   `json:"changed"`
	Msg     string `json:"msg"`
	Stdout  string `json:"stdout"`
	Stderr  string `json:"stderr"`
}

// AppendOutput records the streams of one executed command.
func (r *Result) AppendOutput(stdout, stderr string) {
	r.Stdout = appendStream(r.Stdout, stdout)
	r.Stderr = appendStream(r.Stderr, stderr)
}

func appendStream(acc, chunk string) string {
	if chunk == "" {
		return acc
	}
	if acc == "" || strings.HasSuffix(acc, "\n") {
		return acc + chunk
	}
	return acc + "\n" + chunk
}

// CommandLine renders a binary and its arguments the way a shell user would
// type them, for logs and error messages.
func CommandLine(binary string, args []string) string {
	return strings.Join(append([]string{binary}, args...), " ")
}
