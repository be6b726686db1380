package stream

import "errors"

var (
	ErrAlreadyRunning = errors.New("stream: pipeline already running")
	ErrDeviceClosed   = errors.New("stream: output device not open")
)
