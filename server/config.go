package server

import "time"

// RequestTimeout is the process-wide per-request timeout (spec.md §4.2
// "Timeout"): a single-shot timer armed when a request begins, covering
// both the head-read phase and the wait for the response's completion
// callback. It mirrors the teacher's top-level const-configuration
// style (cmd/httpserver's `const PORT = 42069`) rather than a
// flags/env/config-file parser — configuration-file loading is an
// explicit non-goal (spec.md §1).
var RequestTimeout = 30 * time.Second
