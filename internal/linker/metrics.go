package linker

import (
	"time"

	"github.com/goliatone/go-glossary/pkg/interfaces"
)

// NoOpMetrics returns a recorder that ignores every observation. The service
// falls back to it so instrumentation stays optional.
func NoOpMetrics() interfaces.LinkerMetrics {
	return noopMetrics{}
}

type noopMetrics struct{}

var _ interfaces.LinkerMetrics = noopMetrics{}

func (noopMetrics) ObserveRewriteDuration(string, time.Duration) {}
func (noopMetrics) AddMatches(string, int)                       {}
func (noopMetrics) IncrementRewriteError(string)                 {}
