package schoolapi

import (
	"sync"

	"github.com/AungS8430/schooler/internals/helpers/metrics"
)

// Token identifies one in-flight load for a key.
type Token struct {
	Key string
	Seq uint64
}

// Latest hands out increasing tokens per key so that only the newest
// response for that key is applied. Older ones are dropped.
type Latest struct {
	mu   sync.Mutex
	seqs map[string]uint64
}

func NewLatest() *Latest { return &Latest{seqs: map[string]uint64{}} }

// Begin supersedes every earlier token for key.
func (l *Latest) Begin(key string) Token {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seqs[key]++
	return Token{Key: key, Seq: l.seqs[key]}
}

func (l *Latest) IsCurrent(t Token) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seqs[t.Key] == t.Seq
}

// Commit runs apply only if t is still the newest token for its key.
// apply runs under the lock so a concurrent Begin cannot interleave.
func (l *Latest) Commit(t Token, apply func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.seqs[t.Key] != t.Seq {
		metrics.StaleResponses.WithLabelValues(keyLabel(t.Key)).Inc()
		return false
	}
	if apply != nil {
		apply()
	}
	return true
}

// keyLabel keeps label cardinality bounded: only the prefix before ':'.
func keyLabel(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] == ':' {
			return key[:i]
		}
	}
	return key
}
