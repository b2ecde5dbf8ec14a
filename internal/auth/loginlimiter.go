package auth

import (
	"sync"
	"time"
)

// loginLimiter tracks failed sign-in attempts per (ip, email) in a
// sliding window and locks the pair out once the threshold is reached.
// Records are pruned lazily on access; there is no background goroutine.
type loginLimiter struct {
	mu          sync.Mutex
	attempts    map[string]*attemptRecord
	maxAttempts int
	window      time.Duration
	lockout     time.Duration
}

type attemptRecord struct {
	count        int
	firstAttempt time.Time
	lockedUntil  time.Time
}

func newLoginLimiter(maxAttempts int, window, lockout time.Duration) *loginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	if lockout <= 0 {
		lockout = 30 * time.Minute
	}
	return &loginLimiter{
		attempts:    make(map[string]*attemptRecord),
		maxAttempts: maxAttempts,
		window:      window,
		lockout:     lockout,
	}
}

func key(ip, email string) string {
	return ip + "|" + email
}

func (l *loginLimiter) isLocked(ip, email string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.attempts[key(ip, email)]
	if !ok {
		return false
	}

	now := time.Now()
	if !rec.lockedUntil.IsZero() && now.Before(rec.lockedUntil) {
		return true
	}
	// Window or lockout expired: forget the record.
	if now.Sub(rec.firstAttempt) > l.window {
		delete(l.attempts, key(ip, email))
	}
	return false
}

func (l *loginLimiter) recordFailure(ip, email string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	k := key(ip, email)
	rec, ok := l.attempts[k]
	if !ok || now.Sub(rec.firstAttempt) > l.window {
		l.attempts[k] = &attemptRecord{count: 1, firstAttempt: now}
		return
	}

	rec.count++
	if rec.count >= l.maxAttempts {
		rec.lockedUntil = now.Add(l.lockout)
	}
}

func (l *loginLimiter) reset(ip, email string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key(ip, email))
}
