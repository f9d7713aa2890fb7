package authpages

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Logger is the structured logger used across the package. Arguments after
// the message are key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// AuthStateSource delivers the current principal or its absence, first once
// the provider knows it and again on every change. The returned function
// releases the subscription and is safe to call more than once.
type AuthStateSource interface {
	SubscribeAuthState(fn func(AuthState)) (unsubscribe func())
}

// IdentityClient is the external identity provider as seen by the pages.
type IdentityClient interface {
	AuthStateSource
	SignIn(ctx context.Context, email, password string) (Principal, error)
	SignUp(ctx context.Context, email, password string) (Principal, error)
	SignOut(ctx context.Context) error
	SendPasswordReset(ctx context.Context, email string) error
	UpdateProfile(ctx context.Context, principal Principal, update ProfileUpdate) error
}

// ProfileUpdate holds the mutable principal attributes.
type ProfileUpdate struct {
	DisplayName string `json:"displayName"`
}

// Scheduler runs fn once after d. Timers are fire-and-forget.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// SchedulerFunc adapts a function into a Scheduler.
type SchedulerFunc func(d time.Duration, fn func())

// AfterFunc satisfies Scheduler.
func (f SchedulerFunc) AfterFunc(d time.Duration, fn func()) {
	f(d, fn)
}

// TimerScheduler schedules on the runtime timer.
var TimerScheduler Scheduler = SchedulerFunc(func(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
})

type defLogger struct{}

func (d defLogger) Debug(msg string, args ...any) {
	fmt.Print("[DBG] PAGES " + line(msg, args))
}

func (d defLogger) Info(msg string, args ...any) {
	fmt.Print("[INF] PAGES " + line(msg, args))
}

func (d defLogger) Warn(msg string, args ...any) {
	fmt.Print("[WRN] PAGES " + line(msg, args))
}

func (d defLogger) Error(msg string, args ...any) {
	fmt.Print("[ERR] PAGES " + line(msg, args))
}

func line(msg string, args []any) string {
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
		} else {
			fmt.Fprintf(&b, " %v", args[i])
		}
	}
	b.WriteString("\n")
	return b.String()
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// NopLogger discards every entry.
func NopLogger() Logger {
	return nopLogger{}
}
