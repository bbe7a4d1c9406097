package application

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"testing"
)

type fakeRuntime struct {
	waited int
	err    error
}

func (f *fakeRuntime) Wait(context.Context) error {
	f.waited++
	return f.err
}

type recordingLauncher struct {
	calls []Root
	args  [][]string
	rt    *fakeRuntime
	err   error
	out   *bytes.Buffer
	// printedBefore captures stdout at the moment the launcher ran.
	printedBefore string
}

func (l *recordingLauncher) launch(_ context.Context, root Root, args []string) (Runtime, error) {
	l.calls = append(l.calls, root)
	l.args = append(l.args, args)
	l.printedBefore = l.out.String()
	if l.err != nil {
		return nil, l.err
	}
	return l.rt, nil
}

func TestMainPrintsOnceAfterStartup(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"property overrides", []string{"--server.port=9090", "--debug"}},
		{"opaque arguments", []string{"serve", "-v", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			l := &recordingLauncher{rt: &fakeRuntime{}, out: &out}

			if err := Main(context.Background(), tt.args, &out, l.launch); err != nil {
				t.Fatalf("Main: %v", err)
			}
			if len(l.calls) != 1 || l.calls[0] != RescuEdge {
				t.Fatalf("launcher calls = %v, want one call with %v", l.calls, RescuEdge)
			}
			if !slices.Equal(l.args[0], tt.args) {
				t.Errorf("args = %q, want %q", l.args[0], tt.args)
			}
			if l.printedBefore != "" {
				t.Errorf("output written before startup returned: %q", l.printedBefore)
			}
			if got, want := out.String(), "RescuEdge Application has started successfully!\n"; got != want {
				t.Errorf("stdout = %q, want %q", got, want)
			}
			if l.rt.waited != 1 {
				t.Errorf("runtime waited %d times, want 1", l.rt.waited)
			}
		})
	}
}

func TestMainStartupFailure(t *testing.T) {
	var out bytes.Buffer
	boom := errors.New("port already in use")
	l := &recordingLauncher{err: boom, out: &out}

	err := Main(context.Background(), []string{"--server.port=80"}, &out, l.launch)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if out.Len() != 0 {
		t.Errorf("confirmation printed after failed startup: %q", out.String())
	}
	if len(l.calls) != 1 {
		t.Errorf("launcher called %d times, want 1", len(l.calls))
	}
}

func TestMainReturnsRuntimeError(t *testing.T) {
	var out bytes.Buffer
	shutdownErr := errors.New("shutdown timed out")
	l := &recordingLauncher{rt: &fakeRuntime{err: shutdownErr}, out: &out}

	if err := Main(context.Background(), nil, &out, l.launch); !errors.Is(err, shutdownErr) {
		t.Fatalf("err = %v, want %v", err, shutdownErr)
	}
	if out.String() != StartedMessage+"\n" {
		t.Errorf("stdout = %q", out.String())
	}
}
