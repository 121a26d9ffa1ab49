package tracelog

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/helsaawy/go-tracelog/pkg/event"
)

// handle runs one record through l and returns the single event the
// default fake provider received.
func handle(t *testing.T, l slog.Handler, f *fakeFactory, name string, attrs ...slog.Attr) event.Event {
	t.Helper()
	r := slog.NewRecord(time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), slog.LevelInfo, "m", 0)
	r.AddAttrs(attrs...)
	if err := l.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	got := f.get(t, name).written()
	if len(got) != 1 {
		t.Fatalf("got %d events on %q, wanted 1", len(got), name)
	}
	return got[0]
}

func newTestLogger(t *testing.T, opts ...Option) (*Logger, *fakeFactory) {
	t.Helper()
	f := newFakeFactory(true)
	l, err := New("App", append([]Option{withFactory(f.new)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return l, f
}

func TestHandlerFieldOrder(t *testing.T) {
	t.Run("bare", func(t *testing.T) {
		l, f := newTestLogger(t)
		e := handle(t, l, f, "App")
		want := []string{"time", "Payload"}
		if diff := cmp.Diff(want, fieldNames(e.Fields)); diff != "" {
			t.Errorf("field order (-want +got):\n%s", diff)
		}
	})

	t.Run("attrs", func(t *testing.T) {
		l, f := newTestLogger(t)
		e := handle(t, l, f, "App", slog.String("b", "1"), slog.Int("a", 2))
		want := []string{"time", "Payload", "b", "a"}
		if diff := cmp.Diff(want, fieldNames(e.Fields)); diff != "" {
			t.Errorf("field order (-want +got):\n%s", diff)
		}
	})
}

func TestHandlerWithAttrs(t *testing.T) {
	l, f := newTestLogger(t)
	h := l.WithAttrs([]slog.Attr{slog.String("svc", "api")})

	e := handle(t, h, f, "App", slog.String("k", "v"))

	want := []string{"time", "Payload", "svc", "k"}
	if diff := cmp.Diff(want, fieldNames(e.Fields)); diff != "" {
		t.Errorf("field order (-want +got):\n%s", diff)
	}
	if svc, _ := findField(e.Fields, "svc"); svc.Str != "api" {
		t.Errorf("got svc %q, wanted %q", svc.Str, "api")
	}
}

func TestHandlerWithGroup(t *testing.T) {
	l, f := newTestLogger(t)
	h := l.WithGroup("req").WithAttrs([]slog.Attr{slog.String("id", "7")})

	e := handle(t, h, f, "App", slog.String("method", "GET"))

	want := []string{"time", "Payload", "req.id", "req.method"}
	if diff := cmp.Diff(want, fieldNames(e.Fields)); diff != "" {
		t.Errorf("field order (-want +got):\n%s", diff)
	}
}

func TestHandlerNestedGroups(t *testing.T) {
	l, f := newTestLogger(t)
	h := l.WithGroup("a").WithGroup("b")

	e := handle(t, h, f, "App", slog.String("k", "v"))

	if _, ok := findField(e.Fields, "a.b.k"); !ok {
		t.Errorf("got fields %v, wanted a.b.k", fieldNames(e.Fields))
	}
}

func TestHandlerGroupValuedAttr(t *testing.T) {
	l, f := newTestLogger(t)
	h := l.WithGroup("req")

	e := handle(t, h, f, "App", slog.Group("conn", slog.String("addr", "::1")))

	g, ok := findField(e.Fields, "req.conn")
	if !ok || g.Kind != event.KindStruct {
		t.Fatalf("got fields %v, wanted struct req.conn", fieldNames(e.Fields))
	}
	// nesting inside the value stays structural, not dotted
	if a, ok := findField(g.Fields, "addr"); !ok || a.Str != "::1" {
		t.Errorf("got children %v, wanted addr", fieldNames(g.Fields))
	}
}

func TestHandlerInlinesEmptyKeyGroup(t *testing.T) {
	l, f := newTestLogger(t)
	h := l.WithGroup("req")

	e := handle(t, h, f, "App", slog.Group("", slog.String("k", "v")))

	if _, ok := findField(e.Fields, "req.k"); !ok {
		t.Errorf("got fields %v, wanted req.k inlined", fieldNames(e.Fields))
	}
}

func TestHandlerReservedKeys(t *testing.T) {
	t.Run("event name", func(t *testing.T) {
		l, f := newTestLogger(t)
		e := handle(t, l, f, "App", slog.String(EventNameKey, "Audit"))
		if e.Name != "Audit" {
			t.Errorf("got event name %q, wanted %q", e.Name, "Audit")
		}
		if _, ok := findField(e.Fields, EventNameKey); ok {
			t.Error("event key leaked into fields")
		}
	})

	t.Run("keyword uint", func(t *testing.T) {
		l, f := newTestLogger(t)
		e := handle(t, l, f, "App", slog.Uint64(KeywordKey, 0x8))
		if e.Keyword != 0x8 {
			t.Errorf("got keyword %#x, wanted 0x8", e.Keyword)
		}
	})

	t.Run("keyword int", func(t *testing.T) {
		l, f := newTestLogger(t)
		e := handle(t, l, f, "App", slog.Int(KeywordKey, 3))
		if e.Keyword != 3 {
			t.Errorf("got keyword %#x, wanted 0x3", e.Keyword)
		}
	})

	t.Run("from bound attrs", func(t *testing.T) {
		l, f := newTestLogger(t)
		h := l.WithAttrs([]slog.Attr{slog.String(TargetKey, "Audit")})
		e := handle(t, h, f, "Audit")
		if p, _ := findField(e.Fields, "Payload"); p.Str != "m" {
			t.Errorf("got payload %q, wanted %q", p.Str, "m")
		}
		f.mu.Lock()
		_, registered := f.providers["App"]
		f.mu.Unlock()
		if registered {
			t.Error("default provider registered for a routed record")
		}
	})

	t.Run("wrong type stays a field", func(t *testing.T) {
		l, f := newTestLogger(t)
		e := handle(t, l, f, "App", slog.Int(TargetKey, 5))
		if tf, ok := findField(e.Fields, TargetKey); !ok || tf.I64 != 5 {
			t.Errorf("got fields %v, wanted %q kept", fieldNames(e.Fields), TargetKey)
		}
	})

	t.Run("prefixed keys are not reserved", func(t *testing.T) {
		l, f := newTestLogger(t)
		h := l.WithGroup("g")
		e := handle(t, h, f, "App", slog.String(TargetKey, "Elsewhere"))
		if _, ok := findField(e.Fields, "g."+TargetKey); !ok {
			t.Errorf("got fields %v, wanted g.%s emitted", fieldNames(e.Fields), TargetKey)
		}
	})
}

func TestHandlerSourceInfo(t *testing.T) {
	l, f := newTestLogger(t)
	slog.New(l).Info("here")

	e := f.get(t, "App").written()[0]
	mp, ok := findField(e.Fields, "Module Path")
	if !ok || mp.Str != "github.com/helsaawy/go-tracelog" {
		t.Errorf("got module path %q, wanted this package", mp.Str)
	}
	ff, ok := findField(e.Fields, "File")
	if !ok || !strings.HasSuffix(ff.Str, "handler_test.go") {
		t.Errorf("got file %q, wanted this test file", ff.Str)
	}
	if ln, ok := findField(e.Fields, "Line"); !ok || ln.U64 == 0 {
		t.Errorf("got line %d, wanted the call site", ln.U64)
	}
}

func TestHandlerSourceInfoOff(t *testing.T) {
	l, f := newTestLogger(t, WithSourceInfo(false))
	slog.New(l).Info("here")

	e := f.get(t, "App").written()[0]
	for _, name := range []string{"Module Path", "File", "Line"} {
		if _, ok := findField(e.Fields, name); ok {
			t.Errorf("got %s field with source info disabled", name)
		}
	}
}

func TestHandlerEnabled(t *testing.T) {
	ctx := context.Background()

	t.Run("default floor", func(t *testing.T) {
		l, _ := newTestLogger(t)
		if !l.Enabled(ctx, LevelTrace) {
			t.Error("trace rejected by default floor")
		}
	})

	t.Run("configured floor", func(t *testing.T) {
		l, _ := newTestLogger(t, WithLevel(slog.LevelInfo))
		if l.Enabled(ctx, slog.LevelDebug) {
			t.Error("debug admitted past an info floor")
		}
		if !l.Enabled(ctx, slog.LevelWarn) {
			t.Error("warn rejected by an info floor")
		}
	})

	t.Run("provider gate", func(t *testing.T) {
		f := newFakeFactory(false)
		l, err := New("App", withFactory(f.new))
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if l.Enabled(ctx, slog.LevelError) {
			t.Error("enabled with no listening session")
		}
	})
}

func TestModulePathOf(t *testing.T) {
	for _, tt := range []struct {
		fn   string
		want string
	}{
		{"github.com/a/b/pkg.(*T).M", "github.com/a/b/pkg"},
		{"github.com/a/b/pkg.F", "github.com/a/b/pkg"},
		{"main.main", "main"},
		{"pkg.init.func1", "pkg"},
		{"nodot", "nodot"},
		{"", ""},
	} {
		if got := modulePathOf(tt.fn); got != tt.want {
			t.Errorf("modulePathOf(%q) = %q, wanted %q", tt.fn, got, tt.want)
		}
	}
}
