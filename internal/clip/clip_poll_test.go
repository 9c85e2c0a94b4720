//go:build cgo || windows

package clip

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeText struct {
	mu   sync.Mutex
	data []byte
}

func (f *fakeText) Read() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]byte(nil), f.data...)
}

func (f *fakeText) Write(b []byte) {
	f.mu.Lock()
	f.data = append([]byte(nil), b...)
	f.mu.Unlock()
}

func TestPollBackendIgnoresInitialContent(t *testing.T) {
	src := &fakeText{data: []byte("already there")}
	b := newPollBackend(src, 5*time.Millisecond)
	defer b.Close()

	select {
	case <-b.Watch():
		t.Fatal("initial content reported as a change")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPollBackendReportsChanges(t *testing.T) {
	src := &fakeText{}
	b := newPollBackend(src, 5*time.Millisecond)
	defer b.Close()

	src.Write([]byte("copied"))
	select {
	case <-b.Watch():
	case <-time.After(time.Second):
		t.Fatal("change not reported")
	}

	text, err := b.ReadText()
	require.NoError(t, err)
	assert.Equal(t, "copied", text)
}

func TestPollBackendWriteText(t *testing.T) {
	src := &fakeText{}
	b := newPollBackend(src, 5*time.Millisecond)
	defer b.Close()

	require.NoError(t, b.WriteText("selected"))
	assert.Equal(t, "selected", string(src.Read()))

	// our own write is a clipboard change like any other
	select {
	case <-b.Watch():
	case <-time.After(time.Second):
		t.Fatal("write not reported")
	}
}

func TestPollBackendCloseIsIdempotent(t *testing.T) {
	b := newPollBackend(&fakeText{}, 5*time.Millisecond)
	b.Close()
	b.Close()
}

func TestHeadlessBackend(t *testing.T) {
	b := NewHeadless()
	text, err := b.ReadText()
	require.NoError(t, err)
	assert.Empty(t, text)
	assert.NoError(t, b.WriteText("x"))
	select {
	case <-b.Watch():
		t.Fatal("headless backend produced an event")
	default:
	}
	b.Close()
}
