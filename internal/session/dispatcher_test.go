package session

import (
	"sync"
	"testing"
	"time"

	"everywhere_bot/pkg"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

type recorder struct {
	mu    sync.Mutex
	texts []string
}

func (r *recorder) Render(emission pkg.Emission) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, emission.Text)
}

func (r *recorder) Texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}

func TestDispatcherKeepsBatchOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	rec := &recorder{}
	dispatcher := NewDispatcher(rec)

	dispatcher.Dispatch([]pkg.Emission{
		{Kind: pkg.EmissionPrimary, Text: "first", Delay: 5 * time.Millisecond},
		{Kind: pkg.EmissionFollowUp, Text: "second"},
		{Kind: pkg.EmissionNameRequest, Text: "third", Delay: time.Millisecond},
	})
	dispatcher.Wait()

	assert.Equal(t, []string{"first", "second", "third"}, rec.Texts())
}

func TestDispatcherDoesNotBlock(t *testing.T) {
	defer goleak.VerifyNone(t)

	rec := &recorder{}
	dispatcher := NewDispatcher(rec)

	start := time.Now()
	dispatcher.Dispatch([]pkg.Emission{{Text: "slow", Delay: 50 * time.Millisecond}})
	assert.Less(t, time.Since(start), 50*time.Millisecond)
	assert.Empty(t, rec.Texts())

	dispatcher.Wait()
	assert.Equal(t, []string{"slow"}, rec.Texts())
}

func TestDispatcherIndependentBatches(t *testing.T) {
	defer goleak.VerifyNone(t)

	rec := &recorder{}
	dispatcher := NewDispatcher(rec)

	dispatcher.Dispatch([]pkg.Emission{{Text: "late", Delay: 30 * time.Millisecond}})
	dispatcher.Dispatch([]pkg.Emission{{Text: "early", Delay: time.Millisecond}})
	dispatcher.Dispatch(nil)
	dispatcher.Wait()

	assert.ElementsMatch(t, []string{"late", "early"}, rec.Texts())
}
