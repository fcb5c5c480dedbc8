package bus

import (
	"reflect"
	"testing"

	"github.com/yungbote/agrovet-backend/internal/platform/logger"
)

func TestPublishInvokesInRegistrationOrderOnce(t *testing.T) {
	b := New(logger.Nop())
	var got []int
	for i := 0; i < 3; i++ {
		i := i
		b.Subscribe(func() { got = append(got, i) })
	}
	b.Publish()
	if want := []int{0, 1, 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order: want=%v got=%v", want, got)
	}
	b.Publish()
	if len(got) != 6 {
		t.Fatalf("second publish: want 6 calls got %d", len(got))
	}
}

func TestPublishWithoutListeners(t *testing.T) {
	b := New(nil)
	b.Publish()
	if b.Len() != 0 {
		t.Fatalf("Len: want=0 got=%d", b.Len())
	}
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	b := New(logger.Nop())
	calls := 0
	unsub := b.Subscribe(func() { calls++ })
	other := b.Subscribe(func() {})
	unsub()
	unsub()
	if b.Len() != 1 {
		t.Fatalf("Len after double unsubscribe: want=1 got=%d", b.Len())
	}
	b.Publish()
	if calls != 0 {
		t.Fatalf("unsubscribed listener invoked %d times", calls)
	}
	other()
	if b.Len() != 0 {
		t.Fatalf("Len: want=0 got=%d", b.Len())
	}
}

func TestSelfUnsubscribeDuringPublish(t *testing.T) {
	b := New(logger.Nop())
	var order []string
	var unsubA func()
	unsubA = b.Subscribe(func() {
		order = append(order, "a")
		unsubA()
	})
	b.Subscribe(func() { order = append(order, "b") })

	b.Publish()
	b.Publish()
	if want := []string{"a", "b", "b"}; !reflect.DeepEqual(order, want) {
		t.Fatalf("order: want=%v got=%v", want, order)
	}
}

func TestListenerUnsubscribedEarlierInPublishIsSkipped(t *testing.T) {
	b := New(logger.Nop())
	calledB := false
	var unsubB func()
	b.Subscribe(func() { unsubB() })
	unsubB = b.Subscribe(func() { calledB = true })

	b.Publish()
	if calledB {
		t.Fatalf("listener ran after its unsubscribe returned")
	}
}

func TestSubscribeDuringPublishWaitsForNextPublish(t *testing.T) {
	b := New(logger.Nop())
	lateCalls := 0
	added := false
	b.Subscribe(func() {
		if !added {
			added = true
			b.Subscribe(func() { lateCalls++ })
		}
	})

	b.Publish()
	if lateCalls != 0 {
		t.Fatalf("late listener ran in the publish that added it")
	}
	b.Publish()
	if lateCalls != 1 {
		t.Fatalf("late listener: want 1 call got %d", lateCalls)
	}
}

func TestPanickingListenerDoesNotStopOthers(t *testing.T) {
	b := New(logger.Nop())
	reached := false
	b.Subscribe(func() { panic("boom") })
	b.Subscribe(func() { reached = true })
	b.Publish()
	if !reached {
		t.Fatalf("listener after a panicking one was not invoked")
	}
}

func TestNilListenerIgnored(t *testing.T) {
	b := New(logger.Nop())
	unsub := b.Subscribe(nil)
	unsub()
	if b.Len() != 0 {
		t.Fatalf("nil listener registered")
	}
}
