package eventbus

import "testing"

func TestSubscribeAndEmit(t *testing.T) {
	b := New()
	var got any
	b.Subscribe("layoutChanged", func(payload any) { got = payload })

	b.Emit("layoutChanged", "snapshot-1")

	if got != "snapshot-1" {
		t.Fatalf("handler received %v, want %v", got, "snapshot-1")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	calls := 0
	tok := b.Subscribe("panelAdded", func(any) { calls++ })

	b.Emit("panelAdded", nil)
	tok.Unsubscribe()
	b.Emit("panelAdded", nil)

	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestUnsubscribeTwiceIsNoOp(t *testing.T) {
	b := New()
	tok := b.Subscribe("panelRemoved", func(any) {})
	tok.Unsubscribe()
	tok.Unsubscribe() // must not panic
}

func TestReentrantSubscribeDuringEmitDoesNotRunThisRound(t *testing.T) {
	b := New()
	secondCalls := 0

	b.Subscribe("resize", func(any) {
		b.Subscribe("resize", func(any) { secondCalls++ })
	})

	b.Emit("resize", nil)
	if secondCalls != 0 {
		t.Fatalf("handler subscribed mid-emit ran during the same Emit: secondCalls = %d", secondCalls)
	}

	b.Emit("resize", nil)
	if secondCalls != 1 {
		t.Fatalf("handler subscribed mid-emit did not run on the next Emit: secondCalls = %d", secondCalls)
	}
}

func TestMultipleSubscribersDispatchInOrder(t *testing.T) {
	b := New()
	var order []int
	b.Subscribe("activePanelChanged", func(any) { order = append(order, 1) })
	b.Subscribe("activePanelChanged", func(any) { order = append(order, 2) })
	b.Subscribe("activePanelChanged", func(any) { order = append(order, 3) })

	b.Emit("activePanelChanged", nil)

	want := []int{1, 2, 3}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
