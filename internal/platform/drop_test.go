package platform

import "testing"

func TestDeliverQueuesDropsUntilHandlerSet(t *testing.T) {
	SetDragHandler(nil)
	t.Cleanup(func() { SetDragHandler(nil) })

	Deliver(DragEvent{Kind: DragEnter, Paths: []string{"/a"}})
	Deliver(DragEvent{Kind: Drop, Paths: []string{"/a"}})
	Deliver(DragEvent{Kind: DragExit})

	var got []DragEvent
	SetDragHandler(func(e DragEvent) { got = append(got, e) })

	if len(got) != 1 {
		t.Fatalf("expected 1 queued event, got %d", len(got))
	}
	if got[0].Kind != Drop || len(got[0].Paths) != 1 || got[0].Paths[0] != "/a" {
		t.Errorf("unexpected queued event: %+v", got[0])
	}

	Deliver(DragEvent{Kind: DragExit})
	if len(got) != 2 || got[1].Kind != DragExit {
		t.Errorf("expected direct delivery once a handler is set, got %+v", got)
	}
}

func TestDragKindString(t *testing.T) {
	testCases := map[DragKind]string{
		DragEnter:    "enter",
		DragExit:     "exit",
		Drop:         "drop",
		DragKind(42): "unknown",
	}
	for k, want := range testCases {
		if got := k.String(); got != want {
			t.Errorf("DragKind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
