package stage

import "testing"

func TestSignalDispatchOrder(t *testing.T) {
	var s Signal[int]
	var got []int
	s.Add(func(v int) { got = append(got, v*10) })
	s.Add(func(v int) { got = append(got, v*100) })

	s.Dispatch(1)
	if len(got) != 2 || got[0] != 10 || got[1] != 100 {
		t.Errorf("got %v, want [10 100]", got)
	}
}

func TestSignalNoDedup(t *testing.T) {
	var s Signal[int]
	calls := 0
	fn := func(int) { calls++ }
	s.Add(fn)
	s.Add(fn)
	s.Dispatch(0)
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestBindingDetach(t *testing.T) {
	var s Signal[string]
	calls := 0
	b := s.Add(func(string) { calls++ })
	b.Detach()
	b.Detach()
	s.Dispatch("x")
	if calls != 0 {
		t.Errorf("detached listener fired %d times", calls)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}

	var nilBinding *Binding
	nilBinding.Detach()
}

func TestSignalDetachDuringDispatch(t *testing.T) {
	var s Signal[int]
	var second *Binding
	calls := 0
	s.Add(func(int) {
		calls++
		second.Detach()
	})
	second = s.Add(func(int) { calls++ })

	// The in-flight dispatch keeps its snapshot.
	s.Dispatch(0)
	if calls != 2 {
		t.Errorf("first dispatch calls = %d, want 2", calls)
	}
	calls = 0
	s.Dispatch(0)
	if calls != 1 {
		t.Errorf("second dispatch calls = %d, want 1", calls)
	}
}

func TestSignalAddDuringDispatch(t *testing.T) {
	var s Signal[int]
	calls := 0
	s.Add(func(int) {
		calls++
		s.Add(func(int) { calls++ })
	})
	s.Dispatch(0)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
