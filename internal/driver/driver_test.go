package driver

import "testing"

func TestShouldSnapshotSchedule(t *testing.T) {
	const iterations = 16
	want := map[int]bool{1: true, 2: true, 3: false, 4: true, 5: false, 7: false, 8: true, 15: false, 16: true}
	for frameNo, expect := range want {
		got := shouldSnapshot(frameNo, iterations)
		if got != expect {
			t.Errorf("shouldSnapshot(%d, %d) = %v, want %v", frameNo, iterations, got, expect)
		}
	}
}

func TestShouldSnapshotAlwaysFiresAtFinalIteration(t *testing.T) {
	for _, iterations := range []int{1, 3, 7, 100} {
		if !shouldSnapshot(iterations, iterations) {
			t.Errorf("shouldSnapshot(%d, %d) = false, want true (final iteration)", iterations, iterations)
		}
	}
}
