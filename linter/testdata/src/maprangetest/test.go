package maprangetest

import "sort"

func testMapRange() {
	// This should trigger the linter
	stakes := map[string]uint64{"a": 1, "b": 2}
	for hotkey, stake := range stakes { // want "range over map detected, which can be non-deterministic"
		_ = hotkey
		_ = stake
	}
}

func testNoMapRange() {
	uids := []uint32{0, 1, 2}
	for i, uid := range uids {
		_ = i
		_ = uid
	}
}

func testEmptyMapRange() {
	m := map[string]int{}
	for k, v := range m { // want "range over map detected, which can be non-deterministic"
		_ = k
		_ = v
	}
}

func testSortedKeys() []uint32 {
	seen := map[uint32]struct{}{2: {}, 0: {}}
	keys := make([]uint32, 0, len(seen))
	for uid := range seen {
		keys = append(keys, uid)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func testKeysWithoutSort() []string {
	m := map[string]int{"a": 1}
	var keys []string
	for k := range m { // want "range over map detected, which can be non-deterministic"
		keys = append(keys, k)
	}
	return keys
}
