package deferclosetest

type iterator struct{}

func (iterator) Close() error { return nil }

func (iterator) Keys() ([]uint32, error) { return nil, nil }

func testDeferred() {
	iter := iterator{}
	defer iter.Close()
	_, _ = iter.Keys()
}

func testDeferredFuncLit() {
	iter := iterator{}
	defer func() {
		if err := iter.Close(); err != nil {
			panic(err)
		}
	}()
}

func testNotDeferred() {
	iter := iterator{}
	_, _ = iter.Keys()
	iter.Close() // want "Close\\(\\) call without defer"
}

func testConsumedByKeys() {
	iter := iterator{}
	_, _ = iter.Keys()
}
