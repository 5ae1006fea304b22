package devices

func use() {
	_, _ = NewLampBuilder().Watts(60).On().Build()
	_, _ = NewLampBuilder().On().Build()    // want `Build called before required field Watts of LampBuilder is set`
	_ = NewLampBuilder().Watts(5).On().On() // want `field On of LampBuilder is already set`
}
