package devices

import "example.com/kit"

type Lamp struct {
	Watts int
	On    bool
}

type LampBuilder[WattsState kit.Required[int], OnState kit.Field[bool]] struct {
	fWatts WattsState `typedbuilder:"Watts"`
	fOn    OnState    `typedbuilder:"On"`
	err    error
}

func NewLampBuilder() LampBuilder[kit.Unset[int], kit.Unset[bool]] {
	return LampBuilder[kit.Unset[int], kit.Unset[bool]]{}
}

func (b LampBuilder[WattsState, OnState]) Watts(watts int) LampBuilder[kit.Set[int], OnState] {
	return LampBuilder[kit.Set[int], OnState]{fWatts: kit.Set[int]{Value: watts}, fOn: b.fOn, err: b.err}
}

func (b LampBuilder[WattsState, OnState]) On() LampBuilder[WattsState, kit.Set[bool]] {
	return LampBuilder[WattsState, kit.Set[bool]]{fWatts: b.fWatts, fOn: kit.Set[bool]{Value: true}, err: b.err}
}

//typedbuilder:finalize
func (b LampBuilder[WattsState, OnState]) Build() (Lamp, error) { // want Build:"finalize"
	return Lamp{Watts: b.fWatts.Get(), On: b.fOn.Get()}, b.err
}
