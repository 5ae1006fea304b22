package people

import "typedbuilder"

func use() {
	_, _ = NewPersonBuilder().ID(1).Build()
	_, _ = NewPersonBuilder().Name("a").ID(1).Name("b").Build() // want `field Name of PersonBuilder is already set`
	_, _ = NewPersonBuilder().Name("a").Build()                 // want `Build called before required field ID of PersonBuilder is set`
	_ = NewPersonBuilder().ID(1).ID(2)                          // want `field ID of PersonBuilder is already set`
	_ = NewPersonBuilder().Renumber(3)                          // want `Renumber requires field ID of PersonBuilder to be set`
	_, _ = NewPersonBuilder().ID(1).Renumber(3).AddTag("x").Build()
	_, _ = BuildPerson(NewPersonBuilder().ID(1))
}

func useGeneric[S typedbuilder.Field[string]](b PersonBuilder[typedbuilder.Set[int], S, typedbuilder.Set[[]string]]) {
	_ = b.Name("x")
	_, _ = b.Build()
}
